// internal/domain/models/volunteer.go
package models

import "strings"

// VolunteerStatus is a volunteer's availability.
type VolunteerStatus string

const (
	VolunteerAvailable VolunteerStatus = "Available"
	VolunteerOnMission VolunteerStatus = "On Mission"
	VolunteerOffline   VolunteerStatus = "Offline"
)

// ParseVolunteerStatus matches s against the known statuses, ignoring case.
func ParseVolunteerStatus(s string) (VolunteerStatus, bool) {
	for _, st := range []VolunteerStatus{VolunteerAvailable, VolunteerOnMission, VolunteerOffline} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return "", false
}

// Volunteer is a responder who can accept help requests.
type Volunteer struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Location       string          `json:"location"`
	Skills         string          `json:"skills"` // comma-separated free text
	Status         VolunteerStatus `json:"status"`
	Rating         float64         `json:"rating"`
	CompletedTasks int             `json:"completedTasks"`
}
