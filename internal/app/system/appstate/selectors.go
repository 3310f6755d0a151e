// internal/app/system/appstate/selectors.go
package appstate

import (
	"math"

	"github.com/dalemusser/sahara/internal/domain/models"
)

// UserRequests returns the signed-in user's own requests, newest first.
func (s State) UserRequests() []models.HelpRequest {
	if s.User == nil {
		return nil
	}
	return filterRequests(s.Requests, func(r models.HelpRequest) bool {
		return r.VictimID == s.User.ID
	})
}

// PendingRequests returns requests nobody has picked up yet.
func (s State) PendingRequests() []models.HelpRequest {
	return filterRequests(s.Requests, func(r models.HelpRequest) bool {
		return r.Status == models.StatusPending
	})
}

// AssignedRequests returns every request whose assignee is volunteerID,
// whatever its status.
func (s State) AssignedRequests(volunteerID string) []models.HelpRequest {
	return filterRequests(s.Requests, func(r models.HelpRequest) bool {
		return volunteerID != "" && r.AssignedVolunteerID == volunteerID
	})
}

// ActiveAssignments returns the volunteer's requests in status Assigned.
// In Progress requests are reached only through an admin override and are
// not listed here.
func (s State) ActiveAssignments(volunteerID string) []models.HelpRequest {
	return filterRequests(s.AssignedRequests(volunteerID), func(r models.HelpRequest) bool {
		return r.Status == models.StatusAssigned
	})
}

// CompletedBy returns the volunteer's finished requests.
func (s State) CompletedBy(volunteerID string) []models.HelpRequest {
	return filterRequests(s.AssignedRequests(volunteerID), func(r models.HelpRequest) bool {
		return r.Status == models.StatusCompleted
	})
}

// CriticalPending returns pending requests flagged Critical.
func (s State) CriticalPending() []models.HelpRequest {
	return filterRequests(s.PendingRequests(), func(r models.HelpRequest) bool {
		return r.Priority == models.PriorityCritical
	})
}

// AvailableVolunteers returns volunteers free to take a request.
func (s State) AvailableVolunteers() []models.Volunteer {
	var out []models.Volunteer
	for _, v := range s.Volunteers {
		if v.Status == models.VolunteerAvailable {
			out = append(out, v)
		}
	}
	return out
}

// VolunteerByID looks a volunteer up in the current view.
func (s State) VolunteerByID(id string) (models.Volunteer, bool) {
	for _, v := range s.Volunteers {
		if v.ID == id {
			return v, true
		}
	}
	return models.Volunteer{}, false
}

// Analytics is the admin dashboard summary.
type Analytics struct {
	ActiveVolunteers int `json:"activeVolunteers"`
	TotalVictims     int `json:"totalVictims"`
	TasksInProgress  int `json:"tasksInProgress"`
	CompletedTasks   int `json:"completedTasks"`
	CriticalAlerts   int `json:"criticalAlerts"`
	CompletionRate   int `json:"completionRate"` // percent, rounded
}

// Analytics summarises the current view for administrators.
func (s State) Analytics() Analytics {
	a := Analytics{
		TasksInProgress: s.Stats.InProgress,
		CompletedTasks:  s.Stats.Completed,
		CriticalAlerts:  len(s.CriticalPending()),
	}
	for _, v := range s.Volunteers {
		if v.Status == models.VolunteerAvailable || v.Status == models.VolunteerOnMission {
			a.ActiveVolunteers++
		}
	}
	victims := make(map[string]struct{})
	for _, r := range s.Requests {
		victims[r.VictimID] = struct{}{}
	}
	a.TotalVictims = len(victims)
	if s.Stats.Total > 0 {
		a.CompletionRate = int(math.Round(float64(s.Stats.Completed) / float64(s.Stats.Total) * 100))
	}
	return a
}

func filterRequests(in []models.HelpRequest, keep func(models.HelpRequest) bool) []models.HelpRequest {
	var out []models.HelpRequest
	for _, r := range in {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
