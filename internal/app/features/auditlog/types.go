// internal/app/features/auditlog/types.go
package auditlog

import "github.com/dalemusser/sahara/internal/app/store/audit"

type listData struct {
	Items []audit.Event `json:"items"`

	Category    string `json:"category,omitempty"`
	EventType   string `json:"eventType,omitempty"`
	RequestID   string `json:"requestId,omitempty"`
	VolunteerID string `json:"volunteerId,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`

	Categories []categoryOption `json:"categories"`
	EventTypes []string         `json:"eventTypes"`

	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	Total      int64 `json:"total"`
	HasPrev    bool  `json:"hasPrev"`
	HasNext    bool  `json:"hasNext"`
}

type categoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func allCategories() []categoryOption {
	return []categoryOption{
		{Value: audit.CategoryAuth, Label: "Authentication"},
		{Value: audit.CategoryAdmin, Label: "Administration"},
		{Value: audit.CategoryRelief, Label: "Relief"},
	}
}

// eventTypesForCategory returns the event types for a given category.
// If category is empty, returns all event types.
func eventTypesForCategory(category string) []string {
	authEvents := []string{
		audit.EventLoginSuccess,
		audit.EventLoginFailed,
		audit.EventLogout,
		audit.EventSignUp,
	}
	adminEvents := []string{
		audit.EventRequestAssigned,
		audit.EventRequestStatusChanged,
		audit.EventVolunteerStatusChanged,
	}
	reliefEvents := []string{
		audit.EventRequestCreated,
		audit.EventSOSRaised,
		audit.EventRequestAccepted,
		audit.EventRequestCompleted,
		audit.EventDriftAssigned,
	}

	switch category {
	case audit.CategoryAuth:
		return authEvents
	case audit.CategoryAdmin:
		return adminEvents
	case audit.CategoryRelief:
		return reliefEvents
	case "":
		all := make([]string, 0, len(authEvents)+len(adminEvents)+len(reliefEvents))
		all = append(all, authEvents...)
		all = append(all, adminEvents...)
		return append(all, reliefEvents...)
	default:
		return nil
	}
}
