// internal/domain/models/request.go
package models

import (
	"slices"
	"strings"
	"time"
)

// Priority of a help request. It never changes on its own.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// RequestStatus is the lifecycle position of a help request.
type RequestStatus string

const (
	StatusPending    RequestStatus = "Pending"
	StatusAssigned   RequestStatus = "Assigned"
	StatusInProgress RequestStatus = "In Progress"
	StatusCompleted  RequestStatus = "Completed"
	StatusRejected   RequestStatus = "Rejected"
)

var priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

var requestStatuses = []RequestStatus{
	StatusPending, StatusAssigned, StatusInProgress, StatusCompleted, StatusRejected,
}

// ParsePriority matches s against the known priorities, ignoring case.
func ParsePriority(s string) (Priority, bool) {
	for _, p := range priorities {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, true
		}
	}
	return "", false
}

// ParseRequestStatus matches s against the known statuses, ignoring case.
func ParseRequestStatus(s string) (RequestStatus, bool) {
	for _, st := range requestStatuses {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return "", false
}

// Active reports whether the status counts toward the in-progress bucket.
func (s RequestStatus) Active() bool {
	return s == StatusAssigned || s == StatusInProgress
}

// HelpRequest is a unit of help needed by a victim.
type HelpRequest struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Location    string        `json:"location"`
	Priority    Priority      `json:"priority"`
	Status      RequestStatus `json:"status"`

	VictimID   string `json:"victimId"`
	VictimName string `json:"victimName"`

	AssignedVolunteerID   string `json:"assignedVolunteerId,omitempty"`
	AssignedVolunteerName string `json:"assignedVolunteerName,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Images []string `json:"images,omitempty"`
}

// Clone returns a copy that shares no mutable state with r.
func (r HelpRequest) Clone() HelpRequest {
	r.Images = slices.Clone(r.Images)
	return r
}

// RequestDraft carries the caller-supplied fields of a new request. The store
// fills in the id and both timestamps.
type RequestDraft struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Location    string        `json:"location"`
	Priority    Priority      `json:"priority"`
	Status      RequestStatus `json:"status,omitempty"` // empty means Pending
	VictimID    string        `json:"victimId"`
	VictimName  string        `json:"victimName"`
	Images      []string      `json:"images,omitempty"`
}
