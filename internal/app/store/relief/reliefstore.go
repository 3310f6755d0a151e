// internal/app/store/relief/reliefstore.go
package reliefstore

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/sahara/internal/app/system/notify"
	"github.com/dalemusser/sahara/internal/domain/models"
)

// Store owns the help-request and volunteer collections. It is the only
// writer of either collection; every getter hands out copies.
//
// Each public mutation runs inside a single critical section and, once the
// lock is released, fires one notification on the bus. Lookup misses are
// reported as (zero, false) and change nothing.
type Store struct {
	mu         sync.RWMutex
	requests   []models.HelpRequest // newest first
	volunteers []models.Volunteer
	seq        int // last issued request sequence number

	bus *notify.Bus
	now func() time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithClock replaces time.Now for timestamping.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithData replaces the built-in seed data.
func WithData(requests []models.HelpRequest, volunteers []models.Volunteer) Option {
	return func(s *Store) {
		s.requests = cloneRequests(requests)
		s.volunteers = append([]models.Volunteer(nil), volunteers...)
	}
}

// New creates a Store seeded with the demo data. bus may be nil.
func New(bus *notify.Bus, opts ...Option) *Store {
	s := &Store{
		requests:   SeedRequests(),
		volunteers: SeedVolunteers(),
		bus:        bus,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seq = len(s.requests)
	return s
}

func (s *Store) notify() {
	s.bus.Notify()
}

func (s *Store) stamp() time.Time {
	return s.now().UTC()
}

/*─────────────────────────────────────────────────────────────────────────────*
| Requests                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// Requests returns every request, newest first.
func (s *Store) Requests() []models.HelpRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRequests(s.requests)
}

// RequestsByVictim returns the requests raised by victimID, newest first.
func (s *Store) RequestsByVictim(victimID string) []models.HelpRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.HelpRequest{}
	for _, r := range s.requests {
		if r.VictimID == victimID {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Request looks up a single request by id.
func (s *Store) Request(id string) (models.HelpRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.requestIndex(id); i >= 0 {
		return s.requests[i].Clone(), true
	}
	return models.HelpRequest{}, false
}

// AddRequest stores a new request at the front of the collection and returns
// a copy of it. The id is "REQ-" plus a zero-padded sequence number.
func (s *Store) AddRequest(d models.RequestDraft) models.HelpRequest {
	s.mu.Lock()
	now := s.stamp()
	s.seq++
	status := d.Status
	if status == "" {
		status = models.StatusPending
	}
	req := models.HelpRequest{
		ID:          fmt.Sprintf("REQ-%03d", s.seq),
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Location:    d.Location,
		Priority:    d.Priority,
		Status:      status,
		VictimID:    d.VictimID,
		VictimName:  d.VictimName,
		CreatedAt:   now,
		UpdatedAt:   now,
		Images:      append([]string(nil), d.Images...),
	}
	s.requests = append([]models.HelpRequest{req}, s.requests...)
	out := req.Clone()
	s.mu.Unlock()

	s.notify()
	return out
}

// UpdateRequestStatus sets the status and assignee of a request. The assignee
// fields are always overwritten: passing empty strings clears them.
func (s *Store) UpdateRequestStatus(id string, status models.RequestStatus, volunteerID, volunteerName string) (models.HelpRequest, bool) {
	s.mu.Lock()
	updated, ok := s.setRequestStatus(id, status, volunteerID, volunteerName)
	s.mu.Unlock()

	if !ok {
		return models.HelpRequest{}, false
	}
	s.notify()
	return updated, true
}

func (s *Store) setRequestStatus(id string, status models.RequestStatus, volunteerID, volunteerName string) (models.HelpRequest, bool) {
	i := s.requestIndex(id)
	if i < 0 {
		return models.HelpRequest{}, false
	}
	r := &s.requests[i]
	r.Status = status
	r.AssignedVolunteerID = volunteerID
	r.AssignedVolunteerName = volunteerName
	r.UpdatedAt = s.stamp()
	return r.Clone(), true
}

func (s *Store) requestIndex(id string) int {
	for i := range s.requests {
		if s.requests[i].ID == id {
			return i
		}
	}
	return -1
}

/*─────────────────────────────────────────────────────────────────────────────*
| Volunteers                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// Volunteers returns every volunteer.
func (s *Store) Volunteers() []models.Volunteer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Volunteer(nil), s.volunteers...)
}

// AvailableVolunteers returns the volunteers whose status is Available.
func (s *Store) AvailableVolunteers() []models.Volunteer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Volunteer{}
	for _, v := range s.volunteers {
		if v.Status == models.VolunteerAvailable {
			out = append(out, v)
		}
	}
	return out
}

// Volunteer looks up a volunteer by id.
func (s *Store) Volunteer(id string) (models.Volunteer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.volunteerIndex(id); i >= 0 {
		return s.volunteers[i], true
	}
	return models.Volunteer{}, false
}

// VolunteerByEmail looks up a volunteer by email, ignoring case.
func (s *Store) VolunteerByEmail(email string) (models.Volunteer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.volunteers {
		if strings.EqualFold(v.Email, strings.TrimSpace(email)) {
			return v, true
		}
	}
	return models.Volunteer{}, false
}

// UpdateVolunteerStatus sets a volunteer's status. Any transition is allowed.
func (s *Store) UpdateVolunteerStatus(id string, status models.VolunteerStatus) (models.Volunteer, bool) {
	s.mu.Lock()
	i := s.volunteerIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Volunteer{}, false
	}
	s.volunteers[i].Status = status
	out := s.volunteers[i]
	s.mu.Unlock()

	s.notify()
	return out, true
}

func (s *Store) volunteerIndex(id string) int {
	for i := range s.volunteers {
		if s.volunteers[i].ID == id {
			return i
		}
	}
	return -1
}

/*─────────────────────────────────────────────────────────────────────────────*
| Composite operations                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// AcceptRequest assigns a pending request to a volunteer and marks the
// volunteer On Mission. Both changes become visible together or not at all.
// It returns false when either id is unknown or the request is no longer
// Pending, so of several concurrent accepts for one request exactly one wins.
func (s *Store) AcceptRequest(requestID, volunteerID string) bool {
	s.mu.Lock()
	vi := s.volunteerIndex(volunteerID)
	if vi < 0 {
		s.mu.Unlock()
		return false
	}
	if ri := s.requestIndex(requestID); ri < 0 || s.requests[ri].Status != models.StatusPending {
		s.mu.Unlock()
		return false
	}
	if _, ok := s.setRequestStatus(requestID, models.StatusAssigned, volunteerID, s.volunteers[vi].Name); !ok {
		s.mu.Unlock()
		return false
	}
	s.volunteers[vi].Status = models.VolunteerOnMission
	s.mu.Unlock()

	s.notify()
	return true
}

// CompleteRequest marks a request Completed, returns the volunteer to
// Available and credits them with one completed task.
//
// Success depends only on the request existing. The volunteer id is not
// checked against the request's assignee, and the assignee fields are left
// as they were.
func (s *Store) CompleteRequest(requestID, volunteerID string) bool {
	s.mu.Lock()
	i := s.requestIndex(requestID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	r := &s.requests[i]
	r.Status = models.StatusCompleted
	r.UpdatedAt = s.stamp()
	if vi := s.volunteerIndex(volunteerID); vi >= 0 {
		s.volunteers[vi].Status = models.VolunteerAvailable
		s.volunteers[vi].CompletedTasks++
	}
	s.mu.Unlock()

	s.notify()
	return true
}

/*─────────────────────────────────────────────────────────────────────────────*
| Statistics                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// Stats counts every request by status bucket.
func (s *Store) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := models.Stats{Total: len(s.requests)}
	for _, r := range s.requests {
		switch {
		case r.Status == models.StatusCompleted:
			st.Completed++
		case r.Status.Active():
			st.InProgress++
		case r.Status == models.StatusPending:
			st.Pending++
		case r.Status == models.StatusRejected:
			st.Rejected++
		}
	}
	return st
}

// VictimStats counts one victim's requests by status bucket.
func (s *Store) VictimStats(victimID string) models.VictimStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var st models.VictimStats
	for _, r := range s.requests {
		if r.VictimID != victimID {
			continue
		}
		st.Total++
		switch {
		case r.Status == models.StatusCompleted:
			st.Solved++
		case r.Status.Active():
			st.InProgress++
		case r.Status == models.StatusRejected:
			st.Rejected++
		}
	}
	return st
}

func cloneRequests(in []models.HelpRequest) []models.HelpRequest {
	out := make([]models.HelpRequest, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
