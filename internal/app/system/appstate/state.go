// internal/app/system/appstate/state.go
package appstate

import "github.com/dalemusser/sahara/internal/domain/models"

// State is the view a single signed-in session sees. It is derived from the
// relief store and is only ever replaced through Reduce.
type State struct {
	User       *models.User
	Requests   []models.HelpRequest
	Volunteers []models.Volunteer
	Stats      models.Stats
	UserStats  models.VictimStats
	IsLoading  bool
	Error      string
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	out.Requests = make([]models.HelpRequest, len(s.Requests))
	for i, r := range s.Requests {
		out.Requests[i] = r.Clone()
	}
	out.Volunteers = append([]models.Volunteer(nil), s.Volunteers...)
	return out
}

// Action describes one state transition.
type Action interface {
	apply(State) State
}

// Reduce returns the state that results from applying a to s.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.apply(s)
}

// SetUser replaces the signed-in user. A nil User signs out and clears the
// per-user stats.
type SetUser struct{ User *models.User }

func (a SetUser) apply(s State) State {
	s.User = a.User
	if a.User == nil {
		s.UserStats = models.VictimStats{}
	}
	return s
}

// SetRequests replaces the request list.
type SetRequests struct{ Requests []models.HelpRequest }

func (a SetRequests) apply(s State) State {
	s.Requests = a.Requests
	return s
}

// SetVolunteers replaces the volunteer list.
type SetVolunteers struct{ Volunteers []models.Volunteer }

func (a SetVolunteers) apply(s State) State {
	s.Volunteers = a.Volunteers
	return s
}

// SetStats replaces the global counters.
type SetStats struct{ Stats models.Stats }

func (a SetStats) apply(s State) State {
	s.Stats = a.Stats
	return s
}

// SetUserStats replaces the signed-in user's counters.
type SetUserStats struct{ Stats models.VictimStats }

func (a SetUserStats) apply(s State) State {
	s.UserStats = a.Stats
	return s
}

// SetLoading toggles the loading flag.
type SetLoading struct{ Loading bool }

func (a SetLoading) apply(s State) State {
	s.IsLoading = a.Loading
	return s
}

// SetError records an action failure. An empty message clears it.
type SetError struct{ Message string }

func (a SetError) apply(s State) State {
	s.Error = a.Message
	return s
}

// RequestAdded puts a newly created request at the head of the list. If a
// request with the same id is already present it is replaced in place, so
// applying the same action twice leaves one copy.
type RequestAdded struct{ Request models.HelpRequest }

func (a RequestAdded) apply(s State) State {
	for i, r := range s.Requests {
		if r.ID == a.Request.ID {
			next := append([]models.HelpRequest(nil), s.Requests...)
			next[i] = a.Request
			s.Requests = next
			return s
		}
	}
	next := make([]models.HelpRequest, 0, len(s.Requests)+1)
	next = append(next, a.Request)
	next = append(next, s.Requests...)
	s.Requests = next
	if s.User != nil && a.Request.VictimID == s.User.ID {
		s.UserStats.Total++
	}
	return s
}
