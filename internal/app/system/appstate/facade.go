// internal/app/system/appstate/facade.go
package appstate

import (
	"context"
	"fmt"
	"sync"

	"github.com/dalemusser/sahara/internal/app/system/i18n"
	"github.com/dalemusser/sahara/internal/app/system/latency"
	"github.com/dalemusser/sahara/internal/app/system/metrics"
	"github.com/dalemusser/sahara/internal/domain/models"
	"go.uber.org/zap"
)

// Store is the part of the relief store the facade reads and mutates.
type Store interface {
	Requests() []models.HelpRequest
	Volunteers() []models.Volunteer
	Stats() models.Stats
	VictimStats(victimID string) models.VictimStats

	AddRequest(d models.RequestDraft) models.HelpRequest
	UpdateRequestStatus(id string, status models.RequestStatus, volunteerID, volunteerName string) (models.HelpRequest, bool)
	AcceptRequest(requestID, volunteerID string) bool
	CompleteRequest(requestID, volunteerID string) bool
}

// Subscriber is the change feed the facade listens on.
type Subscriber interface {
	Subscribe(fn func()) (unsubscribe func())
}

// Options configures a Facade. Zero values fall back to no latency, the
// built-in translations and English.
type Options struct {
	Latency    latency.Injector
	Translator *i18n.Translator
	Language   string
}

// SOS defaults used when neither the caller nor the signed-in user supplies
// a value.
const (
	sosCategory       = "medical"
	sosFallbackVictim = "victim1"
)

// Facade mirrors the relief store into one session's view state. Mutations
// go through a wrapper that waits on the latency injector and maintains the
// loading and error flags. Every store notification, and every change of
// signed-in user, re-derives the view from the store.
//
// The facade never holds its own lock while calling into the store.
type Facade struct {
	store Store
	delay latency.Injector
	tr    *i18n.Translator
	log   *zap.Logger

	mu    sync.RWMutex
	state State
	lang  string

	unsubscribe func()
	closeOnce   sync.Once
}

// New builds a Facade, loads the current store contents and subscribes to
// bus. Call Close to detach it.
func New(store Store, bus Subscriber, logger *zap.Logger, opts Options) *Facade {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Latency == nil {
		opts.Latency = latency.None()
	}
	if opts.Translator == nil {
		opts.Translator = i18n.New()
	}
	f := &Facade{
		store: store,
		delay: opts.Latency,
		tr:    opts.Translator,
		log:   logger,
		lang:  i18n.Normalize(opts.Language),
	}
	f.load()
	if bus != nil {
		f.unsubscribe = bus.Subscribe(f.load)
	}
	return f
}

// Close detaches the facade from the bus. It is safe to call more than once.
func (f *Facade) Close() {
	f.closeOnce.Do(func() {
		if f.unsubscribe != nil {
			f.unsubscribe()
		}
	})
}

// State returns a copy of the current view.
func (f *Facade) State() State {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state.Clone()
}

// User returns a copy of the signed-in user, or nil.
func (f *Facade) User() *models.User {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.state.User == nil {
		return nil
	}
	u := *f.state.User
	return &u
}

// SetUser switches the signed-in user and re-derives the view.
func (f *Facade) SetUser(u *models.User) {
	if u != nil {
		cp := *u
		u = &cp
	}
	f.dispatch(SetUser{User: u})
	f.load()
}

// Language returns the session's language code.
func (f *Facade) Language() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lang
}

// SetLanguage switches the language used for messages the facade produces.
func (f *Facade) SetLanguage(lang string) {
	f.mu.Lock()
	f.lang = i18n.Normalize(lang)
	f.mu.Unlock()
}

// T translates key into the session's language.
func (f *Facade) T(key string) string {
	return f.tr.T(f.Language(), key)
}

// AddRequest creates a request from d and returns the stored record.
func (f *Facade) AddRequest(ctx context.Context, d models.RequestDraft) (models.HelpRequest, error) {
	var created models.HelpRequest
	err := f.perform(ctx, "add_request", "error.addRequest", func() (bool, error) {
		created = f.store.AddRequest(d)
		actions := []Action{RequestAdded{Request: created}}
		if u := f.User(); u != nil {
			actions = append(actions, SetUserStats{Stats: f.store.VictimStats(u.ID)})
		}
		f.dispatch(actions...)
		return true, nil
	})
	if err != nil {
		return models.HelpRequest{}, err
	}
	return created, nil
}

// UpdateRequestStatus sets a request's status and assignee. The bool is
// false when no request has that id.
func (f *Facade) UpdateRequestStatus(ctx context.Context, id string, status models.RequestStatus, volunteerID, volunteerName string) (models.HelpRequest, bool, error) {
	var (
		updated models.HelpRequest
		found   bool
	)
	err := f.perform(ctx, "update_status", "error.updateRequest", func() (bool, error) {
		updated, found = f.store.UpdateRequestStatus(id, status, volunteerID, volunteerName)
		if found {
			f.load()
		}
		return found, nil
	})
	return updated, found, err
}

// AcceptRequest assigns a request to a volunteer.
func (f *Facade) AcceptRequest(ctx context.Context, requestID, volunteerID string) (bool, error) {
	var ok bool
	err := f.perform(ctx, "accept", "error.acceptRequest", func() (bool, error) {
		ok = f.store.AcceptRequest(requestID, volunteerID)
		if ok {
			f.load()
		}
		return ok, nil
	})
	return ok, err
}

// CompleteRequest marks a request completed and credits the volunteer.
func (f *Facade) CompleteRequest(ctx context.Context, requestID, volunteerID string) (bool, error) {
	var ok bool
	err := f.perform(ctx, "complete", "error.completeRequest", func() (bool, error) {
		ok = f.store.CompleteRequest(requestID, volunteerID)
		if ok {
			f.load()
		}
		return ok, nil
	})
	return ok, err
}

// SubmitSOS raises a critical medical request. An empty location falls back
// to the user's own location and then to a generic placeholder.
func (f *Facade) SubmitSOS(ctx context.Context, location string) (models.HelpRequest, error) {
	d := models.RequestDraft{
		Title:       f.T("sos.title"),
		Description: f.T("sos.description"),
		Category:    sosCategory,
		Location:    location,
		Priority:    models.PriorityCritical,
		VictimID:    sosFallbackVictim,
		VictimName:  f.T("sos.demoUser"),
	}
	if u := f.User(); u != nil {
		if d.Location == "" {
			d.Location = u.Location
		}
		if u.ID != "" {
			d.VictimID = u.ID
		}
		if u.Name != "" {
			d.VictimName = u.Name
		}
	}
	if d.Location == "" {
		d.Location = f.T("sos.location")
	}
	return f.AddRequest(ctx, d)
}

// perform wraps one mutation: loading on, previous error cleared, latency
// waited, op run, failure recorded, loading off.
func (f *Facade) perform(ctx context.Context, action, errKey string, op func() (bool, error)) (err error) {
	f.dispatch(SetLoading{Loading: true}, SetError{})

	ok := false
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%s: %v", f.T(errKey), rec)
		}
		switch {
		case err != nil:
			f.log.Warn("relief action failed",
				zap.String("action", action),
				zap.Error(err))
			f.dispatch(SetError{Message: err.Error()}, SetLoading{Loading: false})
			metrics.RecordAction(action, metrics.OutcomeError)
		case ok:
			f.dispatch(SetLoading{Loading: false})
			metrics.RecordAction(action, metrics.OutcomeOK)
		default:
			f.dispatch(SetLoading{Loading: false})
			metrics.RecordAction(action, metrics.OutcomeRefused)
		}
	}()

	if werr := f.delay.Wait(ctx); werr != nil {
		return fmt.Errorf("%s: %w", f.T(errKey), werr)
	}
	ok, err = op()
	if err != nil {
		return fmt.Errorf("%s: %w", f.T(errKey), err)
	}
	return nil
}

func (f *Facade) dispatch(actions ...Action) {
	f.mu.Lock()
	for _, a := range actions {
		f.state = Reduce(f.state, a)
	}
	f.mu.Unlock()
}

// load re-reads requests, volunteers and global stats, plus the signed-in
// user's stats when there is one.
func (f *Facade) load() {
	requests := f.store.Requests()
	volunteers := f.store.Volunteers()
	stats := f.store.Stats()

	f.mu.RLock()
	var userID string
	if f.state.User != nil {
		userID = f.state.User.ID
	}
	f.mu.RUnlock()

	actions := []Action{
		SetRequests{Requests: requests},
		SetVolunteers{Volunteers: volunteers},
		SetStats{Stats: stats},
	}
	if userID != "" {
		actions = append(actions, SetUserStats{Stats: f.store.VictimStats(userID)})
	}
	f.dispatch(actions...)
}
