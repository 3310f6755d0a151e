// internal/app/system/appstate/registry.go
package appstate

import (
	"sync"
	"time"

	"github.com/dalemusser/sahara/internal/domain/models"
	"go.uber.org/zap"
)

// Registry hands out one Facade per browser session. Facades stay
// subscribed to the bus until they are dropped or reaped.
type Registry struct {
	store Store
	bus   Subscriber
	log   *zap.Logger
	opts  Options
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	facade   *Facade
	lastSeen time.Time
}

// NewRegistry returns an empty Registry whose facades share store and bus.
func NewRegistry(store Store, bus Subscriber, logger *zap.Logger, opts Options) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		store:   store,
		bus:     bus,
		log:     logger,
		opts:    opts,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// SetClock replaces time.Now. Intended for tests.
func (r *Registry) SetClock(now func() time.Time) {
	r.mu.Lock()
	r.now = now
	r.mu.Unlock()
}

// Acquire returns the facade for sessionID, creating it on first use. The
// facade's user and language are brought in line with the arguments.
func (r *Registry) Acquire(sessionID string, user *models.User, lang string) *Facade {
	r.mu.Lock()
	e, ok := r.entries[sessionID]
	if !ok {
		opts := r.opts
		opts.Language = lang
		e = &entry{facade: New(r.store, r.bus, r.log, opts)}
		r.entries[sessionID] = e
	}
	e.lastSeen = r.now()
	f := e.facade
	r.mu.Unlock()

	if !sameUser(f.User(), user) {
		f.SetUser(user)
	}
	if lang != "" && f.Language() != lang {
		f.SetLanguage(lang)
	}
	return f
}

// Lookup returns the facade for sessionID without creating one.
func (r *Registry) Lookup(sessionID string) (*Facade, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[sessionID]
	if !ok {
		return nil, false
	}
	return e.facade, true
}

// Drop closes and forgets the facade for sessionID.
func (r *Registry) Drop(sessionID string) bool {
	r.mu.Lock()
	e, ok := r.entries[sessionID]
	delete(r.entries, sessionID)
	r.mu.Unlock()
	if ok {
		e.facade.Close()
	}
	return ok
}

// Reap drops every facade not acquired within idle and reports how many
// were removed.
func (r *Registry) Reap(idle time.Duration) int {
	r.mu.Lock()
	cutoff := r.now().Add(-idle)
	var stale []*Facade
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, e.facade)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, f := range stale {
		f.Close()
	}
	return len(stale)
}

// Len reports the number of live facades.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Close drops every facade.
func (r *Registry) Close() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]*entry)
	r.mu.Unlock()
	for _, e := range entries {
		e.facade.Close()
	}
}

func sameUser(a, b *models.User) bool {
	switch {
	case a == nil && b == nil:
		return true
	case a == nil || b == nil:
		return false
	default:
		return a.ID == b.ID && a.Role == b.Role && a.Name == b.Name && a.Location == b.Location
	}
}
