// Package drift runs the background simulator that makes the demo feel live:
// on each tick, with a small probability, one pending request is handed to
// one available volunteer through the same accept path a person would use.
package drift

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dalemusser/sahara/internal/domain/models"
	"go.uber.org/zap"
)

// Defaults match the reference cadence of the demo.
const (
	DefaultInterval    = 10 * time.Second
	DefaultProbability = 0.10
)

// Store is the slice of the relief store the simulator needs.
type Store interface {
	Requests() []models.HelpRequest
	AvailableVolunteers() []models.Volunteer
	AcceptRequest(requestID, volunteerID string) bool
}

// Random is the randomness the simulator draws from. *rand.Rand satisfies it.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// Ticker produces tick times and a stop function.
type Ticker func(d time.Duration) (<-chan time.Time, func())

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Assignment describes one simulated acceptance.
type Assignment struct {
	RequestID   string
	VolunteerID string
}

// Config controls the simulator.
type Config struct {
	Interval    time.Duration
	Probability float64 // chance per tick, 0..1

	// OnAssign, when set, is called after every successful simulated accept.
	OnAssign func(Assignment)
}

// Simulator is a background worker. Every tick re-evaluates the store from
// scratch; nothing is remembered between ticks.
type Simulator struct {
	store  Store
	log    *zap.Logger
	cfg    Config
	rnd    Random
	ticker Ticker

	mu      sync.Mutex
	stopCh  chan struct{}
	running bool
	wg      sync.WaitGroup
}

// Option customises a Simulator.
type Option func(*Simulator)

// WithRandom injects the random source.
func WithRandom(r Random) Option {
	return func(s *Simulator) { s.rnd = r }
}

// WithTicker injects the tick source.
func WithTicker(t Ticker) Option {
	return func(s *Simulator) { s.ticker = t }
}

// New creates a simulator. Zero config values fall back to the defaults.
func New(store Store, logger *zap.Logger, cfg Config, opts ...Option) *Simulator {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Probability < 0 {
		cfg.Probability = 0
	}
	s := &Simulator{
		store:  store,
		log:    logger,
		cfg:    cfg,
		rnd:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		ticker: realTicker,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tick performs one evaluation. It reports the assignment it made, if any.
func (s *Simulator) Tick() (Assignment, bool) {
	var pending []models.HelpRequest
	for _, r := range s.store.Requests() {
		if r.Status == models.StatusPending {
			pending = append(pending, r)
		}
	}
	if len(pending) == 0 || s.rnd.Float64() >= s.cfg.Probability {
		return Assignment{}, false
	}
	req := pending[s.rnd.IntN(len(pending))]

	available := s.store.AvailableVolunteers()
	if len(available) == 0 {
		return Assignment{}, false
	}
	vol := available[s.rnd.IntN(len(available))]

	if !s.store.AcceptRequest(req.ID, vol.ID) {
		return Assignment{}, false
	}

	a := Assignment{RequestID: req.ID, VolunteerID: vol.ID}
	s.log.Info("drift: auto-assigned request",
		zap.String("request_id", a.RequestID),
		zap.String("volunteer_id", a.VolunteerID))
	if s.cfg.OnAssign != nil {
		s.cfg.OnAssign(a)
	}
	return a, true
}

// Start begins the background loop. Calling Start on a running simulator
// does nothing.
func (s *Simulator) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})

	ticks, stop := s.ticker(s.cfg.Interval)
	s.wg.Add(1)
	go s.run(ticks, stop, s.stopCh)

	s.log.Info("drift simulator started",
		zap.Duration("interval", s.cfg.Interval),
		zap.Float64("probability", s.cfg.Probability))
}

// Stop signals the loop to exit and waits for it. A tick already being
// evaluated finishes first.
func (s *Simulator) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	s.log.Info("drift simulator stopped")
}

func (s *Simulator) run(ticks <-chan time.Time, stop func(), stopCh <-chan struct{}) {
	defer s.wg.Done()
	defer stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticks:
			s.Tick()
		}
	}
}
