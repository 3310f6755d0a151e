// internal/app/system/workers/sessionreaper.go
package workers

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Reaper drops per-session state that has been idle for too long.
type Reaper interface {
	Reap(idle time.Duration) int
}

// SessionReaper is a background worker that releases the view state of
// sessions nobody has touched recently.
type SessionReaper struct {
	target   Reaper
	log      *zap.Logger
	interval time.Duration
	idle     time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSessionReaper creates a reaper that sweeps target every interval and
// drops sessions idle for longer than idle.
func NewSessionReaper(target Reaper, logger *zap.Logger, interval, idle time.Duration) *SessionReaper {
	return &SessionReaper{
		target:   target,
		log:      logger,
		interval: interval,
		idle:     idle,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *SessionReaper) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("session reaper started",
		zap.Duration("interval", w.interval),
		zap.Duration("idle_timeout", w.idle))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *SessionReaper) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
	w.log.Info("session reaper stopped")
}

func (w *SessionReaper) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *SessionReaper) sweep() {
	if count := w.target.Reap(w.idle); count > 0 {
		w.log.Info("released idle session state", zap.Int("count", count))
	}
}
