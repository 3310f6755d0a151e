// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"sync"

	"github.com/dalemusser/sahara/internal/app/system/metrics"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the backends are
// connected and the schema is in place, but before the HTTP handler is
// built. It starts the background workers: the metrics observer, the
// session reaper and, when enabled, the drift simulator.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	deps.Metrics.start()
	deps.Reaper.Start()
	if deps.Drift != nil {
		deps.Drift.Start()
	} else {
		logger.Info("drift simulator disabled")
	}
	return nil
}

// metricsObserver keeps the Prometheus gauges subscribed to the relief bus
// between Startup and Shutdown.
type metricsObserver struct {
	src metrics.Source
	bus metrics.Subscriber

	mu   sync.Mutex
	stop func()
}

func (o *metricsObserver) start() {
	if o == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stop == nil {
		o.stop = metrics.Observe(o.src, o.bus)
	}
}

func (o *metricsObserver) close() {
	if o == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stop != nil {
		o.stop()
		o.stop = nil
	}
}
