// Package timeouts holds the deadlines used for I/O outside the in-memory
// relief store: MongoDB pings, audit writes and audit queries.
//
// Values start at their defaults and can be overridden once at startup with
// Configure.
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing  = 2 * time.Second
	DefaultWrite = 5 * time.Second
	DefaultQuery = 10 * time.Second
)

var mu sync.RWMutex

var (
	ping  = DefaultPing
	write = DefaultWrite
	query = DefaultQuery
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Write returns the timeout for a single audit write.
func Write() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return write
}

// Query returns the timeout for audit listings.
func Query() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return query
}

// Config holds timeout configuration values.
// Zero values are ignored (defaults are kept).
type Config struct {
	Ping  time.Duration
	Write time.Duration
	Query time.Duration
}

// Configure sets custom timeout values. Zero or negative values are ignored.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Write > 0 {
		write = cfg.Write
	}
	if cfg.Query > 0 {
		query = cfg.Query
	}
}

// Reset restores all timeouts to their default values.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	write = DefaultWrite
	query = DefaultQuery
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Write: write, Query: query}
}

// WithTimeout creates a context with timeout and returns a cancel function
// that logs a warning if the deadline was hit.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Query(), h.Log, "audit query")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
