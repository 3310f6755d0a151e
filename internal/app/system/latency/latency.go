// Package latency injects an artificial delay in front of state-changing
// actions so the dashboards behave like they sit behind a network hop.
package latency

import (
	"context"
	"time"
)

// Injector waits before an action is allowed to resolve.
type Injector interface {
	Wait(ctx context.Context) error
}

// Fixed waits for a constant duration. A zero or negative duration returns
// immediately. The wait ends early with ctx.Err() if ctx is done first.
type Fixed time.Duration

// Wait implements Injector.
func (d Fixed) Wait(ctx context.Context) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(time.Duration(d))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// None is an Injector that never waits.
func None() Injector {
	return Fixed(0)
}
