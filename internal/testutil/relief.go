package testutil

import (
	"testing"

	reliefstore "github.com/dalemusser/sahara/internal/app/store/relief"
	"github.com/dalemusser/sahara/internal/app/system/appstate"
	"github.com/dalemusser/sahara/internal/app/system/notify"
	"go.uber.org/zap"
)

// Relief bundles a seeded store with its bus and a facade registry.
type Relief struct {
	Bus      *notify.Bus
	Store    *reliefstore.Store
	Registry *appstate.Registry
}

// NewRelief returns a fresh seeded store whose registry is closed when the
// test ends. Facades created from it never wait.
func NewRelief(t *testing.T) *Relief {
	t.Helper()
	bus := notify.New()
	store := reliefstore.New(bus)
	reg := appstate.NewRegistry(store, bus, zap.NewNop(), appstate.Options{})
	t.Cleanup(reg.Close)
	return &Relief{Bus: bus, Store: store, Registry: reg}
}
