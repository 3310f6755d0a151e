package drift_test

import (
	"sync/atomic"
	"testing"
	"time"

	reliefstore "github.com/dalemusser/sahara/internal/app/store/relief"
	"github.com/dalemusser/sahara/internal/app/system/drift"
	"github.com/dalemusser/sahara/internal/app/system/notify"
	"github.com/dalemusser/sahara/internal/domain/models"
	"go.uber.org/zap"
)

// fixedRandom always returns the same draw and the last index.
type fixedRandom struct {
	f float64
}

func (r fixedRandom) Float64() float64 { return r.f }
func (r fixedRandom) IntN(n int) int    { return n - 1 }

func singlePairStore(bus *notify.Bus) *reliefstore.Store {
	return reliefstore.New(bus, reliefstore.WithData(
		[]models.HelpRequest{{ID: "REQ-001", Title: "Only", Status: models.StatusPending, VictimID: "victim1"}},
		[]models.Volunteer{{ID: "vol1", Name: "Only Volunteer", Status: models.VolunteerAvailable}},
	))
}

func TestTick_CertainProbabilityAssigns(t *testing.T) {
	store := singlePairStore(nil)
	sim := drift.New(store, zap.NewNop(), drift.Config{Probability: 1}, drift.WithRandom(fixedRandom{f: 0.99}))

	a, ok := sim.Tick()
	if !ok {
		t.Fatal("expected an assignment")
	}
	if a.RequestID != "REQ-001" || a.VolunteerID != "vol1" {
		t.Errorf("got %+v", a)
	}
	req, _ := store.Request("REQ-001")
	if req.Status != models.StatusAssigned || req.AssignedVolunteerID != "vol1" {
		t.Errorf("request not assigned: %+v", req)
	}
	vol, _ := store.Volunteer("vol1")
	if vol.Status != models.VolunteerOnMission {
		t.Errorf("volunteer status: got %q", vol.Status)
	}
}

func TestTick_DrawAboveProbabilityDoesNothing(t *testing.T) {
	store := singlePairStore(nil)
	sim := drift.New(store, zap.NewNop(), drift.Config{Probability: 0.1}, drift.WithRandom(fixedRandom{f: 0.5}))

	if _, ok := sim.Tick(); ok {
		t.Fatal("expected no assignment")
	}
	if req, _ := store.Request("REQ-001"); req.Status != models.StatusPending {
		t.Errorf("status changed to %q", req.Status)
	}
}

func TestTick_NoAvailableVolunteer(t *testing.T) {
	store := reliefstore.New(nil, reliefstore.WithData(
		[]models.HelpRequest{{ID: "REQ-001", Status: models.StatusPending}},
		[]models.Volunteer{{ID: "vol1", Status: models.VolunteerOnMission}},
	))
	sim := drift.New(store, zap.NewNop(), drift.Config{Probability: 1}, drift.WithRandom(fixedRandom{}))

	if _, ok := sim.Tick(); ok {
		t.Fatal("expected no assignment without an available volunteer")
	}
}

func TestTick_NoPendingRequest(t *testing.T) {
	store := reliefstore.New(nil, reliefstore.WithData(
		[]models.HelpRequest{{ID: "REQ-001", Status: models.StatusCompleted}},
		[]models.Volunteer{{ID: "vol1", Status: models.VolunteerAvailable}},
	))
	sim := drift.New(store, zap.NewNop(), drift.Config{Probability: 1}, drift.WithRandom(fixedRandom{}))

	if _, ok := sim.Tick(); ok {
		t.Fatal("expected no assignment without a pending request")
	}
}

func TestTick_OnAssignCallback(t *testing.T) {
	store := singlePairStore(nil)
	var got drift.Assignment
	sim := drift.New(store, zap.NewNop(), drift.Config{
		Probability: 1,
		OnAssign:    func(a drift.Assignment) { got = a },
	}, drift.WithRandom(fixedRandom{}))

	sim.Tick()
	if got.RequestID != "REQ-001" {
		t.Errorf("OnAssign got %+v", got)
	}
}

func TestStartStop_StepsOnInjectedTicks(t *testing.T) {
	bus := notify.New()
	store := singlePairStore(bus)
	var notified atomic.Int32
	bus.Subscribe(func() { notified.Add(1) })

	ticks := make(chan time.Time)
	stopped := false
	sim := drift.New(store, zap.NewNop(), drift.Config{Probability: 1},
		drift.WithRandom(fixedRandom{}),
		drift.WithTicker(func(time.Duration) (<-chan time.Time, func()) {
			return ticks, func() { stopped = true }
		}))

	sim.Start()
	sim.Start() // second Start is a no-op
	ticks <- time.Now()
	sim.Stop()
	sim.Stop()

	if !stopped {
		t.Error("expected ticker to be stopped")
	}
	if req, _ := store.Request("REQ-001"); req.Status != models.StatusAssigned {
		t.Errorf("status: got %q, want Assigned", req.Status)
	}
	if notified.Load() < 1 {
		t.Error("expected the assignment to reach the bus")
	}
}
