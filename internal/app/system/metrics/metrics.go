// Package metrics exposes Prometheus instruments for the relief workflow.
//
// Gauges mirror the store's collections and are refreshed from the
// notification bus; counters are bumped by the facade and the drift
// simulator as actions happen.
package metrics

import (
	"sync"

	"github.com/dalemusser/sahara/internal/domain/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Action outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeRefused = "refused"
	OutcomeError   = "error"
)

var (
	requestsByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sahara_requests",
			Help: "Help requests currently in the store, by status",
		},
		[]string{"status"},
	)

	volunteersByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sahara_volunteers",
			Help: "Volunteers currently in the store, by status",
		},
		[]string{"status"},
	)

	actionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sahara_actions_total",
			Help: "State-changing actions handled by the facade, by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	driftAssignments = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sahara_drift_assignments_total",
			Help: "Requests assigned by the background drift simulator",
		},
	)

	updatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sahara_store_updates_total",
			Help: "Notifications delivered on the store's update bus",
		},
	)
)

// RecordAction counts one facade action.
func RecordAction(action, outcome string) {
	actionsTotal.WithLabelValues(action, outcome).Inc()
}

// RecordDriftAssignment counts one simulated acceptance.
func RecordDriftAssignment() {
	driftAssignments.Inc()
}

// Source is what the observer reads on every notification.
type Source interface {
	Requests() []models.HelpRequest
	Volunteers() []models.Volunteer
}

// Subscriber registers a change callback.
type Subscriber interface {
	Subscribe(fn func()) (unsubscribe func())
}

// snapMu serialises gauge updates. Observe also reads its source under it,
// so the refresh that runs last always writes the newest state.
var snapMu sync.Mutex

// Observe keeps the collection gauges in step with src. It records the
// current state immediately and again after every notification.
func Observe(src Source, bus Subscriber) (stop func()) {
	refresh := func() {
		snapMu.Lock()
		defer snapMu.Unlock()
		setGauges(src.Requests(), src.Volunteers())
	}
	refresh()
	return bus.Subscribe(func() {
		updatesTotal.Inc()
		refresh()
	})
}

// Snapshot sets the collection gauges from the given state.
func Snapshot(requests []models.HelpRequest, volunteers []models.Volunteer) {
	snapMu.Lock()
	defer snapMu.Unlock()
	setGauges(requests, volunteers)
}

func setGauges(requests []models.HelpRequest, volunteers []models.Volunteer) {
	reqCounts := map[models.RequestStatus]int{
		models.StatusPending:    0,
		models.StatusAssigned:   0,
		models.StatusInProgress: 0,
		models.StatusCompleted:  0,
		models.StatusRejected:   0,
	}
	for _, r := range requests {
		reqCounts[r.Status]++
	}
	for st, n := range reqCounts {
		requestsByStatus.WithLabelValues(string(st)).Set(float64(n))
	}

	volCounts := map[models.VolunteerStatus]int{
		models.VolunteerAvailable: 0,
		models.VolunteerOnMission: 0,
		models.VolunteerOffline:   0,
	}
	for _, v := range volunteers {
		volCounts[v.Status]++
	}
	for st, n := range volCounts {
		volunteersByStatus.WithLabelValues(string(st)).Set(float64(n))
	}
}
