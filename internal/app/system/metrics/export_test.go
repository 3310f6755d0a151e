package metrics

import "github.com/prometheus/client_golang/prometheus"

func ActionCounterFor(action, outcome string) prometheus.Counter {
	return actionsTotal.WithLabelValues(action, outcome)
}
