package store

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records query counts and latency for the Postgres executor.
type Metrics struct {
	queries  *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics creates the executor metrics and registers them on reg. Pass
// prometheus.DefaultRegisterer for process-wide metrics, or a private
// registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "listquery",
			Subsystem: "store",
			Name:      "queries_total",
			Help:      "Queries executed, labeled by outcome (ok or error).",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "listquery",
			Subsystem: "store",
			Name:      "query_duration_seconds",
			Help:      "Query latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.queries, m.duration)
	}
	return m
}

// observe records one query outcome. Safe on a nil receiver so metrics stay
// optional in the executor.
func (m *Metrics) observe(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}
