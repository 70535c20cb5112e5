package remote

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const outcomeSuccess = "success"

// Metrics records outbound remote function calls.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the remote call metrics on reg. A nil reg yields a
// Metrics that records nothing.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "remote_calls_total",
		Help: "Remote function calls by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "remote_call_duration_seconds",
		Help:    "Duration of remote function calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	reg.MustRegister(calls, duration)
	return &Metrics{calls: calls, duration: duration}
}

// Observe records one finished call. outcome is "success" or the error kind.
func (m *Metrics) Observe(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	endpoint = normalizeLabel(endpoint)
	if m.calls != nil {
		m.calls.WithLabelValues(endpoint, normalizeLabel(outcome)).Inc()
	}
	if m.duration != nil {
		m.duration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	}
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
