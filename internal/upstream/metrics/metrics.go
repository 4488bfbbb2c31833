package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks upstream listing calls by resource and outcome.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates a new Metrics instance registered with the default registry.
func New() *Metrics {
	return &Metrics{
		Requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ixcbridge_upstream_requests_total",
			Help: "Upstream listing requests by resource and outcome category",
		}, []string{"resource", "outcome"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ixcbridge_upstream_request_duration_seconds",
			Help:    "Latency of upstream listing requests through the relay",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"resource"}),
	}
}

// ObserveRequest records one request. Call with time.Now() at the start of the call.
func (m *Metrics) ObserveRequest(resource, outcome string, start time.Time) {
	m.Requests.WithLabelValues(resource, outcome).Inc()
	m.RequestDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())
}
