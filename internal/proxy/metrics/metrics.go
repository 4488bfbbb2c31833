package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks relayed requests.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration prometheus.Histogram
	Rejected        *prometheus.CounterVec
}

// New creates a new Metrics instance registered with the default registry.
func New() *Metrics {
	return &Metrics{
		Requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ixcbridge_proxy_requests_total",
			Help: "Requests relayed to tenant hosts, by response status class",
		}, []string{"status"}),
		RequestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ixcbridge_proxy_request_duration_seconds",
			Help:    "Time until the relayed response headers were received",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		Rejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ixcbridge_proxy_rejected_total",
			Help: "Requests answered by the relay itself, by reason",
		}, []string{"reason"}),
	}
}

func (m *Metrics) ObserveRelayed(status int, start time.Time) {
	m.Requests.WithLabelValues(strconv.Itoa(status/100) + "xx").Inc()
	m.RequestDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncRejected(reason string) {
	m.Rejected.WithLabelValues(reason).Inc()
}
