package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks contract monitor cycles.
type Metrics struct {
	Cycles        *prometheus.CounterVec
	CycleDuration prometheus.Histogram
	Alerts        prometheus.Gauge
}

// New creates a new Metrics instance registered with the default registry.
func New() *Metrics {
	return &Metrics{
		Cycles: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ixcbridge_monitor_cycles_total",
			Help: "Contract monitor cycles by outcome (success, no_tenant, sync_error, locked, error)",
		}, []string{"outcome"}),
		CycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ixcbridge_monitor_cycle_duration_seconds",
			Help:    "Duration of contract monitor cycles",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		}),
		Alerts: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ixcbridge_monitor_alerts",
			Help: "Equipment alerts raised by the last completed cycle",
		}),
	}
}

func (m *Metrics) ObserveCycle(outcome string, d time.Duration) {
	m.Cycles.WithLabelValues(outcome).Inc()
	m.CycleDuration.Observe(d.Seconds())
}

func (m *Metrics) SetAlerts(n int) {
	m.Alerts.Set(float64(n))
}
