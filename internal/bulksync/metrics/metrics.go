package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks bulk sync runs.
type Metrics struct {
	Runs          *prometheus.CounterVec
	RecordsSynced prometheus.Counter
	RunDuration   prometheus.Histogram
}

// New creates a new Metrics instance registered with the default registry.
func New() *Metrics {
	return &Metrics{
		Runs: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ixcbridge_sync_runs_total",
			Help: "Bulk customer sync runs by outcome",
		}, []string{"outcome"}),
		RecordsSynced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ixcbridge_sync_records_total",
			Help: "Customer records written by bulk sync runs",
		}),
		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ixcbridge_sync_run_duration_seconds",
			Help:    "Wall time of bulk customer sync runs",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
		}),
	}
}

func (m *Metrics) ObserveRun(outcome string, records int, duration time.Duration) {
	m.Runs.WithLabelValues(outcome).Inc()
	m.RecordsSynced.Add(float64(records))
	m.RunDuration.Observe(duration.Seconds())
}
