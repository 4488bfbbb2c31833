package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts reconciliation checks.
type Metrics struct {
	CustomersChecked *prometheus.CounterVec
}

// New creates a new Metrics instance registered with the default registry.
func New() *Metrics {
	return &Metrics{
		CustomersChecked: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ixcbridge_reconcile_customers_checked_total",
			Help: "Customers checked against upstream services, by outcome (active, alert, skipped, error)",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncChecked(outcome string) {
	m.CustomersChecked.WithLabelValues(outcome).Inc()
}
