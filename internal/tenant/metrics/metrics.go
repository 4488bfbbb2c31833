package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for tenant configuration.
type Metrics struct {
	TenantCreated   prometheus.Counter
	ConnectionTests *prometheus.CounterVec
}

// New creates a new Metrics instance with all tenant module metrics registered.
func New() *Metrics {
	return &Metrics{
		TenantCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ixcbridge_tenant_configs_created_total",
			Help: "Total number of tenant configs created",
		}),
		ConnectionTests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ixcbridge_tenant_connection_tests_total",
			Help: "Upstream connection tests by result",
		}, []string{"result"}),
	}
}

// IncrementTenantCreated records a successful tenant config creation.
func (m *Metrics) IncrementTenantCreated() {
	m.TenantCreated.Inc()
}

func (m *Metrics) ObserveConnectionTest(ok bool) {
	result := "failed"
	if ok {
		result = "ok"
	}
	m.ConnectionTests.WithLabelValues(result).Inc()
}
