package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics counts store operations and tracks collection size per service.
type StoreMetrics struct {
	ops  *prometheus.CounterVec
	size *prometheus.GaugeVec
}

// NewStoreMetrics registers the store collectors on reg.
func NewStoreMetrics(reg prometheus.Registerer) (*StoreMetrics, error) {
	m := &StoreMetrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "go_records",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Store operations by service, operation and result.",
		}, []string{"service", "op", "result"}),
		size: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "go_records",
			Subsystem: "store",
			Name:      "records",
			Help:      "Number of records currently in the collection.",
		}, []string{"service"}),
	}

	for _, c := range []prometheus.Collector{m.ops, m.size} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe records one operation. result is "ok", "not_found" or "error".
func (m *StoreMetrics) Observe(service, op, result string) {
	m.ops.WithLabelValues(service, op, result).Inc()
}

// SetSize records the current number of records held by service.
func (m *StoreMetrics) SetSize(service string, n int) {
	m.size.WithLabelValues(service).Set(float64(n))
}
