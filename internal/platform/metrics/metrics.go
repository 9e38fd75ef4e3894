package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gamevault"

// Metrics groups the collectors used by the gateway and the order service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	StoreOps      *prometheus.CounterVec
	StoreDuration *prometheus.HistogramVec
	Orders        *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StoreOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Store operations by name and outcome code.",
		}, []string{"operation", "outcome"}),
		StoreDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Wall time of one store operation including connection acquisition.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		Orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_total",
			Help:      "Order placement attempts by order type and outcome.",
		}, []string{"type", "outcome"}),
	}
	reg.MustRegister(m.StoreOps, m.StoreDuration, m.Orders)
	return m
}

func (m *Metrics) ObserveStore(operation, outcome string, started time.Time) {
	if m == nil {
		return
	}
	m.StoreOps.WithLabelValues(operation, outcome).Inc()
	m.StoreDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveOrder(orderType, outcome string) {
	if m == nil {
		return
	}
	m.Orders.WithLabelValues(orderType, outcome).Inc()
}
