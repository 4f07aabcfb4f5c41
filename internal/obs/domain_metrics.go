package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// OrdersCreatedTotal counts created orders.
	OrdersCreatedTotal prometheus.Counter
	// OrderMutationsTotal counts add/cancel operations by outcome.
	OrderMutationsTotal *prometheus.CounterVec
	// OrderTotalAmount records computed order totals.
	OrderTotalAmount prometheus.Histogram
	// OrderEventsTotal counts emitted domain events per topic.
	OrderEventsTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific
// Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		created := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Count of orders created.",
		})
		mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_mutations_total",
			Help:      "Count of order mutation operations by outcome.",
		}, []string{"operation", "result"})
		totals := prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_total_amount",
			Help:      "Distribution of computed order totals.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500},
		})
		orderEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_events_total",
			Help:      "Count of emitted domain events per topic.",
		}, []string{"topic"})

		OrdersCreatedTotal = registerCounter(reg, created)
		OrderMutationsTotal = registerCounterVec(reg, mutations)
		OrderTotalAmount = registerHistogram(reg, totals)
		OrderEventsTotal = registerCounterVec(reg, orderEvents)
	})
}
