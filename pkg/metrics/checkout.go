package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records order finalization outcomes and ledger write
// latency.
type CheckoutMetrics struct {
	ordersFinalized *prometheus.CounterVec
	itemsSold       *prometheus.CounterVec
	failures        *prometheus.CounterVec
	writeDuration   *prometheus.HistogramVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided
// registerer. A nil registerer yields a no-op collector, which keeps
// tests free of global registry state.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	ordersFinalized := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_finalized_total",
		Help: "Orders successfully written to the sales ledger.",
	}, []string{"policy"})
	itemsSold := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_items_total",
		Help: "Units sold across finalized orders.",
	}, []string{"policy"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failures_total",
		Help: "Finalization attempts rejected or failed, by reason.",
	}, []string{"reason"})
	writeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_write_duration_seconds",
		Help:    "Duration of ledger batch appends in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"policy"})
	reg.MustRegister(ordersFinalized, itemsSold, failures, writeDuration)
	return &CheckoutMetrics{
		ordersFinalized: ordersFinalized,
		itemsSold:       itemsSold,
		failures:        failures,
		writeDuration:   writeDuration,
	}
}

// ObserveOrder records one finalized order and its item count.
func (c *CheckoutMetrics) ObserveOrder(policy string, items int) {
	if c == nil || c.ordersFinalized == nil {
		return
	}
	c.ordersFinalized.WithLabelValues(normalizeLabel(policy)).Inc()
	c.itemsSold.WithLabelValues(normalizeLabel(policy)).Add(float64(items))
}

// IncFailure increments the failure counter for the given reason.
func (c *CheckoutMetrics) IncFailure(reason string) {
	if c == nil || c.failures == nil {
		return
	}
	c.failures.WithLabelValues(normalizeLabel(reason)).Inc()
}

// ObserveWriteDuration records how long the ledger append took.
func (c *CheckoutMetrics) ObserveWriteDuration(policy string, duration time.Duration) {
	if c == nil || c.writeDuration == nil {
		return
	}
	c.writeDuration.WithLabelValues(normalizeLabel(policy)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
