package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records cart mutations, voucher redemptions and checkouts.
// A nil registerer yields a recorder whose methods are no-ops.
type StorefrontMetrics struct {
	mutations       *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	redemptions     *prometheus.CounterVec
	ordersPlaced    prometheus.Counter
	checkoutTime    *prometheus.HistogramVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations applied, by operation.",
	}, []string{"op"})
	persistFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_persist_failures_total",
		Help: "Cart snapshot writes that failed, by operation.",
	}, []string{"op"})
	redemptions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "voucher_redemptions_total",
		Help: "Voucher redemption attempts, by result.",
	}, []string{"result"})
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders placed through checkout.",
	})
	checkoutTime := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Time spent placing an order in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	reg.MustRegister(mutations, persistFailures, redemptions, ordersPlaced, checkoutTime)
	return &StorefrontMetrics{
		mutations:       mutations,
		persistFailures: persistFailures,
		redemptions:     redemptions,
		ordersPlaced:    ordersPlaced,
		checkoutTime:    checkoutTime,
	}
}

// IncMutation counts one applied cart mutation.
func (m *StorefrontMetrics) IncMutation(op string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncPersistFailure counts one failed snapshot write.
func (m *StorefrontMetrics) IncPersistFailure(op string) {
	if m == nil || m.persistFailures == nil {
		return
	}
	m.persistFailures.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncRedemption counts a voucher redemption attempt with its result
// (applied, unknown_code, minimum_not_met).
func (m *StorefrontMetrics) IncRedemption(result string) {
	if m == nil || m.redemptions == nil {
		return
	}
	m.redemptions.WithLabelValues(normalizeLabel(result)).Inc()
}

// IncOrderPlaced counts a successfully placed order.
func (m *StorefrontMetrics) IncOrderPlaced() {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.Inc()
}

// ObserveCheckout records how long a checkout attempt took.
func (m *StorefrontMetrics) ObserveCheckout(outcome string, duration time.Duration) {
	if m == nil || m.checkoutTime == nil {
		return
	}
	m.checkoutTime.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
