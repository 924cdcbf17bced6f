// Package metrics holds the Prometheus collectors for cart, checkout, order lifecycle and
// outbox relay activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const namespace = "ordercore"

// Outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics is safe for concurrent use. A nil *Metrics records nothing, which keeps
// handlers usable in tests without a registry.
type Metrics struct {
	CartMutations      *prometheus.CounterVec
	Checkouts          *prometheus.CounterVec
	OrderValue         prometheus.Histogram
	OrderItemCount     prometheus.Histogram
	Transitions        *prometheus.CounterVec
	RejectedTransition *prometheus.CounterVec
	OutboxDelivered    prometheus.Counter
	OutboxSkipped      prometheus.Counter
	OutboxFailures     prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CartMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cart",
				Name:      "mutations_total",
				Help:      "Cart mutations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		Checkouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "checkout",
				Name:      "attempts_total",
				Help:      "Checkout attempts by outcome",
			},
			[]string{"outcome"},
		),
		OrderValue: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "order",
				Name:      "value",
				Help:      "Total amount of placed orders in the store currency",
				Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
			},
		),
		OrderItemCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "order",
				Name:      "item_count",
				Help:      "Item count of placed orders",
				Buckets:   []float64{1, 2, 3, 5, 10, 20, 50},
			},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "order",
				Name:      "transitions_total",
				Help:      "Committed status transitions by target status",
			},
			[]string{"to"},
		),
		RejectedTransition: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "order",
				Name:      "rejected_transitions_total",
				Help:      "Status transitions refused by the state machine, by requested target",
			},
			[]string{"to"},
		),
		OutboxDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "delivered_total",
			Help:      "Outbox messages handed to the notification sink",
		}),
		OutboxSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "skipped_total",
			Help:      "Outbox messages marked processed without delivery",
		}),
		OutboxFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "relay_failures_total",
			Help:      "Relay runs that stopped on an error",
		}),
	}

	reg.MustRegister(
		m.CartMutations,
		m.Checkouts,
		m.OrderValue,
		m.OrderItemCount,
		m.Transitions,
		m.RejectedTransition,
		m.OutboxDelivered,
		m.OutboxSkipped,
		m.OutboxFailures,
	)

	return m
}

func (m *Metrics) CartMutation(operation, outcome string) {
	if m == nil {
		return
	}
	m.CartMutations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) Checkout(outcome string) {
	if m == nil {
		return
	}
	m.Checkouts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) OrderPlaced(total decimal.Decimal, itemCount int) {
	if m == nil {
		return
	}
	m.OrderValue.Observe(total.InexactFloat64())
	m.OrderItemCount.Observe(float64(itemCount))
}

func (m *Metrics) Transition(to string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(to).Inc()
}

func (m *Metrics) TransitionRejected(to string) {
	if m == nil {
		return
	}
	m.RejectedTransition.WithLabelValues(to).Inc()
}

func (m *Metrics) OutboxRelayed(delivered, skipped int, failed bool) {
	if m == nil {
		return
	}
	m.OutboxDelivered.Add(float64(delivered))
	m.OutboxSkipped.Add(float64(skipped))
	if failed {
		m.OutboxFailures.Inc()
	}
}
