// Package metrics defines the custom Prometheus metrics of the storefront and
// the observers that feed them. HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Cart sync metrics ─────────────────────────────────────────────────────────

// CartSyncTotal counts executed remote mirror commands.
// Labels:
//   - kind: "add", "delete" or "replace"
//   - result: "ok" or "error"
var CartSyncTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_sync_total",
		Help:      "Total number of cart sync commands executed against the backend.",
	},
	[]string{"kind", "result"},
)

// CartSyncDuration measures one remote mirror command end to end.
var CartSyncDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cart_sync_duration_seconds",
		Help:      "Duration of cart sync commands from dequeue to backend response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// StockNoticesTotal counts quantities clamped to available stock.
var StockNoticesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_notices_total",
		Help:      "Total number of cart quantities clamped to the available stock.",
	},
)

// CartMutationsTotal counts local cart operations.
// Label:
//   - op: "add", "update", "remove", "clear", "refresh"
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of local cart operations by type.",
	},
	[]string{"op"},
)

// OrdersPlacedTotal counts successful checkouts.
var OrdersPlacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed through checkout.",
	},
)

// RegisterSyncQueueDepth exposes the dispatcher backlog as a gauge.
func RegisterSyncQueueDepth(depth func() int) prometheus.GaugeFunc {
	return promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cart_sync_queue_depth",
			Help:      "Current number of cart sync commands waiting for a worker.",
		},
		func() float64 { return float64(depth()) },
	)
}
