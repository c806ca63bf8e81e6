package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// EventsTotal counts processed order events per variant, operation and
	// outcome ("ok" or "rejected").
	EventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orderbook_events_total",
			Help: "Total number of order events processed",
		},
		[]string{"variant", "operation", "outcome"},
	)
	// FillsTotal counts fills produced per variant.
	FillsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orderbook_fills_total",
			Help: "Total number of fills produced",
		},
		[]string{"variant"},
	)
	// OperationDuration observes per-event engine latency.
	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orderbook_operation_duration_seconds",
			Help:    "Duration of engine operations in seconds",
			Buckets: prometheus.ExponentialBuckets(50e-9, 4, 12),
		},
		[]string{"variant", "operation"},
	)
)

// Register registers all collectors on the given registerer.
func Register(r prometheus.Registerer) {
	r.MustRegister(EventsTotal, FillsTotal, OperationDuration)
}
