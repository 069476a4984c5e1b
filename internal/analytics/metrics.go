package analytics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for the analytics pipeline.
type Metrics struct {
	Recorded      *prometheus.CounterVec
	Dropped       prometheus.Counter
	StoreFailures prometheus.Counter
	Resets        prometheus.Counter
	Pruned        prometheus.Counter
}

// NewMetrics registers and returns analytics collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		Recorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civiclink_analytics_events_recorded_total",
			Help: "Total number of analytics events persisted, by type",
		}, []string{"type"}),
		Dropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "civiclink_analytics_events_dropped_total",
			Help: "Total number of analytics events dropped due to a full buffer",
		}),
		StoreFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "civiclink_analytics_store_failures_total",
			Help: "Total number of failed analytics store appends",
		}),
		Resets: promauto.NewCounter(prometheus.CounterOpts{
			Name: "civiclink_analytics_resets_total",
			Help: "Total number of admin analytics resets",
		}),
		Pruned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "civiclink_analytics_events_pruned_total",
			Help: "Total number of analytics events removed by the retention sweep",
		}),
	}
}
