package officials

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for representative lookups.
type Metrics struct {
	Lookups           prometheus.Counter
	LookupFailures    prometheus.Counter
	OfficialsReturned prometheus.Histogram
}

// NewMetrics registers and returns lookup collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		Lookups: promauto.NewCounter(prometheus.CounterOpts{
			Name: "civiclink_officials_lookups_total",
			Help: "Total number of successful representative lookups",
		}),
		LookupFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "civiclink_officials_lookup_failures_total",
			Help: "Total number of failed representative lookups",
		}),
		OfficialsReturned: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "civiclink_officials_returned",
			Help:    "Number of officials returned per lookup",
			Buckets: []float64{0, 1, 2, 5, 10, 20},
		}),
	}
}
