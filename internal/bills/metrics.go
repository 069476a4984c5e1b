package bills

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for bill providers.
type Metrics struct {
	Searches          *prometheus.CounterVec
	SearchFailures    *prometheus.CounterVec
	CacheHits         *prometheus.CounterVec
	CacheMisses       *prometheus.CounterVec
	ProviderThrottled *prometheus.CounterVec
	UpstreamLatency   *prometheus.HistogramVec
}

// NewMetrics registers and returns bill provider collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		Searches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civiclink_bill_searches_total",
			Help: "Total number of bill searches by provider",
		}, []string{"provider"}),
		SearchFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civiclink_bill_search_failures_total",
			Help: "Total number of failed bill searches by provider",
		}, []string{"provider"}),
		CacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civiclink_bill_cache_hits_total",
			Help: "Search cache hits by provider",
		}, []string{"provider"}),
		CacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civiclink_bill_cache_misses_total",
			Help: "Search cache misses by provider",
		}, []string{"provider"}),
		ProviderThrottled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civiclink_bill_provider_throttled_total",
			Help: "Outbound calls suppressed by the client-local rate limiter",
		}, []string{"provider"}),
		UpstreamLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "civiclink_bill_upstream_latency_seconds",
			Help:    "Latency of upstream bill API calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
	}
}
