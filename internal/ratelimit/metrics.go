package ratelimit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for rate limiting.
type Metrics struct {
	Checks            *prometheus.CounterVec
	Rejections        *prometheus.CounterVec
	CleanupRuns       *prometheus.CounterVec
	CleanupRemoved    prometheus.Counter
	TrackedKeys       prometheus.Gauge
}

// NewMetrics registers and returns rate limit collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		Checks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civiclink_ratelimit_checks_total",
			Help: "Total number of rate limit checks",
		}, []string{"scope"}),
		Rejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civiclink_ratelimit_rejections_total",
			Help: "Total number of rejected requests",
		}, []string{"scope"}),
		CleanupRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civiclink_ratelimit_cleanup_runs_total",
			Help: "Total number of stale bucket sweeps",
		}, []string{"status"}),
		CleanupRemoved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "civiclink_ratelimit_cleanup_removed_total",
			Help: "Total number of stale buckets removed",
		}),
		TrackedKeys: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "civiclink_ratelimit_tracked_keys",
			Help: "Current number of tracked rate limit keys",
		}),
	}
}
