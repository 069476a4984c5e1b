package drafts

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for draft generation.
type Metrics struct {
	Generated   *prometheus.CounterVec
	Failures    *prometheus.CounterVec
	DraftLength *prometheus.HistogramVec
}

// NewMetrics registers and returns draft collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		Generated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civiclink_drafts_generated_total",
			Help: "Total number of drafts generated, by kind",
		}, []string{"kind"}),
		Failures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civiclink_drafts_failures_total",
			Help: "Total number of failed draft generations, by kind",
		}, []string{"kind"}),
		DraftLength: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "civiclink_drafts_length_chars",
			Help:    "Generated draft length in characters, by kind",
			Buckets: []float64{200, 500, 1000, 1500, 2500, 5000},
		}, []string{"kind"}),
	}
}
