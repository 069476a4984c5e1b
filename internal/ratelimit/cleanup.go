package ratelimit

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper is implemented by stores that support stale bucket removal.
// Redis-backed buckets expire on their own and need no sweeping.
type Sweeper interface {
	SweepStale(grace time.Duration) int
	Len() int
}

// CleanupWorker periodically removes buckets whose window has long elapsed,
// keeping the in-memory key map bounded in a long-lived process.
type CleanupWorker struct {
	store    Sweeper
	logger   *slog.Logger
	metrics  *Metrics
	interval time.Duration
	grace    time.Duration
}

// CleanupOption configures the worker.
type CleanupOption func(*CleanupWorker)

// WithInterval overrides the sweep interval.
func WithInterval(interval time.Duration) CleanupOption {
	return func(w *CleanupWorker) {
		if interval > 0 {
			w.interval = interval
		}
	}
}

// WithGrace overrides how long past its window a bucket may linger.
func WithGrace(grace time.Duration) CleanupOption {
	return func(w *CleanupWorker) {
		if grace > 0 {
			w.grace = grace
		}
	}
}

// WithMetrics attaches collectors.
func WithMetrics(m *Metrics) CleanupOption {
	return func(w *CleanupWorker) {
		w.metrics = m
	}
}

// NewCleanupWorker builds a worker over the given sweeper.
func NewCleanupWorker(store Sweeper, logger *slog.Logger, opts ...CleanupOption) *CleanupWorker {
	w := &CleanupWorker{
		store:    store,
		logger:   logger,
		interval: 5 * time.Minute,
		grace:    time.Minute,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start runs the sweep loop until ctx is canceled.
func (w *CleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.RunOnce()
		case <-ctx.Done():
			return
		}
	}
}

// RunOnce performs a single sweep and reports how many buckets were removed.
func (w *CleanupWorker) RunOnce() int {
	start := time.Now()
	removed := w.store.SweepStale(w.grace)
	remaining := w.store.Len()

	w.logger.Info("ratelimit_cleanup_completed",
		"removed", removed,
		"remaining", remaining,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if w.metrics != nil {
		w.metrics.CleanupRuns.WithLabelValues("ok").Inc()
		w.metrics.CleanupRemoved.Add(float64(removed))
		w.metrics.TrackedKeys.Set(float64(remaining))
	}
	return removed
}
