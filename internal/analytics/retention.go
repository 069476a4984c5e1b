package analytics

import (
	"context"
	"log/slog"
	"time"
)

// RetentionWorker periodically removes events older than the retention
// horizon so the event log stays bounded in a long-lived process.
type RetentionWorker struct {
	store    Store
	logger   *slog.Logger
	metrics  *Metrics
	retain   time.Duration
	interval time.Duration

	now func() time.Time
}

// RetentionOption configures the worker.
type RetentionOption func(*RetentionWorker)

// WithRetentionInterval overrides the sweep interval.
func WithRetentionInterval(interval time.Duration) RetentionOption {
	return func(w *RetentionWorker) {
		if interval > 0 {
			w.interval = interval
		}
	}
}

// WithRetentionMetrics attaches collectors.
func WithRetentionMetrics(m *Metrics) RetentionOption {
	return func(w *RetentionWorker) {
		w.metrics = m
	}
}

// NewRetentionWorker builds a worker that keeps events for retain.
func NewRetentionWorker(store Store, retain time.Duration, logger *slog.Logger, opts ...RetentionOption) *RetentionWorker {
	w := &RetentionWorker{
		store:    store,
		logger:   logger,
		retain:   retain,
		interval: time.Hour,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start runs the sweep loop until ctx is canceled.
func (w *RetentionWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.RunOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// RunOnce performs a single sweep and reports how many events were removed.
func (w *RetentionWorker) RunOnce(ctx context.Context) int {
	cutoff := w.now().Add(-w.retain)

	sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	removed, err := w.store.PurgeOlderThan(sweepCtx, cutoff)
	if err != nil {
		w.logger.Error("analytics_retention_failed", "error", err)
		if w.metrics != nil {
			w.metrics.StoreFailures.Inc()
		}
		return 0
	}

	w.logger.Info("analytics_retention_completed",
		"removed", removed,
		"cutoff", cutoff.UTC().Format(time.RFC3339),
	)
	if w.metrics != nil {
		w.metrics.Pruned.Add(float64(removed))
	}
	return removed
}
