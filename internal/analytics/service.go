package analytics

import (
	"context"
	"log/slog"
	"sort"
	"time"

	dErrors "civiclink/pkg/domain-errors"
)

const topListSize = 5

// Service aggregates the event log. It is injected into handlers rather
// than living as a package-level singleton so tests get isolated
// instances and multiple deployments can share one store.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *Metrics

	now func() time.Time
}

// NewService wires the aggregation layer over a store.
func NewService(store Store, logger *slog.Logger, metrics *Metrics) *Service {
	return &Service{
		store:   store,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Summary aggregates events within the trailing window: totals per type,
// top topics and states, and the error count.
func (s *Service) Summary(ctx context.Context, window time.Duration) (*Summary, error) {
	if window <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "window must be positive")
	}

	events, err := s.store.ListSince(ctx, s.now().Add(-window))
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Window:      window.String(),
		Total:       len(events),
		CountByType: make(map[EventType]int),
	}
	topicCounts := make(map[string]int)
	stateCounts := make(map[string]int)

	for _, event := range events {
		summary.CountByType[event.Type]++
		if event.Type == EventAPIError {
			summary.ErrorCount++
		}
		if event.Topic != "" {
			topicCounts[event.Topic]++
		}
		if event.State != "" {
			stateCounts[event.State]++
		}
	}

	summary.TopTopics = topN(topicCounts, topListSize)
	summary.TopStates = topN(stateCounts, topListSize)
	return summary, nil
}

// TimeSeries buckets events of one type over the trailing window. Every
// bucket in the range is present, zero-filled, oldest first.
func (s *Service) TimeSeries(ctx context.Context, eventType EventType, bucket, window time.Duration) ([]TimeBucket, error) {
	if _, ok := knownTypes[eventType]; !ok {
		return nil, dErrors.New(dErrors.CodeValidation, "unknown event type")
	}
	if bucket <= 0 || window <= 0 || bucket > window {
		return nil, dErrors.New(dErrors.CodeValidation, "bucket must be positive and fit within the window")
	}

	now := s.now().UTC()
	since := now.Add(-window)
	events, err := s.store.ListSince(ctx, since)
	if err != nil {
		return nil, err
	}

	start := since.Truncate(bucket)
	buckets := make([]TimeBucket, 0, int(window/bucket)+1)
	index := make(map[time.Time]int)
	for t := start; t.Before(now) || t.Equal(now); t = t.Add(bucket) {
		index[t] = len(buckets)
		buckets = append(buckets, TimeBucket{Start: t})
	}

	for _, event := range events {
		if event.Type != eventType {
			continue
		}
		slot := event.Timestamp.UTC().Truncate(bucket)
		if i, ok := index[slot]; ok {
			buckets[i].Count++
		}
	}
	return buckets, nil
}

// Reset purges the event log. Admin only; callers enforce the token.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.Purge(ctx); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.Resets.Inc()
	}
	s.logger.InfoContext(ctx, "analytics_reset_completed")
	return nil
}

// topN ranks values by count descending, ties broken alphabetically for
// stable output.
func topN(counts map[string]int, n int) []RankedValue {
	ranked := make([]RankedValue, 0, len(counts))
	for value, count := range counts {
		ranked = append(ranked, RankedValue{Value: value, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Value < ranked[j].Value
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
