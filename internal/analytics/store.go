package analytics

import (
	"context"
	"time"
)

// Store is the append-only event log behind the aggregator. ListSince
// returns events with Timestamp >= since, oldest first. Purge removes
// everything; it backs the admin reset. PurgeOlderThan removes events
// with Timestamp < cutoff and reports how many it removed; it backs the
// retention sweep.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListSince(ctx context.Context, since time.Time) ([]Event, error)
	Purge(ctx context.Context) error
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error)
	Close() error
}
