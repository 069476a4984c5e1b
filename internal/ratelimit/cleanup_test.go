package ratelimit

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupRemovesOnlyStaleBuckets(t *testing.T) {
	store, clock := newTestStore()
	ctx := context.Background()

	_, err := store.Allow(ctx, "stale-1", 5, time.Minute)
	require.NoError(t, err)
	_, err = store.Allow(ctx, "stale-2", 5, time.Minute)
	require.NoError(t, err)

	clock.Advance(3 * time.Minute)

	_, err = store.Allow(ctx, "live", 5, time.Minute)
	require.NoError(t, err)

	worker := NewCleanupWorker(store, slog.Default(), WithGrace(time.Minute))
	removed := worker.RunOnce()

	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, store.Len())
}

func TestCleanupKeepsBucketsWithinGrace(t *testing.T) {
	store, clock := newTestStore()
	ctx := context.Background()

	_, err := store.Allow(ctx, "recent", 5, time.Minute)
	require.NoError(t, err)

	// Window elapsed but still inside the grace period.
	clock.Advance(90 * time.Second)

	worker := NewCleanupWorker(store, slog.Default(), WithGrace(time.Minute))
	assert.Equal(t, 0, worker.RunOnce())
	assert.Equal(t, 1, store.Len())
}
