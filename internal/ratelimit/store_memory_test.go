package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore() (*MemoryStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	store.now = clock.Now
	return store, clock
}

func TestAllowWithinLimit(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := store.Allow(ctx, "ip:203.0.113.9", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "call %d should be allowed", i+1)
	}

	res, err := store.Allow(ctx, "ip:203.0.113.9", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed, "4th call within the window must be rejected")
	assert.Equal(t, 0, res.Remaining)
	assert.Greater(t, res.RetryAfter, 0)
}

func TestWindowResetAfterElapse(t *testing.T) {
	store, clock := newTestStore()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := store.Allow(ctx, "k", 3, 60*time.Second)
		require.NoError(t, err)
	}

	clock.Advance(60*time.Second + time.Millisecond)

	res, err := store.Allow(ctx, "k", 3, 60*time.Second)
	require.NoError(t, err)
	assert.True(t, res.Allowed, "first call of a fresh window is accepted regardless of prior rejections")
	assert.Equal(t, 2, res.Remaining)
}

func TestMaxZeroAllowsFirstCallOnly(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	// The bucket is created with count=1 before the comparison, so the
	// first call of each window passes even at max=0.
	res, err := store.Allow(ctx, "k", 0, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = store.Allow(ctx, "k", 0, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}

func TestKeysAreIndependent(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	res, err := store.Allow(ctx, "a", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = store.Allow(ctx, "a", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	res, err = store.Allow(ctx, "b", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestSweepStale(t *testing.T) {
	store, clock := newTestStore()
	ctx := context.Background()

	_, err := store.Allow(ctx, "old", 5, time.Minute)
	require.NoError(t, err)

	clock.Advance(10 * time.Minute)

	_, err = store.Allow(ctx, "fresh", 5, time.Minute)
	require.NoError(t, err)

	removed := store.SweepStale(time.Minute)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())

	// The fresh bucket still enforces its count.
	res, err := store.Allow(ctx, "fresh", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}

func TestConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	const workers = 20
	const callsPerWorker = 50

	var wg sync.WaitGroup
	allowed := make([]int, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < callsPerWorker; i++ {
				res, err := store.Allow(ctx, "shared", 100, time.Minute)
				if err == nil && res.Allowed {
					allowed[w]++
				}
			}
		}(w)
	}
	wg.Wait()

	total := 0
	for _, n := range allowed {
		total += n
	}
	assert.Equal(t, 100, total, "exactly max requests may pass in one window")
}
