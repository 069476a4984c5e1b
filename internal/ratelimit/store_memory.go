package ratelimit

import (
	"context"
	"sync"
	"time"
)

// bucket is the fixed-window counter state for one key.
type bucket struct {
	count       int
	windowStart time.Time
	window      time.Duration
	lastSeen    time.Time
}

// MemoryStore implements Store with a mutex-protected map. Suitable for a
// single-process deployment; use RedisStore when running multiple instances.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	// now is swappable for tests.
	now func() time.Time
}

// NewMemoryStore creates an empty in-memory bucket store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow implements Store.
func (s *MemoryStore) Allow(_ context.Context, key string, max int, window time.Duration) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	b, ok := s.buckets[key]
	if !ok || now.Sub(b.windowStart) > window {
		s.buckets[key] = &bucket{count: 1, windowStart: now, window: window, lastSeen: now}
		return &Result{
			Allowed:   true,
			Limit:     max,
			Remaining: maxInt(max-1, 0),
			ResetAt:   now.Add(window),
		}, nil
	}

	b.count++
	b.lastSeen = now
	allowed := b.count <= max
	resetAt := b.windowStart.Add(window)
	return &Result{
		Allowed:    allowed,
		Limit:      max,
		Remaining:  maxInt(max-b.count, 0),
		ResetAt:    resetAt,
		RetryAfter: retryAfterSeconds(allowed, resetAt),
	}, nil
}

// SweepStale removes buckets whose window elapsed more than grace ago and
// reports how many were dropped. Without sweeping the map grows one entry
// per distinct key for the lifetime of the process.
func (s *MemoryStore) SweepStale(grace time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, b := range s.buckets {
		if now.Sub(b.windowStart) > b.window+grace {
			delete(s.buckets, key)
			removed++
		}
	}
	return removed
}

// Len reports the current number of tracked keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
