package analytics

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps the event log in process memory. Suitable for
// development and tests; events are lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

// NewMemoryStore creates an empty in-memory event log.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: make([]Event, 0, 64)}
}

// Append implements Store.
func (s *MemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListSince implements Store. Events were appended in arrival order, so
// the slice is already oldest first.
func (s *MemoryStore) ListSince(_ context.Context, since time.Time) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]Event, 0, len(s.events))
	for _, event := range s.events {
		if !event.Timestamp.Before(since) {
			matched = append(matched, event)
		}
	}
	return matched, nil
}

// Purge implements Store.
func (s *MemoryStore) Purge(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = s.events[:0]
	return nil
}

// PurgeOlderThan implements Store.
func (s *MemoryStore) PurgeOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.events[:0]
	for _, event := range s.events {
		if !event.Timestamp.Before(cutoff) {
			kept = append(kept, event)
		}
	}
	removed := len(s.events) - len(kept)
	s.events = kept
	return removed, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }

// Len reports the number of stored events.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
