package bills

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	cacheTTL     = 5 * time.Minute
	cacheMaxSize = 100
)

type cacheEntry struct {
	result    *SearchResult
	expiresAt time.Time
}

// searchCache is a TTL cache for provider search results. Hits are served
// without touching the provider's rate limiter. When the cache grows past
// its cap, expired entries are evicted opportunistically on write.
type searchCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
	maxSize int

	now func() time.Time
}

func newSearchCache() *searchCache {
	return &searchCache{
		entries: make(map[string]*cacheEntry),
		ttl:     cacheTTL,
		maxSize: cacheMaxSize,
		now:     time.Now,
	}
}

// cacheKey normalizes the search parameters into one lookup key.
func cacheKey(query, jurisdiction string, page, pageSize int) string {
	return fmt.Sprintf("%s|%s|%d|%d",
		strings.ToLower(strings.TrimSpace(query)),
		strings.ToLower(strings.TrimSpace(jurisdiction)),
		page, pageSize,
	)
}

func (c *searchCache) get(key string) (*SearchResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || c.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.result, true
}

func (c *searchCache) set(key string, result *SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &cacheEntry{
		result:    result,
		expiresAt: c.now().Add(c.ttl),
	}

	if len(c.entries) > c.maxSize {
		c.evictExpiredLocked()
	}
}

// evictExpiredLocked drops entries past their TTL. Must hold the lock.
func (c *searchCache) evictExpiredLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *searchCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
