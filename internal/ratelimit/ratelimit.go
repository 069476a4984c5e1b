// Package ratelimit implements fixed-window request limiting.
//
// One counter bucket exists per key. The window starts at the first request
// for a key and resets once it has fully elapsed. The same store guards both
// inbound API clients (keyed by IP) and outbound third-party providers
// (keyed by provider name).
package ratelimit

import (
	"context"
	"time"
)

// Result describes the outcome of a rate limit check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int // seconds; 0 when allowed
}

// Store is the persistence interface for rate limit buckets.
type Store interface {
	// Allow records a request against key and reports whether it fits
	// within max requests per window.
	//
	// The bucket is created (or reset, once its window has elapsed) with
	// count=1 and the request allowed before any comparison against max.
	// max=0 therefore admits exactly the first request of each window.
	// That is the defined behavior, not a bug.
	Allow(ctx context.Context, key string, max int, window time.Duration) (*Result, error)
}

func retryAfterSeconds(allowed bool, resetAt time.Time) int {
	if allowed {
		return 0
	}
	seconds := int(time.Until(resetAt).Seconds())
	if seconds < 0 {
		return 0
	}
	return seconds
}
