package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	dErrors "civiclink/pkg/domain-errors"
)

const redisKeyPrefix = "civiclink:rl:"

// RedisStore implements Store on a shared Redis instance so multiple
// service instances agree on one window per key. Semantics match
// MemoryStore: the window starts at the first request (INCR creating the
// key) and the first request of a window is always admitted.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Allow implements Store.
func (s *RedisStore) Allow(ctx context.Context, key string, max int, window time.Duration) (*Result, error) {
	k := redisKeyPrefix + key

	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "rate limit increment failed")
	}

	if count == 1 {
		// First request of the window owns the expiry.
		if err := s.client.Expire(ctx, k, window).Err(); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "rate limit expire failed")
		}
	}

	ttl, err := s.client.TTL(ctx, k).Result()
	if err != nil || ttl < 0 {
		// A key that lost its expiry would block the client forever.
		ttl = window
		_ = s.client.Expire(ctx, k, window).Err()
	}

	allowed := count == 1 || int(count) <= max
	resetAt := time.Now().Add(ttl)
	return &Result{
		Allowed:    allowed,
		Limit:      max,
		Remaining:  maxInt(max-int(count), 0),
		ResetAt:    resetAt,
		RetryAfter: retryAfterSeconds(allowed, resetAt),
	}, nil
}

// Ping reports backend reachability for readiness checks.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
