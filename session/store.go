package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable is an exported constant or variable used by the
// authentication engine.
var ErrRedisUnavailable = errors.New("redis unavailable")

// Store defines a public type used by sessauth APIs.
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore describes the newstore operation and its observable behavior.
//
// NewStore may return an error when input validation, dependency calls, or security checks fail.
// NewStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewStore(client redis.UniversalClient, prefix string) (*Store, error) {
	if client == nil {
		return nil, errors.New("session store requires a redis client")
	}
	if prefix == "" {
		return nil, errors.New("session store requires a key prefix")
	}

	return &Store{redis: client, prefix: prefix}, nil
}

func (s *Store) key(k Key) string {
	return s.prefix + ":" + string(k)
}

// PutIfAbsent stores key -> userID with the given TTL only when the key is
// not already present. The false return distinguishes a key collision from
// success; it is not an error, the caller decides whether to retry or
// fail. Infrastructure failures wrap [ErrRedisUnavailable].
func (s *Store) PutIfAbsent(ctx context.Context, k Key, userID string, ttl time.Duration) (bool, error) {
	ok, err := s.redis.SetNX(ctx, s.key(k), userID, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return ok, nil
}

// GetRefresh returns the user id stored under k and resets the entry TTL
// in the same operation, so every successful read slides the expiry
// forward. A missing or expired key returns redis.Nil unchanged; callers
// match on it to separate absence from infrastructure failure.
func (s *Store) GetRefresh(ctx context.Context, k Key, ttl time.Duration) (string, error) {
	val, err := s.redis.GetEx(ctx, s.key(k), ttl).Result()
	if err == redis.Nil {
		return "", redis.Nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return val, nil
}

// Delete removes k from the store. Deleting a key that is already gone is
// a success; logout must be idempotent.
func (s *Store) Delete(ctx context.Context, k Key) error {
	if err := s.redis.Del(ctx, s.key(k)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// Ping verifies store connectivity and reports the round-trip latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return time.Since(start), nil
}
