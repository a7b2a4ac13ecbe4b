package repository

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by ICacheStore.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// ICacheStore defines the hot key/value store used for response caching and
// rate-limit counters.
type ICacheStore interface {
	// Get returns the value for key, or ErrCacheMiss when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Incr atomically increments the integer at key and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)
	// Expire sets the TTL on an existing key.
	Expire(ctx context.Context, key string, ttl time.Duration) error
	// TTL returns the remaining lifetime of key. The result is negative
	// when the key has no expiry or does not exist.
	TTL(ctx context.Context, key string) (time.Duration, error)
}
