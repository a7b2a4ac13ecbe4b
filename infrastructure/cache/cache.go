package cache

import (
	"context"
	"fmt"
	"time"

	"youtube-gateway/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// NewCache connects to Redis and verifies the connection with a ping.
// Transient connection errors are retried by the client with a capped
// backoff before the call fails.
func NewCache(ctx context.Context, addr, username, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            addr,
		Username:        username,
		Password:        password,
		MaxRetries:      10,
		MinRetryBackoff: 100 * time.Millisecond,
		MaxRetryBackoff: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	logger.GetLogger().WithField("addr", addr).Info("Connected to Redis")
	return client, nil
}
