package usecase

import (
	"context"
	"fmt"
	"time"

	"youtube-gateway/domain/errs"
	"youtube-gateway/domain/repository"
	"youtube-gateway/infrastructure/metrics"
)

const rateLimitKeyPrefix = "rateLimit:"

// IRateLimiter decides whether a client request may proceed
type IRateLimiter interface {
	// Admit counts the request against the client's window and returns
	// ErrRateLimited when the window budget is exhausted.
	Admit(ctx context.Context, clientAddr string) error
}

// RateLimiter implements a fixed-window counter per client address. The
// counter lives in the shared cache store so all instances see one budget.
type RateLimiter struct {
	store  repository.ICacheStore
	window time.Duration
	max    int64
}

func NewRateLimiter(store repository.ICacheStore, window time.Duration, max int64) IRateLimiter {
	return &RateLimiter{store: store, window: window, max: max}
}

func (l *RateLimiter) Admit(ctx context.Context, clientAddr string) error {
	key := rateLimitKeyPrefix + clientAddr

	count, err := l.store.Incr(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	// First hit in the window starts the clock.
	if count == 1 {
		if err := l.store.Expire(ctx, key, l.window); err != nil {
			return fmt.Errorf("failed to set rate limit window: %w", err)
		}
	} else {
		ttl, err := l.store.TTL(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to read rate limit window: %w", err)
		}
		// A counter without expiry means an earlier EXPIRE failed; without
		// this repair the window would never reset.
		if ttl < 0 {
			if err := l.store.Expire(ctx, key, l.window); err != nil {
				return fmt.Errorf("failed to set rate limit window: %w", err)
			}
		}
	}

	if count > l.max {
		metrics.RateLimitRejected.Inc()
		return errs.ErrRateLimited
	}
	return nil
}
