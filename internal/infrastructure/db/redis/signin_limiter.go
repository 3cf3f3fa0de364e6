package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SignInLimiter throttles failed sign-in attempts backed by Redis.
// Key format: signin:fail:<email>
type SignInLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewSignInLimiter creates a SignInLimiter wrapping the given Redis client.
// A key expires window after its first failure, so the counter resets on its
// own once the window passes.
func NewSignInLimiter(client *redis.Client, maxAttempts int, window time.Duration) *SignInLimiter {
	return &SignInLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

// TooMany reports whether the key has already used up its failure budget.
func (l *SignInLimiter) TooMany(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(key)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("limiter check: %w", err)
	}
	return n >= l.maxAttempts, nil
}

// RecordFailure counts one failed attempt against the key. The expiry is set
// only when the key is created, keeping the window anchored to the first
// failure.
func (l *SignInLimiter) RecordFailure(ctx context.Context, key string) error {
	k := l.key(key)
	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("limiter incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return fmt.Errorf("limiter expire: %w", err)
		}
	}
	return nil
}

// Reset clears the failure count after a successful sign-in.
func (l *SignInLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.key(key)).Err(); err != nil {
		return fmt.Errorf("limiter reset: %w", err)
	}
	return nil
}

func (l *SignInLimiter) key(email string) string {
	return fmt.Sprintf("signin:fail:%s", email)
}
