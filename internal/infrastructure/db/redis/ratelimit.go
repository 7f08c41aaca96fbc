package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storekit/storefront-api/internal/core/domain"
)

const (
	defaultMaxFailures = 5
	defaultWindow      = 15 * time.Minute
)

// LoginLimiter throttles repeated failed logins per email using a counter
// with a sliding expiry. Key format: login_fail:<email>
type LoginLimiter struct {
	client      *redis.Client
	maxFailures int64
	window      time.Duration
}

// NewLoginLimiter creates a limiter allowing maxFailures failed attempts per
// window. Non-positive arguments fall back to defaults.
func NewLoginLimiter(client *redis.Client, maxFailures int64, window time.Duration) *LoginLimiter {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginLimiter{client: client, maxFailures: maxFailures, window: window}
}

// Allow returns domain.ErrTooManyAttempts once the failure budget for the
// window is spent. A redis outage fails open: login availability is worth
// more than the throttle.
func (l *LoginLimiter) Allow(ctx context.Context, email string) error {
	n, err := l.client.Get(ctx, l.key(email)).Int64()
	if err != nil {
		return nil
	}
	if n >= l.maxFailures {
		return domain.ErrTooManyAttempts
	}
	return nil
}

// RecordFailure bumps the failure counter and refreshes its expiry.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) error {
	key := l.key(email)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	if err := l.client.Del(ctx, l.key(email)).Err(); err != nil {
		return fmt.Errorf("reset login failures: %w", err)
	}
	return nil
}

func (l *LoginLimiter) key(email string) string {
	return "login_fail:" + email
}
