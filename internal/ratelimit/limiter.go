package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrRateLimited        = errors.New("rate limited")
	ErrLimiterUnavailable = errors.New("rate limiter unavailable")
)

// Action namespaces the counters.
type Action string

const (
	ActionRequestOTP Action = "otp_request"
	ActionVerifyOTP  Action = "otp_verify"
)

// Limiter counts attempts per action and subject in a fixed window.
// Allow returns ErrRateLimited once the window's budget is spent, or an error
// wrapping ErrLimiterUnavailable if the backend failed.
type Limiter interface {
	Allow(ctx context.Context, action Action, subject string) error
}

// RedisLimiter is a fixed window counter. INCR and TTL run in one MULTI; a
// counter found without an expiry gets the window applied, so a failed
// EXPIRE is repaired by the next hit instead of locking the subject out.
type RedisLimiter struct {
	redis       *redis.Client
	maxAttempts int
	window      time.Duration
}

func NewRedisLimiter(client *redis.Client, maxAttempts int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		redis:       client,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, action Action, subject string) error {
	key := limiterKey(action, subject)

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLimiterUnavailable, err)
	}

	// -1: the key exists without an expiry.
	if ttl.Val() < 0 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrLimiterUnavailable, err)
		}
	}

	if incr.Val() > int64(l.maxAttempts) {
		return ErrRateLimited
	}
	return nil
}

func limiterKey(action Action, subject string) string {
	return "vibenet:rl:" + string(action) + ":" + subject
}

// NoopLimiter allows everything. Used when Redis is not configured.
type NoopLimiter struct{}

func (NoopLimiter) Allow(context.Context, Action, string) error { return nil }
