// Package ratelimit counts inbound requests per client address in fixed
// 60-second Redis windows. The limiter fails open: when the counter store
// is unreachable, traffic is allowed rather than blocked.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "rate_limit:"
	DefaultWindow = time.Minute
	DefaultLimit  = 60
)

var ErrUnavailable = errors.New("rate limit store unavailable")

type Limiter struct {
	rdb    redis.UniversalClient
	limit  int
	window time.Duration
	log    *slog.Logger
}

func New(rdb redis.UniversalClient, limit int, log *slog.Logger) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if log == nil {
		log = slog.Default()
	}
	return &Limiter{rdb: rdb, limit: limit, window: DefaultWindow, log: log}
}

// Allow reports whether the client may proceed. A rejected request does
// not increment the counter further. Concurrent requests from one client
// may overshoot the ceiling by the number of in-flight reads; that
// approximation is accepted.
func (l *Limiter) Allow(ctx context.Context, clientAddr string) bool {
	count, err := l.currentCount(ctx, clientAddr)
	if err != nil {
		l.log.Warn("rate limit check failed, allowing request", "client", clientAddr, "error", err)
		return true
	}
	if count >= int64(l.limit) {
		return false
	}
	if err := l.increment(ctx, clientAddr, count); err != nil {
		l.log.Warn("rate limit increment failed, allowing request", "client", clientAddr, "error", err)
	}
	return true
}

// Remaining reports how many requests are left in the current window.
func (l *Limiter) Remaining(ctx context.Context, clientAddr string) (int64, error) {
	count, err := l.currentCount(ctx, clientAddr)
	if err != nil {
		return 0, err
	}
	remaining := int64(l.limit) - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (l *Limiter) currentCount(ctx context.Context, clientAddr string) (int64, error) {
	count, err := l.rdb.Get(ctx, counterKey(clientAddr)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return count, nil
}

func (l *Limiter) increment(ctx context.Context, clientAddr string, prev int64) error {
	key := counterKey(clientAddr)
	if err := l.rdb.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if prev == 0 {
		// First hit in the window pins the TTL; later hits leave it alone.
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	return nil
}

func counterKey(clientAddr string) string {
	return keyPrefix + clientAddr
}
