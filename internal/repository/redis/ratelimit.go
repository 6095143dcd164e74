package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Sliding window of hits kept as a sorted set scored by time. Returns 0
// and records the hit when the window has room, otherwise the milliseconds
// until the oldest hit leaves it. Denied hits are not recorded.
//
// KEYS[1] window key; ARGV: now_ms, window_ms, limit, unique member
const luaSlidingWindow = `
local now, window, limit = tonumber(ARGV[1]), tonumber(ARGV[2]), tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', now - window)

if redis.call('ZCARD', KEYS[1]) >= limit then
  local oldest = tonumber(redis.call('ZRANGE', KEYS[1], 0, 0, 'WITHSCORES')[2])
  return math.max(oldest + window - now, 1)
end

redis.call('ZADD', KEYS[1], now, ARGV[4])
redis.call('PEXPIRE', KEYS[1], window)
return 0
`

// RateLimitedError is returned when a caller exceeded its window.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

type SlidingWindowLimiter struct {
	rdb    *redis.Client
	scope  string
	limit  int
	window time.Duration
	script *redis.Script
}

func NewSlidingWindowLimiter(
	rdb *redis.Client,
	scope string,
	limit int,
	window time.Duration,
) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		rdb:    rdb,
		scope:  scope,
		limit:  limit,
		window: window,
		script: redis.NewScript(luaSlidingWindow),
	}
}

// Allow records a hit for id and returns *RateLimitedError once the window
// is full. A limit of zero or less disables limiting.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, id string) error {
	const op = "redis.SlidingWindowLimiter.Allow"

	if l.limit <= 0 {
		return nil
	}

	waitMs, err := l.script.Run(
		ctx,
		l.rdb,
		[]string{KeyRateLimit(l.scope, id)},
		time.Now().UnixMilli(), l.window.Milliseconds(), l.limit, randomHex(12),
	).Int64()
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return denial(waitMs)
}

// denial converts the script's wait into the limiter's result.
func denial(waitMs int64) error {
	if waitMs <= 0 {
		return nil
	}
	return &RateLimitedError{RetryAfter: time.Duration(waitMs) * time.Millisecond}
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
