package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dfrgroup/hrms/internal/core/port"
)

// LoginThrottle keeps per-key attempt timestamps in Redis sorted sets,
// scored by nanosecond timestamp, so a window query is a range operation.
type LoginThrottle struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewLoginThrottle builds a throttle store. ttl bounds how long idle keys
// linger; when zero, keys expire after twice the window passed to Take.
func NewLoginThrottle(rdb *redis.Client, prefix string, ttl time.Duration) *LoginThrottle {
	if prefix == "" {
		prefix = "hr:ratelimit"
	}
	return &LoginThrottle{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Take trims attempts older than the window, counts what remains, and
// records the new attempt when the caller is under the limit. The trim and
// count run in one pipeline round trip.
func (t *LoginThrottle) Take(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (port.ThrottleDecision, error) {
	if limit <= 0 || window <= 0 {
		return port.ThrottleDecision{}, fmt.Errorf("throttle: limit and window must be positive")
	}

	redisKey := t.prefix + ":" + key
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	pipe := t.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "-inf", cutoff)
	countCmd := pipe.ZCard(ctx, redisKey)
	oldestCmd := pipe.ZRangeWithScores(ctx, redisKey, 0, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return port.ThrottleDecision{}, fmt.Errorf("throttle pipeline: %w", err)
	}

	count := int(countCmd.Val())
	resetAt := now.Add(window)
	if oldest := oldestCmd.Val(); len(oldest) > 0 {
		resetAt = time.Unix(0, int64(oldest[0].Score)).Add(window)
	}

	if count >= limit {
		retry := resetAt.Sub(now)
		if retry < 0 {
			retry = 0
		}
		return port.ThrottleDecision{ResetAt: resetAt, RetryAfter: retry}, nil
	}

	if err := t.record(ctx, redisKey, now, window); err != nil {
		return port.ThrottleDecision{}, err
	}

	return port.ThrottleDecision{
		Allowed:   true,
		Remaining: limit - count - 1,
		ResetAt:   resetAt,
	}, nil
}

func (t *LoginThrottle) record(ctx context.Context, redisKey string, now time.Time, window time.Duration) error {
	ttl := t.ttl
	if ttl <= 0 {
		ttl = 2 * window
	}

	stamp := now.UnixNano()
	pipe := t.rdb.TxPipeline()
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(stamp), Member: stamp})
	pipe.Expire(ctx, redisKey, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

var _ port.LoginThrottleStore = (*LoginThrottle)(nil)
