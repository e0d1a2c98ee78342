package port

import (
	"context"
	"time"
)

// ThrottleDecision reports the outcome of a rate limit check.
type ThrottleDecision struct {
	Allowed    bool
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// LoginThrottleStore tracks request attempts per key inside a sliding window.
// Take trims expired attempts, counts the remainder, and records the new
// attempt when the caller is still under the limit.
type LoginThrottleStore interface {
	Take(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (ThrottleDecision, error)
}
