package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dfrgroup/hrms/internal/core/port"
)

// ThrottleStore decides whether a caller may proceed and records the attempt.
type ThrottleStore interface {
	Take(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (port.ThrottleDecision, error)
}

// Throttle enforces per-client-IP request limits on the authentication
// endpoints. A store failure lets the request through; the throttle protects
// against abuse, it is not an availability dependency.
type Throttle struct {
	store ThrottleStore
	log   *zap.Logger
	now   func() time.Time
}

// NewThrottle builds a throttle backed by the given store.
func NewThrottle(store ThrottleStore, log *zap.Logger) *Throttle {
	if log == nil {
		log = zap.NewNop()
	}
	return &Throttle{store: store, log: log, now: time.Now}
}

// WithClock overrides the time source. For tests.
func (t *Throttle) WithClock(now func() time.Time) *Throttle {
	if now != nil {
		t.now = now
	}
	return t
}

// ByClientIP limits each client IP to limit requests per sliding window.
// The name scopes the counters so login and register do not share a budget.
func (t *Throttle) ByClientIP(name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if t == nil || t.store == nil || limit <= 0 || window <= 0 {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		decision, err := t.store.Take(c.Request.Context(), name+":"+ip, limit, window, t.now())
		if err != nil {
			t.log.Warn("rate limit check failed", zap.String("scope", name), zap.Error(err))
			c.Next()
			return
		}

		header := c.Writer.Header()
		header.Set("X-RateLimit-Limit", strconv.Itoa(limit))
		header.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		header.Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

		if decision.Allowed {
			c.Next()
			return
		}

		retrySeconds := int(math.Ceil(decision.RetryAfter.Seconds()))
		if retrySeconds < 0 {
			retrySeconds = 0
		}
		header.Set("Retry-After", strconv.Itoa(retrySeconds))

		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"success":     false,
			"message":     "Too many requests",
			"retry_after": retrySeconds,
			"trace_id":    GetTraceID(c),
		})
	}
}
