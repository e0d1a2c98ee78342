package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	applogger "github.com/dfrgroup/hrms/internal/infra/logger"
)

// Logger writes one access-log line per request. Client IPs are masked; the
// raw address never reaches the log stream.
func Logger(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := applogger.FromContext(c.Request.Context(), log).With(
			zap.String("trace_id", GetTraceID(c)),
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", applogger.MaskIP(c.ClientIP())),
			zap.String("user_agent", c.Request.UserAgent()),
		)

		switch {
		case len(c.Errors) > 0:
			entry.Error("request failed", zap.String("errors", c.Errors.String()))
		case status >= 500:
			entry.Error("request completed")
		case status >= 400:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}
	}
}
