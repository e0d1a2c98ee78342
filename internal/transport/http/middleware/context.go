package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// TraceIDHeader carries the trace identifier between services.
	TraceIDHeader = "X-Trace-ID"

	// TraceIDKey keys the trace identifier in the gin context.
	TraceIDKey = "trace_id"
	// AccountIDKey keys the authenticated account identifier.
	AccountIDKey = "account_id"
	// SessionIDKey keys the validated session identifier.
	SessionIDKey = "session_id"
)

// EnrichContext assigns each request a trace identifier, honoring one
// supplied by the caller, and echoes it on the response.
func EnrichContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		c.Set(TraceIDKey, traceID)
		c.Header(TraceIDHeader, traceID)
		c.Next()
	}
}

// GetTraceID reads the trace identifier assigned by EnrichContext.
func GetTraceID(c *gin.Context) string {
	if v, ok := c.Get(TraceIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
