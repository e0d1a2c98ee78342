package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dfrgroup/hrms/internal/core/domain"
	applogger "github.com/dfrgroup/hrms/internal/infra/logger"
)

// SessionValidator checks that a session identifier refers to a live session.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID string) (*domain.Session, error)
}

// SessionAuth authenticates requests by the session cookie. Requests without a
// valid, active session are rejected with 401.
func SessionAuth(validator SessionValidator, cookieName string, logger *zap.Logger) gin.HandlerFunc {
	if cookieName == "" {
		cookieName = "hr_session"
	}

	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cookieName)
		if err != nil || sessionID == "" {
			unauthorized(c)
			return
		}

		session, err := validator.ValidateSession(c.Request.Context(), sessionID)
		if err != nil {
			applogger.FromContext(c.Request.Context(), logger).Debug("session validation failed",
				zap.String("trace_id", GetTraceID(c)),
				zap.Error(err))
			unauthorized(c)
			return
		}

		c.Set(AccountIDKey, session.AccountID)
		c.Set(SessionIDKey, session.ID)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "Authentication required",
	})
}
