package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dfrgroup/hrms/internal/usecase"
)

// ErrorCase maps a sentinel error to an HTTP status code and response message.
type ErrorCase struct {
	Err     error
	Status  int
	Message string
}

// RespondWithMappedError resolves the provided error against known cases or falls back to a generic response.
func RespondWithMappedError(c *gin.Context, err error, cases []ErrorCase, fallbackStatus int, fallbackMessage string) {
	if err == nil {
		c.Status(http.StatusOK)
		return
	}

	for _, cs := range cases {
		if cs.Err == nil {
			continue
		}
		if errors.Is(err, cs.Err) {
			c.JSON(cs.Status, NewErrorResponse(c, cs.Message))
			return
		}
	}

	c.JSON(fallbackStatus, NewErrorResponse(c, fallbackMessage))
}

// statusForOutcome translates a login denial reason into an HTTP status code.
// Credential failures are 401, policy and blocklist denials are 403, and
// infrastructure faults are 500.
func statusForOutcome(outcome usecase.Outcome) int {
	if outcome.Success {
		return http.StatusOK
	}

	switch outcome.Reason {
	case usecase.ReasonNoSuchUser, usecase.ReasonInvalidCredentials, usecase.ReasonTwoFactorFailed:
		return http.StatusUnauthorized
	case usecase.ReasonDatabaseError:
		return http.StatusInternalServerError
	default:
		return http.StatusForbidden
	}
}
