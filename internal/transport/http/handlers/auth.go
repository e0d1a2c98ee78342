package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dfrgroup/hrms/internal/core/domain"
	"github.com/dfrgroup/hrms/internal/usecase"
)

// SessionCookie holds the attributes applied to the session cookie.
type SessionCookie struct {
	Name   string
	Domain string
	Secure bool
	TTL    time.Duration
}

func (sc SessionCookie) withDefaults() SessionCookie {
	if sc.Name == "" {
		sc.Name = "hr_session"
	}
	if sc.TTL <= 0 {
		sc.TTL = 8 * time.Hour
	}
	return sc
}

// AuthHandler exposes authentication endpoints.
type AuthHandler struct {
	login        *usecase.LoginService
	registration *usecase.RegistrationService
	cookie       SessionCookie
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(login *usecase.LoginService, registration *usecase.RegistrationService, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{
		login:        login,
		registration: registration,
		cookie:       cookie.withDefaults(),
	}
}

// Login authenticates the supplied credentials and, on success, sets the
// session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid login payload"))
		return
	}

	outcome := h.login.Login(c.Request.Context(), usecase.LoginInput{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Passcode: strings.TrimSpace(req.Passcode),
		IP:       c.ClientIP(),
		Device: domain.DeviceInfo{
			DeviceID: strings.TrimSpace(req.DeviceID),
			Type:     strings.TrimSpace(req.DeviceType),
			OS:       strings.TrimSpace(req.DeviceOS),
			Browser:  strings.TrimSpace(req.Browser),
		},
	})

	if outcome.Success {
		h.setSessionCookie(c, outcome.SessionID)
	}

	c.JSON(statusForOutcome(outcome), newLoginResponse(outcome))
}

// Register creates a new account from the supplied credentials.
func (h *AuthHandler) Register(c *gin.Context) {
	if h.registration == nil {
		c.JSON(http.StatusServiceUnavailable, NewErrorResponse(c, "registration service unavailable"))
		return
	}

	var req RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid registration payload"))
		return
	}

	account, err := h.registration.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailTaken) {
			c.JSON(http.StatusConflict, NewErrorResponse(c, "email already registered"))
			return
		}
		if errors.Is(err, usecase.ErrPasswordPolicyViolation) {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "password does not meet requirements"))
			return
		}
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to register account"))
		return
	}

	account.PasswordHash = ""

	c.JSON(http.StatusCreated, RegistrationResponse{Account: newAccountSummary(account)})
}

// Logout revokes the caller's session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, err := c.Cookie(h.cookie.Name)
	if err != nil || sessionID == "" {
		c.Status(http.StatusNoContent)
		return
	}

	if err := h.login.Logout(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to revoke session"))
		return
	}

	h.clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, sessionID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, sessionID, int(h.cookie.TTL.Seconds()), "/", h.cookie.Domain, h.cookie.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
}
