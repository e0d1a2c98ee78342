package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dfrgroup/hrms/internal/core/domain"
	"github.com/dfrgroup/hrms/internal/usecase"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Passcode   string `json:"passcode"`
	DeviceID   string `json:"device_id"`
	DeviceType string `json:"device_type"`
	DeviceOS   string `json:"device_os"`
	Browser    string `json:"browser"`
}

// LoginResponse reports the outcome of an authentication attempt. Denials
// carry the user-facing message; successes additionally carry the session id.
type LoginResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Reason    string `json:"reason,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

func newLoginResponse(outcome usecase.Outcome) LoginResponse {
	return LoginResponse{
		Success:   outcome.Success,
		Message:   outcome.Message,
		Reason:    string(outcome.Reason),
		SessionID: outcome.SessionID,
	}
}

// RegistrationRequest defines the account registration payload.
type RegistrationRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=10"`
}

// AccountSummary describes a minimal view of an account returned by the API.
type AccountSummary struct {
	ID        string               `json:"id"`
	Email     string               `json:"email"`
	Status    domain.AccountStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}

func newAccountSummary(account domain.Account) AccountSummary {
	return AccountSummary{
		ID:        account.ID,
		Email:     account.Email,
		Status:    account.Status,
		CreatedAt: account.CreatedAt,
	}
}

// RegistrationResponse contains the created account.
type RegistrationResponse struct {
	Account AccountSummary `json:"account"`
}

// DirectoryEntryView is the API shape of one employee directory row.
type DirectoryEntryView struct {
	AccountID  string               `json:"account_id"`
	Email      string               `json:"email"`
	Status     domain.AccountStatus `json:"status"`
	FirstName  *string              `json:"first_name,omitempty"`
	MiddleName *string              `json:"middle_name,omitempty"`
	LastName   *string              `json:"last_name,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

func newDirectoryEntryView(entry domain.DirectoryEntry) DirectoryEntryView {
	return DirectoryEntryView{
		AccountID:  entry.AccountID,
		Email:      entry.Email,
		Status:     entry.Status,
		FirstName:  entry.FirstName,
		MiddleName: entry.MiddleName,
		LastName:   entry.LastName,
		CreatedAt:  entry.CreatedAt,
	}
}

// DirectoryListResponse wraps the employee directory listing.
type DirectoryListResponse struct {
	Users []DirectoryEntryView `json:"users"`
}

// LoginAttemptView is the API shape of one historical login attempt.
type LoginAttemptView struct {
	IP        string             `json:"ip"`
	Device    *string            `json:"device,omitempty"`
	Status    domain.LoginStatus `json:"status"`
	Reason    string             `json:"reason"`
	CreatedAt time.Time          `json:"created_at"`
}

func newLoginAttemptView(record domain.LoginRecord) LoginAttemptView {
	return LoginAttemptView{
		IP:        record.IP,
		Device:    record.Device,
		Status:    record.Status,
		Reason:    record.Reason,
		CreatedAt: record.CreatedAt,
	}
}

// DashboardResponse is the signed-in landing payload.
type DashboardResponse struct {
	User           DirectoryEntryView `json:"user"`
	RecentAttempts []LoginAttemptView `json:"recent_attempts"`
}

// HealthResponse describes the service health payload.
type HealthResponse struct {
	Status    string            `json:"status"`
	StartedAt time.Time         `json:"started_at"`
	Checks    map[string]string `json:"checks,omitempty"`
}
