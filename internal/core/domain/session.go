package domain

import "time"

// DeviceInfo describes the client device supplied with a login attempt.
// All fields are optional; an empty DeviceID disables fingerprinting.
type DeviceInfo struct {
	DeviceID string
	Type     string
	OS       string
	Browser  string
}

// HasIdentifier reports whether the client supplied a device identifier.
func (d DeviceInfo) HasIdentifier() bool {
	return d.DeviceID != ""
}

// Label returns the most descriptive device name available for audit records.
func (d DeviceInfo) Label() string {
	if d.Browser != "" {
		return d.Browser
	}
	return d.Type
}

// DeviceFingerprint is a stored association between an account and a client device,
// keyed by (account id, device identifier).
type DeviceFingerprint struct {
	ID               string
	AccountID        string
	DeviceIdentifier string
	DeviceType       string
	OperatingSystem  string
	Browser          *string
	FirstSeenAt      time.Time
	LastSeenAt       time.Time
}

// SessionStatus enumerates session lifecycle states.
type SessionStatus string

const (
	SessionStatusActive  SessionStatus = "Active"
	SessionStatusRevoked SessionStatus = "Revoked"
)

// Session represents a persisted login session created after a successful
// authentication. Cookie mechanics live in the transport layer; the session
// row only carries identity, origin, and lifecycle state.
type Session struct {
	ID           string
	AccountID    string
	IP           string
	DeviceID     *string
	Status       SessionStatus
	CreatedAt    time.Time
	LastSeenAt   time.Time
	ExpiresAt    time.Time
	RevokedAt    *time.Time
	RevokeReason *string
}

// IsActive reports whether the session is still valid at the supplied moment.
func (s Session) IsActive(at time.Time) bool {
	if s.Status != SessionStatusActive || s.RevokedAt != nil {
		return false
	}
	return s.ExpiresAt.After(at)
}
