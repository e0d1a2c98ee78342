package domain

import "time"

// LoginSucceededEvent represents the payload for hr.login.succeeded messages.
type LoginSucceededEvent struct {
	EventID   string
	AccountID string
	SessionID string
	IP        string
	DeviceID  *string
	At        time.Time
}

// LoginDeniedEvent represents the payload for hr.login.denied messages.
// AccountID is nil for denials issued before the account lookup.
type LoginDeniedEvent struct {
	EventID   string
	AccountID *string
	Email     string
	IP        string
	Reason    string
	At        time.Time
}

// AccountRegisteredEvent represents the payload for hr.account.registered messages.
type AccountRegisteredEvent struct {
	EventID   string
	AccountID string
	Email     string
	At        time.Time
}
