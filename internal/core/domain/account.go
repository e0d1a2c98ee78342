package domain

import "time"

// AccountStatus enumerates possible account states.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "Active"
	AccountStatusLocked    AccountStatus = "Locked"
	AccountStatusSuspended AccountStatus = "Suspended"
	AccountStatusDisabled  AccountStatus = "Disabled"
	AccountStatusPending   AccountStatus = "Pending"
	AccountStatusOther     AccountStatus = "Other"
)

// Account mirrors the persisted representation in the users table.
type Account struct {
	ID                    string
	Email                 string
	PasswordHash          string
	IsEnabled             bool
	Status                AccountStatus
	FailedLoginAttempts   int
	AccountLockout        bool
	AccountLockoutReason  *string
	AccountExpiresAt      *time.Time
	LastPasswordChangedAt *time.Time
	LastFailedLoginAt     *time.Time
	ForcePasswordReset    bool
	CannotChangePassword  bool
	PasswordNeverExpires  bool
	PasswordPolicyID      *int64
	TwoFactorEnabled      bool
	TwoFactorSecret       *string
	LogonAllowedHours     *string
	LogonIfClockedInOnly  bool
	CreatedAt             time.Time
}

// IsExpired reports whether the account passed its expiry timestamp at the supplied moment.
func (a Account) IsExpired(at time.Time) bool {
	return a.AccountExpiresAt != nil && at.After(*a.AccountExpiresAt)
}

// StatusBarsLogin reports whether the account status alone forbids authentication.
func (a Account) StatusBarsLogin() bool {
	switch a.Status {
	case AccountStatusLocked, AccountStatusSuspended, AccountStatusDisabled,
		AccountStatusPending, AccountStatusOther:
		return true
	}
	return false
}

// PasswordPolicy holds account-level password aging rules.
// A nil MaxAgeDays disables expiry enforcement beyond account flags.
type PasswordPolicy struct {
	ID         int64
	Name       string
	MaxAgeDays *int
}

// DirectoryEntry pairs an account with its employee profile for listings.
type DirectoryEntry struct {
	AccountID  string
	Email      string
	Status     AccountStatus
	FirstName  *string
	MiddleName *string
	LastName   *string
	CreatedAt  time.Time
}
