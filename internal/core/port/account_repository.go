package port

import (
	"context"
	"time"

	"github.com/dfrgroup/hrms/internal/core/domain"
)

// AccountRepository exposes persistence behavior for user accounts.
type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	// IncrementFailedAttempts bumps the failed-login counter in a single atomic
	// statement, stamping the failure time and setting the lockout flag when the
	// counter reaches the configured threshold.
	IncrementFailedAttempts(ctx context.Context, accountID string, at time.Time) error
	GetPasswordPolicy(ctx context.Context, policyID int64) (*domain.PasswordPolicy, error)
	List(ctx context.Context) ([]domain.DirectoryEntry, error)
	GetDirectoryEntry(ctx context.Context, id string) (*domain.DirectoryEntry, error)
}
