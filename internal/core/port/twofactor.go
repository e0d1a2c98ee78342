package port

import (
	"context"

	"github.com/dfrgroup/hrms/internal/core/domain"
)

// TwoFactorVerifier checks a second authentication factor for an account.
// The passcode comes from the login request and may be empty.
type TwoFactorVerifier interface {
	Verify(ctx context.Context, account domain.Account, passcode string) (bool, error)
}
