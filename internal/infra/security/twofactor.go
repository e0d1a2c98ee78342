package security

import (
	"context"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/dfrgroup/hrms/internal/core/domain"
	"github.com/dfrgroup/hrms/internal/core/port"
)

// TOTPVerifier validates time-based one-time passcodes against the
// account's enrolled secret.
type TOTPVerifier struct {
	skew uint
}

// NewTOTPVerifier constructs a TOTP-based second-factor verifier. The skew
// is how many adjacent 30-second periods are accepted around the current one.
func NewTOTPVerifier(skew uint) *TOTPVerifier {
	return &TOTPVerifier{skew: skew}
}

// Verify checks the submitted passcode against the account secret. Accounts
// without an enrolled secret fail verification outright.
func (v *TOTPVerifier) Verify(_ context.Context, account domain.Account, passcode string) (bool, error) {
	if account.TwoFactorSecret == nil || *account.TwoFactorSecret == "" {
		return false, nil
	}
	if passcode == "" {
		return false, nil
	}

	valid, err := totp.ValidateCustom(passcode, *account.TwoFactorSecret, time.Now().UTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      v.skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return false, nil
	}
	return valid, nil
}

var _ port.TwoFactorVerifier = (*TOTPVerifier)(nil)
