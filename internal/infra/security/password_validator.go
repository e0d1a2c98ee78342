package security

import (
	"fmt"
	"unicode"

	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

const (
	defaultMinPasswordLength   = 10
	defaultMinCharacterClasses = 3
	defaultMinZxcvbnScore      = 3
)

// PasswordValidationError reports which check a candidate password failed.
type PasswordValidationError struct {
	Code    string
	Message string
}

func (e *PasswordValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// PasswordValidator checks candidate passwords against length, character
// class, and zxcvbn strength requirements. User-supplied context strings
// (such as the account email) are fed to zxcvbn so derived passwords
// score poorly.
type PasswordValidator struct {
	minLength  int
	minClasses int
	minScore   int
	userInputs []string
}

// DefaultPasswordValidator returns the validator enforcing the service
// password requirements.
func DefaultPasswordValidator() *PasswordValidator {
	return &PasswordValidator{
		minLength:  defaultMinPasswordLength,
		minClasses: defaultMinCharacterClasses,
		minScore:   defaultMinZxcvbnScore,
	}
}

// RegistrationPasswordValidator also penalizes passwords derived from the
// candidate's email address.
func RegistrationPasswordValidator(email string) *PasswordValidator {
	v := DefaultPasswordValidator()
	if email != "" {
		v.userInputs = append(v.userInputs, email)
	}
	return v
}

// Validate returns the first requirement the password fails, or nil.
func (v *PasswordValidator) Validate(password string) error {
	if v == nil {
		return fmt.Errorf("password validator not configured")
	}
	if len([]rune(password)) < v.minLength {
		return &PasswordValidationError{
			Code:    "min_length",
			Message: fmt.Sprintf("password must be at least %d characters long", v.minLength),
		}
	}
	if classes := countCharacterClasses(password); classes < v.minClasses {
		return &PasswordValidationError{
			Code:    "character_classes",
			Message: fmt.Sprintf("password must include at least %d character types", v.minClasses),
		}
	}
	if v.minScore > 0 {
		if zxcvbn.PasswordStrength(password, v.userInputs).Score < v.minScore {
			return &PasswordValidationError{
				Code:    "weak_password",
				Message: "password is too weak; choose a more complex value",
			}
		}
	}
	return nil
}

func countCharacterClasses(password string) int {
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsSymbol(r) || unicode.IsPunct(r):
			symbol = true
		}
	}
	classes := 0
	for _, present := range []bool{upper, lower, digit, symbol} {
		if present {
			classes++
		}
	}
	return classes
}
