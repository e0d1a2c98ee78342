package security

import (
	"errors"
	"testing"
)

func TestPasswordValidatorAcceptsStrongPassword(t *testing.T) {
	if err := DefaultPasswordValidator().Validate("C0mplex!Passphrase#2026"); err != nil {
		t.Fatalf("strong password rejected: %v", err)
	}
}

func TestPasswordValidatorViolationCodes(t *testing.T) {
	cases := []struct {
		name     string
		password string
		code     string
	}{
		{"too short", "Short1!", "min_length"},
		{"single class", "lowercasepassword", "character_classes"},
		{"guessable", "Password123", "weak_password"},
	}

	validator := DefaultPasswordValidator()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validator.Validate(tc.password)
			if err == nil {
				t.Fatal("expected a violation")
			}
			var vErr *PasswordValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected PasswordValidationError, got %T", err)
			}
			if vErr.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, vErr.Code)
			}
		})
	}
}

func TestRegistrationValidatorPenalizesEmailDerivedPasswords(t *testing.T) {
	validator := RegistrationPasswordValidator("pat.jones@example.com")

	if err := validator.Validate("Pat.Jones@Example.Com"); err == nil {
		t.Fatal("password derived from the account email must be rejected")
	}
}

func TestNilValidatorRejectsEverything(t *testing.T) {
	var validator *PasswordValidator
	if err := validator.Validate("anything"); err == nil {
		t.Fatal("nil validator must not accept passwords")
	}
}
