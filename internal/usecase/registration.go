package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dfrgroup/hrms/internal/core/domain"
	"github.com/dfrgroup/hrms/internal/core/port"
	"github.com/dfrgroup/hrms/internal/infra/security"
	"github.com/dfrgroup/hrms/internal/repository"
)

var (
	// ErrEmailTaken indicates an account already exists for the email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrPasswordPolicyViolation indicates the password does not satisfy complexity requirements.
	ErrPasswordPolicyViolation = errors.New("password does not meet complexity requirements")
)

// RegistrationService handles new account onboarding.
type RegistrationService struct {
	accounts port.AccountRepository
	events   port.EventPublisher
	log      *zap.Logger
}

// NewRegistrationService constructs a registration service.
func NewRegistrationService(accounts port.AccountRepository, events port.EventPublisher, log *zap.Logger) *RegistrationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RegistrationService{accounts: accounts, events: events, log: log}
}

// Register creates an enabled Active account for the supplied credentials.
func (s *RegistrationService) Register(ctx context.Context, email, password string) (domain.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Account{}, fmt.Errorf("a valid email is required")
	}
	password = strings.TrimSpace(password)
	if password == "" {
		return domain.Account{}, fmt.Errorf("password is required")
	}

	validator := security.RegistrationPasswordValidator(email)
	if err := validator.Validate(password); err != nil {
		return domain.Account{}, fmt.Errorf("%w: %v", ErrPasswordPolicyViolation, err)
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	account := domain.Account{
		ID:                    uuid.NewString(),
		Email:                 email,
		PasswordHash:          passwordHash,
		IsEnabled:             true,
		Status:                domain.AccountStatusActive,
		LastPasswordChangedAt: &now,
		CreatedAt:             now,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Account{}, ErrEmailTaken
		}
		return domain.Account{}, err
	}

	if s.events != nil {
		event := domain.AccountRegisteredEvent{
			EventID:   uuid.NewString(),
			AccountID: account.ID,
			Email:     account.Email,
			At:        now,
		}
		if err := s.events.PublishAccountRegistered(ctx, event); err != nil {
			s.log.Warn("publish account registered event failed", zap.Error(err))
		}
	}

	return account, nil
}
