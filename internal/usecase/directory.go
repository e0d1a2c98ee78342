package usecase

import (
	"context"
	"errors"

	"github.com/dfrgroup/hrms/internal/core/domain"
	"github.com/dfrgroup/hrms/internal/core/port"
	"github.com/dfrgroup/hrms/internal/repository"
)

// ErrAccountNotFound indicates the requested account does not exist.
var ErrAccountNotFound = errors.New("account not found")

const dashboardAttemptLimit = 10

// DirectoryService serves the user listing and dashboard pages.
type DirectoryService struct {
	accounts port.AccountRepository
	audit    port.AuditRepository
}

// NewDirectoryService constructs a directory service.
func NewDirectoryService(accounts port.AccountRepository, audit port.AuditRepository) *DirectoryService {
	return &DirectoryService{accounts: accounts, audit: audit}
}

// List returns every account joined with its employee profile.
func (s *DirectoryService) List(ctx context.Context) ([]domain.DirectoryEntry, error) {
	return s.accounts.List(ctx)
}

// Get returns a single directory entry by account id.
func (s *DirectoryService) Get(ctx context.Context, accountID string) (*domain.DirectoryEntry, error) {
	entry, err := s.accounts.GetDirectoryEntry(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return entry, nil
}

// Dashboard aggregates the signed-in account's profile with its recent login activity.
type Dashboard struct {
	Entry          domain.DirectoryEntry
	RecentAttempts []domain.LoginRecord
}

// DashboardFor loads the dashboard for an account.
func (s *DirectoryService) DashboardFor(ctx context.Context, accountID string) (*Dashboard, error) {
	entry, err := s.accounts.GetDirectoryEntry(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	attempts, err := s.audit.ListRecentAttempts(ctx, accountID, dashboardAttemptLimit)
	if err != nil {
		return nil, err
	}

	return &Dashboard{Entry: *entry, RecentAttempts: attempts}, nil
}
