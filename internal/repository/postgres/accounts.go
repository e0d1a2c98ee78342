package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/dfrgroup/hrms/internal/core/domain"
	"github.com/dfrgroup/hrms/internal/core/port"
	"github.com/dfrgroup/hrms/internal/repository"
)

const defaultLockoutThreshold = 5

var accountColumns = []string{
	"id",
	"email",
	"password_hash",
	"is_enabled",
	"status",
	"failed_login_attempts",
	"account_lockout",
	"account_lockout_reason",
	"account_expires_at",
	"last_password_changed_at",
	"last_failed_login_at",
	"force_password_reset",
	"cannot_change_password",
	"password_never_expires",
	"password_policy_id",
	"two_factor_enabled",
	"two_factor_secret",
	"logon_allowed_hours",
	"logon_if_clocked_in_only",
	"created_at",
}

// AccountRepository implements port.AccountRepository using PostgreSQL.
type AccountRepository struct {
	exec             pgExecutor
	builder          squirrel.StatementBuilderType
	lockoutThreshold int
}

// NewAccountRepository wires a PostgreSQL-backed account repository.
func NewAccountRepository(exec pgExecutor, lockoutThreshold int) *AccountRepository {
	if lockoutThreshold <= 0 {
		lockoutThreshold = defaultLockoutThreshold
	}
	return &AccountRepository{
		exec:             exec,
		builder:          squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		lockoutThreshold: lockoutThreshold,
	}
}

// Create inserts a new account row.
func (r *AccountRepository) Create(ctx context.Context, account domain.Account) error {
	stmt, args, err := r.builder.Insert("hr.users").
		Columns(
			"id",
			"email",
			"password_hash",
			"is_enabled",
			"status",
			"last_password_changed_at",
			"created_at",
		).
		Values(
			account.ID,
			account.Email,
			account.PasswordHash,
			account.IsEnabled,
			account.Status,
			account.LastPasswordChangedAt,
			account.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert account sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}

	return nil
}

// GetByEmail retrieves an account by exact email match.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	stmt, args, err := r.builder.
		Select(accountColumns...).
		From("hr.users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select account by email sql: %w", err)
	}

	return r.scanAccount(r.exec.QueryRow(ctx, stmt, args...))
}

func (r *AccountRepository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account

	if err := row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.IsEnabled,
		&account.Status,
		&account.FailedLoginAttempts,
		&account.AccountLockout,
		&account.AccountLockoutReason,
		&account.AccountExpiresAt,
		&account.LastPasswordChangedAt,
		&account.LastFailedLoginAt,
		&account.ForcePasswordReset,
		&account.CannotChangePassword,
		&account.PasswordNeverExpires,
		&account.PasswordPolicyID,
		&account.TwoFactorEnabled,
		&account.TwoFactorSecret,
		&account.LogonAllowedHours,
		&account.LogonIfClockedInOnly,
		&account.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}

	return &account, nil
}

// IncrementFailedAttempts bumps the failed-login counter and applies the
// lockout transition in one statement. A single conditional UPDATE keeps the
// read-modify-write atomic under concurrent failures for the same account.
func (r *AccountRepository) IncrementFailedAttempts(ctx context.Context, accountID string, at time.Time) error {
	stmt := `
		UPDATE hr.users
		   SET failed_login_attempts = failed_login_attempts + 1,
		       last_failed_login_at = $2,
		       account_lockout_reason = CASE
		           WHEN NOT account_lockout AND failed_login_attempts + 1 >= $3 THEN 'FailedLogins'
		           ELSE account_lockout_reason
		       END,
		       account_lockout = account_lockout OR failed_login_attempts + 1 >= $3
		 WHERE id = $1
	`

	ct, err := r.exec.Exec(ctx, stmt, accountID, at, r.lockoutThreshold)
	if err != nil {
		return fmt.Errorf("increment failed attempts: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// GetPasswordPolicy retrieves a password policy by id.
func (r *AccountRepository) GetPasswordPolicy(ctx context.Context, policyID int64) (*domain.PasswordPolicy, error) {
	stmt, args, err := r.builder.
		Select("policy_id", "name", "max_age_days").
		From("hr.password_policies").
		Where(squirrel.Eq{"policy_id": policyID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select password policy sql: %w", err)
	}

	var policy domain.PasswordPolicy
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&policy.ID, &policy.Name, &policy.MaxAgeDays); err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan password policy: %w", err)
	}

	return &policy, nil
}

// List returns all accounts joined with their employee profiles, newest first.
func (r *AccountRepository) List(ctx context.Context) ([]domain.DirectoryEntry, error) {
	stmt, args, err := r.builder.
		Select(
			"u.id",
			"u.email",
			"u.status",
			"e.first_name",
			"e.middle_name",
			"e.last_name",
			"u.created_at",
		).
		From("hr.users u").
		LeftJoin("hr.employees e ON u.id = e.user_id").
		OrderBy("u.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list accounts sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.DirectoryEntry, 0)
	for rows.Next() {
		var entry domain.DirectoryEntry
		if err := rows.Scan(
			&entry.AccountID,
			&entry.Email,
			&entry.Status,
			&entry.FirstName,
			&entry.MiddleName,
			&entry.LastName,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan directory entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	return entries, nil
}

// GetDirectoryEntry retrieves one account with its employee profile.
func (r *AccountRepository) GetDirectoryEntry(ctx context.Context, id string) (*domain.DirectoryEntry, error) {
	trimmedID := strings.TrimSpace(id)
	if trimmedID == "" {
		return nil, fmt.Errorf("account id is required")
	}

	stmt, args, err := r.builder.
		Select(
			"u.id",
			"u.email",
			"u.status",
			"e.first_name",
			"e.middle_name",
			"e.last_name",
			"u.created_at",
		).
		From("hr.users u").
		LeftJoin("hr.employees e ON u.id = e.user_id").
		Where(squirrel.Eq{"u.id": trimmedID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select directory entry sql: %w", err)
	}

	var entry domain.DirectoryEntry
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&entry.AccountID,
		&entry.Email,
		&entry.Status,
		&entry.FirstName,
		&entry.MiddleName,
		&entry.LastName,
		&entry.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan directory entry: %w", err)
	}

	return &entry, nil
}

var _ port.AccountRepository = (*AccountRepository)(nil)
