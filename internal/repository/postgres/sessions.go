package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/dfrgroup/hrms/internal/core/domain"
	"github.com/dfrgroup/hrms/internal/core/port"
	"github.com/dfrgroup/hrms/internal/repository"
)

// SessionRepository persists login sessions and device fingerprints.
type SessionRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewSessionRepository wires a PostgreSQL-backed session repository.
func NewSessionRepository(exec pgExecutor) *SessionRepository {
	return &SessionRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create stores a new session row.
func (r *SessionRepository) Create(ctx context.Context, session domain.Session) error {
	stmt, args, err := r.builder.
		Insert("hr.sessions").
		Columns("id", "user_id", "ip_address", "device_fingerprint_id", "status", "created_at", "last_seen_at", "expires_at").
		Values(session.ID, session.AccountID, session.IP, session.DeviceID, string(session.Status), session.CreatedAt, session.LastSeenAt, session.ExpiresAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert session query: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert session: %w", err)
	}

	return nil
}

// GetByID loads a session row by its identifier.
func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	stmt, args, err := r.builder.
		Select("id", "user_id", "ip_address", "device_fingerprint_id", "status",
			"created_at", "last_seen_at", "expires_at", "revoked_at", "revoke_reason").
		From("hr.sessions").
		Where(squirrel.Eq{"id": sessionID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select session query: %w", err)
	}

	var (
		session domain.Session
		status  string
	)
	err = r.exec.QueryRow(ctx, stmt, args...).Scan(
		&session.ID,
		&session.AccountID,
		&session.IP,
		&session.DeviceID,
		&status,
		&session.CreatedAt,
		&session.LastSeenAt,
		&session.ExpiresAt,
		&session.RevokedAt,
		&session.RevokeReason,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select session: %w", err)
	}
	session.Status = domain.SessionStatus(status)

	return &session, nil
}

// Revoke marks a session revoked with the supplied reason. Revoking an
// already revoked session is a no-op.
func (r *SessionRepository) Revoke(ctx context.Context, sessionID string, reason string) error {
	stmt := `
		UPDATE hr.sessions
		   SET status = 'Revoked',
		       revoked_at = now(),
		       revoke_reason = $2
		 WHERE id = $1
		   AND status = 'Active'
	`

	if _, err := r.exec.Exec(ctx, stmt, sessionID, reason); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	return nil
}

// UpsertDeviceFingerprint inserts a fingerprint row or refreshes last_seen_at
// on conflict, returning the row id either way. The unique constraint on
// (user_id, device_identifier) makes concurrent sightings converge on one row.
func (r *SessionRepository) UpsertDeviceFingerprint(ctx context.Context, fingerprint domain.DeviceFingerprint) (string, error) {
	stmt := `
		INSERT INTO hr.device_fingerprints
			(id, user_id, device_identifier, device_type, operating_system, browser, first_seen_at, last_seen_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (user_id, device_identifier) DO UPDATE
			SET last_seen_at = EXCLUDED.last_seen_at
		RETURNING id
	`

	var id string
	err := r.exec.QueryRow(ctx, stmt,
		fingerprint.ID,
		fingerprint.AccountID,
		fingerprint.DeviceIdentifier,
		fingerprint.DeviceType,
		fingerprint.OperatingSystem,
		fingerprint.Browser,
		fingerprint.LastSeenAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("upsert device fingerprint: %w", err)
	}

	return id, nil
}

var _ port.SessionRepository = (*SessionRepository)(nil)
