package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"

	"github.com/dfrgroup/hrms/internal/core/domain"
	"github.com/dfrgroup/hrms/internal/core/port"
)

// AuditRepository stores append-only login history and risk scoring rows.
type AuditRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewAuditRepository wires a PostgreSQL-backed audit repository.
func NewAuditRepository(exec pgExecutor) *AuditRepository {
	return &AuditRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// RecordLoginAttempt appends one login history row.
func (r *AuditRepository) RecordLoginAttempt(ctx context.Context, record domain.LoginRecord) error {
	var geo []byte
	if record.Geo != nil {
		encoded, err := json.Marshal(record.Geo)
		if err != nil {
			return fmt.Errorf("marshal geolocation: %w", err)
		}
		geo = encoded
	}

	stmt, args, err := r.builder.
		Insert("hr.login_history").
		Columns("id", "user_id", "ip_address", "device", "status", "reason", "geolocation", "created_at").
		Values(record.ID, record.AccountID, record.IP, record.Device, string(record.Status), record.Reason, geo, record.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert login history query: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert login history: %w", err)
	}

	return nil
}

// RecordRiskAssessment appends one risk scoring row.
func (r *AuditRepository) RecordRiskAssessment(ctx context.Context, assessment domain.RiskAssessment) error {
	factors, err := json.Marshal(assessment.Factors)
	if err != nil {
		return fmt.Errorf("marshal risk factors: %w", err)
	}

	stmt, args, err := r.builder.
		Insert("hr.risk_scoring").
		Columns("id", "user_id", "session_id", "score", "factors", "action", "created_at").
		Values(assessment.ID, assessment.AccountID, assessment.SessionID, assessment.Score, factors, string(assessment.Action), assessment.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert risk scoring query: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert risk scoring: %w", err)
	}

	return nil
}

// ListRecentAttempts returns the newest login history rows for an account.
func (r *AuditRepository) ListRecentAttempts(ctx context.Context, accountID string, limit int) ([]domain.LoginRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	stmt, args, err := r.builder.
		Select("id", "user_id", "ip_address", "device", "status", "reason", "geolocation", "created_at").
		From("hr.login_history").
		Where(squirrel.Eq{"user_id": accountID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select login history query: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("select login history: %w", err)
	}
	defer rows.Close()

	var records []domain.LoginRecord
	for rows.Next() {
		var (
			record domain.LoginRecord
			status string
			geo    []byte
		)
		if err := rows.Scan(
			&record.ID,
			&record.AccountID,
			&record.IP,
			&record.Device,
			&status,
			&record.Reason,
			&geo,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan login history row: %w", err)
		}
		record.Status = domain.LoginStatus(status)
		if len(geo) > 0 {
			if err := json.Unmarshal(geo, &record.Geo); err != nil {
				return nil, fmt.Errorf("unmarshal geolocation: %w", err)
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate login history rows: %w", err)
	}

	return records, nil
}

var _ port.AuditRepository = (*AuditRepository)(nil)
