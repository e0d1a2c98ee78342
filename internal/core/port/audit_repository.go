package port

import (
	"context"

	"github.com/dfrgroup/hrms/internal/core/domain"
)

// AuditRepository persists append-only authentication audit records.
// Writes are best-effort from the pipeline's perspective: callers log and
// swallow errors so an audit fault never changes an already-made decision.
type AuditRepository interface {
	RecordLoginAttempt(ctx context.Context, record domain.LoginRecord) error
	RecordRiskAssessment(ctx context.Context, assessment domain.RiskAssessment) error
	ListRecentAttempts(ctx context.Context, accountID string, limit int) ([]domain.LoginRecord, error)
}
