package port

import (
	"context"

	"github.com/dfrgroup/hrms/internal/core/domain"
)

// SessionRepository deals with session and device-fingerprint storage.
type SessionRepository interface {
	Create(ctx context.Context, session domain.Session) error
	GetByID(ctx context.Context, sessionID string) (*domain.Session, error)
	Revoke(ctx context.Context, sessionID string, reason string) error
	// UpsertDeviceFingerprint returns the fingerprint id for the supplied
	// (account, device identifier) pair, refreshing last-seen on an existing
	// row or inserting a new one. Concurrent sightings of the same device must
	// resolve to a single row.
	UpsertDeviceFingerprint(ctx context.Context, fingerprint domain.DeviceFingerprint) (string, error)
}
