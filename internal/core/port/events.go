package port

import (
	"context"

	"github.com/dfrgroup/hrms/internal/core/domain"
)

// EventPublisher publishes security events to the message bus.
type EventPublisher interface {
	PublishLoginSucceeded(ctx context.Context, event domain.LoginSucceededEvent) error
	PublishLoginDenied(ctx context.Context, event domain.LoginDeniedEvent) error
	PublishAccountRegistered(ctx context.Context, event domain.AccountRegisteredEvent) error
}
