package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dfrgroup/hrms/internal/core/domain"
	"github.com/dfrgroup/hrms/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for development environments.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType, accountID string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("Stub event published",
		zap.String("event_type", eventType),
		zap.String("account_id", accountID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishLoginSucceeded logs hr.login.succeeded events.
func (p *StubPublisher) PublishLoginSucceeded(_ context.Context, event domain.LoginSucceededEvent) error {
	payload := map[string]any{
		"account_id": event.AccountID,
		"session_id": event.SessionID,
		"ip_address": event.IP,
		"device_id":  event.DeviceID,
		"at":         event.At,
	}
	p.logEvent("hr.login.succeeded", event.AccountID, event.At, payload)
	return nil
}

// PublishLoginDenied logs hr.login.denied events.
func (p *StubPublisher) PublishLoginDenied(_ context.Context, event domain.LoginDeniedEvent) error {
	accountID := ""
	if event.AccountID != nil {
		accountID = *event.AccountID
	}
	payload := map[string]any{
		"account_id": event.AccountID,
		"email":      event.Email,
		"ip_address": event.IP,
		"reason":     event.Reason,
		"at":         event.At,
	}
	p.logEvent("hr.login.denied", accountID, event.At, payload)
	return nil
}

// PublishAccountRegistered logs hr.account.registered events.
func (p *StubPublisher) PublishAccountRegistered(_ context.Context, event domain.AccountRegisteredEvent) error {
	payload := map[string]any{
		"account_id": event.AccountID,
		"email":      event.Email,
		"at":         event.At,
	}
	p.logEvent("hr.account.registered", event.AccountID, event.At, payload)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
