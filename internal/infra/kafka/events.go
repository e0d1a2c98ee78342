package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dfrgroup/hrms/internal/core/domain"
	"github.com/dfrgroup/hrms/internal/core/port"
	"github.com/dfrgroup/hrms/internal/infra/config"
)

const schemaVersion = "1.0"

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type envelopeMetadata map[string]string

type eventEnvelope struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	AccountID string           `json:"account_id,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Version   string           `json:"version"`
	Payload   any              `json:"payload"`
	Metadata  envelopeMetadata `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType, accountID string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	id := eventID
	if id == "" {
		id = uuid.NewString()
	}

	metadata := envelopeMetadata{
		"service":     p.appCfg.Name,
		"environment": p.appCfg.Env,
	}

	envelope := eventEnvelope{
		EventID:   id,
		EventType: eventType,
		AccountID: accountID,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata:  metadata,
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishLoginSucceeded publishes hr.login.succeeded events.
func (p *EventPublisher) PublishLoginSucceeded(ctx context.Context, event domain.LoginSucceededEvent) error {
	payload := struct {
		AccountID string    `json:"account_id"`
		SessionID string    `json:"session_id"`
		IPAddress string    `json:"ip_address"`
		DeviceID  *string   `json:"device_id,omitempty"`
		At        time.Time `json:"at"`
	}{
		AccountID: event.AccountID,
		SessionID: event.SessionID,
		IPAddress: event.IP,
		DeviceID:  event.DeviceID,
		At:        event.At.UTC(),
	}

	return p.publish(ctx, event.EventID, "login.succeeded", event.AccountID, event.At, payload)
}

// PublishLoginDenied publishes hr.login.denied events.
func (p *EventPublisher) PublishLoginDenied(ctx context.Context, event domain.LoginDeniedEvent) error {
	payload := struct {
		AccountID *string   `json:"account_id,omitempty"`
		Email     string    `json:"email"`
		IPAddress string    `json:"ip_address"`
		Reason    string    `json:"reason"`
		At        time.Time `json:"at"`
	}{
		AccountID: event.AccountID,
		Email:     event.Email,
		IPAddress: event.IP,
		Reason:    event.Reason,
		At:        event.At.UTC(),
	}

	accountID := ""
	if event.AccountID != nil {
		accountID = *event.AccountID
	}

	return p.publish(ctx, event.EventID, "login.denied", accountID, event.At, payload)
}

// PublishAccountRegistered publishes hr.account.registered events.
func (p *EventPublisher) PublishAccountRegistered(ctx context.Context, event domain.AccountRegisteredEvent) error {
	payload := struct {
		AccountID string    `json:"account_id"`
		Email     string    `json:"email"`
		At        time.Time `json:"at"`
	}{
		AccountID: event.AccountID,
		Email:     event.Email,
		At:        event.At.UTC(),
	}

	return p.publish(ctx, event.EventID, "account.registered", event.AccountID, event.At, payload)
}

var _ port.EventPublisher = (*EventPublisher)(nil)
