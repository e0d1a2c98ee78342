package domain

import "time"

// LoginStatus marks an authentication attempt as succeeded or failed.
type LoginStatus string

const (
	LoginStatusSuccess LoginStatus = "Success"
	LoginStatusFailed  LoginStatus = "Failed"
)

// LoginRecord is an append-only audit entry for a single authentication attempt.
// AccountID is nil when the attempt failed before the account lookup.
type LoginRecord struct {
	ID        string
	AccountID *string
	IP        string
	Device    *string
	Status    LoginStatus
	Reason    string
	Geo       map[string]any
	CreatedAt time.Time
}

// RiskAction is the recommended handling for a computed risk score.
type RiskAction string

const (
	RiskActionAllow     RiskAction = "Allow"
	RiskActionChallenge RiskAction = "Challenge"
	RiskActionBlock     RiskAction = "Block"
)

// RiskAssessment is an append-only record of a computed login risk score.
type RiskAssessment struct {
	ID        string
	AccountID string
	SessionID *string
	Score     float64
	Factors   []string
	Action    RiskAction
	CreatedAt time.Time
}
