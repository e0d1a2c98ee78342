package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dfrgroup/hrms/internal/core/domain"
	"github.com/dfrgroup/hrms/internal/core/port"
	"github.com/dfrgroup/hrms/internal/infra/logger"
	"github.com/dfrgroup/hrms/internal/infra/security"
	"github.com/dfrgroup/hrms/internal/repository"
)

var (
	// ErrSessionNotFound indicates the session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionRevoked indicates the session was revoked ahead of validation.
	ErrSessionRevoked = errors.New("session revoked")
	// ErrSessionExpired indicates the session expired before validation.
	ErrSessionExpired = errors.New("session expired")
)

// ReasonCode identifies why a login attempt was denied or how it concluded.
// The codes double as the audit trail's reason strings.
type ReasonCode string

const (
	ReasonBlockedDomain           ReasonCode = "BlockedDomain"
	ReasonBlockedIP               ReasonCode = "BlockedIP"
	ReasonBlockedRegion           ReasonCode = "BlockedRegion"
	ReasonNoSuchUser              ReasonCode = "NoSuchUser"
	ReasonDatabaseError           ReasonCode = "DatabaseError"
	ReasonAccountLockedOrDisabled ReasonCode = "AccountLockedOrDisabled"
	ReasonInvalidCredentials      ReasonCode = "InvalidCredentials"
	ReasonForcePasswordReset      ReasonCode = "ForcePasswordReset"
	ReasonCannotChangePassword    ReasonCode = "CannotChangePasswordButNeeded"
	ReasonPasswordExpired         ReasonCode = "PasswordExpired"
	ReasonTwoFactorFailed         ReasonCode = "2FAFailed"
	ReasonRiskScoreBlock          ReasonCode = "RiskScoreBlock"
	ReasonRiskChallengeFail       ReasonCode = "RiskChallengeFail"
	ReasonLoginSuccess            ReasonCode = "LoginSuccess"
)

// LoginInput carries the validated credential tuple handed in by the transport layer.
type LoginInput struct {
	Email    string
	Password string
	Passcode string
	IP       string
	Device   domain.DeviceInfo
}

// Outcome is the terminal result of one authentication attempt. Denials carry
// a reason code and a user-facing message; successes carry the session id.
type Outcome struct {
	Success   bool
	Reason    ReasonCode
	Message   string
	SessionID string
}

func denied(reason ReasonCode, message string) Outcome {
	return Outcome{Reason: reason, Message: message}
}

// LoginConfig tunes the risk thresholds and session lifetime of the pipeline.
type LoginConfig struct {
	RiskBlockScore     float64
	RiskChallengeScore float64
	SessionTTL         time.Duration
}

func (c LoginConfig) withDefaults() LoginConfig {
	if c.RiskBlockScore <= 0 {
		c.RiskBlockScore = 80
	}
	if c.RiskChallengeScore <= 0 {
		c.RiskChallengeScore = 50
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = 8 * time.Hour
	}
	return c
}

// LoginService runs the ordered authentication gate sequence. The first
// failing gate short-circuits; no later gate runs after a denial.
type LoginService struct {
	cfg       LoginConfig
	accounts  port.AccountRepository
	blocklist port.BlocklistRepository
	audit     port.AuditRepository
	sessions  port.SessionRepository
	geo       port.GeoResolver
	twoFactor port.TwoFactorVerifier
	events    port.EventPublisher
	log       *zap.Logger
}

// NewLoginService constructs the authentication pipeline.
func NewLoginService(
	cfg LoginConfig,
	accounts port.AccountRepository,
	blocklist port.BlocklistRepository,
	audit port.AuditRepository,
	sessions port.SessionRepository,
	geo port.GeoResolver,
	twoFactor port.TwoFactorVerifier,
	events port.EventPublisher,
	log *zap.Logger,
) *LoginService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoginService{
		cfg:       cfg.withDefaults(),
		accounts:  accounts,
		blocklist: blocklist,
		audit:     audit,
		sessions:  sessions,
		geo:       geo,
		twoFactor: twoFactor,
		events:    events,
		log:       log,
	}
}

// Login evaluates one authentication attempt. Denials are part of the Outcome
// and never surface as errors; only the transport decides how to render them.
func (s *LoginService) Login(ctx context.Context, input LoginInput) Outcome {
	now := time.Now().UTC()
	country := s.resolveCountry(ctx, input.IP)
	geo := map[string]any{"country": country}

	// Deny-list gates run before the account lookup, so their audit records
	// carry no account id. Read failures are treated as not blocked.
	if blocked, err := s.blocklist.IsDomainBlocked(ctx, domainOfEmail(input.Email)); err != nil {
		s.log.Warn("domain blocklist check failed", zap.Error(err))
	} else if blocked {
		return s.deny(ctx, input, nil, geo, ReasonBlockedDomain, "Login blocked: your email domain is blocked")
	}

	if blocked, err := s.blocklist.IsIPBlocked(ctx, input.IP); err != nil {
		s.log.Warn("ip blocklist check failed", zap.Error(err), zap.String("ip", logger.MaskIP(input.IP)))
	} else if blocked {
		return s.deny(ctx, input, nil, geo, ReasonBlockedIP, "Login blocked: your IP is in a blocked range")
	}

	if blocked, err := s.blocklist.IsRegionBlocked(ctx, input.IP, country); err != nil {
		s.log.Warn("region blocklist check failed", zap.Error(err))
	} else if blocked {
		return s.deny(ctx, input, nil, geo, ReasonBlockedRegion, "Login blocked: your region is restricted")
	}

	account, err := s.accounts.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.deny(ctx, input, nil, geo, ReasonNoSuchUser, "User not found")
		}
		// A storage fault here exhausts the attempt. No audit record is
		// written; the store that failed to answer the lookup cannot be
		// trusted to take the insert either.
		s.log.Error("account lookup failed", zap.Error(err), zap.String("email", logger.MaskEmail(input.Email)))
		return denied(ReasonDatabaseError, "Database error occurred")
	}

	if !account.IsEnabled || account.StatusBarsLogin() || account.AccountLockout || account.IsExpired(now) {
		return s.deny(ctx, input, account, geo, ReasonAccountLockedOrDisabled, "Account is not allowed to log in")
	}

	ok, err := security.VerifyPassword(input.Password, account.PasswordHash)
	if err != nil {
		s.log.Error("password verification failed", zap.Error(err), zap.String("account_id", account.ID))
		return s.deny(ctx, input, account, geo, ReasonDatabaseError, "Database error occurred")
	}
	if !ok {
		// The counter increment lands before the audit insert. Losing the
		// audit row on a crash is acceptable; losing the increment is not.
		if err := s.accounts.IncrementFailedAttempts(ctx, account.ID, now); err != nil {
			s.log.Error("increment failed attempts", zap.Error(err), zap.String("account_id", account.ID))
		}
		return s.deny(ctx, input, account, geo, ReasonInvalidCredentials, "Invalid credentials")
	}

	if outcome, passed := s.checkPasswordPolicy(ctx, input, account, geo, now); !passed {
		return outcome
	}

	if account.TwoFactorEnabled {
		ok, err := s.twoFactor.Verify(ctx, *account, input.Passcode)
		if err != nil {
			s.log.Error("two-factor verification errored", zap.Error(err), zap.String("account_id", account.ID))
		}
		if err != nil || !ok {
			return s.deny(ctx, input, account, geo, ReasonTwoFactorFailed, "Two-Factor Authentication failed")
		}
	}

	if outcome, passed := s.assessRisk(ctx, input, account, geo, now); !passed {
		return outcome
	}

	return s.establishSession(ctx, input, account, geo, now)
}

// checkPasswordPolicy enforces the account-level reset flags and the attached
// policy's maximum password age. The force-reset flags take priority over
// everything else in the gate; never-expires only waives age-based expiry.
func (s *LoginService) checkPasswordPolicy(ctx context.Context, input LoginInput, account *domain.Account, geo map[string]any, now time.Time) (Outcome, bool) {
	if account.ForcePasswordReset {
		reason := ReasonForcePasswordReset
		if account.CannotChangePassword {
			reason = ReasonCannotChangePassword
		}
		return s.deny(ctx, input, account, geo, reason, string(reason)), false
	}

	if account.PasswordNeverExpires {
		return Outcome{}, true
	}

	if account.PasswordPolicyID == nil || account.LastPasswordChangedAt == nil {
		return Outcome{}, true
	}

	policy, err := s.accounts.GetPasswordPolicy(ctx, *account.PasswordPolicyID)
	if err != nil {
		// Missing or unreadable policy does not bar the login.
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("password policy lookup failed", zap.Error(err), zap.String("account_id", account.ID))
		}
		return Outcome{}, true
	}
	if policy.MaxAgeDays == nil {
		return Outcome{}, true
	}

	expiresAt := account.LastPasswordChangedAt.Add(time.Duration(*policy.MaxAgeDays) * 24 * time.Hour)
	if now.After(expiresAt) {
		return s.deny(ctx, input, account, geo, ReasonPasswordExpired, string(ReasonPasswordExpired)), false
	}

	return Outcome{}, true
}

// assessRisk scores the attempt and persists the assessment regardless of the
// resulting action.
func (s *LoginService) assessRisk(ctx context.Context, input LoginInput, account *domain.Account, geo map[string]any, now time.Time) (Outcome, bool) {
	var (
		score   float64
		factors []string
	)

	if account.FailedLoginAttempts > 3 {
		score += 20
		factors = append(factors, "recent_failed_logins")
	}
	if input.Device.HasIdentifier() {
		score += 5
		factors = append(factors, "device_identifier_present")
	}

	action := domain.RiskActionAllow
	switch {
	case score > s.cfg.RiskBlockScore:
		action = domain.RiskActionBlock
	case score > s.cfg.RiskChallengeScore:
		action = domain.RiskActionChallenge
	}

	assessment := domain.RiskAssessment{
		ID:        uuid.NewString(),
		AccountID: account.ID,
		Score:     score,
		Factors:   factors,
		Action:    action,
		CreatedAt: now,
	}
	if err := s.audit.RecordRiskAssessment(ctx, assessment); err != nil {
		s.log.Warn("record risk assessment failed", zap.Error(err), zap.String("account_id", account.ID))
	}

	switch action {
	case domain.RiskActionBlock:
		return s.deny(ctx, input, account, geo, ReasonRiskScoreBlock, "Login blocked due to high risk"), false
	case domain.RiskActionChallenge:
		return s.deny(ctx, input, account, geo, ReasonRiskChallengeFail, "Additional verification needed"), false
	default:
		return Outcome{}, true
	}
}

// establishSession runs only after every gate passed: fingerprint the device,
// create the session row, audit the success, and announce it.
func (s *LoginService) establishSession(ctx context.Context, input LoginInput, account *domain.Account, geo map[string]any, now time.Time) Outcome {
	var deviceID *string
	if input.Device.HasIdentifier() {
		id, err := s.sessions.UpsertDeviceFingerprint(ctx, domain.DeviceFingerprint{
			ID:               uuid.NewString(),
			AccountID:        account.ID,
			DeviceIdentifier: input.Device.DeviceID,
			DeviceType:       input.Device.Type,
			OperatingSystem:  input.Device.OS,
			Browser:          optional(input.Device.Browser),
			FirstSeenAt:      now,
			LastSeenAt:       now,
		})
		if err != nil {
			s.log.Warn("device fingerprint upsert failed", zap.Error(err), zap.String("account_id", account.ID))
		} else {
			deviceID = &id
		}
	}

	session := domain.Session{
		ID:         uuid.NewString(),
		AccountID:  account.ID,
		IP:         input.IP,
		DeviceID:   deviceID,
		Status:     domain.SessionStatusActive,
		CreatedAt:  now,
		LastSeenAt: now,
		ExpiresAt:  now.Add(s.cfg.SessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		s.log.Error("create session failed", zap.Error(err), zap.String("account_id", account.ID))
		return denied(ReasonDatabaseError, "Database error occurred")
	}

	s.recordAttempt(ctx, input, &account.ID, geo, domain.LoginStatusSuccess, ReasonLoginSuccess)

	if s.events != nil {
		event := domain.LoginSucceededEvent{
			EventID:   uuid.NewString(),
			AccountID: account.ID,
			SessionID: session.ID,
			IP:        input.IP,
			DeviceID:  deviceID,
			At:        now,
		}
		if err := s.events.PublishLoginSucceeded(ctx, event); err != nil {
			s.log.Warn("publish login succeeded event failed", zap.Error(err))
		}
	}

	return Outcome{
		Success:   true,
		Reason:    ReasonLoginSuccess,
		Message:   "Login successful",
		SessionID: session.ID,
	}
}

// ValidateSession resolves a session id to its active session row.
func (s *LoginService) ValidateSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if session.Status == domain.SessionStatusRevoked || session.RevokedAt != nil {
		return nil, ErrSessionRevoked
	}
	if !session.IsActive(time.Now().UTC()) {
		return nil, ErrSessionExpired
	}

	return session, nil
}

// Logout revokes the session. Unknown sessions are treated as already gone.
func (s *LoginService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, sessionID, "Logout"); err != nil {
		return err
	}
	return nil
}

// deny audits the failed attempt, announces it, and returns the denial.
// Audit and event faults are logged and swallowed; the decision stands.
func (s *LoginService) deny(ctx context.Context, input LoginInput, account *domain.Account, geo map[string]any, reason ReasonCode, message string) Outcome {
	var accountID *string
	if account != nil {
		accountID = &account.ID
	}

	s.recordAttempt(ctx, input, accountID, geo, domain.LoginStatusFailed, reason)

	if s.events != nil {
		event := domain.LoginDeniedEvent{
			EventID:   uuid.NewString(),
			AccountID: accountID,
			Email:     input.Email,
			IP:        input.IP,
			Reason:    string(reason),
			At:        time.Now().UTC(),
		}
		if err := s.events.PublishLoginDenied(ctx, event); err != nil {
			s.log.Warn("publish login denied event failed", zap.Error(err))
		}
	}

	return denied(reason, message)
}

func (s *LoginService) recordAttempt(ctx context.Context, input LoginInput, accountID *string, geo map[string]any, status domain.LoginStatus, reason ReasonCode) {
	var device *string
	if label := input.Device.Label(); label != "" {
		device = &label
	}

	record := domain.LoginRecord{
		ID:        uuid.NewString(),
		AccountID: accountID,
		IP:        input.IP,
		Device:    device,
		Status:    status,
		Reason:    string(reason),
		Geo:       geo,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.audit.RecordLoginAttempt(ctx, record); err != nil {
		s.log.Warn("record login attempt failed",
			zap.Error(err),
			zap.String("reason", string(reason)),
			zap.String("email", logger.MaskEmail(input.Email)),
		)
	}
}

func (s *LoginService) resolveCountry(ctx context.Context, ip string) string {
	if s.geo == nil {
		return ""
	}
	country, err := s.geo.ResolveCountryCode(ctx, ip)
	if err != nil {
		s.log.Warn("geolocation lookup failed", zap.Error(err), zap.String("ip", logger.MaskIP(ip)))
		return ""
	}
	return country
}

// domainOfEmail extracts the lower-cased domain part after the last @.
func domainOfEmail(email string) string {
	idx := strings.LastIndex(email, "@")
	if idx < 0 || idx == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[idx+1:])
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
