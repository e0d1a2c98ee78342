package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dfrgroup/hrms/internal/core/domain"
	"github.com/dfrgroup/hrms/internal/infra/security"
	"github.com/dfrgroup/hrms/internal/repository"
)

const testLockoutThreshold = 5

type testAccountRepo struct {
	accounts map[string]*domain.Account
	policies map[int64]*domain.PasswordPolicy

	lookupErr    error
	callSequence *[]string
}

func (r *testAccountRepo) Create(context.Context, domain.Account) error {
	return errors.New("unexpected call")
}

func (r *testAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	if account, ok := r.accounts[email]; ok {
		copy := *account
		return &copy, nil
	}
	return nil, repository.ErrNotFound
}

func (r *testAccountRepo) IncrementFailedAttempts(_ context.Context, accountID string, at time.Time) error {
	if r.callSequence != nil {
		*r.callSequence = append(*r.callSequence, "increment")
	}
	for _, account := range r.accounts {
		if account.ID != accountID {
			continue
		}
		account.FailedLoginAttempts++
		account.LastFailedLoginAt = &at
		if !account.AccountLockout && account.FailedLoginAttempts >= testLockoutThreshold {
			account.AccountLockout = true
			reason := "FailedLogins"
			account.AccountLockoutReason = &reason
		}
		return nil
	}
	return repository.ErrNotFound
}

func (r *testAccountRepo) GetPasswordPolicy(_ context.Context, policyID int64) (*domain.PasswordPolicy, error) {
	if policy, ok := r.policies[policyID]; ok {
		copy := *policy
		return &copy, nil
	}
	return nil, repository.ErrNotFound
}

func (r *testAccountRepo) List(context.Context) ([]domain.DirectoryEntry, error) {
	return nil, errors.New("unexpected call")
}

func (r *testAccountRepo) GetDirectoryEntry(context.Context, string) (*domain.DirectoryEntry, error) {
	return nil, errors.New("unexpected call")
}

type testBlocklistRepo struct {
	blockedDomains map[string]bool
	blockedIPs     map[string]bool
	blockedRegions map[string]bool

	domainErr error
}

func (r *testBlocklistRepo) IsDomainBlocked(_ context.Context, domain string) (bool, error) {
	if r.domainErr != nil {
		return false, r.domainErr
	}
	return r.blockedDomains[domain], nil
}

func (r *testBlocklistRepo) IsIPBlocked(_ context.Context, ip string) (bool, error) {
	return r.blockedIPs[ip], nil
}

func (r *testBlocklistRepo) IsRegionBlocked(_ context.Context, _ string, countryCode string) (bool, error) {
	return r.blockedRegions[countryCode], nil
}

type testAuditRepo struct {
	attempts     []domain.LoginRecord
	assessments  []domain.RiskAssessment
	callSequence *[]string
}

func (r *testAuditRepo) RecordLoginAttempt(_ context.Context, record domain.LoginRecord) error {
	if r.callSequence != nil {
		*r.callSequence = append(*r.callSequence, "audit")
	}
	r.attempts = append(r.attempts, record)
	return nil
}

func (r *testAuditRepo) RecordRiskAssessment(_ context.Context, assessment domain.RiskAssessment) error {
	r.assessments = append(r.assessments, assessment)
	return nil
}

func (r *testAuditRepo) ListRecentAttempts(context.Context, string, int) ([]domain.LoginRecord, error) {
	return nil, errors.New("unexpected call")
}

type testSessionRepo struct {
	sessions     map[string]domain.Session
	fingerprints map[string]domain.DeviceFingerprint
}

func newTestSessionRepo() *testSessionRepo {
	return &testSessionRepo{
		sessions:     make(map[string]domain.Session),
		fingerprints: make(map[string]domain.DeviceFingerprint),
	}
}

func (r *testSessionRepo) Create(_ context.Context, session domain.Session) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *testSessionRepo) GetByID(_ context.Context, sessionID string) (*domain.Session, error) {
	if session, ok := r.sessions[sessionID]; ok {
		copy := session
		return &copy, nil
	}
	return nil, repository.ErrNotFound
}

func (r *testSessionRepo) Revoke(_ context.Context, sessionID string, reason string) error {
	session, ok := r.sessions[sessionID]
	if !ok {
		return nil
	}
	now := time.Now().UTC()
	session.Status = domain.SessionStatusRevoked
	session.RevokedAt = &now
	session.RevokeReason = &reason
	r.sessions[sessionID] = session
	return nil
}

func (r *testSessionRepo) UpsertDeviceFingerprint(_ context.Context, fingerprint domain.DeviceFingerprint) (string, error) {
	key := fingerprint.AccountID + "|" + fingerprint.DeviceIdentifier
	if existing, ok := r.fingerprints[key]; ok {
		existing.LastSeenAt = fingerprint.LastSeenAt
		r.fingerprints[key] = existing
		return existing.ID, nil
	}
	r.fingerprints[key] = fingerprint
	return fingerprint.ID, nil
}

type testGeoResolver struct {
	country string
}

func (r *testGeoResolver) ResolveCountryCode(context.Context, string) (string, error) {
	return r.country, nil
}

type testTwoFactor struct {
	ok     bool
	called bool
}

func (v *testTwoFactor) Verify(context.Context, domain.Account, string) (bool, error) {
	v.called = true
	return v.ok, nil
}

type loginFixture struct {
	accounts  *testAccountRepo
	blocklist *testBlocklistRepo
	audit     *testAuditRepo
	sessions  *testSessionRepo
	geo       *testGeoResolver
	twoFactor *testTwoFactor
	service   *LoginService
}

func newLoginFixture(accounts ...*domain.Account) *loginFixture {
	f := &loginFixture{
		accounts: &testAccountRepo{
			accounts: make(map[string]*domain.Account),
			policies: make(map[int64]*domain.PasswordPolicy),
		},
		blocklist: &testBlocklistRepo{
			blockedDomains: make(map[string]bool),
			blockedIPs:     make(map[string]bool),
			blockedRegions: make(map[string]bool),
		},
		audit:     &testAuditRepo{},
		sessions:  newTestSessionRepo(),
		geo:       &testGeoResolver{country: "US"},
		twoFactor: &testTwoFactor{ok: true},
	}
	for _, account := range accounts {
		f.accounts.accounts[account.Email] = account
	}
	f.service = NewLoginService(
		LoginConfig{},
		f.accounts,
		f.blocklist,
		f.audit,
		f.sessions,
		f.geo,
		f.twoFactor,
		nil,
		nil,
	)
	return f
}

var testPasswordHash string

func hashTestPassword(t *testing.T) string {
	t.Helper()
	if testPasswordHash == "" {
		hash, err := security.HashPassword("correct horse battery staple")
		if err != nil {
			t.Fatalf("hash test password: %v", err)
		}
		testPasswordHash = hash
	}
	return testPasswordHash
}

func activeAccount(t *testing.T, email string) *domain.Account {
	t.Helper()
	return &domain.Account{
		ID:           "acct-" + email,
		Email:        email,
		PasswordHash: hashTestPassword(t),
		IsEnabled:    true,
		Status:       domain.AccountStatusActive,
		CreatedAt:    time.Now().UTC(),
	}
}

func loginInput(email string) LoginInput {
	return LoginInput{
		Email:    email,
		Password: "correct horse battery staple",
		IP:       "203.0.113.7",
	}
}

func TestLoginBlockedDomainPrecedesLookup(t *testing.T) {
	f := newLoginFixture()
	f.blocklist.blockedDomains["blocked.example"] = true

	outcome := f.service.Login(context.Background(), loginInput("nobody@blocked.example"))

	if outcome.Success {
		t.Fatal("expected denial")
	}
	if outcome.Reason != ReasonBlockedDomain {
		t.Fatalf("expected BlockedDomain for unknown account on blocked domain, got %s", outcome.Reason)
	}
	if outcome.Message != "Login blocked: your email domain is blocked" {
		t.Fatalf("unexpected message: %q", outcome.Message)
	}
	if len(f.audit.attempts) != 1 {
		t.Fatalf("expected exactly one audit record, got %d", len(f.audit.attempts))
	}
	if f.audit.attempts[0].AccountID != nil {
		t.Fatal("pre-lookup denial must audit with nil account id")
	}
}

func TestLoginBlockedIP(t *testing.T) {
	f := newLoginFixture(activeAccount(t, "user@example.com"))
	f.blocklist.blockedIPs["203.0.113.7"] = true

	outcome := f.service.Login(context.Background(), loginInput("user@example.com"))

	if outcome.Reason != ReasonBlockedIP {
		t.Fatalf("expected BlockedIP, got %s", outcome.Reason)
	}
	if outcome.Message != "Login blocked: your IP is in a blocked range" {
		t.Fatalf("unexpected message: %q", outcome.Message)
	}
}

func TestLoginBlockedRegion(t *testing.T) {
	f := newLoginFixture(activeAccount(t, "user@example.com"))
	f.geo.country = "RU"
	f.blocklist.blockedRegions["RU"] = true

	outcome := f.service.Login(context.Background(), loginInput("user@example.com"))

	if outcome.Reason != ReasonBlockedRegion {
		t.Fatalf("expected BlockedRegion, got %s", outcome.Reason)
	}
	if outcome.Message != "Login blocked: your region is restricted" {
		t.Fatalf("unexpected message: %q", outcome.Message)
	}
}

func TestLoginBlocklistErrorFailsOpen(t *testing.T) {
	f := newLoginFixture()
	f.blocklist.domainErr = errors.New("blocklist unavailable")

	outcome := f.service.Login(context.Background(), loginInput("nobody@example.com"))

	if outcome.Reason != ReasonNoSuchUser {
		t.Fatalf("blocklist read failure must not deny on its own, got %s", outcome.Reason)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	f := newLoginFixture()

	outcome := f.service.Login(context.Background(), loginInput("missing@example.com"))

	if outcome.Success {
		t.Fatal("expected denial")
	}
	if outcome.Reason != ReasonNoSuchUser {
		t.Fatalf("expected NoSuchUser, got %s", outcome.Reason)
	}
	if outcome.Message != "User not found" {
		t.Fatalf("unexpected message: %q", outcome.Message)
	}
	if len(f.audit.attempts) != 1 {
		t.Fatalf("expected exactly one audit record, got %d", len(f.audit.attempts))
	}
	record := f.audit.attempts[0]
	if record.AccountID != nil {
		t.Fatal("unknown user audit record must carry nil account id")
	}
	if record.Reason != string(ReasonNoSuchUser) {
		t.Fatalf("unexpected audit reason: %s", record.Reason)
	}
}

func TestLoginStorageFaultSkipsAudit(t *testing.T) {
	f := newLoginFixture()
	f.accounts.lookupErr = errors.New("connection refused")

	outcome := f.service.Login(context.Background(), loginInput("user@example.com"))

	if outcome.Reason != ReasonDatabaseError {
		t.Fatalf("expected DatabaseError, got %s", outcome.Reason)
	}
	if outcome.Message != "Database error occurred" {
		t.Fatalf("unexpected message: %q", outcome.Message)
	}
	if len(f.audit.attempts) != 0 {
		t.Fatalf("lookup fault must not write audit records, got %d", len(f.audit.attempts))
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	account := activeAccount(t, "user@example.com")
	account.IsEnabled = false
	f := newLoginFixture(account)

	outcome := f.service.Login(context.Background(), loginInput("user@example.com"))

	if outcome.Reason != ReasonAccountLockedOrDisabled {
		t.Fatalf("expected AccountLockedOrDisabled, got %s", outcome.Reason)
	}
	if outcome.Message != "Account is not allowed to log in" {
		t.Fatalf("unexpected message: %q", outcome.Message)
	}
}

func TestLoginExpiredAccount(t *testing.T) {
	account := activeAccount(t, "user@example.com")
	expired := time.Now().UTC().Add(-time.Hour)
	account.AccountExpiresAt = &expired
	f := newLoginFixture(account)

	outcome := f.service.Login(context.Background(), loginInput("user@example.com"))

	if outcome.Reason != ReasonAccountLockedOrDisabled {
		t.Fatalf("expected AccountLockedOrDisabled for expired account, got %s", outcome.Reason)
	}
}

func TestLoginUnparsableHashAuditsDatabaseError(t *testing.T) {
	account := activeAccount(t, "user@example.com")
	account.PasswordHash = "not-an-argon2-hash"
	f := newLoginFixture(account)

	outcome := f.service.Login(context.Background(), loginInput("user@example.com"))

	if outcome.Reason != ReasonDatabaseError {
		t.Fatalf("expected DatabaseError, got %s", outcome.Reason)
	}
	if len(f.audit.attempts) != 1 {
		t.Fatalf("expected one audit record for the hash fault, got %d", len(f.audit.attempts))
	}
	record := f.audit.attempts[0]
	if record.Reason != string(ReasonDatabaseError) {
		t.Fatalf("unexpected audit reason: %s", record.Reason)
	}
	if record.AccountID == nil || *record.AccountID != account.ID {
		t.Fatal("hash fault audit record must carry the account id")
	}
}

func TestLoginBadPasswordIncrementsThenAudits(t *testing.T) {
	account := activeAccount(t, "user@example.com")
	account.FailedLoginAttempts = 4
	f := newLoginFixture(account)

	sequence := []string{}
	f.accounts.callSequence = &sequence
	f.audit.callSequence = &sequence

	input := loginInput("user@example.com")
	input.Password = "wrong password"
	outcome := f.service.Login(context.Background(), input)

	if outcome.Reason != ReasonInvalidCredentials {
		t.Fatalf("expected InvalidCredentials, got %s", outcome.Reason)
	}
	if outcome.Message != "Invalid credentials" {
		t.Fatalf("unexpected message: %q", outcome.Message)
	}

	if account.FailedLoginAttempts != 5 {
		t.Fatalf("expected counter at 5, got %d", account.FailedLoginAttempts)
	}
	if !account.AccountLockout {
		t.Fatal("fifth failure must set the lockout flag")
	}
	if account.AccountLockoutReason == nil || *account.AccountLockoutReason != "FailedLogins" {
		t.Fatalf("unexpected lockout reason: %v", account.AccountLockoutReason)
	}

	if len(sequence) < 2 || sequence[0] != "increment" || sequence[1] != "audit" {
		t.Fatalf("expected increment before audit, observed %v", sequence)
	}
}

func TestLoginForcePasswordReset(t *testing.T) {
	account := activeAccount(t, "user@example.com")
	account.ForcePasswordReset = true
	account.TwoFactorEnabled = true
	f := newLoginFixture(account)

	outcome := f.service.Login(context.Background(), loginInput("user@example.com"))

	if outcome.Reason != ReasonForcePasswordReset {
		t.Fatalf("expected ForcePasswordReset, got %s", outcome.Reason)
	}
	if outcome.Message != string(ReasonForcePasswordReset) {
		t.Fatalf("policy denial must echo the reason code, got %q", outcome.Message)
	}
	if f.twoFactor.called {
		t.Fatal("policy denial must short-circuit before the two-factor gate")
	}
	if len(f.audit.assessments) != 0 {
		t.Fatal("policy denial must short-circuit before the risk gate")
	}
}

func TestLoginForceResetWhenPasswordCannotChange(t *testing.T) {
	account := activeAccount(t, "user@example.com")
	account.ForcePasswordReset = true
	account.CannotChangePassword = true
	f := newLoginFixture(account)

	outcome := f.service.Login(context.Background(), loginInput("user@example.com"))

	if outcome.Reason != ReasonCannotChangePassword {
		t.Fatalf("expected CannotChangePasswordButNeeded, got %s", outcome.Reason)
	}
}

func TestLoginPasswordNeverExpiresSkipsExpiry(t *testing.T) {
	account := activeAccount(t, "user@example.com")
	account.PasswordNeverExpires = true
	policyID := int64(1)
	changed := time.Now().UTC().Add(-400 * 24 * time.Hour)
	account.PasswordPolicyID = &policyID
	account.LastPasswordChangedAt = &changed
	f := newLoginFixture(account)
	maxAge := 30
	f.accounts.policies[policyID] = &domain.PasswordPolicy{ID: policyID, Name: "Standard", MaxAgeDays: &maxAge}

	outcome := f.service.Login(context.Background(), loginInput("user@example.com"))

	if !outcome.Success {
		t.Fatalf("never-expires accounts must not be denied for password age, got %s", outcome.Reason)
	}
}

func TestLoginForceResetOverridesNeverExpires(t *testing.T) {
	account := activeAccount(t, "user@example.com")
	account.PasswordNeverExpires = true
	account.ForcePasswordReset = true
	f := newLoginFixture(account)

	outcome := f.service.Login(context.Background(), loginInput("user@example.com"))

	if outcome.Reason != ReasonForcePasswordReset {
		t.Fatalf("force reset takes priority over never-expires, got %s", outcome.Reason)
	}
}

func TestLoginPasswordExpired(t *testing.T) {
	account := activeAccount(t, "user@example.com")
	policyID := int64(1)
	changed := time.Now().UTC().Add(-60 * 24 * time.Hour)
	account.PasswordPolicyID = &policyID
	account.LastPasswordChangedAt = &changed
	f := newLoginFixture(account)
	maxAge := 30
	f.accounts.policies[policyID] = &domain.PasswordPolicy{ID: policyID, Name: "Standard", MaxAgeDays: &maxAge}

	outcome := f.service.Login(context.Background(), loginInput("user@example.com"))

	if outcome.Reason != ReasonPasswordExpired {
		t.Fatalf("expected PasswordExpired, got %s", outcome.Reason)
	}
	if outcome.Message != string(ReasonPasswordExpired) {
		t.Fatalf("policy denial must echo the reason code, got %q", outcome.Message)
	}
}

func TestLoginMissingPolicyFailsOpen(t *testing.T) {
	account := activeAccount(t, "user@example.com")
	policyID := int64(42)
	changed := time.Now().UTC().Add(-365 * 24 * time.Hour)
	account.PasswordPolicyID = &policyID
	account.LastPasswordChangedAt = &changed
	f := newLoginFixture(account)

	outcome := f.service.Login(context.Background(), loginInput("user@example.com"))

	if !outcome.Success {
		t.Fatalf("missing policy must not bar the login, got %s", outcome.Reason)
	}
}

func TestLoginTwoFactorFailed(t *testing.T) {
	account := activeAccount(t, "user@example.com")
	account.TwoFactorEnabled = true
	f := newLoginFixture(account)
	f.twoFactor.ok = false

	outcome := f.service.Login(context.Background(), loginInput("user@example.com"))

	if outcome.Reason != ReasonTwoFactorFailed {
		t.Fatalf("expected 2FAFailed, got %s", outcome.Reason)
	}
	if outcome.Message != "Two-Factor Authentication failed" {
		t.Fatalf("unexpected message: %q", outcome.Message)
	}
	if !f.twoFactor.called {
		t.Fatal("two-factor verifier was not invoked")
	}
}

func TestLoginRiskChallenge(t *testing.T) {
	account := activeAccount(t, "user@example.com")
	account.FailedLoginAttempts = 4
	f := newLoginFixture(account)
	f.service = NewLoginService(
		LoginConfig{RiskBlockScore: 100, RiskChallengeScore: 10},
		f.accounts, f.blocklist, f.audit, f.sessions, f.geo, f.twoFactor, nil, nil,
	)

	outcome := f.service.Login(context.Background(), loginInput("user@example.com"))

	if outcome.Reason != ReasonRiskChallengeFail {
		t.Fatalf("expected RiskChallengeFail, got %s", outcome.Reason)
	}
	if outcome.Message != "Additional verification needed" {
		t.Fatalf("unexpected message: %q", outcome.Message)
	}
	if len(f.audit.assessments) != 1 {
		t.Fatalf("assessment must be persisted, got %d", len(f.audit.assessments))
	}
	if f.audit.assessments[0].Action != domain.RiskActionChallenge {
		t.Fatalf("unexpected action: %s", f.audit.assessments[0].Action)
	}
}

func TestLoginRiskBlock(t *testing.T) {
	account := activeAccount(t, "user@example.com")
	account.FailedLoginAttempts = 4
	f := newLoginFixture(account)
	f.service = NewLoginService(
		LoginConfig{RiskBlockScore: 15, RiskChallengeScore: 10},
		f.accounts, f.blocklist, f.audit, f.sessions, f.geo, f.twoFactor, nil, nil,
	)

	outcome := f.service.Login(context.Background(), loginInput("user@example.com"))

	if outcome.Reason != ReasonRiskScoreBlock {
		t.Fatalf("expected RiskScoreBlock, got %s", outcome.Reason)
	}
	if outcome.Message != "Login blocked due to high risk" {
		t.Fatalf("unexpected message: %q", outcome.Message)
	}
}

func TestLoginSuccessKeepsFailedCounter(t *testing.T) {
	account := activeAccount(t, "user@example.com")
	account.FailedLoginAttempts = 4
	f := newLoginFixture(account)

	outcome := f.service.Login(context.Background(), loginInput("user@example.com"))

	if !outcome.Success {
		t.Fatalf("expected success, got %s: %s", outcome.Reason, outcome.Message)
	}
	if outcome.Message != "Login successful" {
		t.Fatalf("unexpected message: %q", outcome.Message)
	}
	if outcome.SessionID == "" {
		t.Fatal("success outcome must carry a session id")
	}

	// Risk score is 20 with no device identifier: below the challenge line.
	if len(f.audit.assessments) != 1 {
		t.Fatalf("assessment must be persisted on allow as well, got %d", len(f.audit.assessments))
	}
	if f.audit.assessments[0].Action != domain.RiskActionAllow {
		t.Fatalf("unexpected action: %s", f.audit.assessments[0].Action)
	}

	// Successful login does not reset the failed-attempt counter.
	if account.FailedLoginAttempts != 4 {
		t.Fatalf("counter must stay at 4, got %d", account.FailedLoginAttempts)
	}

	session, ok := f.sessions.sessions[outcome.SessionID]
	if !ok {
		t.Fatal("session row was not created")
	}
	if session.Status != domain.SessionStatusActive {
		t.Fatalf("expected Active session, got %s", session.Status)
	}
	if session.AccountID != account.ID || session.IP != "203.0.113.7" {
		t.Fatal("session row does not match the authenticated account and IP")
	}

	last := f.audit.attempts[len(f.audit.attempts)-1]
	if last.Status != domain.LoginStatusSuccess || last.Reason != string(ReasonLoginSuccess) {
		t.Fatalf("unexpected success audit record: %+v", last)
	}
}

func TestLoginFingerprintUpsertIdempotent(t *testing.T) {
	account := activeAccount(t, "user@example.com")
	f := newLoginFixture(account)

	input := loginInput("user@example.com")
	input.Device = domain.DeviceInfo{DeviceID: "device-abc", Type: "Desktop", OS: "Linux", Browser: "Firefox"}

	first := f.service.Login(context.Background(), input)
	second := f.service.Login(context.Background(), input)

	if !first.Success || !second.Success {
		t.Fatalf("expected both logins to succeed: %s / %s", first.Reason, second.Reason)
	}
	if len(f.sessions.fingerprints) != 1 {
		t.Fatalf("expected one fingerprint row, got %d", len(f.sessions.fingerprints))
	}

	firstSession := f.sessions.sessions[first.SessionID]
	secondSession := f.sessions.sessions[second.SessionID]
	if firstSession.DeviceID == nil || secondSession.DeviceID == nil {
		t.Fatal("device-bearing sessions must reference the fingerprint")
	}
	if *firstSession.DeviceID != *secondSession.DeviceID {
		t.Fatalf("repeat sightings must resolve to the same fingerprint id: %s vs %s",
			*firstSession.DeviceID, *secondSession.DeviceID)
	}
}

func TestValidateSessionLifecycle(t *testing.T) {
	account := activeAccount(t, "user@example.com")
	f := newLoginFixture(account)

	outcome := f.service.Login(context.Background(), loginInput("user@example.com"))
	if !outcome.Success {
		t.Fatalf("login failed: %s", outcome.Reason)
	}

	session, err := f.service.ValidateSession(context.Background(), outcome.SessionID)
	if err != nil {
		t.Fatalf("ValidateSession returned error: %v", err)
	}
	if session.AccountID != account.ID {
		t.Fatalf("unexpected session account: %s", session.AccountID)
	}

	if err := f.service.Logout(context.Background(), outcome.SessionID); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	if _, err := f.service.ValidateSession(context.Background(), outcome.SessionID); !errors.Is(err, ErrSessionRevoked) {
		t.Fatalf("expected ErrSessionRevoked after logout, got %v", err)
	}

	if _, err := f.service.ValidateSession(context.Background(), "unknown"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
