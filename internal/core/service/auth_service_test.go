package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/storekit/storefront-api/internal/core/domain"
	"github.com/storekit/storefront-api/internal/core/ports"
	"github.com/storekit/storefront-api/internal/infrastructure/crypto"
	"github.com/storekit/storefront-api/internal/infrastructure/token"
)

type stubAccountRepo struct {
	byEmail map[string]*domain.Account
	seq     int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byEmail: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	if a, ok := r.byEmail[email]; ok {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	for _, a := range r.byEmail {
		if a.ID == id {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if _, exists := r.byEmail[account.Email]; exists {
		return nil, domain.ErrAccountExists
	}
	r.seq++
	copy := cloneAccount(account)
	copy.ID = fmt.Sprintf("acct_%d", r.seq)
	r.byEmail[copy.Email] = cloneAccount(copy)
	return copy, nil
}

func (r *stubAccountRepo) UpdateRole(_ context.Context, id, role string) (*domain.Account, error) {
	for _, a := range r.byEmail {
		if a.ID == id {
			a.Role = role
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

type recordingAudit struct {
	events []domain.AuditEvent
}

func (r *recordingAudit) Record(event domain.AuditEvent) {
	r.events = append(r.events, event)
}

func newAuthService(repo ports.AccountRepository) *AuthService {
	hasher := crypto.NewBcryptHasher(bcrypt.MinCost)
	issuer := token.NewJWTIssuer("test-secret", time.Hour)
	return NewAuthService(repo, hasher, issuer, nil, nil)
}

func signupInput(email string) ports.SignupInput {
	return ports.SignupInput{
		Name:     "Alice",
		Email:    email,
		Password: "s3cret-pass",
		Phone:    "5551234567",
		Address:  "1 Main St",
	}
}

func TestAuthService_Signup_CreatesUserRoleAccount(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAuthService(repo)

	res, err := svc.Signup(context.Background(), signupInput("a@x.com"))
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if res.Outcome != ports.SignupCreated {
		t.Fatalf("expected created outcome, got %s", res.Outcome)
	}
	if res.Account == nil || res.Account.ID == "" {
		t.Fatalf("expected account with ID, got %+v", res.Account)
	}
	if res.Account.Role != domain.RoleUser {
		t.Fatalf("expected role %s, got %s", domain.RoleUser, res.Account.Role)
	}
	if res.Account.PasswordHash != "" {
		t.Fatalf("password hash leaked in result")
	}

	stored := repo.byEmail["a@x.com"]
	if stored == nil || stored.PasswordHash == "" {
		t.Fatalf("expected persisted account with hash")
	}
	if stored.PasswordHash == "s3cret-pass" {
		t.Fatalf("password stored in plaintext")
	}
}

func TestAuthService_Signup_ExistingEmailIsSoftOutcome(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAuthService(repo)

	if _, err := svc.Signup(context.Background(), signupInput("a@x.com")); err != nil {
		t.Fatalf("first signup: %v", err)
	}

	res, err := svc.Signup(context.Background(), signupInput("a@x.com"))
	if err != nil {
		t.Fatalf("second signup should not error: %v", err)
	}
	if res.Outcome != ports.SignupAlreadyRegistered {
		t.Fatalf("expected already-registered outcome, got %s", res.Outcome)
	}
	if res.Account != nil {
		t.Fatalf("already-registered outcome must not carry an account")
	}
	if len(repo.byEmail) != 1 {
		t.Fatalf("expected a single account, got %d", len(repo.byEmail))
	}
}

func TestAuthService_Signup_EmailIsCaseInsensitive(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAuthService(repo)

	if _, err := svc.Signup(context.Background(), signupInput("a@x.com")); err != nil {
		t.Fatalf("first signup: %v", err)
	}

	res, err := svc.Signup(context.Background(), signupInput("A@X.COM"))
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if res.Outcome != ports.SignupAlreadyRegistered {
		t.Fatalf("expected already-registered for upper-cased email, got %s", res.Outcome)
	}
}

func TestAuthService_Signup_MissingFields(t *testing.T) {
	svc := newAuthService(newStubAccountRepo())

	in := signupInput("a@x.com")
	in.Address = "   "
	if _, err := svc.Signup(context.Background(), in); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestAuthService_Signup_DuplicateKeyRaceResolvesSoftly(t *testing.T) {
	// Simulate the race where another request inserts between the lookup
	// and the create: the repo reports no account, then a duplicate key.
	svc := newAuthService(&racingRepo{stubAccountRepo: newStubAccountRepo()})

	res, err := svc.Signup(context.Background(), signupInput("a@x.com"))
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if res.Outcome != ports.SignupAlreadyRegistered {
		t.Fatalf("expected already-registered from duplicate-key backstop, got %s", res.Outcome)
	}
}

// racingRepo reports no account on lookup but a duplicate on insert.
type racingRepo struct {
	*stubAccountRepo
}

func (r *racingRepo) FindByEmail(context.Context, string) (*domain.Account, error) {
	return nil, domain.ErrAccountNotFound
}

func (r *racingRepo) Create(context.Context, *domain.Account) (*domain.Account, error) {
	return nil, domain.ErrAccountExists
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAuthService(repo)

	if _, err := svc.Signup(context.Background(), signupInput("carol@x.com")); err != nil {
		t.Fatalf("signup: %v", err)
	}

	res, err := svc.Login(context.Background(), ports.LoginInput{Email: "carol@x.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected session token")
	}
	if res.Account == nil || res.Account.Email != "carol@x.com" {
		t.Fatalf("unexpected account: %+v", res.Account)
	}
	if res.Account.PasswordHash != "" {
		t.Fatalf("password hash leaked in login result")
	}

	issuer := token.NewJWTIssuer("test-secret", time.Hour)
	accountID, err := issuer.Validate(res.Token)
	if err != nil {
		t.Fatalf("token did not validate: %v", err)
	}
	if accountID != res.Account.ID {
		t.Fatalf("token subject %s does not match account %s", accountID, res.Account.ID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAuthService(repo)

	_, _ = svc.Signup(context.Background(), signupInput("dave@x.com"))

	res, err := svc.Login(context.Background(), ports.LoginInput{Email: "dave@x.com", Password: "bad-pass"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if res != nil {
		t.Fatalf("no token must be issued on bad password")
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthService(newStubAccountRepo())

	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "ghost@x.com", Password: "pw"}); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := newAuthService(newStubAccountRepo())

	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "a@x.com"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), ports.LoginInput{Password: "pw"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

type denyingLimiter struct {
	failures []string
	resets   []string
	deny     bool
}

func (l *denyingLimiter) Allow(_ context.Context, email string) error {
	if l.deny {
		return domain.ErrTooManyAttempts
	}
	return nil
}

func (l *denyingLimiter) RecordFailure(_ context.Context, email string) error {
	l.failures = append(l.failures, email)
	return nil
}

func (l *denyingLimiter) Reset(_ context.Context, email string) error {
	l.resets = append(l.resets, email)
	return nil
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubAccountRepo()
	limiter := &denyingLimiter{deny: true}
	svc := NewAuthService(repo, crypto.NewBcryptHasher(bcrypt.MinCost), token.NewJWTIssuer("test-secret", time.Hour), limiter, nil)

	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "a@x.com", Password: "pw"}); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_LimiterBookkeeping(t *testing.T) {
	repo := newStubAccountRepo()
	limiter := &denyingLimiter{}
	svc := NewAuthService(repo, crypto.NewBcryptHasher(bcrypt.MinCost), token.NewJWTIssuer("test-secret", time.Hour), limiter, nil)

	_, _ = svc.Signup(context.Background(), signupInput("erin@x.com"))

	_, _ = svc.Login(context.Background(), ports.LoginInput{Email: "erin@x.com", Password: "nope"})
	if len(limiter.failures) != 1 || limiter.failures[0] != "erin@x.com" {
		t.Fatalf("expected one recorded failure, got %v", limiter.failures)
	}

	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "erin@x.com", Password: "s3cret-pass"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if len(limiter.resets) != 1 {
		t.Fatalf("expected limiter reset after success, got %v", limiter.resets)
	}
}

func TestAuthService_AuditTrail(t *testing.T) {
	repo := newStubAccountRepo()
	audit := &recordingAudit{}
	svc := NewAuthService(repo, crypto.NewBcryptHasher(bcrypt.MinCost), token.NewJWTIssuer("test-secret", time.Hour), nil, audit)

	_, _ = svc.Signup(context.Background(), signupInput("fay@x.com"))
	_, _ = svc.Login(context.Background(), ports.LoginInput{Email: "fay@x.com", Password: "wrong"})
	_, _ = svc.Login(context.Background(), ports.LoginInput{Email: "fay@x.com", Password: "s3cret-pass"})

	if len(audit.events) != 3 {
		t.Fatalf("expected 3 audit events, got %d", len(audit.events))
	}
	kinds := []string{audit.events[0].Kind, audit.events[1].Kind, audit.events[2].Kind}
	want := []string{domain.AuditSignup, domain.AuditLoginDenied, domain.AuditLogin}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("event %d: expected %s, got %s", i, want[i], kinds[i])
		}
	}
	if audit.events[1].Reason != "bad_password" {
		t.Fatalf("denied event should carry a reason, got %q", audit.events[1].Reason)
	}
	if audit.events[0].OccurredAt.IsZero() {
		t.Fatalf("audit events must be timestamped")
	}
}
