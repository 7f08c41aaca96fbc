package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/storekit/storefront-api/internal/core/domain"
	"github.com/storekit/storefront-api/internal/core/ports"
)

// AuthService orchestrates signup and login over the account store, the
// credential hasher and the session issuer. The limiter and audit recorder
// are optional; pass nil to disable them.
type AuthService struct {
	repo    ports.AccountRepository
	hasher  ports.PasswordHasher
	issuer  ports.SessionIssuer
	limiter ports.LoginLimiter
	audit   ports.AuditRecorder
}

func NewAuthService(repo ports.AccountRepository, hasher ports.PasswordHasher, issuer ports.SessionIssuer, limiter ports.LoginLimiter, audit ports.AuditRecorder) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, issuer: issuer, limiter: limiter, audit: audit}
}

// NormalizeEmail fixes the email uniqueness policy: addresses compare
// case-insensitively, so they are lower-cased and trimmed at the boundary.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a new account with the USER role. An email that is
// already registered is not an error: the result carries the
// AlreadyRegistered outcome and no account is created. The store's unique
// index is the authoritative backstop for the lookup/insert race, so a
// duplicate-key failure on insert resolves to the same outcome.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.SignupResult, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	address := strings.TrimSpace(in.Address)
	if name == "" || email == "" || in.Password == "" || in.Phone == "" || address == "" {
		return nil, domain.ErrMissingFields
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return &ports.SignupResult{Outcome: ports.SignupAlreadyRegistered}, nil
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("signup lookup: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("signup hash: %w", err)
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Address:      address,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			return &ports.SignupResult{Outcome: ports.SignupAlreadyRegistered}, nil
		}
		return nil, fmt.Errorf("signup create: %w", err)
	}

	s.record(domain.AuditEvent{Kind: domain.AuditSignup, Email: email, AccountID: created.ID})

	return &ports.SignupResult{Outcome: ports.SignupCreated, Account: created.Summary()}, nil
}

// Login verifies credentials and mints a session token. Unknown emails are
// reported as domain.ErrAccountNotFound so the caller can answer "please
// sign up", distinct from a wrong password.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Allow(ctx, email); err != nil {
			return nil, err
		}
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("login lookup: %w", err)
	}

	if !s.hasher.Verify(in.Password, account.PasswordHash) {
		if s.limiter != nil {
			_ = s.limiter.RecordFailure(ctx, email)
		}
		s.record(domain.AuditEvent{Kind: domain.AuditLoginDenied, Email: email, AccountID: account.ID, Reason: "bad_password"})
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := s.issuer.Issue(account.ID)
	if err != nil {
		return nil, fmt.Errorf("login issue token: %w", err)
	}

	if s.limiter != nil {
		_ = s.limiter.Reset(ctx, email)
	}
	s.record(domain.AuditEvent{Kind: domain.AuditLogin, Email: email, AccountID: account.ID})

	return &ports.LoginResult{Token: signed, Account: account.Summary()}, nil
}

func (s *AuthService) record(event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	event.OccurredAt = time.Now().UTC()
	s.audit.Record(event)
}
