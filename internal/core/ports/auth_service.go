package ports

import (
	"context"

	"github.com/storekit/storefront-api/internal/core/domain"
)

// SignupOutcome tags the two non-error results of a signup attempt.
// Registering an email that already has an account is deliberately not an
// error: the caller is told to log in instead.
type SignupOutcome string

const (
	SignupCreated           SignupOutcome = "created"
	SignupAlreadyRegistered SignupOutcome = "already_registered"
)

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

type SignupResult struct {
	Outcome SignupOutcome
	Account *domain.Account
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token   string
	Account *domain.Account
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*SignupResult, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
}
