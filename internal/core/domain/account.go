package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

var ErrAccountNotFound = errors.New("account not found")
var ErrMissingFields = errors.New("all fields are required")
var ErrAccountExists = errors.New("account already exists")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrTokenInvalid = errors.New("invalid session token")
var ErrTokenExpired = errors.New("expired session token")
var ErrForbidden = errors.New("access forbidden")
var ErrTooManyAttempts = errors.New("too many login attempts")

// ValidRole reports whether role is one of the known permission tiers.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// Account models a registered identity. PasswordHash never leaves the
// process: it is excluded from JSON and must be stripped before any
// outward-facing representation.
type Account struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	Role         string     `json:"role"`
	ResetToken   string     `json:"-"`
	ResetExpiry  *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Summary returns a copy safe to hand to clients: credential material and
// reset-token fields are cleared.
func (a *Account) Summary() *Account {
	if a == nil {
		return nil
	}
	s := *a
	s.PasswordHash = ""
	s.ResetToken = ""
	s.ResetExpiry = nil
	return &s
}
