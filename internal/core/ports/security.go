package ports

import "context"

// PasswordHasher is the credential-hashing contract. Hash salts every call,
// so two hashes of the same plaintext differ while both verify. Verify must
// not leak timing information about where a mismatch occurs.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) bool
}

// SessionIssuer mints and validates signed, time-bounded session tokens.
// Validate returns the account ID the token was issued for, or
// domain.ErrTokenExpired / domain.ErrTokenInvalid so callers can tell the
// two rejections apart.
type SessionIssuer interface {
	Issue(accountID string) (string, error)
	Validate(token string) (string, error)
}

// LoginLimiter throttles repeated failed logins per email. Allow returns
// domain.ErrTooManyAttempts once the failure budget for the window is spent.
type LoginLimiter interface {
	Allow(ctx context.Context, email string) error
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
