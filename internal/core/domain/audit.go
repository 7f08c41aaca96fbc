package domain

import "time"

// Audit event kinds recorded by the auth flow.
const (
	AuditSignup      = "signup"
	AuditLogin       = "login"
	AuditLoginDenied = "login_denied"
)

// AuditEvent is an append-only record of an authentication attempt.
type AuditEvent struct {
	Kind       string    `json:"kind"`
	Email      string    `json:"email"`
	AccountID  string    `json:"account_id,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
