package handler

import "github.com/storekit/storefront-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type signupRequest struct {
	Name     string `json:"name"     validate:"required,max=32"`
	Email    string `json:"email"    validate:"required,email"`
	// Password is capped at 72: bcrypt rejects longer inputs, and that must
	// surface as a validation error, not a hashing failure.
	Password string `json:"password" validate:"required,min=8,max=72"`
	Phone    string `json:"phone"    validate:"required,numeric"`
	Address  string `json:"address"  validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupResponse struct {
	Message string          `json:"message"`
	Account *domain.Account `json:"account,omitempty"`
}

type loginResponse struct {
	Message string          `json:"message"`
	Account *domain.Account `json:"account"`
	Token   string          `json:"token"`
}
