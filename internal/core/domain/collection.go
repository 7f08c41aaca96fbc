package domain

import (
	"errors"
	"time"
)

var ErrCollectionNotFound = errors.New("collection not found")
var ErrCollectionNameRequired = errors.New("collection name is required")

// Collection is a named product grouping. It is the protected resource the
// authorization gate guards: mutations require the ADMIN role, reads are open.
type Collection struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
