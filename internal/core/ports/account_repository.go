package ports

import (
	"context"

	"github.com/storekit/storefront-api/internal/core/domain"
)

// AccountRepository is the narrow persistence interface the core needs for
// accounts. The backing store must enforce email uniqueness; Create returns
// domain.ErrAccountExists when that constraint fires.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	UpdateRole(ctx context.Context, id, role string) (*domain.Account, error)
}
