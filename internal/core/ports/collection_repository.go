package ports

import (
	"context"

	"github.com/storekit/storefront-api/internal/core/domain"
)

// CollectionRepository persists product collections.
type CollectionRepository interface {
	Create(ctx context.Context, collection *domain.Collection) (*domain.Collection, error)
	Update(ctx context.Context, id, name string) (*domain.Collection, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Collection, error)
	FindAll(ctx context.Context) ([]domain.Collection, error)
}
