package ports

import (
	"context"

	"github.com/storekit/storefront-api/internal/core/domain"
)

type CollectionService interface {
	Create(ctx context.Context, name string) (*domain.Collection, error)
	Update(ctx context.Context, id, name string) (*domain.Collection, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Collection, error)
}
