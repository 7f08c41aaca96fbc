package service

import (
	"context"
	"strings"

	"github.com/storekit/storefront-api/internal/core/domain"
	"github.com/storekit/storefront-api/internal/core/ports"
)

// CollectionService implements collection CRUD on top of the repository.
// Authorization is enforced upstream by the gate; this service only owns
// input validation and not-found semantics.
type CollectionService struct {
	repo ports.CollectionRepository
}

func NewCollectionService(repo ports.CollectionRepository) *CollectionService {
	return &CollectionService{repo: repo}
}

func (s *CollectionService) Create(ctx context.Context, name string) (*domain.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrCollectionNameRequired
	}
	return s.repo.Create(ctx, &domain.Collection{Name: name})
}

func (s *CollectionService) Update(ctx context.Context, id, name string) (*domain.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrCollectionNameRequired
	}
	return s.repo.Update(ctx, id, name)
}

func (s *CollectionService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *CollectionService) List(ctx context.Context) ([]domain.Collection, error) {
	return s.repo.FindAll(ctx)
}
