package order

import (
	"context"

	"github.com/VaultPoint/LedgerShield/pkg/domain/order"
	"github.com/google/uuid"
)

type Finder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	FindAll(ctx context.Context) ([]order.Order, error)
}

type finder struct {
	repo order.Repository
}

func NewFinder(repository order.Repository) Finder {
	return &finder{
		repo: repository,
	}
}

func (f *finder) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	entity, err := f.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (f *finder) FindAll(ctx context.Context) ([]order.Order, error) {
	entities, err := f.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return entities, nil
}
