package payment

import (
	"context"

	"github.com/VaultPoint/LedgerShield/pkg/domain/payment"
	"github.com/google/uuid"
)

type Finder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error)
	FindAll(ctx context.Context) ([]payment.Payment, error)
}

type finder struct {
	repo payment.Repository
}

func NewFinder(repository payment.Repository) Finder {
	return &finder{
		repo: repository,
	}
}

func (f *finder) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	entity, err := f.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (f *finder) FindAll(ctx context.Context) ([]payment.Payment, error) {
	entities, err := f.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return entities, nil
}
