package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/VaultPoint/LedgerShield/pkg/domain"
	"github.com/VaultPoint/LedgerShield/pkg/domain/payment"
	"github.com/google/uuid"
)

type paymentMemoryRepository struct {
	mu       sync.RWMutex
	payments map[uuid.UUID]payment.Payment
}

func NewPaymentMemoryRepository() payment.Repository {
	return &paymentMemoryRepository{
		payments: make(map[uuid.UUID]payment.Payment),
	}
}

func (r *paymentMemoryRepository) Create(ctx context.Context, entity *payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.payments[entity.ID] = *entity
	return nil
}

func (r *paymentMemoryRepository) Get(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entity, ok := r.payments[id]
	if !ok {
		return nil, domain.NewNotFoundError("payment", id)
	}
	return &entity, nil
}

func (r *paymentMemoryRepository) List(ctx context.Context) ([]payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entities := make([]payment.Payment, 0, len(r.payments))
	for _, entity := range r.payments {
		entities = append(entities, entity)
	}
	sort.Slice(entities, func(i, j int) bool {
		if entities[i].CreatedAt.Equal(entities[j].CreatedAt) {
			return entities[i].ID.String() < entities[j].ID.String()
		}
		return entities[i].CreatedAt.Before(entities[j].CreatedAt)
	})
	return entities, nil
}

func (r *paymentMemoryRepository) Update(ctx context.Context, entity *payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.payments[entity.ID]; !ok {
		return domain.NewNotFoundError("payment", entity.ID)
	}
	r.payments[entity.ID] = *entity
	return nil
}
