package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/VaultPoint/LedgerShield/pkg/domain"
	"github.com/VaultPoint/LedgerShield/pkg/domain/order"
	"github.com/google/uuid"
)

// orderMemoryRepository is a process-local store. Entries do not survive
// a restart; the service carries no durable persistence by design.
type orderMemoryRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]order.Order
}

func NewOrderMemoryRepository() order.Repository {
	return &orderMemoryRepository{
		orders: make(map[uuid.UUID]order.Order),
	}
}

func (r *orderMemoryRepository) Create(ctx context.Context, entity *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[entity.ID] = *entity
	return nil
}

func (r *orderMemoryRepository) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entity, ok := r.orders[id]
	if !ok {
		return nil, domain.NewNotFoundError("order", id)
	}
	return &entity, nil
}

func (r *orderMemoryRepository) List(ctx context.Context) ([]order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entities := make([]order.Order, 0, len(r.orders))
	for _, entity := range r.orders {
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

func (r *orderMemoryRepository) Update(ctx context.Context, entity *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[entity.ID]; !ok {
		return domain.NewNotFoundError("order", entity.ID)
	}
	r.orders[entity.ID] = *entity
	return nil
}

func (r *orderMemoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return domain.NewNotFoundError("order", id)
	}
	delete(r.orders, id)
	return nil
}
