package payment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, entity *Payment) error
	Get(ctx context.Context, id uuid.UUID) (*Payment, error)
	List(ctx context.Context) ([]Payment, error)
	Update(ctx context.Context, entity *Payment) error
}
