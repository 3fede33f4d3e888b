package payment

import (
	"context"
	"time"

	"github.com/VaultPoint/LedgerShield/pkg/domain"
	"github.com/VaultPoint/LedgerShield/pkg/domain/payment"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Refunder interface {
	Refund(ctx context.Context, id uuid.UUID) (*payment.Payment, error)
}

type refunder struct {
	logger *logrus.Logger
	repo   payment.Repository
}

func NewRefunder(logger *logrus.Logger, repository payment.Repository) Refunder {
	return &refunder{
		logger: logger,
		repo:   repository,
	}
}

// Refund marks a captured payment as refunded. Refunding twice is rejected
// with domain.ErrPaymentAlreadyRefunded.
func (r *refunder) Refund(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	entity, err := r.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if entity.Status == payment.StatusRefunded {
		return nil, domain.ErrPaymentAlreadyRefunded
	}

	refundedAt := time.Now()
	entity.Status = payment.StatusRefunded
	entity.RefundedAt = &refundedAt

	if err := r.repo.Update(ctx, entity); err != nil {
		r.logger.WithError(err).Error("failed to persist refund")
		return nil, err
	}

	return entity, nil
}
