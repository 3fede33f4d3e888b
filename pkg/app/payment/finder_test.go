package payment_test

import (
	"context"
	"testing"

	appPayment "github.com/VaultPoint/LedgerShield/pkg/app/payment"
	"github.com/VaultPoint/LedgerShield/pkg/domain"
	"github.com/VaultPoint/LedgerShield/pkg/infra/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinder_FindByID(t *testing.T) {
	repo := repository.NewPaymentMemoryRepository()
	finder := appPayment.NewFinder(repo)
	ctx := context.Background()

	entity := capturedPayment()
	require.NoError(t, repo.Create(ctx, entity))

	found, err := finder.FindByID(ctx, entity.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.ID, found.ID)
	assert.Equal(t, entity.CardNumber, found.CardNumber)
}

func TestFinder_FindByID_Unknown(t *testing.T) {
	finder := appPayment.NewFinder(repository.NewPaymentMemoryRepository())

	_, err := finder.FindByID(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, domain.IsNotFoundError(err))
}

func TestFinder_FindAll(t *testing.T) {
	repo := repository.NewPaymentMemoryRepository()
	finder := appPayment.NewFinder(repo)
	ctx := context.Background()

	first := capturedPayment()
	second := capturedPayment()
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	all, err := finder.FindAll(ctx)

	require.NoError(t, err)
	assert.Len(t, all, 2)
}
