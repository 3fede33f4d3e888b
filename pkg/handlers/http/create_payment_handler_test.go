package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/VaultPoint/LedgerShield/pkg/domain/payment"
	"github.com/VaultPoint/LedgerShield/pkg/infra/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentHandler_Success(t *testing.T) {
	logger := logrus.New()
	repo := repository.NewPaymentMemoryRepository()
	handler := NewCreatePaymentHandler(logger, repo)

	app := fiber.New()
	app.Post("/api/v1/payments", handler.Handle)

	orderID := uuid.New()
	body, err := json.Marshal(map[string]interface{}{
		"order_id":    orderID.String(),
		"amount":      99.90,
		"currency":    "EUR",
		"card_number": "4111111111111111",
		"card_holder": "John Doe",
		"cvv":         "123",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var created payment.Payment
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, orderID, created.OrderID)
	assert.Equal(t, payment.StatusCaptured, created.Status)
	assert.Nil(t, created.RefundedAt)

	// The cvv must not survive past validation, neither in the response
	// nor in the store.
	assert.NotContains(t, string(raw), "cvv")

	stored, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "4111111111111111", stored.CardNumber)
	assert.Equal(t, "John Doe", stored.CardHolder)
}

func TestCreatePaymentHandler_InvalidJson(t *testing.T) {
	logger := logrus.New()
	repo := repository.NewPaymentMemoryRepository()
	handler := NewCreatePaymentHandler(logger, repo)

	app := fiber.New()
	app.Post("/api/v1/payments", handler.Handle)

	req := httptest.NewRequest("POST", "/api/v1/payments", bytes.NewReader([]byte(`not json at all`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, ErrInvalidJsonPayload, payload["error"])
}

func TestCreatePaymentHandler_ValidationFailure(t *testing.T) {
	logger := logrus.New()
	repo := repository.NewPaymentMemoryRepository()
	handler := NewCreatePaymentHandler(logger, repo)

	app := fiber.New()
	app.Post("/api/v1/payments", handler.Handle)

	body, err := json.Marshal(map[string]interface{}{
		"order_id":    uuid.NewString(),
		"amount":      99.90,
		"currency":    "EUR",
		"card_holder": "John Doe",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "card_number is required", payload["error"])
}
