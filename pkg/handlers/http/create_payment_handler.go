package http

import (
	"time"

	"github.com/VaultPoint/LedgerShield/pkg/domain/payment"
	"github.com/VaultPoint/LedgerShield/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type createPaymentHandler struct {
	logger *logrus.Logger
	repo   payment.Repository
}

func NewCreatePaymentHandler(logger *logrus.Logger, repo payment.Repository) Handler {
	return &createPaymentHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary Capture a new Payment
// @Description Captures a card payment for an order. The cvv is discarded
// after validation and never stored.
// @Tags Payments
// @Accept json
// @Produce json
// @Param payment body request.CreatePaymentRequest true "Payment request body"
// @Success 201 {object} payment.Payment "Payment captured successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/v1/payments [post]
func (s *createPaymentHandler) Handle(c *fiber.Ctx) error {
	var req request.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order ID"})
	}

	entity := payment.Payment{
		ID:         uuid.New(),
		OrderID:    orderID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		CardNumber: req.CardNumber,
		CardHolder: req.CardHolder,
		Status:     payment.StatusCaptured,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Create(c.Context(), &entity); err != nil {
		s.logger.WithError(err).Error("failed to create payment")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create payment"})
	}

	return c.Status(fiber.StatusCreated).JSON(entity)
}
