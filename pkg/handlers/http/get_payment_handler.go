package http

import (
	"github.com/VaultPoint/LedgerShield/pkg/app/payment"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type getPaymentHandler struct {
	logger *logrus.Logger
	finder payment.Finder
}

func NewGetPaymentHandler(logger *logrus.Logger, finder payment.Finder) Handler {
	return &getPaymentHandler{
		logger: logger,
		finder: finder,
	}
}

// Handle @Summary Retrieve a Payment by ID
// @Description Returns details of a specific payment
// @Tags Payments
// @Produce json
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} payment.Payment "Payment details"
// @Router /api/v1/payments/{payment_id} [get]
func (s *getPaymentHandler) Handle(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("payment_id"))
	if err != nil {
		s.logger.WithError(err).Error("failed to parse payment ID")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payment ID"})
	}

	entity, err := s.finder.FindByID(c.Context(), paymentID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "payment not found"})
	}

	return c.Status(fiber.StatusOK).JSON(entity)
}
