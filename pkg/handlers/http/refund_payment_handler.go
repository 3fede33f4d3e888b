package http

import (
	"errors"

	"github.com/VaultPoint/LedgerShield/pkg/app/payment"
	"github.com/VaultPoint/LedgerShield/pkg/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type refundPaymentHandler struct {
	logger   *logrus.Logger
	refunder payment.Refunder
}

func NewRefundPaymentHandler(logger *logrus.Logger, refunder payment.Refunder) Handler {
	return &refundPaymentHandler{
		logger:   logger,
		refunder: refunder,
	}
}

// Handle @Summary Refund a Payment
// @Description Marks a captured payment as refunded
// @Tags Payments
// @Produce json
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} payment.Payment "Payment refunded successfully"
// @Failure 404 {object} map[string]interface{} "Payment not found"
// @Failure 409 {object} map[string]interface{} "Payment already refunded"
// @Router /api/v1/payments/{payment_id}/refund [post]
func (s *refundPaymentHandler) Handle(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("payment_id"))
	if err != nil {
		s.logger.WithError(err).Error("failed to parse payment ID")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payment ID"})
	}

	entity, err := s.refunder.Refund(c.Context(), paymentID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "payment not found"})
		}
		if errors.Is(err, domain.ErrPaymentAlreadyRefunded) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		s.logger.WithError(err).Error("failed to refund payment")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to refund payment"})
	}

	return c.Status(fiber.StatusOK).JSON(entity)
}
