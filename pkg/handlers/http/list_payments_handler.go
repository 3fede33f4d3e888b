package http

import (
	"github.com/VaultPoint/LedgerShield/pkg/app/payment"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type listPaymentsHandler struct {
	logger *logrus.Logger
	finder payment.Finder
}

func NewListPaymentsHandler(logger *logrus.Logger, finder payment.Finder) Handler {
	return &listPaymentsHandler{
		logger: logger,
		finder: finder,
	}
}

// Handle @Summary Retrieve all Payments
// @Description Returns every captured payment sorted by creation time
// @Tags Payments
// @Produce json
// @Success 200 {array} payment.Payment "List of payments"
// @Router /api/v1/payments [get]
func (s *listPaymentsHandler) Handle(c *fiber.Ctx) error {
	entities, err := s.finder.FindAll(c.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to list payments")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list payments"})
	}

	return c.Status(fiber.StatusOK).JSON(entities)
}
