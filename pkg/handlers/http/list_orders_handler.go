package http

import (
	"github.com/VaultPoint/LedgerShield/pkg/app/order"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type listOrdersHandler struct {
	logger *logrus.Logger
	finder order.Finder
}

func NewListOrdersHandler(logger *logrus.Logger, finder order.Finder) Handler {
	return &listOrdersHandler{
		logger: logger,
		finder: finder,
	}
}

// Handle @Summary Retrieve all Orders
// @Description Returns every stored order sorted by creation time
// @Tags Orders
// @Produce json
// @Success 200 {array} order.Order "List of orders"
// @Router /api/v1/orders [get]
func (s *listOrdersHandler) Handle(c *fiber.Ctx) error {
	entities, err := s.finder.FindAll(c.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to list orders")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list orders"})
	}

	return c.Status(fiber.StatusOK).JSON(entities)
}
