package http

import (
	"github.com/VaultPoint/LedgerShield/pkg/app/order"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type getOrderHandler struct {
	logger *logrus.Logger
	finder order.Finder
}

func NewGetOrderHandler(logger *logrus.Logger, finder order.Finder) Handler {
	return &getOrderHandler{
		logger: logger,
		finder: finder,
	}
}

// Handle @Summary Retrieve an Order by ID
// @Description Returns details of a specific order
// @Tags Orders
// @Produce json
// @Param order_id path string true "Order ID"
// @Success 200 {object} order.Order "Order details"
// @Router /api/v1/orders/{order_id} [get]
func (s *getOrderHandler) Handle(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("order_id"))
	if err != nil {
		s.logger.WithError(err).Error("failed to parse order ID")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order ID"})
	}

	entity, err := s.finder.FindByID(c.Context(), orderID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}

	return c.Status(fiber.StatusOK).JSON(entity)
}
