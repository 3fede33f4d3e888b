package http

import (
	"github.com/VaultPoint/LedgerShield/pkg/domain"
	"github.com/VaultPoint/LedgerShield/pkg/domain/order"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type deleteOrderHandler struct {
	logger *logrus.Logger
	repo   order.Repository
}

// NewDeleteOrderHandler @Summary Delete an Order
// @Description Removes an order from the store
// @Tags Orders
// @Param order_id path string true "Order ID"
// @Success 204 "Order deleted successfully"
// @Failure 404 {object} map[string]interface{} "Order not found"
// @Router /api/v1/orders/{order_id} [delete]
func NewDeleteOrderHandler(logger *logrus.Logger, repo order.Repository) Handler {
	return &deleteOrderHandler{
		logger: logger,
		repo:   repo,
	}
}

func (s *deleteOrderHandler) Handle(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("order_id"))
	if err != nil {
		s.logger.WithError(err).Error("failed to parse order ID")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order ID"})
	}

	if err := s.repo.Delete(c.Context(), orderID); err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
		}
		s.logger.WithError(err).Error("failed to delete order")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete order"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
