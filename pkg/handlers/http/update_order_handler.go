package http

import (
	"time"

	"github.com/VaultPoint/LedgerShield/pkg/domain"
	"github.com/VaultPoint/LedgerShield/pkg/domain/order"
	"github.com/VaultPoint/LedgerShield/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type updateOrderHandler struct {
	logger *logrus.Logger
	repo   order.Repository
}

func NewUpdateOrderHandler(logger *logrus.Logger, repo order.Repository) Handler {
	return &updateOrderHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary Update an Order
// @Description Replaces the mutable fields of an existing order
// @Tags Orders
// @Accept json
// @Produce json
// @Param order_id path string true "Order ID"
// @Param order body request.UpdateOrderRequest true "Order request body"
// @Success 200 {object} order.Order "Order updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 404 {object} map[string]interface{} "Order not found"
// @Router /api/v1/orders/{order_id} [put]
func (s *updateOrderHandler) Handle(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("order_id"))
	if err != nil {
		s.logger.WithError(err).Error("failed to parse order ID")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order ID"})
	}

	var req request.UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entity, err := s.repo.Get(c.Context(), orderID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
		}
		s.logger.WithError(err).Error("failed to fetch order")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch order"})
	}

	entity.CustomerName = req.CustomerName
	entity.Item = req.Item
	entity.Quantity = req.Quantity
	entity.UnitPrice = req.UnitPrice
	entity.Status = req.Status
	entity.UpdatedAt = time.Now()

	if err := s.repo.Update(c.Context(), entity); err != nil {
		s.logger.WithError(err).Error("failed to update order")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update order"})
	}

	return c.Status(fiber.StatusOK).JSON(entity)
}
