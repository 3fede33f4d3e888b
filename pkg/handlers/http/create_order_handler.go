package http

import (
	"time"

	"github.com/VaultPoint/LedgerShield/pkg/domain/order"
	"github.com/VaultPoint/LedgerShield/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type createOrderHandler struct {
	logger *logrus.Logger
	repo   order.Repository
}

func NewCreateOrderHandler(logger *logrus.Logger, repo order.Repository) Handler {
	return &createOrderHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary Create a new Order
// @Description Registers an order and returns it with its generated ID
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body request.CreateOrderRequest true "Order request body"
// @Success 201 {object} order.Order "Order created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/v1/orders [post]
func (s *createOrderHandler) Handle(c *fiber.Ctx) error {
	var req request.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	now := time.Now()
	entity := order.Order{
		ID:           uuid.New(),
		CustomerName: req.CustomerName,
		Item:         req.Item,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		Status:       order.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(c.Context(), &entity); err != nil {
		s.logger.WithError(err).Error("failed to create order")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create order"})
	}

	return c.Status(fiber.StatusCreated).JSON(entity)
}
