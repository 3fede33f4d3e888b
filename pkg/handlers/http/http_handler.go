package http

import (
	"github.com/gofiber/fiber/v2"
)

// ErrInvalidJsonPayload is returned to clients whose request body cannot be
// parsed as JSON.
const ErrInvalidJsonPayload = "invalid JSON payload"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	GetVersionHandler Handler

	// Order
	CreateOrderHandler Handler
	ListOrdersHandler  Handler
	GetOrderHandler    Handler
	UpdateOrderHandler Handler
	DeleteOrderHandler Handler

	// Payment
	CreatePaymentHandler Handler
	ListPaymentsHandler  Handler
	GetPaymentHandler    Handler
	RefundPaymentHandler Handler
}
