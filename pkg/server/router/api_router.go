package router

import (
	handlers "github.com/VaultPoint/LedgerShield/pkg/handlers/http"
	"github.com/VaultPoint/LedgerShield/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

type apiRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    handlers.HandlerTransport
}

func NewApiRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport handlers.HandlerTransport,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	// Recovery first so a panicking handler unwinds into a 500 instead of
	// tearing down the connection. Obfuscation sits directly behind it and
	// sees every api exchange.
	router.Use(r.middlewareTransport.PanicRecoverMiddleware.Middleware())
	router.Use(r.middlewareTransport.ObfuscationMiddleware.Middleware())

	router.Get("/", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"service": "ledgershield",
			"status":  "running",
		})
	})

	router.Get("/version", r.handlerTransport.GetVersionHandler.Handle)

	v1 := router.Group("/api/v1")
	{
		orders := v1.Group("/orders")
		{
			orders.Post("", r.handlerTransport.CreateOrderHandler.Handle)
			orders.Get("", r.handlerTransport.ListOrdersHandler.Handle)
			orders.Get("/:order_id", r.handlerTransport.GetOrderHandler.Handle)
			orders.Put("/:order_id", r.handlerTransport.UpdateOrderHandler.Handle)
			orders.Delete("/:order_id", r.handlerTransport.DeleteOrderHandler.Handle)
		}

		payments := v1.Group("/payments")
		{
			payments.Post("", r.handlerTransport.CreatePaymentHandler.Handle)
			payments.Get("", r.handlerTransport.ListPaymentsHandler.Handle)
			payments.Get("/:payment_id", r.handlerTransport.GetPaymentHandler.Handle)
			payments.Post("/:payment_id/refund", r.handlerTransport.RefundPaymentHandler.Handle)
		}
	}

	return nil
}
