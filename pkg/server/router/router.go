package router

import "github.com/gofiber/fiber/v2"

// ServerRouter builds a route tree onto a fiber application.
type ServerRouter interface {
	BuildRoutes(router *fiber.App) error
}
