package middleware

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"

	"github.com/cypher125/siwes/pkg/logger"
)

// Recovery turns panics into 500 responses instead of dropped
// connections.
func Recovery(log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					"panic", r,
					"path", c.Path(),
					"stack", string(debug.Stack()),
				)

				if err := c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "internal server error",
				}); err != nil {
					log.Error("failed to send panic response", "error", err)
				}
			}
		}()

		return c.Next()
	}
}
