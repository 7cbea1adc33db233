package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cypher125/siwes/internal/domain"
	"github.com/cypher125/siwes/internal/upstream"
)

// respondUpstream maps a wrapper failure onto the portal response. A
// dead session forces a full navigation to the landing page; the
// stores are already cleared by the time ErrSessionExpired surfaces,
// so there is no message to show at that point. Everything else passes
// the upstream's status and message through as an error object.
func respondUpstream(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrSessionExpired) {
		return c.Redirect("/", fiber.StatusFound)
	}

	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.StatusCode).JSON(fiber.Map{
			"error": apiErr.Message,
		})
	}

	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"error": "upstream service unavailable",
	})
}
