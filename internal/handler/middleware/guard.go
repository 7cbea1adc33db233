package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cypher125/siwes/internal/domain"
	"github.com/cypher125/siwes/internal/guard"
)

// RequireRole is the client guard as middleware: it evaluates the
// resolved auth state against the tree's required role. A mismatched
// role is redirected to its own dashboard, an unauthenticated session
// to the landing page.
func RequireRole(required domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap := AuthFromCtx(c).Snapshot()

		switch result := guard.Evaluate(snap, required); result.Decision {
		case guard.Allow:
			return c.Next()
		case guard.Placeholder:
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"status": "loading",
			})
		default:
			return c.Redirect(result.Location, fiber.StatusFound)
		}
	}
}
