package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cypher125/siwes/internal/tokenstore"
)

// Paths inside the protected trees that must stay reachable without a
// session.
var publicPaths = map[string]bool{
	"/student/login":    true,
	"/supervisor/login": true,
	"/admin/login":      true,
	"/admin/register":   true,
}

var protectedPrefixes = []string{"/student", "/supervisor", "/admin"}

// EdgeGuard runs before anything in a protected tree is served. It
// checks only that an access-token cookie is present; it does not
// verify the token or decode a role from it. Role enforcement happens
// in the client guard after the auth state resolves.
func EdgeGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		if publicPaths[path] {
			return c.Next()
		}

		prefix := matchProtectedPrefix(path)
		if prefix == "" {
			return c.Next()
		}

		if c.Cookies(tokenstore.AccessToken) == "" {
			// Redirect to the login page keyed by the URL prefix.
			return c.Redirect(prefix+"/login", fiber.StatusFound)
		}

		return c.Next()
	}
}

func matchProtectedPrefix(path string) string {
	for _, prefix := range protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return prefix
		}
	}
	return ""
}
