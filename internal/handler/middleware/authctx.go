package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/cypher125/siwes/internal/authstate"
	"github.com/cypher125/siwes/internal/service"
	"github.com/cypher125/siwes/internal/session"
	"github.com/cypher125/siwes/internal/tokenstore"
	"github.com/cypher125/siwes/internal/upstream"
)

const authContextKey = "authctx"

// AuthContext builds the per-request auth state holder: cookie-backed
// token store, redis-bound session cache, and the state machine
// rehydrated from both. Requests without a session-id cookie get one
// assigned so a subsequent login has somewhere to store the snapshot.
func AuthContext(auth *service.AuthService, client *upstream.Client, sessions *session.Store, cookieDomain string, secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokens := tokenstore.NewCookieStore(c, cookieDomain, secure)

		sid := tokens.Get(tokenstore.SessionID)
		if sid == "" {
			sid = uuid.NewString()
			tokens.Set(tokenstore.SessionID, sid, client.RefreshTTLDays())
		}

		sess := client.Session(tokens, sessions.Bind(sid))
		ac := authstate.New(auth, sess, nil)
		ac.Initialize(c.UserContext())

		c.Locals(authContextKey, ac)
		return c.Next()
	}
}

// AuthFromCtx returns the request's auth state holder. It panics when
// the AuthContext middleware did not run; routes are wired so it
// always has.
func AuthFromCtx(c *fiber.Ctx) *authstate.Context {
	ac, ok := c.Locals(authContextKey).(*authstate.Context)
	if !ok {
		panic("authctx middleware not installed")
	}
	return ac
}
