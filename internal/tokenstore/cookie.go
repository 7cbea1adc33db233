package tokenstore

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieStore binds the token store to a single request/response pair.
// Reads come from the request cookies, writes become Set-Cookie headers
// on the response. Values written during a request shadow the inbound
// cookie so the rest of the request sees the fresh token.
type CookieStore struct {
	c       *fiber.Ctx
	domain  string
	secure  bool
	written map[string]string
	removed map[string]bool
}

func NewCookieStore(c *fiber.Ctx, domain string, secure bool) *CookieStore {
	return &CookieStore{
		c:       c,
		domain:  domain,
		secure:  secure,
		written: make(map[string]string),
		removed: make(map[string]bool),
	}
}

func (s *CookieStore) Get(name string) string {
	if s.removed[name] {
		return ""
	}
	if v, ok := s.written[name]; ok {
		return v
	}
	return s.c.Cookies(name)
}

func (s *CookieStore) Set(name, value string, ttlDays int) {
	if ttlDays <= 0 {
		ttlDays = 1
	}
	s.written[name] = value
	delete(s.removed, name)
	s.c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   s.domain,
		Expires:  time.Now().Add(time.Duration(ttlDays) * 24 * time.Hour),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (s *CookieStore) Remove(name string) {
	delete(s.written, name)
	s.removed[name] = true
	s.c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   s.domain,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
