package handlers

import (
	applog "nepmartadmin/internal/log"
	"nepmartadmin/internal/session"

	"github.com/gofiber/fiber/v2"
)

// RequireSession admits a request to protected screens only while the
// persisted token record is valid; otherwise it redirects to login. An
// expired token is treated as absent, never erased here.
func RequireSession(g *session.Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !g.IsValid() {
			applog.Security(c, "access.denied", nil)
			return c.Redirect("/login")
		}
		return c.Next()
	}
}

// PublicOnly bounces an already-authenticated viewer off the login screen.
func PublicOnly(g *session.Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if g.IsValid() {
			return c.Redirect("/")
		}
		return c.Next()
	}
}

// Fallback routes unknown paths to the landing screen when the session is
// valid, else to login.
func Fallback(g *session.Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if g.IsValid() {
			return c.Redirect("/")
		}
		return c.Redirect("/login")
	}
}
