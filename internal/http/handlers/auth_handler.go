package handlers

import (
	"errors"

	applog "nepmartadmin/internal/log"
	"nepmartadmin/internal/session"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Guard *session.Guard
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	id := c.FormValue("id")
	pass := c.FormValue("password")

	if err := h.Guard.Login(id, pass); err != nil {
		if errors.Is(err, session.ErrBadCreds) {
			applog.Security(c, "auth.login.fail", map[string]any{"id": id})
			return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
				"Err":       "Invalid ID or password",
				"CSRFToken": c.Cookies("csrf_"),
			})
		}
		applog.Error(c, "auth.login.store", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
			"Message": "Could not start a session. Please try again.",
		})
	}

	applog.Audit(c, "auth.login.success", map[string]any{"id": id})
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.Guard.Logout(); err != nil {
		applog.Error(c, "auth.logout.store", err, nil)
	}
	applog.Audit(c, "auth.logout", nil)
	return c.Redirect("/login")
}
