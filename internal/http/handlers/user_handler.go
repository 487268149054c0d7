package handlers

import (
	"errors"

	applog "nepmartadmin/internal/log"
	"nepmartadmin/internal/services"
	"nepmartadmin/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Dir *services.Directory
}

// GET /users
func (h *UserHandler) Page(c *fiber.Ctx) error {
	loadErr := h.Dir.Load(c.Context())
	if loadErr != nil {
		applog.Error(c, "users.load.fail", loadErr, nil)
	}
	return render(c, "users", fiber.Map{
		"Users":   h.Dir.Users(),
		"LoadErr": loadErr != nil,
	})
}

// POST /users/:id/delete
// The operator must type the confirmation phrase; anything else keeps the
// delete disarmed and the store untouched.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid user id")
	}
	if err := h.Dir.Delete(c.Context(), id, c.FormValue("confirm")); err != nil {
		if errors.Is(err, services.ErrConfirmMismatch) {
			applog.Security(c, "users.delete.unconfirmed", map[string]any{"user_id": id})
			return c.Status(fiber.StatusBadRequest).SendString("type the confirmation phrase to delete")
		}
		applog.Error(c, "users.delete.fail", err, map[string]any{"user_id": id})
		return c.Status(fiber.StatusBadGateway).SendString("could not delete user")
	}
	applog.Audit(c, "users.delete", map[string]any{"user_id": id})
	return c.Redirect("/users")
}
