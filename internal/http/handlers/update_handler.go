package handlers

import (
	"errors"

	applog "nepmartadmin/internal/log"
	"nepmartadmin/internal/services"
	"nepmartadmin/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type UpdateHandler struct {
	Feed *services.Broadcast
}

// GET /updates
func (h *UpdateHandler) Page(c *fiber.Ctx) error {
	loadErr := h.Feed.Load(c.Context())
	if loadErr != nil {
		applog.Error(c, "updates.load.fail", loadErr, nil)
	}
	return render(c, "updates", fiber.Map{
		"Updates": h.Feed.Messages(),
		"LoadErr": loadErr != nil,
	})
}

// POST /updates
func (h *UpdateHandler) Post(c *fiber.Ctx) error {
	if err := h.Feed.Post(c.Context(), c.FormValue("msg")); err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		applog.Error(c, "updates.post.fail", err, nil)
		return c.Status(fiber.StatusBadGateway).SendString("could not post update")
	}
	applog.Audit(c, "updates.post", nil)
	return c.Redirect("/updates")
}

// POST /updates/:id/delete
func (h *UpdateHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid update id")
	}
	if err := h.Feed.Delete(c.Context(), id); err != nil {
		applog.Error(c, "updates.delete.fail", err, map[string]any{"update_id": id})
		return c.Status(fiber.StatusBadGateway).SendString("could not delete update")
	}
	applog.Audit(c, "updates.delete", map[string]any{"update_id": id})
	return c.Redirect("/updates")
}
