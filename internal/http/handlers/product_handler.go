package handlers

import (
	"errors"

	"nepmartadmin/internal/domain"
	applog "nepmartadmin/internal/log"
	"nepmartadmin/internal/services"
	"nepmartadmin/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.Catalog
}

// GET /
// Both collections load concurrently; one failing renders as an error note
// for that column while the other shows normally.
func (h *ProductHandler) Page(c *fiber.Ctx) error {
	dataErr, customErr := h.Catalog.LoadAll(c.Context())
	if dataErr != nil {
		applog.Error(c, "products.load.data.fail", dataErr, nil)
	}
	if customErr != nil {
		applog.Error(c, "products.load.custom.fail", customErr, nil)
	}
	return render(c, "products", fiber.Map{
		"Data":       h.Catalog.Products(domain.KindData),
		"Custom":     h.Catalog.Products(domain.KindCustom),
		"DataErr":    dataErr != nil,
		"CustomErr":  customErr != nil,
		"Categories": domain.CategoryOptions,
	})
}

func formInput(c *fiber.Ctx) services.ProductInput {
	return services.ProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("desc"),
		Price:       c.FormValue("price"),
		Discount:    c.FormValue("discount"),
		Category:    c.FormValue("category"),
		Stock:       c.FormValue("stock"),
		ImageURL:    c.FormValue("url"),
	}
}

// POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	kind, ok := domain.ValidProductKind(c.FormValue("type"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid product type")
	}
	if err := h.Catalog.Create(c.Context(), kind, formInput(c)); err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		applog.Error(c, "products.create.fail", err, map[string]any{"kind": kind})
		return c.Status(fiber.StatusBadGateway).SendString("could not create product")
	}
	applog.Audit(c, "products.create", map[string]any{"kind": kind})
	return c.Redirect("/")
}

// POST /products/:kind/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	kind, ok := domain.ValidProductKind(c.Params("kind"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid product type")
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid product id")
	}
	if err := h.Catalog.Update(c.Context(), kind, id, formInput(c)); err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		applog.Error(c, "products.update.fail", err, map[string]any{"kind": kind, "id": id})
		return c.Status(fiber.StatusBadGateway).SendString("could not update product")
	}
	applog.Audit(c, "products.update", map[string]any{"kind": kind, "id": id})
	return c.Redirect("/")
}

// POST /products/:kind/:id/delete
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	kind, ok := domain.ValidProductKind(c.Params("kind"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid product type")
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid product id")
	}
	if c.FormValue("confirm") == "" {
		return c.Status(fiber.StatusBadRequest).SendString("deletion not confirmed")
	}
	if err := h.Catalog.Delete(c.Context(), kind, id); err != nil {
		applog.Error(c, "products.delete.fail", err, map[string]any{"kind": kind, "id": id})
		return c.Status(fiber.StatusBadGateway).SendString("could not delete product")
	}
	applog.Audit(c, "products.delete", map[string]any{"kind": kind, "id": id})
	return c.Redirect("/")
}
