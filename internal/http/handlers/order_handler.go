package handlers

import (
	"errors"
	"sync"

	"nepmartadmin/internal/domain"
	applog "nepmartadmin/internal/log"
	"nepmartadmin/internal/remote"
	"nepmartadmin/internal/services"
	"nepmartadmin/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Tracker *services.Tracker
}

// orderRow and customRow are render models: the raw order plus the resolved
// display name and, for standard orders, the line-item-0 status (or "N/A").
type orderRow struct {
	domain.Order
	UserName    string
	StatusLabel string
}

type customRow struct {
	domain.CustomOrder
	UserName string
}

// GET /orders
func (h *OrderHandler) Page(c *fiber.Ctx) error {
	res := h.Tracker.Load(c.Context())
	if res.OrdersErr != nil {
		applog.Error(c, "orders.load.normal.fail", res.OrdersErr, nil)
	}
	if res.CustomErr != nil {
		applog.Error(c, "orders.load.custom.fail", res.CustomErr, nil)
	}

	// Resolve every distinct userId concurrently through the shared cache,
	// so all cards for the same id show the same name.
	ids := h.Tracker.UserIDs()
	names := make(map[string]string, len(ids))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			name := h.Tracker.UserName(c.Context(), id)
			mu.Lock()
			names[id] = name
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	orders := h.Tracker.Orders()
	rows := make([]orderRow, 0, len(orders))
	for i := range orders {
		rows = append(rows, orderRow{
			Order:       orders[i],
			UserName:    names[orders[i].UserID],
			StatusLabel: orders[i].Status(),
		})
	}
	customs := h.Tracker.CustomOrders()
	customRows := make([]customRow, 0, len(customs))
	for i := range customs {
		customRows = append(customRows, customRow{
			CustomOrder: customs[i],
			UserName:    names[customs[i].UserID],
		})
	}

	return render(c, "orders", fiber.Map{
		"Orders":        rows,
		"CustomOrders":  customRows,
		"OrdersErr":     res.OrdersErr != nil,
		"CustomErr":     res.CustomErr != nil,
		"StatusOptions": []string{domain.StatusCancelled, domain.StatusDelivering, domain.StatusDelivered},
	})
}

// POST /orders/:kind/:id/status
func (h *OrderHandler) SetStatus(c *fiber.Ctx) error {
	kind, ok := domain.ValidOrderKind(c.Params("kind"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid order kind")
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid order id")
	}
	status := c.FormValue("status")
	if err := h.Tracker.SetStatus(c.Context(), kind, id, status); err != nil {
		if errors.Is(err, services.ErrUnknownStatus) {
			return c.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		applog.Error(c, "orders.status.fail", err, map[string]any{"order_id": id, "status": status})
		return c.Status(fiber.StatusBadGateway).SendString("could not update status")
	}
	applog.Audit(c, "orders.status", map[string]any{"order_id": id, "kind": kind, "status": status})
	return c.Redirect("/orders")
}

// GET /orders/preview/:id
// Read-only product snapshot for the preview modal. Missing product and
// transport failure are distinct outcomes.
func (h *OrderHandler) Preview(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	p, err := h.Tracker.Preview(c.Context(), id)
	if errors.Is(err, remote.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	if err != nil {
		applog.Error(c, "orders.preview.fail", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "could not fetch product"})
	}
	return c.JSON(p)
}

// POST /orders/:id/delete
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid order id")
	}
	if c.FormValue("confirm") == "" {
		return c.Status(fiber.StatusBadRequest).SendString("deletion not confirmed")
	}
	if err := h.Tracker.Delete(c.Context(), id); err != nil {
		applog.Error(c, "orders.delete.fail", err, map[string]any{"order_id": id})
		return c.Status(fiber.StatusBadGateway).SendString("could not delete order")
	}
	applog.Audit(c, "orders.delete", map[string]any{"order_id": id})
	return c.Redirect("/orders")
}
