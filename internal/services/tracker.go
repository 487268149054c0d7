package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"nepmartadmin/internal/domain"
	"nepmartadmin/internal/lookup"
	"nepmartadmin/internal/remote"
)

var (
	ErrUnknownStatus = errors.New("unknown order status")
	ErrUnknownKind   = errors.New("unknown order kind")
)

// Tracker is the view-model behind the orders screen: two independently
// sourced order lists, a shared per-screen user-name cache, and a status
// mutation that reconciles local state without a full reload.
type Tracker struct {
	remote *remote.Client

	mu     sync.Mutex
	orders []domain.Order
	custom []domain.CustomOrder
	names  *lookup.Cache
}

func NewTracker(rc *remote.Client) *Tracker {
	t := &Tracker{remote: rc}
	t.names = lookup.New(func(ctx context.Context, userID string) (string, error) {
		return rc.ResolveUserName(ctx, userID)
	})
	return t
}

// LoadResult carries the per-list outcome of one Load. A failed list stays
// empty while the other renders normally.
type LoadResult struct {
	OrdersErr error
	CustomErr error
}

// Load fetches both order collections concurrently. Either side may fail
// without blocking the other; the name cache is reset because a load marks a
// new screen lifetime.
func (t *Tracker) Load(ctx context.Context) LoadResult {
	var (
		res    LoadResult
		orders []domain.Order
		custom []domain.CustomOrder
		wg     sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		orders, res.OrdersErr = t.remote.ListOrders(ctx)
	}()
	go func() {
		defer wg.Done()
		custom, res.CustomErr = t.remote.ListCustomOrders(ctx)
	}()
	wg.Wait()

	t.mu.Lock()
	if res.OrdersErr == nil {
		t.orders = orders
	} else {
		t.orders = nil
	}
	if res.CustomErr == nil {
		t.custom = custom
	} else {
		t.custom = nil
	}
	t.mu.Unlock()
	t.names.Reset()
	return res
}

func (t *Tracker) Orders() []domain.Order {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.Order, len(t.orders))
	copy(out, t.orders)
	return out
}

func (t *Tracker) CustomOrders() []domain.CustomOrder {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.CustomOrder, len(t.custom))
	copy(out, t.custom)
	return out
}

// UserName resolves the display name for a userId through the shared
// per-screen cache: one lookup per distinct id, the raw id on failure.
func (t *Tracker) UserName(ctx context.Context, userID string) string {
	return t.names.Resolve(ctx, userID)
}

// UserIDs returns the distinct userIds across both loaded lists, in first
// appearance order.
func (t *Tracker) UserIDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	seen := map[string]bool{}
	var ids []string
	for i := range t.orders {
		if id := t.orders[i].UserID; id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for i := range t.custom {
		if id := t.custom[i].UserID; id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// SetStatus writes the new status to the remote store, then applies it to
// the matching local record in place. Each variant knows where its status
// lives. On failure local state is untouched.
func (t *Tracker) SetStatus(ctx context.Context, kind domain.OrderKind, orderID, status string) error {
	if !domain.ValidStatus(status) {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	if _, ok := domain.ValidOrderKind(string(kind)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err := t.remote.SetOrderStatus(ctx, kind, orderID, status); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if carrier := t.findLocked(kind, orderID); carrier != nil {
		carrier.ApplyStatus(status)
	}
	return nil
}

func (t *Tracker) findLocked(kind domain.OrderKind, orderID string) domain.StatusCarrier {
	if kind == domain.OrderCustom {
		for i := range t.custom {
			if t.custom[i].ID == orderID {
				return &t.custom[i]
			}
		}
		return nil
	}
	for i := range t.orders {
		if t.orders[i].ID == orderID {
			return &t.orders[i]
		}
	}
	return nil
}

// Preview fetches a single data product for read-only display. A missing
// product surfaces as remote.ErrNotFound, distinct from transport failure.
func (t *Tracker) Preview(ctx context.Context, productID string) (domain.Product, error) {
	return t.remote.GetProduct(ctx, domain.KindData, productID)
}

// Delete removes a standard order from the remote store and, on success,
// drops exactly that order from the local list. Confirmation is the
// caller's responsibility.
func (t *Tracker) Delete(ctx context.Context, orderID string) error {
	if err := t.remote.DeleteOrder(ctx, orderID); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.orders {
		if t.orders[i].ID == orderID {
			t.orders = append(t.orders[:i], t.orders[i+1:]...)
			break
		}
	}
	return nil
}
