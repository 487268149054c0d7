// Package remote is the typed client for the NepMart store API. The store is
// an external collaborator: this process owns none of its data and never
// reads back authoritative write results beyond the response status.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"nepmartadmin/internal/domain"
)

// ErrNotFound distinguishes an absent entity from a transport failure.
var ErrNotFound = errors.New("remote: not found")

type Client struct {
	base string
	http *http.Client
}

func New(baseURL string) *Client {
	return &Client{base: strings.TrimRight(baseURL, "/"), http: &http.Client{}}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("remote: encode %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rdr)
	if err != nil {
		return fmt.Errorf("remote: %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	case res.StatusCode >= 300:
		return fmt.Errorf("remote: %s %s: unexpected status %d", method, path, res.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("remote: decode %s %s: %w", method, path, err)
	}
	return nil
}

// ---------- Products ----------

func (c *Client) ListProducts(ctx context.Context, kind domain.ProductKind) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+string(kind), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, kind domain.ProductKind, id string) (domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+string(kind)+"/"+id, nil, &out); err != nil {
		return domain.Product{}, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, kind domain.ProductKind, p domain.Product) (domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPost, "/api/products/"+string(kind), p, &out); err != nil {
		return domain.Product{}, err
	}
	return out, nil
}

// UpdateProduct is a full-record overwrite, not a partial patch.
func (c *Client) UpdateProduct(ctx context.Context, kind domain.ProductKind, id string, p domain.Product) (domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPut, "/api/products/"+string(kind)+"/"+id, p, &out); err != nil {
		return domain.Product{}, err
	}
	return out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, kind domain.ProductKind, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+string(kind)+"/"+id, nil, nil)
}

// ---------- Orders ----------

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var out struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders/normal", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (c *Client) ListCustomOrders(ctx context.Context) ([]domain.CustomOrder, error) {
	var out struct {
		CustomOrders []domain.CustomOrder `json:"customOrders"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders/custom", nil, &out); err != nil {
		return nil, err
	}
	return out.CustomOrders, nil
}

func (c *Client) SetOrderStatus(ctx context.Context, kind domain.OrderKind, id, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPut, "/api/orders/"+string(kind)+"/"+id, body, nil)
}

// DeleteOrder removes a standard order. The store exposes this as a POST.
func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/orders/deln/"+id, nil, nil)
}

// ResolveUserName returns the display name behind a userId. Callers are
// expected to memoize; the endpoint is hit once per distinct id per screen.
func (c *Client) ResolveUserName(ctx context.Context, userID string) (string, error) {
	var out struct {
		UserName string `json:"userName"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/products/data/user/"+userID, nil, &out); err != nil {
		return "", err
	}
	return out.UserName, nil
}

// ---------- Users & update feed ----------

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := c.do(ctx, http.MethodGet, "/api/extra/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/extra/users/"+id, nil, nil)
}

func (c *Client) ListUpdates(ctx context.Context) ([]domain.UpdateMessage, error) {
	var out []domain.UpdateMessage
	if err := c.do(ctx, http.MethodGet, "/api/extra/update", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateUpdate(ctx context.Context, msg string) (domain.UpdateMessage, error) {
	var out domain.UpdateMessage
	if err := c.do(ctx, http.MethodPost, "/api/extra/update", map[string]string{"msg": msg}, &out); err != nil {
		return domain.UpdateMessage{}, err
	}
	return out, nil
}

// DeleteUpdate removes a feed entry. POST, matching the store's route shape.
func (c *Client) DeleteUpdate(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/extra/update/delete/"+id, nil, nil)
}
