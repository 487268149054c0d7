package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"nepmartadmin/internal/domain"
	"nepmartadmin/internal/remote"
	"nepmartadmin/internal/validate"
)

var ErrInvalidInput = errors.New("invalid input")

// ProductInput is the raw form state for create/update. Price and stock stay
// strings here because the required-field check runs before parsing.
type ProductInput struct {
	Name        string
	Description string
	Price       string
	Discount    string
	Category    string
	Stock       string
	ImageURL    string
}

// Catalog is the view-model over the two disjoint product collections. The
// kind discriminator is threaded through every operation.
type Catalog struct {
	remote *remote.Client

	mu    sync.Mutex
	lists map[domain.ProductKind][]domain.Product
}

func NewCatalog(rc *remote.Client) *Catalog {
	return &Catalog{remote: rc, lists: map[domain.ProductKind][]domain.Product{}}
}

// Load fetches one collection. Each kind fails independently; a failed kind
// clears only its own list.
func (c *Catalog) Load(ctx context.Context, kind domain.ProductKind) ([]domain.Product, error) {
	products, err := c.remote.ListProducts(ctx, kind)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lists[kind] = nil
		return nil, err
	}
	c.lists[kind] = products
	return c.snapshotLocked(kind), nil
}

// LoadAll fetches both collections concurrently, mirroring the orders
// screen's independent-failure pattern.
func (c *Catalog) LoadAll(ctx context.Context) (dataErr, customErr error) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, dataErr = c.Load(ctx, domain.KindData)
	}()
	go func() {
		defer wg.Done()
		_, customErr = c.Load(ctx, domain.KindCustom)
	}()
	wg.Wait()
	return dataErr, customErr
}

func (c *Catalog) Products(kind domain.ProductKind) []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked(kind)
}

func (c *Catalog) snapshotLocked(kind domain.ProductKind) []domain.Product {
	out := make([]domain.Product, len(c.lists[kind]))
	copy(out, c.lists[kind])
	return out
}

// build validates form input into a remote-store record. An empty image URL
// gets the fixed fallback; category is forced to the custom literal for the
// custom kind and constrained to the option set otherwise.
func build(kind domain.ProductKind, in ProductInput) (domain.Product, error) {
	if in.Name == "" {
		return domain.Product{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Description == "" {
		return domain.Product{}, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	price, ok := validate.Price(in.Price)
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: price is required", ErrInvalidInput)
	}
	stock, ok := validate.Stock(in.Stock)
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: stock is required", ErrInvalidInput)
	}

	category := string(domain.KindCustom)
	if kind != domain.KindCustom {
		c, ok := validate.Category(in.Category)
		if !ok {
			return domain.Product{}, fmt.Errorf("%w: category %q not allowed", ErrInvalidInput, in.Category)
		}
		category = c
	}

	url := in.ImageURL
	if url == "" {
		url = domain.FallbackImageURL
	}

	return domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       price,
		Discount:    in.Discount,
		Category:    category,
		Stock:       stock,
		ImageURL:    url,
	}, nil
}

// Create validates, submits, and reloads the affected collection so the
// screen reflects the store's view of the new record.
func (c *Catalog) Create(ctx context.Context, kind domain.ProductKind, in ProductInput) error {
	p, err := build(kind, in)
	if err != nil {
		return err
	}
	if _, err := c.remote.CreateProduct(ctx, kind, p); err != nil {
		return err
	}
	_, err = c.Load(ctx, kind)
	return err
}

// Update overwrites the full remote record and, on success, replaces the
// matching local record by id. Failure leaves local state unchanged.
func (c *Catalog) Update(ctx context.Context, kind domain.ProductKind, id string, in ProductInput) error {
	p, err := build(kind, in)
	if err != nil {
		return err
	}
	p.ID = id
	updated, err := c.remote.UpdateProduct(ctx, kind, id, p)
	if err != nil {
		return err
	}
	if updated.ID == "" {
		updated = p
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	list := c.lists[kind]
	for i := range list {
		if list[i].ID == id {
			list[i] = updated
			break
		}
	}
	return nil
}

// Delete removes the record remotely, then locally by id.
func (c *Catalog) Delete(ctx context.Context, kind domain.ProductKind, id string) error {
	if err := c.remote.DeleteProduct(ctx, kind, id); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	list := c.lists[kind]
	for i := range list {
		if list[i].ID == id {
			c.lists[kind] = append(list[:i], list[i+1:]...)
			break
		}
	}
	return nil
}
