// Package storefront routes shopper actions to the catalog, cart and
// checkout services and answers each one with a fresh snapshot of what the
// page should show.
package storefront

import (
	"context"
	"log/slog"
	"sync"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	checkoutdomain "github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/dwikikusuma/storefront/internal/view"
)

type Checkout interface {
	Checkout(ctx context.Context) (checkoutdomain.Receipt, error)
}

type Snapshot struct {
	Criteria catalogapp.Criteria `json:"criteria"`
	Catalog  view.CatalogView    `json:"catalog"`
	Cart     view.CartView       `json:"cart"`
	// Offline is set while the cart cannot be persisted.
	Offline bool `json:"offline,omitempty"`
}

type Controller struct {
	catalog  *catalogapp.Service
	cart     *cartapp.Service
	checkout Checkout
	log      *slog.Logger

	mu       sync.RWMutex
	criteria catalogapp.Criteria
}

func NewController(catalog *catalogapp.Service, cart *cartapp.Service, checkout Checkout, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		catalog:  catalog,
		cart:     cart,
		checkout: checkout,
		log:      log,
	}
}

// Snapshot renders the current page state.
func (c *Controller) Snapshot() Snapshot {
	return c.SnapshotWith(c.Criteria())
}

// SnapshotWith renders the page for criteria without storing them.
func (c *Controller) SnapshotWith(criteria catalogapp.Criteria) Snapshot {
	return Snapshot{
		Criteria: criteria,
		Catalog:  view.RenderCatalog(c.catalog.Search(criteria)),
		Cart:     view.RenderCart(c.cart.Items()),
		Offline:  c.cart.Degraded(),
	}
}

func (c *Controller) Criteria() catalogapp.Criteria {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.criteria
}

// Search updates the query text and keeps the category.
func (c *Controller) Search(query string) Snapshot {
	c.mu.Lock()
	c.criteria.Query = query
	c.mu.Unlock()
	return c.Snapshot()
}

// SelectCategory narrows the grid to one category; "" shows all.
func (c *Controller) SelectCategory(category string) Snapshot {
	c.mu.Lock()
	c.criteria.Category = category
	c.mu.Unlock()
	return c.Snapshot()
}

// Filter replaces both criteria at once.
func (c *Controller) Filter(criteria catalogapp.Criteria) Snapshot {
	c.mu.Lock()
	c.criteria = criteria
	c.mu.Unlock()
	return c.Snapshot()
}

func (c *Controller) Categories() []string {
	return c.catalog.Categories()
}

func (c *Controller) Add(ctx context.Context, productID, qty int) (Snapshot, error) {
	if err := c.cart.Add(ctx, productID, qty); err != nil {
		c.log.Warn("add to cart rejected", slog.Int("product_id", productID), slog.Int("qty", qty), slog.Any("err", err))
		return Snapshot{}, err
	}
	return c.Snapshot(), nil
}

func (c *Controller) SetQuantity(ctx context.Context, productID, qty int) (Snapshot, error) {
	if err := c.cart.SetQuantity(ctx, productID, qty); err != nil {
		c.log.Warn("set quantity rejected", slog.Int("product_id", productID), slog.Int("qty", qty), slog.Any("err", err))
		return Snapshot{}, err
	}
	return c.Snapshot(), nil
}

func (c *Controller) Increase(ctx context.Context, productID int) (Snapshot, error) {
	if err := c.cart.Increment(ctx, productID); err != nil {
		return Snapshot{}, err
	}
	return c.Snapshot(), nil
}

func (c *Controller) Decrease(ctx context.Context, productID int) Snapshot {
	c.cart.Decrement(ctx, productID)
	return c.Snapshot()
}

func (c *Controller) Remove(ctx context.Context, productID int) Snapshot {
	c.cart.Remove(ctx, productID)
	return c.Snapshot()
}

func (c *Controller) Clear(ctx context.Context) Snapshot {
	c.cart.Clear(ctx)
	return c.Snapshot()
}

func (c *Controller) Preview(productID int) (catalogapp.Preview, error) {
	return c.catalog.Preview(productID)
}

func (c *Controller) Checkout(ctx context.Context) (checkoutdomain.Receipt, error) {
	return c.checkout.Checkout(ctx)
}
