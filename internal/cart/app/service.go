package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

var (
	ErrUnknownProduct  = errors.New("unknown product")
	// ErrInvalidQuantity covers non-positive quantities and quantities whose
	// cart total would not fit in Money.
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// Service owns the shopper's cart. Every mutation is validated against the
// catalog, applied, and then written through the store before returning.
// A failed write leaves the in-memory cart as mutated.
type Service struct {
	catalog Catalog
	store   CartStore
	log     *slog.Logger

	mu       sync.Mutex
	cart     domain.Cart
	degraded bool
	onChange []func(domain.Cart)
}

func NewService(catalog Catalog, store CartStore, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		catalog: catalog,
		store:   store,
		log:     log,
	}
}

// OnChange registers fn to run after every mutation with a copy of the cart.
func (s *Service) OnChange(fn func(domain.Cart)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Hydrate replaces the cart with the persisted one. Storage problems leave
// an empty cart.
func (s *Service) Hydrate(ctx context.Context) {
	cart, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn("cart load failed, starting empty", slog.Any("err", err))
	}

	s.mu.Lock()
	s.cart = cart
	s.degraded = errors.Is(err, ErrStoreUnavailable)
	s.mu.Unlock()

	s.log.Info("cart hydrated", slog.Int("items", cart.Len()))
}

func (s *Service) Add(ctx context.Context, productID, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: must be positive, got %d", ErrInvalidQuantity, qty)
	}
	if err := s.mustExist(productID); err != nil {
		return err
	}

	return s.mutate(ctx, func(c *domain.Cart) error {
		cur := c.Quantity(productID)
		if cur > math.MaxInt-qty {
			return fmt.Errorf("%w: %d + %d overflows", ErrInvalidQuantity, cur, qty)
		}
		return s.setChecked(c, productID, cur+qty)
	})
}

func (s *Service) AddOne(ctx context.Context, productID int) error {
	return s.Add(ctx, productID, 1)
}

// SetQuantity stores qty exactly. A non-positive qty removes the item and
// never fails, even for ids the catalog does not know.
func (s *Service) SetQuantity(ctx context.Context, productID, qty int) error {
	if qty > 0 {
		if err := s.mustExist(productID); err != nil {
			return err
		}
	}

	return s.mutate(ctx, func(c *domain.Cart) error {
		if qty <= 0 {
			c.Remove(productID)
			return nil
		}
		return s.setChecked(c, productID, qty)
	})
}

func (s *Service) Increment(ctx context.Context, productID int) error {
	if err := s.mustExist(productID); err != nil {
		return err
	}

	return s.mutate(ctx, func(c *domain.Cart) error {
		cur := c.Quantity(productID)
		if cur == math.MaxInt {
			return fmt.Errorf("%w: %d + 1 overflows", ErrInvalidQuantity, cur)
		}
		return s.setChecked(c, productID, cur+1)
	})
}

// Decrement lowers the quantity by one; at one the item is removed.
func (s *Service) Decrement(ctx context.Context, productID int) {
	_ = s.mutate(ctx, func(c *domain.Cart) error {
		if c.Has(productID) {
			c.Set(productID, c.Quantity(productID)-1)
		}
		return nil
	})
}

func (s *Service) Remove(ctx context.Context, productID int) {
	_ = s.mutate(ctx, func(c *domain.Cart) error {
		c.Remove(productID)
		return nil
	})
}

func (s *Service) Clear(ctx context.Context) {
	_ = s.mutate(ctx, func(c *domain.Cart) error {
		c.Clear()
		return nil
	})
}

// Items resolves the cart against the catalog in insertion order. Items whose
// product has left the catalog are skipped.
func (s *Service) Items() []domain.Line {
	s.mu.Lock()
	items := s.cart.Items()
	s.mu.Unlock()

	lines := make([]domain.Line, 0, len(items))
	for _, it := range items {
		p, err := s.catalog.FindByID(it.ProductID)
		if err != nil {
			s.log.Debug("skipping orphan cart item", slog.Int("product_id", it.ProductID))
			continue
		}
		lines = append(lines, domain.NewLine(p, it.Quantity))
	}
	return lines
}

func (s *Service) Total() catalog.Money {
	return Total(s.Items())
}

func (s *Service) ItemCount() int {
	return ItemCount(s.Items())
}

// Snapshot returns a copy of the raw cart, orphans included.
func (s *Service) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// Degraded reports whether the last storage access failed.
func (s *Service) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func Total(lines []domain.Line) catalog.Money {
	var sum catalog.Money
	for _, l := range lines {
		sum += l.LineTotal
	}
	return sum
}

func ItemCount(lines []domain.Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

func (s *Service) mustExist(productID int) error {
	if _, err := s.catalog.FindByID(productID); err != nil {
		return fmt.Errorf("%w: %d", ErrUnknownProduct, productID)
	}
	return nil
}

// setChecked stores qty for productID only if the resolvable cart total,
// with that quantity in place, still fits in Money.
func (s *Service) setChecked(c *domain.Cart, productID, qty int) error {
	var total catalog.Money
	for _, it := range c.Items() {
		if it.ProductID == productID {
			continue
		}
		p, err := s.catalog.FindByID(it.ProductID)
		if err != nil {
			continue
		}
		line, ok := p.Price.CheckedTimes(it.Quantity)
		if !ok || total > math.MaxInt64-line {
			return fmt.Errorf("%w: cart total overflows", ErrInvalidQuantity)
		}
		total += line
	}

	p, err := s.catalog.FindByID(productID)
	if err != nil {
		return fmt.Errorf("%w: %d", ErrUnknownProduct, productID)
	}
	line, ok := p.Price.CheckedTimes(qty)
	if !ok || total > math.MaxInt64-line {
		return fmt.Errorf("%w: %d x %s overflows the cart total", ErrInvalidQuantity, qty, p.Price)
	}

	c.Set(productID, qty)
	return nil
}

// mutate applies fn under the lock and persists the result. When fn
// rejects the change nothing is saved and no hook runs.
func (s *Service) mutate(ctx context.Context, fn func(*domain.Cart) error) error {
	s.mu.Lock()
	if err := fn(&s.cart); err != nil {
		s.mu.Unlock()
		return err
	}
	snapshot := s.cart.Clone()

	err := s.store.Save(ctx, snapshot)
	s.degraded = err != nil
	hooks := append([]func(domain.Cart){}, s.onChange...)
	s.mu.Unlock()

	if err != nil {
		s.log.Warn("cart save failed, keeping in-memory cart", slog.Any("err", err))
	}
	for _, fn := range hooks {
		fn(snapshot.Clone())
	}
	return nil
}
