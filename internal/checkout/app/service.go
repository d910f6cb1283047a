package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
)

type CartReader interface {
	GetCart(ctx context.Context) ([]CartItem, error)
}

type CartItem struct {
	ProductID int
	Quantity  int
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID int) (Product, error)
}

type Product struct {
	ID    int
	Name  string
	Price catalog.Money
}

// Messenger delivers an order to the shop.
type Messenger interface {
	Send(ctx context.Context, order domain.Order) (domain.Handoff, error)
}

var (
	ErrEmptyCart = errors.New("cart is empty")
	// ErrProductGone is returned by CatalogReader for ids no longer sold.
	// Such items are left out of the quote.
	ErrProductGone = errors.New("product no longer in catalog")
)

type Service struct {
	Cart      CartReader
	Catalog   CatalogReader
	Messenger Messenger

	shop          string
	maxConcurrent int
	log           *slog.Logger
	now           func() time.Time
}

func NewService(cart CartReader, catalog CatalogReader, messenger Messenger, shop string, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		Cart:          cart,
		Catalog:       catalog,
		Messenger:     messenger,
		shop:          shop,
		maxConcurrent: 4,
		log:           log,
		now:           time.Now,
	}
}

func (s *Service) Quote(ctx context.Context) (domain.Quote, error) {
	items, err := s.Cart.GetCart(ctx)
	if err != nil {
		return domain.Quote{}, err
	}

	lines := make([]domain.QuoteLine, len(items))
	found := make([]bool, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		idx := idx
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", it.Quantity)
			}

			product, err := s.Catalog.GetProduct(gctx, it.ProductID)
			if errors.Is(err, ErrProductGone) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get product %d: %w", it.ProductID, err)
			}

			lines[idx] = domain.QuoteLine{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  it.Quantity,
				UnitPrice: product.Price,
				LineTotal: product.Price.Times(it.Quantity),
			}
			found[idx] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	var quote domain.Quote
	for i, line := range lines {
		if !found[i] {
			continue
		}
		quote.Lines = append(quote.Lines, line)
		quote.Total += line.LineTotal
	}

	if len(quote.Lines) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}
	return quote, nil
}

// Checkout quotes the cart and hands the order to the messenger. The cart
// is left untouched.
func (s *Service) Checkout(ctx context.Context) (domain.Receipt, error) {
	quote, err := s.Quote(ctx)
	if err != nil {
		return domain.Receipt{}, err
	}

	order := domain.Order{
		Reference: uuid.NewString(),
		Shop:      s.shop,
		Quote:     quote,
		CreatedAt: s.now().UTC(),
	}

	handoff, err := s.Messenger.Send(ctx, order)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("send order %s: %w", order.Reference, err)
	}

	s.log.Info("order handed off",
		slog.String("reference", order.Reference),
		slog.String("transport", handoff.Transport),
		slog.Int("lines", len(quote.Lines)),
		slog.Int64("total", int64(quote.Total)),
	)
	return domain.Receipt{Order: order, Handoff: handoff}, nil
}
