package app

import (
	"context"
	"errors"

	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

type Catalog interface {
	FindByID(id int) (catalog.Product, error)
}

// ErrStoreUnavailable marks CartStore errors caused by storage that could
// not be reached. Other Load errors, such as an unreadable payload, mean the
// store works but held nothing usable.
var ErrStoreUnavailable = errors.New("cart store unavailable")

// CartStore persists the cart. Save failures are expected and must not
// affect the in-memory cart. Load always returns a usable cart; a non-nil
// error explains why it came back empty.
type CartStore interface {
	Save(ctx context.Context, cart domain.Cart) error
	Load(ctx context.Context) (domain.Cart, error)
}
