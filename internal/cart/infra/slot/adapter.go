// Package slot persists the cart as a single key-value entry.
//
// Storage is best effort: Save reports failures as values wrapping
// ErrPersistenceUnavailable and Load always hands back a usable cart, empty
// when the slot is missing, unreadable or corrupt.
package slot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

const DefaultKey = "storefront_cart_v1"

var (
	ErrSlotEmpty = errors.New("slot is empty")
	// ErrPersistenceUnavailable is the cart store's unavailability error, so
	// the cart service can tell an unreachable slot from a corrupt payload.
	ErrPersistenceUnavailable = cartapp.ErrStoreUnavailable
)

// Slot is a durable key-value cell. Get returns ErrSlotEmpty for keys that
// were never written.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

type Adapter struct {
	slot Slot
	key  string
	log  *slog.Logger
}

func NewAdapter(slot Slot, key string, log *slog.Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{slot: slot, key: key, log: log}
}

func (a *Adapter) Save(ctx context.Context, cart domain.Cart) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: slot panicked: %v", ErrPersistenceUnavailable, r)
		}
	}()

	data, err := Encode(cart)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersistenceUnavailable, err)
	}
	if err := a.slot.Put(ctx, a.key, data); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}

	a.log.Debug("cart saved", slog.String("key", a.key), slog.Int("items", cart.Len()))
	return nil
}

func (a *Adapter) Load(ctx context.Context) (cart domain.Cart, err error) {
	defer func() {
		if r := recover(); r != nil {
			cart, err = domain.Cart{}, fmt.Errorf("%w: slot panicked: %v", ErrPersistenceUnavailable, r)
		}
	}()

	data, err := a.slot.Get(ctx, a.key)
	if errors.Is(err, ErrSlotEmpty) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}

	cart, err = Decode(data)
	if err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}
