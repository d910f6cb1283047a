package slot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type brokenSlot struct{ err error }

func (b brokenSlot) Get(context.Context, string) ([]byte, error) { return nil, b.err }
func (b brokenSlot) Put(context.Context, string, []byte) error  { return b.err }

type panickySlot struct{}

func (panickySlot) Get(context.Context, string) ([]byte, error) { panic("quota") }
func (panickySlot) Put(context.Context, string, []byte) error  { panic("quota") }

func TestAdapterRoundTrip(t *testing.T) {
	ctx := context.Background()
	fileSlot, err := NewFileSlot(t.TempDir())
	require.NoError(t, err)

	for name, s := range map[string]Slot{"memory": NewMemorySlot(), "file": fileSlot} {
		t.Run(name, func(t *testing.T) {
			a := NewAdapter(s, "", nil)
			cart := domain.NewCart(
				domain.CartItem{ProductID: 1, Quantity: 2},
				domain.CartItem{ProductID: 2, Quantity: 1},
			)

			require.NoError(t, a.Save(ctx, cart))
			got, err := a.Load(ctx)
			require.NoError(t, err)
			assert.True(t, cart.Equal(got), "got %+v", got.Items())
		})
	}
}

func TestAdapterLoadDegrades(t *testing.T) {
	ctx := context.Background()

	t.Run("absent slot -> empty, no error", func(t *testing.T) {
		got, err := NewAdapter(NewMemorySlot(), "k", nil).Load(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 0, got.Len())
	})

	t.Run("unreadable slot -> empty, unavailable", func(t *testing.T) {
		got, err := NewAdapter(brokenSlot{errors.New("denied")}, "k", nil).Load(ctx)
		assert.True(t, errors.Is(err, ErrPersistenceUnavailable), "got %v", err)
		assert.Equal(t, 0, got.Len())
	})

	t.Run("corrupt slot -> empty, corrupt", func(t *testing.T) {
		s := NewMemorySlot()
		require.NoError(t, s.Put(ctx, "k", []byte("not json")))
		got, err := NewAdapter(s, "k", nil).Load(ctx)
		assert.True(t, errors.Is(err, ErrCorrupt), "got %v", err)
		assert.Equal(t, 0, got.Len())
	})

	t.Run("panicking slot is contained", func(t *testing.T) {
		a := NewAdapter(panickySlot{}, "k", nil)
		_, err := a.Load(ctx)
		assert.True(t, errors.Is(err, ErrPersistenceUnavailable))
		assert.True(t, errors.Is(a.Save(ctx, domain.Cart{}), ErrPersistenceUnavailable))
	})
}

func TestAdapterSaveFailure(t *testing.T) {
	err := NewAdapter(brokenSlot{errors.New("disk full")}, "k", nil).Save(context.Background(), domain.Cart{})
	assert.True(t, errors.Is(err, ErrPersistenceUnavailable), "got %v", err)
}

func TestFileSlot(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileSlot(dir)
	require.NoError(t, err)

	_, err = s.Get(ctx, "cart")
	assert.ErrorIs(t, err, ErrSlotEmpty)

	require.NoError(t, s.Put(ctx, "cart", []byte("one")))
	require.NoError(t, s.Put(ctx, "cart", []byte("two")))

	got, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files left behind")
	assert.FileExists(t, filepath.Join(dir, "cart.json"))

	assert.Error(t, s.Put(ctx, "../escape", []byte("x")))
}

type oneProduct struct{}

func (oneProduct) FindByID(id int) (catalog.Product, error) {
	if id != 1 {
		return catalog.Product{}, errors.New("not found")
	}
	return catalog.Product{ID: 1, Name: "Silk Blend Saree", Price: 249900}, nil
}

func TestHydrateOfflineOnlyWhenSlotUnreachable(t *testing.T) {
	ctx := context.Background()

	corrupt := NewMemorySlot()
	require.NoError(t, corrupt.Put(ctx, DefaultKey, []byte(`{"version":9,"entries":[]}`)))

	tests := []struct {
		name        string
		slot        Slot
		wantOffline bool
	}{
		{name: "corrupt payload", slot: corrupt, wantOffline: false},
		{name: "unreachable slot", slot: brokenSlot{errors.New("connection refused")}, wantOffline: true},
		{name: "panicking slot", slot: panickySlot{}, wantOffline: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := cartapp.NewService(oneProduct{}, NewAdapter(tt.slot, "", nil), nil)
			svc.Hydrate(ctx)

			assert.Equal(t, tt.wantOffline, svc.Degraded())
			assert.Empty(t, svc.Items())
		})
	}

	assert.True(t, errors.Is(ErrPersistenceUnavailable, cartapp.ErrStoreUnavailable))
}
