package slot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

func TestEncodeDecodeKeepsOrder(t *testing.T) {
	cart := domain.NewCart(
		domain.CartItem{ProductID: 4, Quantity: 1},
		domain.CartItem{ProductID: 1, Quantity: 2},
	)

	data, err := Encode(cart)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":2,"entries":[{"product_id":4,"quantity":1},{"product_id":1,"quantity":2}]}`, string(data))

	got, err := Decode(data)
	require.NoError(t, err)
	assert.True(t, cart.Equal(got), "got %+v", got.Items())
}

func TestDecodeVersionOne(t *testing.T) {
	t.Run("object items", func(t *testing.T) {
		got, err := Decode([]byte(`{"3":{"id":3,"qty":2},"1":{"id":1,"qty":1}}`))
		require.NoError(t, err)
		assert.Equal(t, []domain.CartItem{{ProductID: 1, Quantity: 1}, {ProductID: 3, Quantity: 2}}, got.Items())
	})

	t.Run("bare quantities", func(t *testing.T) {
		got, err := Decode([]byte(`{"2":5}`))
		require.NoError(t, err)
		assert.Equal(t, 5, got.Quantity(2))
	})

	t.Run("non-positive entries dropped", func(t *testing.T) {
		got, err := Decode([]byte(`{"2":0,"3":{"id":3,"qty":-1},"-4":2,"5":1}`))
		require.NoError(t, err)
		assert.Equal(t, []domain.CartItem{{ProductID: 5, Quantity: 1}}, got.Items())
	})

	t.Run("empty object", func(t *testing.T) {
		got, err := Decode([]byte(`{}`))
		require.NoError(t, err)
		assert.Equal(t, 0, got.Len())
	})
}

func TestDecodeCorrupt(t *testing.T) {
	for name, payload := range map[string]string{
		"not json":          `{{`,
		"array":             `[1,2]`,
		"blank":             `  `,
		"future version":    `{"version":9,"entries":[]}`,
		"string version":    `{"version":"2"}`,
		"non numeric key":   `{"abc":1}`,
		"mismatched id":     `{"1":{"id":2,"qty":1}}`,
		"bad item":          `{"1":"three"}`,
		"bad entries shape": `{"version":2,"entries":{}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(payload))
			assert.True(t, errors.Is(err, ErrCorrupt), "got %v", err)
		})
	}
}
