package seed

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

const catalogYAML = `
products:
  - id: 7
    name: Linen Dupatta
    price: 59900
    description: Soft drape
    category: Dupatta
    image: /img/dupatta.jpg
  - id: 3
    name: Summer Kurta Set
    price: 129900
    description: Breathable cotton, modern fit
    category: Kurta
`

func TestDecode(t *testing.T) {
	products, err := Decode(strings.NewReader(catalogYAML))
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, 7, products[0].ID)
	assert.Equal(t, domain.Money(59900), products[0].Price)
	assert.Equal(t, "/img/dupatta.jpg", products[0].ImageRef)
	assert.Equal(t, "Kurta", products[1].Category)
}

func TestDecodeRejectsInvalid(t *testing.T) {
	t.Run("duplicate ids", func(t *testing.T) {
		_, err := Decode(strings.NewReader("products:\n  - {id: 1, name: A, price: 1}\n  - {id: 1, name: B, price: 1}\n"))
		assert.True(t, errors.Is(err, domain.ErrDuplicateProduct), "got %v", err)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Decode(strings.NewReader("products:\n  - {id: 1, name: A, price: 1, colour: red}\n"))
		assert.Error(t, err)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := Decode(strings.NewReader("products:\n  - {id: 1, name: A, price: -5}\n"))
		assert.True(t, errors.Is(err, domain.ErrInvalidProduct), "got %v", err)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0o600))

	products, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
