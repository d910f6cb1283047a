package app

import (
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

// ProductRepo is a read-only view over the catalog. All returns products in
// catalog order.
type ProductRepo interface {
	Get(id int) (domain.Product, bool)
	All() []domain.Product
}
