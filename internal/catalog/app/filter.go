package app

import (
	"strings"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

// Criteria is the search box text and the selected category. An empty
// Category means every category.
type Criteria struct {
	Query    string
	Category string
}

func (c Criteria) query() string {
	return strings.ToLower(strings.TrimSpace(c.Query))
}

// IsZero reports whether the criteria select the whole catalog.
func (c Criteria) IsZero() bool {
	return c.query() == "" && c.Category == ""
}

type Result struct {
	Products []domain.Product
	// Applied is false when no criteria narrowed the catalog.
	Applied bool
}

func (r Result) Empty() bool {
	return len(r.Products) == 0
}

// Filter keeps the products matching c, in their original order.
func Filter(products []domain.Product, c Criteria) Result {
	q := c.query()

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if c.Category != "" && p.Category != c.Category {
			continue
		}
		if q != "" && !strings.Contains(searchText(p), q) {
			continue
		}
		out = append(out, p)
	}

	return Result{Products: out, Applied: !c.IsZero()}
}

func searchText(p domain.Product) string {
	return strings.ToLower(p.Name + " " + p.Description + " " + p.Category)
}
