package memory

import (
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

// ProductRepo holds a fixed catalog. It is safe for concurrent readers
// because nothing mutates it after construction.
type ProductRepo struct {
	products []domain.Product
	byID     map[int]int
}

func NewProductRepo(products []domain.Product) (*ProductRepo, error) {
	if err := domain.ValidateCatalog(products); err != nil {
		return nil, err
	}

	r := &ProductRepo{
		products: make([]domain.Product, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	copy(r.products, products)
	for i, p := range r.products {
		r.byID[p.ID] = i
	}
	return r, nil
}

func (r *ProductRepo) Get(id int) (domain.Product, bool) {
	i, ok := r.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return r.products[i], true
}

func (r *ProductRepo) All() []domain.Product {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out
}

// DefaultProducts is the launch collection.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Silk Blend Saree", Price: 249900, Description: "Lightweight, handcrafted border", Category: "Saree"},
		{ID: 2, Name: "Embroidered Blouse", Price: 79900, Description: "Perfect match for Zaya sarees", Category: "Blouse"},
		{ID: 3, Name: "Summer Kurta Set", Price: 129900, Description: "Breathable cotton, modern fit", Category: "Kurta"},
		{ID: 4, Name: "Occasion Ready Dress", Price: 179900, Description: "Tailored silhouette for events", Category: "Dress"},
	}
}
