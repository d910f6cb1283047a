// Package view projects catalog search results and cart lines into
// display-ready models. Everything here is a pure function of its inputs.
package view

import (
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

type CatalogState string

const (
	// CatalogFull is the unfiltered catalog.
	CatalogFull CatalogState = "full"
	// CatalogFiltered is a non-empty subset selected by search criteria.
	CatalogFiltered CatalogState = "filtered"
	// CatalogEmpty means the criteria matched nothing.
	CatalogEmpty CatalogState = "empty"
)

const EmptyCatalogNotice = "No products found"

type ProductCard struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	PriceLabel  string `json:"price_label"`
	Image       string `json:"image,omitempty"`
	Thumb       string `json:"thumb,omitempty"`
}

type CatalogView struct {
	State  CatalogState  `json:"state"`
	Notice string        `json:"notice,omitempty"`
	Cards  []ProductCard `json:"cards"`
}

func RenderCatalog(r catalogapp.Result) CatalogView {
	v := CatalogView{Cards: make([]ProductCard, 0, len(r.Products))}

	switch {
	case r.Empty():
		v.State = CatalogEmpty
		v.Notice = EmptyCatalogNotice
		return v
	case r.Applied:
		v.State = CatalogFiltered
	default:
		v.State = CatalogFull
	}

	for _, p := range r.Products {
		v.Cards = append(v.Cards, Card(p))
	}
	return v
}

func Card(p catalog.Product) ProductCard {
	c := ProductCard{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       int64(p.Price),
		PriceLabel:  p.Price.String(),
		Image:       p.ImageRef,
	}
	if p.ImageRef == "" {
		c.Thumb = p.Thumb()
	}
	return c
}

type CartState string

const (
	CartEmpty  CartState = "empty"
	CartFilled CartState = "filled"
)

const EmptyCartNotice = "Cart is empty"

type CartRow struct {
	ProductID      int    `json:"product_id"`
	Name           string `json:"name"`
	Thumb          string `json:"thumb"`
	Quantity       int    `json:"quantity"`
	LineTotal      int64  `json:"line_total"`
	LineTotalLabel string `json:"line_total_label"`
}

type CartView struct {
	State         CartState `json:"state"`
	Notice        string    `json:"notice,omitempty"`
	ItemCount     int       `json:"item_count"`
	Subtotal      int64     `json:"subtotal"`
	SubtotalLabel string    `json:"subtotal_label"`
	Rows          []CartRow `json:"rows"`
}

func RenderCart(lines []domain.Line) CartView {
	subtotal := cartapp.Total(lines)

	v := CartView{
		ItemCount:     cartapp.ItemCount(lines),
		Subtotal:      int64(subtotal),
		SubtotalLabel: subtotal.String(),
		Rows:          make([]CartRow, 0, len(lines)),
	}
	if len(lines) == 0 {
		v.State = CartEmpty
		v.Notice = EmptyCartNotice
		return v
	}

	v.State = CartFilled
	for _, l := range lines {
		v.Rows = append(v.Rows, CartRow{
			ProductID:      l.Product.ID,
			Name:           l.Product.Name,
			Thumb:          l.Product.Thumb(),
			Quantity:       l.Quantity,
			LineTotal:      int64(l.LineTotal),
			LineTotalLabel: l.LineTotal.String(),
		})
	}
	return v
}
