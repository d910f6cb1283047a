package domain

import (
	"math"

	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type CartItem struct {
	ProductID int
	Quantity  int
}

// Cart maps product ids to quantities and remembers insertion order.
// Quantities are always positive: setting zero or less removes the item.
// The zero value is an empty cart ready for use.
type Cart struct {
	order []int
	qty   map[int]int
}

func NewCart(items ...CartItem) Cart {
	var c Cart
	for _, it := range items {
		c.Add(it.ProductID, it.Quantity)
	}
	return c
}

// Add increments the quantity of id by n, creating the item when absent.
// It reports false and leaves the cart unchanged when n is not positive or
// the sum would overflow.
func (c *Cart) Add(id, n int) bool {
	if n <= 0 {
		return false
	}
	if cur, ok := c.qty[id]; ok {
		if cur > math.MaxInt-n {
			return false
		}
		c.qty[id] = cur + n
		return true
	}
	c.Set(id, n)
	return true
}

// Set stores n exactly; n <= 0 removes the item.
func (c *Cart) Set(id, n int) {
	if n <= 0 {
		c.Remove(id)
		return
	}
	if c.qty == nil {
		c.qty = make(map[int]int)
	}
	if _, ok := c.qty[id]; !ok {
		c.order = append(c.order, id)
	}
	c.qty[id] = n
}

func (c *Cart) Remove(id int) {
	if _, ok := c.qty[id]; !ok {
		return
	}
	delete(c.qty, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) Clear() {
	c.order = nil
	c.qty = nil
}

func (c Cart) Quantity(id int) int {
	return c.qty[id]
}

func (c Cart) Has(id int) bool {
	_, ok := c.qty[id]
	return ok
}

func (c Cart) Len() int {
	return len(c.order)
}

// Items returns the entries in insertion order.
func (c Cart) Items() []CartItem {
	out := make([]CartItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, CartItem{ProductID: id, Quantity: c.qty[id]})
	}
	return out
}

func (c Cart) Clone() Cart {
	return NewCart(c.Items()...)
}

func (c Cart) Equal(o Cart) bool {
	if len(c.order) != len(o.order) {
		return false
	}
	for i, id := range c.order {
		if o.order[i] != id || o.qty[id] != c.qty[id] {
			return false
		}
	}
	return true
}

// Line is a cart item resolved against the catalog.
type Line struct {
	Product   catalog.Product
	Quantity  int
	LineTotal catalog.Money
}

func NewLine(p catalog.Product, qty int) Line {
	return Line{
		Product:   p,
		Quantity:  qty,
		LineTotal: p.Price.Times(qty),
	}
}
