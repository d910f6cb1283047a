package domain

import (
	"math"
	"testing"
)

func TestCartAddAccumulates(t *testing.T) {
	var c Cart
	c.Add(1, 2)
	c.Add(1, 3)
	if got := c.Quantity(1); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if c.Len() != 1 {
		t.Fatalf("expected one item, got %d", c.Len())
	}
}

func TestCartSetNonPositiveRemoves(t *testing.T) {
	for _, n := range []int{0, -1} {
		c := NewCart(CartItem{ProductID: 1, Quantity: 2})
		c.Set(1, n)
		if c.Has(1) {
			t.Fatalf("Set(1,%d) kept the item", n)
		}
	}
}

func TestCartKeepsInsertionOrder(t *testing.T) {
	c := NewCart(
		CartItem{ProductID: 3, Quantity: 1},
		CartItem{ProductID: 1, Quantity: 1},
		CartItem{ProductID: 2, Quantity: 1},
	)
	c.Set(1, 4)
	c.Remove(3)
	c.Add(3, 1)

	items := c.Items()
	want := []int{1, 2, 3}
	for i, it := range items {
		if it.ProductID != want[i] {
			t.Fatalf("position %d: got %d, want %d", i, it.ProductID, want[i])
		}
	}
	if items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", items[0].Quantity)
	}
}

func TestCartRemoveAbsentIsNoop(t *testing.T) {
	var c Cart
	c.Remove(9)
	if c.Len() != 0 {
		t.Fatal("expected empty cart")
	}
}

func TestCartCloneIsIndependent(t *testing.T) {
	c := NewCart(CartItem{ProductID: 1, Quantity: 1})
	cp := c.Clone()
	cp.Add(1, 1)
	if c.Quantity(1) != 1 {
		t.Fatal("clone shares state with original")
	}
	if c.Equal(cp) {
		t.Fatal("expected carts to differ")
	}
}

func TestCartAddRejectsOverflow(t *testing.T) {
	var c Cart
	if !c.Add(1, math.MaxInt) {
		t.Fatal("first add should succeed")
	}
	if c.Add(1, 1) {
		t.Fatal("overflowing add reported success")
	}
	if got := c.Quantity(1); got != math.MaxInt {
		t.Fatalf("quantity changed to %d", got)
	}
	if c.Add(2, 0) || c.Has(2) {
		t.Fatal("zero add must not create an item")
	}
}
