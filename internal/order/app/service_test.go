package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

type fakeRepo struct {
	got domain.Order
	err error
}

func (f *fakeRepo) CreateOrderTx(_ context.Context, order domain.Order) (domain.Order, error) {
	if f.err != nil {
		return domain.Order{}, f.err
	}
	f.got = order
	order.ID = "order-1"
	return order, nil
}

func TestCreateOrder(t *testing.T) {
	placed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("computes totals", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo)

		resp, err := svc.CreateOrder(context.Background(), domain.CreateOrderRequest{
			Reference: "ref-1",
			Shop:      "Zaya",
			Transport: "mailto",
			PlacedAt:  placed,
			Items: []domain.OrderItemRequest{
				{ProductID: 1, Name: "Silk Blend Saree", UnitAmount: 249900, Quantity: 1},
				{ProductID: 2, Name: "Embroidered Blouse", UnitAmount: 79900, Quantity: 2},
			},
		})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}

		if resp.ID != "order-1" || resp.Reference != "ref-1" {
			t.Fatalf("unexpected response: %+v", resp)
		}
		if resp.TotalAmount != 409700 {
			t.Fatalf("total: got %d", resp.TotalAmount)
		}
		if resp.Status != OrderStatusHandedOff {
			t.Fatalf("status: got %q", resp.Status)
		}
		if repo.got.OrderItems[1].LineTotalAmount != 159800 {
			t.Fatalf("line total: got %d", repo.got.OrderItems[1].LineTotalAmount)
		}
		if repo.got.Currency != domain.CurrencyINR {
			t.Fatalf("currency: got %q", repo.got.Currency)
		}
	})

	t.Run("rejects bad input", func(t *testing.T) {
		svc := NewService(&fakeRepo{})

		cases := map[string]domain.CreateOrderRequest{
			"no reference": {Items: []domain.OrderItemRequest{{ProductID: 1, UnitAmount: 1, Quantity: 1}}},
			"no items":     {Reference: "r"},
			"zero qty":     {Reference: "r", Items: []domain.OrderItemRequest{{ProductID: 1, UnitAmount: 1}}},
			"zero price":   {Reference: "r", Items: []domain.OrderItemRequest{{ProductID: 1, Quantity: 1}}},
		}
		for name, req := range cases {
			_, err := svc.CreateOrder(context.Background(), req)
			if !errors.Is(err, ErrInvalidOrder) {
				t.Fatalf("%s: expected ErrInvalidOrder, got %v", name, err)
			}
		}
	})

	t.Run("repo error", func(t *testing.T) {
		boom := errors.New("db down")
		svc := NewService(&fakeRepo{err: boom})

		_, err := svc.CreateOrder(context.Background(), domain.CreateOrderRequest{
			Reference: "r",
			Items:     []domain.OrderItemRequest{{ProductID: 1, UnitAmount: 10, Quantity: 1}},
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected repo error, got %v", err)
		}
	})
}
