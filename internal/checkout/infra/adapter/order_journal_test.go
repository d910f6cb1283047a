package adapter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
)

type stubMessenger struct {
	err error
}

func (s stubMessenger) Send(_ context.Context, _ domain.Order) (domain.Handoff, error) {
	if s.err != nil {
		return domain.Handoff{}, s.err
	}
	return domain.Handoff{Transport: "stub", Location: "queue://orders"}, nil
}

type recordingRepo struct {
	orders []orderdomain.Order
	err    error
}

func (r *recordingRepo) CreateOrderTx(_ context.Context, o orderdomain.Order) (orderdomain.Order, error) {
	if r.err != nil {
		return orderdomain.Order{}, r.err
	}
	o.ID = "id-1"
	r.orders = append(r.orders, o)
	return o, nil
}

func testOrder() domain.Order {
	return domain.Order{
		Reference: "ref-42",
		Shop:      "Zaya",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Quote: domain.Quote{
			Lines: []domain.QuoteLine{
				{ProductID: 3, Name: "Summer Kurta Set", Quantity: 2, UnitPrice: 129900, LineTotal: 259800},
			},
			Total: 259800,
		},
	}
}

func TestJournalingMessenger(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("records after handoff", func(t *testing.T) {
		repo := &recordingRepo{}
		m := NewJournalingMessenger(stubMessenger{}, orderapp.NewService(repo), log)

		h, err := m.Send(context.Background(), testOrder())
		require.NoError(t, err)
		assert.Equal(t, "stub", h.Transport)

		require.Len(t, repo.orders, 1)
		got := repo.orders[0]
		assert.Equal(t, "ref-42", got.Reference)
		assert.Equal(t, "stub", got.Transport)
		assert.EqualValues(t, 259800, got.TotalAmount)
		assert.Equal(t, 3, got.OrderItems[0].ProductID)
	})

	t.Run("handoff failure skips journal", func(t *testing.T) {
		repo := &recordingRepo{}
		boom := errors.New("broker down")
		m := NewJournalingMessenger(stubMessenger{err: boom}, orderapp.NewService(repo), log)

		_, err := m.Send(context.Background(), testOrder())
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, repo.orders)
	})

	t.Run("journal failure does not fail checkout", func(t *testing.T) {
		repo := &recordingRepo{err: errors.New("db down")}
		m := NewJournalingMessenger(stubMessenger{}, orderapp.NewService(repo), log)

		h, err := m.Send(context.Background(), testOrder())
		require.NoError(t, err)
		assert.Equal(t, "queue://orders", h.Location)
	})
}
