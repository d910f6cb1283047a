package adapter

import (
	"context"
	"log/slog"

	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
)

// JournalingMessenger hands the order to next and then records it in the
// order journal. A journal failure is logged and never fails the checkout.
type JournalingMessenger struct {
	next   checkoutapp.Messenger
	orders *orderapp.Service
	log    *slog.Logger
}

func NewJournalingMessenger(next checkoutapp.Messenger, orders *orderapp.Service, log *slog.Logger) *JournalingMessenger {
	if log == nil {
		log = slog.Default()
	}
	return &JournalingMessenger{next: next, orders: orders, log: log}
}

func (m *JournalingMessenger) Send(ctx context.Context, order domain.Order) (domain.Handoff, error) {
	handoff, err := m.next.Send(ctx, order)
	if err != nil {
		return domain.Handoff{}, err
	}

	items := make([]orderdomain.OrderItemRequest, 0, len(order.Quote.Lines))
	for _, l := range order.Quote.Lines {
		items = append(items, orderdomain.OrderItemRequest{
			ProductID:  l.ProductID,
			Name:       l.Name,
			UnitAmount: int64(l.UnitPrice),
			Quantity:   l.Quantity,
		})
	}

	resp, err := m.orders.CreateOrder(ctx, orderdomain.CreateOrderRequest{
		Reference: order.Reference,
		Shop:      order.Shop,
		Transport: handoff.Transport,
		Items:     items,
		PlacedAt:  order.CreatedAt,
	})
	if err != nil {
		m.log.Warn("order journal write failed",
			slog.String("reference", order.Reference),
			slog.Any("err", err),
		)
		return handoff, nil
	}

	m.log.Info("order journaled", slog.String("reference", resp.Reference), slog.String("order_id", resp.ID))
	return handoff, nil
}
