package mailto

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/dwikikusuma/storefront/pkg/mailto"
)

const Subject = "Order from Website"

// Messenger turns an order into a mailto: link for the shopper's mail
// client. Nothing leaves the process.
type Messenger struct {
	addr string
}

func NewMessenger(addr string) *Messenger {
	return &Messenger{addr: addr}
}

func (m *Messenger) Send(_ context.Context, order domain.Order) (domain.Handoff, error) {
	return domain.Handoff{
		Transport: "mailto",
		Location:  mailto.Link(m.addr, Subject, order.Summary()),
	}, nil
}
