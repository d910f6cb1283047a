package domain

import (
	"fmt"
	"strings"
	"time"

	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type QuoteLine struct {
	ProductID int           `json:"product_id"`
	Name      string        `json:"name"`
	Quantity  int           `json:"quantity"`
	UnitPrice catalog.Money `json:"unit_price"`
	LineTotal catalog.Money `json:"line_total"`
}

type Quote struct {
	Lines []QuoteLine   `json:"lines"`
	Total catalog.Money `json:"total"`
}

type Order struct {
	Reference string    `json:"reference"`
	Shop      string    `json:"shop"`
	Quote     Quote     `json:"quote"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary renders the order as the plain-text message sent to the shop.
func (o Order) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order from %s:\r\n\r\n", o.Shop)
	for _, l := range o.Quote.Lines {
		fmt.Fprintf(&b, "%s x%d - %s\r\n", l.Name, l.Quantity, l.LineTotal)
	}
	fmt.Fprintf(&b, "\r\nSubtotal: %s\r\n\r\n", o.Quote.Total)
	b.WriteString("Please reply with payment and shipping options.")
	return b.String()
}

// Handoff records where an order was sent.
type Handoff struct {
	Transport string `json:"transport"`
	Location  string `json:"location"`
}

type Receipt struct {
	Order   Order   `json:"order"`
	Handoff Handoff `json:"handoff"`
}
