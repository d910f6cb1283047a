package domain

import "time"

const CurrencyINR = "INR"

// Order is the shop's record of a checkout handoff. Amounts are in paise.
type Order struct {
	ID          string
	Reference   string
	Shop        string
	Status      string
	Transport   string
	Currency    string
	TotalAmount int64
	OrderItems  []OrderItem
	CreatedAt   time.Time
}

type OrderItem struct {
	ProductID       int
	Name            string
	UnitAmount      int64
	Quantity        int
	LineTotalAmount int64
}

type CreateOrderRequest struct {
	Reference string
	Shop      string
	Transport string
	Items     []OrderItemRequest
	PlacedAt  time.Time
}

type OrderItemRequest struct {
	ProductID  int
	Name       string
	UnitAmount int64
	Quantity   int
}

type OrderResponse struct {
	ID          string    `json:"id"`
	Reference   string    `json:"reference"`
	Status      string    `json:"status"`
	TotalAmount int64     `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}
