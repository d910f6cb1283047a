package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

const (
	OrderStatusHandedOff = "HANDED_OFF"
)

var ErrInvalidOrder = errors.New("invalid order")

type Service struct {
	repo OrderRepo
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

// CreateOrder journals an order that has already been handed to the shop.
// Line totals are recomputed here and never trusted from the caller.
func (s *Service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.OrderResponse, error) {
	if req.Reference == "" {
		return domain.OrderResponse{}, fmt.Errorf("%w: missing reference", ErrInvalidOrder)
	}
	if len(req.Items) == 0 {
		return domain.OrderResponse{}, fmt.Errorf("%w: no items", ErrInvalidOrder)
	}

	orderItems := make([]domain.OrderItem, 0, len(req.Items))
	var total int64

	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.OrderResponse{}, fmt.Errorf("%w: item %d: quantity must be positive, got %d", ErrInvalidOrder, i, item.Quantity)
		}
		if item.UnitAmount <= 0 {
			return domain.OrderResponse{}, fmt.Errorf("%w: item %d: unit amount must be positive, got %d", ErrInvalidOrder, i, item.UnitAmount)
		}

		line := item.UnitAmount * int64(item.Quantity)
		orderItems = append(orderItems, domain.OrderItem{
			ProductID:       item.ProductID,
			Name:            item.Name,
			UnitAmount:      item.UnitAmount,
			Quantity:        item.Quantity,
			LineTotalAmount: line,
		})
		total += line
	}

	order := domain.Order{
		Reference:   req.Reference,
		Shop:        req.Shop,
		Status:      OrderStatusHandedOff,
		Transport:   req.Transport,
		Currency:    domain.CurrencyINR,
		TotalAmount: total,
		OrderItems:  orderItems,
		CreatedAt:   req.PlacedAt,
	}

	created, err := s.repo.CreateOrderTx(ctx, order)
	if err != nil {
		return domain.OrderResponse{}, err
	}

	return domain.OrderResponse{
		ID:          created.ID,
		Reference:   created.Reference,
		Status:      created.Status,
		TotalAmount: created.TotalAmount,
		CreatedAt:   created.CreatedAt,
	}, nil
}
