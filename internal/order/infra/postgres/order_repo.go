package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

const (
	createOrders = `
CREATE TABLE IF NOT EXISTS storefront_orders (
	id           UUID PRIMARY KEY,
	reference    TEXT NOT NULL UNIQUE,
	shop         TEXT NOT NULL,
	status       TEXT NOT NULL,
	transport    TEXT NOT NULL,
	currency     TEXT NOT NULL,
	total_amount BIGINT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
)`

	createOrderItems = `
CREATE TABLE IF NOT EXISTS storefront_order_items (
	order_id          UUID NOT NULL REFERENCES storefront_orders (id) ON DELETE CASCADE,
	position          INT NOT NULL,
	product_id        INT NOT NULL,
	name              TEXT NOT NULL,
	unit_amount       BIGINT NOT NULL,
	quantity          INT NOT NULL,
	line_total_amount BIGINT NOT NULL,
	PRIMARY KEY (order_id, position)
)`

	insertOrder = `
INSERT INTO storefront_orders (id, reference, shop, status, transport, currency, total_amount, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, now()))
RETURNING created_at`

	insertOrderItem = `
INSERT INTO storefront_order_items (order_id, position, product_id, name, unit_amount, quantity, line_total_amount)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{createOrders, createOrderItems} {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("order schema: %w", err)
		}
	}
	return nil
}

func (r *OrderRepo) execTX(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

func (r *OrderRepo) CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error) {
	created := order
	created.ID = uuid.NewString()

	var placedAt any
	if !order.CreatedAt.IsZero() {
		placedAt = order.CreatedAt
	}

	err := r.execTX(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, insertOrder,
			created.ID, order.Reference, order.Shop, order.Status, order.Transport,
			order.Currency, order.TotalAmount, placedAt,
		).Scan(&created.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i, item := range order.OrderItems {
			if item.LineTotalAmount != item.UnitAmount*int64(item.Quantity) {
				return fmt.Errorf("item %d: line total mismatch", i)
			}

			_, err := tx.ExecContext(ctx, insertOrderItem,
				created.ID, i, item.ProductID, item.Name,
				item.UnitAmount, item.Quantity, item.LineTotalAmount,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return created, nil
}
