package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/dwikikusuma/storefront/internal/cart/infra/slot"
)

const (
	createSlots = `
CREATE TABLE IF NOT EXISTS storefront_slots (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

	getSlot = `SELECT value FROM storefront_slots WHERE key = $1`

	putSlot = `
INSERT INTO storefront_slots (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
)

// SlotRepo stores cart slots in a Postgres table.
type SlotRepo struct {
	db *sql.DB
}

func NewSlotRepo(db *sql.DB) *SlotRepo {
	return &SlotRepo{db: db}
}

func (r *SlotRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSlots); err != nil {
		return fmt.Errorf("create storefront_slots: %w", err)
	}
	return nil
}

func (r *SlotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := r.db.QueryRowContext(ctx, getSlot, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, slot.ErrSlotEmpty
	}
	if isUndefinedTable(err) {
		return nil, fmt.Errorf("storefront_slots table missing: %w", err)
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (r *SlotRepo) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, putSlot, key, string(value))
	return err
}

func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "42P01"
	}
	return false
}
