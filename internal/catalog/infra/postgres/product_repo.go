package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

const listProducts = `
SELECT id, name, price_amount, description, category, COALESCE(image_ref, '')
FROM storefront_products
ORDER BY position, id`

// LoadProducts reads the catalog once, in display order. The storefront
// serves the result from memory, so the database is only touched at startup.
func LoadProducts(ctx context.Context, db *sql.DB) ([]domain.Product, error) {
	rows, err := db.QueryContext(ctx, listProducts)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var (
			p     domain.Product
			price int64
		)
		if err := rows.Scan(&p.ID, &p.Name, &price, &p.Description, &p.Category, &p.ImageRef); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Price = domain.Money(price)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	if err := domain.ValidateCatalog(out); err != nil {
		return nil, err
	}
	return out, nil
}
