package domain

import (
	"errors"
	"fmt"
	"strings"
)

type Product struct {
	ID          int
	Name        string
	Price       Money
	Description string
	Category    string
	ImageRef    string
}

// Thumb is the placeholder label shown when a product has no image.
func (p Product) Thumb() string {
	for i, r := range p.Name {
		if r == ' ' {
			return p.Name[:i]
		}
	}
	return p.Name
}

var (
	ErrInvalidProduct   = errors.New("invalid product")
	ErrDuplicateProduct = errors.New("duplicate product id")
)

func (p Product) Validate() error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("%w: id must be positive, got %d", ErrInvalidProduct, p.ID)
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: product %d has no name", ErrInvalidProduct, p.ID)
	case p.Price <= 0:
		return fmt.Errorf("%w: product %d price must be positive, got %d", ErrInvalidProduct, p.ID, p.Price)
	}
	return nil
}

// ValidateCatalog checks every product and rejects repeated ids.
func ValidateCatalog(products []Product) error {
	seen := make(map[int]struct{}, len(products))
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateProduct, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}
