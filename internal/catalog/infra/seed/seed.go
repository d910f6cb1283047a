// Package seed reads a catalog from a YAML file:
//
//	products:
//	  - id: 1
//	    name: Silk Blend Saree
//	    price: 249900
//	    description: Lightweight, handcrafted border
//	    category: Saree
//	    image: /img/saree.jpg
package seed

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type file struct {
	Products []product `yaml:"products"`
}

type product struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Price       int64  `yaml:"price"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Image       string `yaml:"image"`
}

func Load(path string) ([]domain.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}

func Decode(r io.Reader) ([]domain.Product, error) {
	var doc file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	out := make([]domain.Product, 0, len(doc.Products))
	for _, p := range doc.Products {
		out = append(out, domain.Product{
			ID:          p.ID,
			Name:        p.Name,
			Price:       domain.Money(p.Price),
			Description: p.Description,
			Category:    p.Category,
			ImageRef:    p.Image,
		})
	}

	if err := domain.ValidateCatalog(out); err != nil {
		return nil, err
	}
	return out, nil
}
