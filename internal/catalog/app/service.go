package app

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/pkg/mailto"
)

var ErrNotFound = errors.New("product not found")

type Preview struct {
	Product    domain.Product
	ContactURL string
}

type Service struct {
	repo      ProductRepo
	shopEmail string
}

func NewService(repo ProductRepo, shopEmail string) *Service {
	return &Service{
		repo:      repo,
		shopEmail: shopEmail,
	}
}

func (s *Service) FindByID(id int) (domain.Product, error) {
	p, ok := s.repo.Get(id)
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return p, nil
}

func (s *Service) All() []domain.Product {
	return s.repo.All()
}

// Categories returns the distinct product categories in lexical order.
func (s *Service) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range s.repo.All() {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

func (s *Service) Search(c Criteria) Result {
	return Filter(s.repo.All(), c)
}

// Preview returns the product detail together with a contact link addressed
// to the shop and naming the product.
func (s *Service) Preview(id int) (Preview, error) {
	p, err := s.FindByID(id)
	if err != nil {
		return Preview{}, err
	}

	return Preview{
		Product:    p,
		ContactURL: mailto.Link(s.shopEmail, "Order - "+p.Name, ""),
	}, nil
}
