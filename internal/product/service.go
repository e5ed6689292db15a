package product

import (
	"context"
	"errors"
	"time"

	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/core"

	"github.com/shopspring/decimal"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validate(p *Product) error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.SupermarketID == "" {
		return errors.New("supermarket is required")
	}
	if p.Unit == "" || p.PackageSize == "" {
		return errors.New("unit and packageSize are required")
	}
	if p.Price.IsNegative() {
		return errors.New("price cannot be negative")
	}
	if p.IsOnSale && p.SalePrice.LessThanOrEqual(decimal.Zero) {
		return errors.New("salePrice is required while on sale")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, p *Product) (*Product, error) {
	if p.Category == "" {
		p.Category = "other"
	}
	if p.Currency == "" {
		p.Currency = "AUD"
	}

	if err := validate(p); err != nil {
		return nil, err
	}

	// catalog entries start available; the history starts with the
	// listing price
	p.IsAvailable = true
	p.PriceHistory = nil
	p.PriceHistory = append(p.PriceHistory, PricePoint{Price: p.Price, Date: time.Now()})

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]*Product, int, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	return s.repo.List(ctx, f)
}

// Search is the lightweight name/description/brand lookup used by the
// client's autocomplete. Capped, name-sorted.
func (s *Service) Search(ctx context.Context, query, supermarketID string) ([]*Product, error) {
	products, _, err := s.repo.List(ctx, Filter{
		Search:        query,
		SupermarketID: supermarketID,
		SortBy:        "name",
		Page:          1,
		Limit:         20,
	})
	return products, err
}

// Compare finds matching products across every supermarket, cheapest
// first, so the client can group them per store.
func (s *Service) Compare(ctx context.Context, name string) ([]*Product, error) {
	products, _, err := s.repo.List(ctx, Filter{
		Search: name,
		SortBy: "price",
		Page:   1,
		Limit:  100,
	})
	return products, err
}

func (s *Service) Update(ctx context.Context, id string, in *Product) (*Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.ID = existing.ID
	in.CreatedAt = existing.CreatedAt
	in.PriceHistory = existing.PriceHistory
	in.LastUpdated = existing.LastUpdated
	if in.Category == "" {
		in.Category = existing.Category
	}
	if in.Currency == "" {
		in.Currency = existing.Currency
	}

	if err := validate(in); err != nil {
		return nil, err
	}

	// RecordPrice compares against the stored price, so it has to see the
	// old one or a change would look like a no-op.
	if newPrice := in.Price; !newPrice.Equal(existing.Price) {
		in.Price = existing.Price
		in.RecordPrice(newPrice, time.Now())
	}

	if err := s.repo.Update(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// PickProduct implements core.ProductPicker: the shopping list captures
// the sale-aware price at add time.
func (s *Service) PickProduct(ctx context.Context, productID string) (*core.ShoppingPick, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}

	return &core.ShoppingPick{
		Name:          p.Name,
		Unit:          p.Unit,
		Price:         p.EffectivePrice(time.Now()),
		SupermarketID: p.SupermarketID,
	}, nil
}
