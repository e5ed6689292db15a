package product

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("product not found")

// Filter narrows and pages the catalog listing. Zero values mean "no
// constraint"; Page and Limit are normalized by the service.
type Filter struct {
	SupermarketID string
	Category      string
	Search        string
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	OnSale        bool
	SortBy        string
	SortOrder     string
	Page          int
	Limit         int
}

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, f Filter) ([]*Product, int, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}
