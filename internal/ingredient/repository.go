package ingredient

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("ingredient not found")

// Repository is the data-access contract. Saves replace the whole
// document; there is no partial update.
type Repository interface {
	Create(ctx context.Context, ing *Ingredient) error
	GetByID(ctx context.Context, id string) (*Ingredient, error)
	ListByUser(ctx context.Context, userID string) ([]*Ingredient, error)
	Update(ctx context.Context, ing *Ingredient) error
	Delete(ctx context.Context, id string) error
	FindByBarcode(ctx context.Context, userID, barcode string) (*Ingredient, error)
	ListLowStock(ctx context.Context, userID string, threshold decimal.Decimal) ([]*Ingredient, error)
}
