package core

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNotFound is the cross-domain "referenced document does not exist"
// signal. Callers decide whether to abort or degrade.
var ErrNotFound = errors.New("not found")

// IngredientCosting is what the recipe calculator needs from the
// ingredient domain: the effective cost of one recipe unit.
type IngredientCosting interface {
	CostPerRecipeUnit(ctx context.Context, ingredientID, userID string) (decimal.Decimal, error)
}

// IngredientStock is the stock-ledger surface consumed by purchases.
// Implementations skip the adjustment silently when the ingredient is
// gone; purchases keep only their denormalized snapshot in that case.
type IngredientStock interface {
	ApplyPurchase(ctx context.Context, ingredientID, userID string, quantity decimal.Decimal, unit string, price decimal.Decimal) error
	ReversePurchase(ctx context.Context, ingredientID, userID string, quantity decimal.Decimal, unit string) error
}

// IngredientInventory lists which ingredients a user currently tracks,
// used for recipe availability scoring.
type IngredientInventory interface {
	OwnedIngredientIDs(ctx context.Context, userID string) (map[string]bool, error)
}

// RecipeCosting is what menus need from recipes: the snapshot source for
// item cost.
type RecipeCosting interface {
	TotalCost(ctx context.Context, recipeID, userID string) (decimal.Decimal, error)
}

// ShoppingPick is the denormalized line a shopping list captures when an
// ingredient or catalog product is added.
type ShoppingPick struct {
	Name          string
	Unit          string
	Price         decimal.Decimal
	SupermarketID string
}

// IngredientPicker resolves an ingredient into a shopping-list line using
// the preferred-supermarket quote when one exists.
type IngredientPicker interface {
	PickIngredient(ctx context.Context, ingredientID, userID string) (*ShoppingPick, error)
}

// ProductPicker resolves a supermarket product into a shopping-list line
// at its effective (sale-aware) price.
type ProductPicker interface {
	PickProduct(ctx context.Context, productID string) (*ShoppingPick, error)
}

// UserProfile exposes the slice of the user record other domains print,
// currently just the company name on itemized receipts.
type UserProfile interface {
	Company(userID string) (string, error)
}
