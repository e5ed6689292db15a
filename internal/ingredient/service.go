package ingredient

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/core"
	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/pricing"

	"github.com/shopspring/decimal"
)

var (
	ErrNotOwner = errors.New("ingredient does not belong to user")

	hundred = decimal.NewFromInt(100)
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// validate rejects an ingredient before any derived field is computed.
// No partial state is written on failure.
func validate(ing *Ingredient) error {
	if ing.Name == "" || ing.PurchaseUnit == "" || ing.RecipeUnit == "" {
		return errors.New("name, purchaseUnit and recipeUnit are required")
	}
	if ing.PurchasePrice.IsNegative() {
		return errors.New("purchasePrice cannot be negative")
	}
	if err := pricing.ValidateConversionRatio(ing.ConversionRatio); err != nil {
		return err
	}
	if ing.StockQuantity.IsNegative() {
		return errors.New("stockQuantity cannot be negative")
	}
	if ing.WastagePercentage.IsNegative() || ing.WastagePercentage.GreaterThan(hundred) {
		return errors.New("wastagePercentage must be between 0 and 100")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, userID string, ing *Ingredient) (*Ingredient, error) {
	ing.UserID = userID
	if ing.Category == "" {
		ing.Category = "other"
	}
	if ing.Currency == "" {
		ing.Currency = "USD"
	}

	if err := validate(ing); err != nil {
		return nil, err
	}

	// client-supplied history is never trusted; the audit trail starts
	// empty and grows only through quote evaluation
	ing.PriceHistory = nil
	incoming := ing.Prices
	ing.Prices = nil
	for _, q := range incoming {
		ing.UpsertQuote(q.Supermarket, q.Price, q.PriceDate, q.IsManualEntry)
	}

	ing.InStock = ing.StockQuantity.GreaterThan(decimal.Zero)

	if err := s.repo.Create(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

func (s *Service) Get(ctx context.Context, id, userID string) (*Ingredient, error) {
	ing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing.UserID != userID {
		return nil, ErrNotOwner
	}
	return ing, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*Ingredient, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update replaces the editable fields of an ingredient. Quotes supplied
// by the caller go through UpsertQuote so the history rule is applied in
// one place; the stored history itself is untouchable from outside.
func (s *Service) Update(ctx context.Context, id, userID string, in *Ingredient) (*Ingredient, error) {
	existing, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	in.ID = existing.ID
	in.UserID = existing.UserID
	in.CreatedAt = existing.CreatedAt
	if in.Category == "" {
		in.Category = existing.Category
	}
	if in.Currency == "" {
		in.Currency = existing.Currency
	}

	if err := validate(in); err != nil {
		return nil, err
	}

	incoming := in.Prices
	in.Prices = existing.Prices
	in.PriceHistory = existing.PriceHistory
	for _, q := range incoming {
		in.UpsertQuote(q.Supermarket, q.Price, q.PriceDate, q.IsManualEntry)
	}

	in.InStock = in.StockQuantity.GreaterThan(decimal.Zero)

	if err := s.repo.Update(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// RecordPrice is the manual price entry path: one quote upsert plus the
// history evaluation, then a document save.
func (s *Service) RecordPrice(ctx context.Context, id, userID, supermarketID string, price decimal.Decimal, date time.Time, isManualEntry bool) (*Ingredient, error) {
	if supermarketID == "" {
		return nil, errors.New("supermarket is required")
	}
	if price.IsNegative() {
		return nil, errors.New("price cannot be negative")
	}

	ing, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	ing.UpsertQuote(supermarketID, price, date, isManualEntry)

	if err := s.repo.Update(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

// SupermarketHistory returns the ingredient's price observations at one
// supermarket, newest first.
func (s *Service) SupermarketHistory(ctx context.Context, ingredientID, supermarketID, userID string) ([]PriceHistoryEntry, error) {
	ing, err := s.Get(ctx, ingredientID, userID)
	if err != nil {
		return nil, err
	}

	history := make([]PriceHistoryEntry, 0)
	for _, h := range ing.PriceHistory {
		if h.Supermarket == supermarketID {
			history = append(history, h)
		}
	}
	sort.Slice(history, func(i, j int) bool {
		return history[i].Date.After(history[j].Date)
	})
	return history, nil
}

func (s *Service) LowStock(ctx context.Context, userID string, threshold decimal.Decimal) ([]*Ingredient, error) {
	if threshold.LessThanOrEqual(decimal.Zero) {
		threshold = decimal.NewFromInt(5)
	}
	return s.repo.ListLowStock(ctx, userID, threshold)
}

// BarcodeLookup returns the user's existing ingredient for a barcode, or
// a prefill stub the client can edit before saving.
func (s *Service) BarcodeLookup(ctx context.Context, userID, barcode string) (*Ingredient, bool, error) {
	if barcode == "" {
		return nil, false, errors.New("barcode is required")
	}

	existing, err := s.repo.FindByBarcode(ctx, userID, barcode)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	prefix := barcode
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	return &Ingredient{
		Name:         "Product " + prefix,
		PurchaseUnit: "kg",
		Barcode:      barcode,
	}, false, nil
}

// --------------------------------------------------
// Cross-domain surfaces (core interfaces)
// --------------------------------------------------

// CostPerRecipeUnit implements core.IngredientCosting for the recipe
// calculator.
func (s *Service) CostPerRecipeUnit(ctx context.Context, ingredientID, userID string) (decimal.Decimal, error) {
	ing, err := s.Get(ctx, ingredientID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return decimal.Zero, core.ErrNotFound
		}
		return decimal.Zero, err
	}
	return ing.CostPerRecipeUnit()
}

// ApplyPurchase implements core.IngredientStock. A vanished ingredient is
// skipped silently; the purchase keeps its denormalized snapshot.
func (s *Service) ApplyPurchase(ctx context.Context, ingredientID, userID string, quantity decimal.Decimal, unit string, price decimal.Decimal) error {
	ing, err := s.Get(ctx, ingredientID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	ing.ApplyPurchase(quantity, unit, price)
	return s.repo.Update(ctx, ing)
}

// ReversePurchase implements core.IngredientStock.
func (s *Service) ReversePurchase(ctx context.Context, ingredientID, userID string, quantity decimal.Decimal, unit string) error {
	ing, err := s.Get(ctx, ingredientID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	ing.ReversePurchase(quantity, unit)
	return s.repo.Update(ctx, ing)
}

// PickIngredient implements core.IngredientPicker for shopping lists,
// preferring the preferred supermarket's quote.
func (s *Service) PickIngredient(ctx context.Context, ingredientID, userID string) (*core.ShoppingPick, error) {
	ing, err := s.Get(ctx, ingredientID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}

	pick := &core.ShoppingPick{
		Name:  ing.Name,
		Unit:  ing.PurchaseUnit,
		Price: ing.PurchasePrice,
	}
	if ing.PreferredSupermarket != "" {
		pick.SupermarketID = ing.PreferredSupermarket
		pick.Price = ing.PriceForSupermarket(ing.PreferredSupermarket)
	}
	return pick, nil
}

// OwnedIngredientIDs implements core.IngredientInventory.
func (s *Service) OwnedIngredientIDs(ctx context.Context, userID string) (map[string]bool, error) {
	ingredients, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	owned := make(map[string]bool, len(ingredients))
	for _, ing := range ingredients {
		owned[ing.ID] = true
	}
	return owned, nil
}
