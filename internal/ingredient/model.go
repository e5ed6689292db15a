package ingredient

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categories an ingredient can belong to. Kept as data so the handler can
// expose them for form dropdowns.
var Categories = []string{
	"dairy", "meat", "produce", "grains", "spices", "beverages", "other",
	"bakery", "canned", "frozen", "snacks", "condiments", "breakfast",
	"pasta", "cleaning", "personal",
}

// PriceQuote is the live price of the ingredient at one supermarket.
// At most one quote per supermarket is kept; new observations replace it.
type PriceQuote struct {
	Supermarket   string          `json:"supermarket"`
	Price         decimal.Decimal `json:"price"`
	PriceDate     time.Time       `json:"priceDate"`
	IsManualEntry bool            `json:"isManualEntry"`
	ProductURL    string          `json:"productUrl,omitempty"`
}

// PriceHistoryEntry is one immutable price observation. The history is
// append-only: entries are never rewritten or removed.
type PriceHistoryEntry struct {
	Supermarket   string          `json:"supermarket"`
	Price         decimal.Decimal `json:"price"`
	Date          time.Time       `json:"date"`
	IsManualEntry bool            `json:"isManualEntry"`
}

// Ingredient is the priced, stocked raw material everything else costs
// against. PurchasePrice is the fallback used whenever no supermarket
// quote applies; ConversionRatio is the number of recipe units in one
// purchase unit (e.g. 1000 g per kg).
type Ingredient struct {
	ID                   string              `json:"id"`
	UserID               string              `json:"-"`
	Name                 string              `json:"name"`
	Description          string              `json:"description,omitempty"`
	Category             string              `json:"category"`
	PurchasePrice        decimal.Decimal     `json:"purchasePrice"`
	Currency             string              `json:"currency"`
	Prices               []PriceQuote        `json:"prices"`
	PriceHistory         []PriceHistoryEntry `json:"priceHistory"`
	PreferredSupermarket string              `json:"preferredSupermarket,omitempty"`
	PurchaseUnit         string              `json:"purchaseUnit"`
	RecipeUnit           string              `json:"recipeUnit"`
	ConversionRatio      decimal.Decimal     `json:"conversionRatio"`
	Supplier             string              `json:"supplier,omitempty"`
	Barcode              string              `json:"barcode,omitempty"`
	ImageURL             string              `json:"imageUrl,omitempty"`
	InStock              bool                `json:"inStock"`
	StockQuantity        decimal.Decimal     `json:"stockQuantity"`
	WastagePercentage    decimal.Decimal     `json:"wastagePercentage"`
	Tags                 []string            `json:"tags,omitempty"`
	Notes                string              `json:"notes,omitempty"`
	IsStandardItem       bool                `json:"isStandardItem"`
	CreatedAt            time.Time           `json:"createdAt"`
	UpdatedAt            time.Time           `json:"updatedAt"`
}
