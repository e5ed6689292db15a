package shoppinglist

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is one line on the list. Price and name are captured at add time
// from the product or ingredient; later catalog changes do not touch
// them.
type Item struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product,omitempty"`
	IngredientID  string          `json:"ingredient,omitempty"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	Price         decimal.Decimal `json:"price"`
	SupermarketID string          `json:"supermarket,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	IsChecked     bool            `json:"isChecked"`
}

type ShoppingList struct {
	ID                  string          `json:"id"`
	UserID              string          `json:"-"`
	Name                string          `json:"name"`
	Description         string          `json:"description,omitempty"`
	Items               []Item          `json:"items"`
	TotalCost           decimal.Decimal `json:"totalCost"`
	IsActive            bool            `json:"isActive"`
	PrimarySupermarket  string          `json:"primarySupermarket,omitempty"`
	PlannedPurchaseDate *time.Time      `json:"plannedPurchaseDate,omitempty"`
	CompletedDate       *time.Time      `json:"completedDate,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// RecomputeTotal refreshes the running total, the sum of price times
// quantity over every line. Runs on every item mutation.
func (l *ShoppingList) RecomputeTotal() {
	total := decimal.Zero
	for _, item := range l.Items {
		total = total.Add(item.Price.Mul(item.Quantity))
	}
	l.TotalCost = total
}

// ItemByID returns the index of an item, or -1.
func (l *ShoppingList) ItemByID(itemID string) int {
	for i := range l.Items {
		if l.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// itemByProduct finds the line referencing a catalog product, or -1.
func (l *ShoppingList) itemByProduct(productID string) int {
	for i := range l.Items {
		if l.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// itemByIngredient finds the line referencing an ingredient, or -1.
func (l *ShoppingList) itemByIngredient(ingredientID string) int {
	for i := range l.Items {
		if l.Items[i].IngredientID == ingredientID {
			return i
		}
	}
	return -1
}
