package menu

import (
	"time"

	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/pricing"

	"github.com/shopspring/decimal"
)

var Categories = []string{
	"breakfast", "lunch", "dinner", "dessert",
	"beverage", "special", "catering", "other",
}

// Item carries its cost as a snapshot copied from the recipe at link
// time. Recipe repricing does not flow into existing menus.
type Item struct {
	ID           string          `json:"id"`
	RecipeID     string          `json:"recipe,omitempty"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	ProfitMargin decimal.Decimal `json:"profitMargin"`
	IsAvailable  bool            `json:"isAvailable"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
}

type Menu struct {
	ID                  string          `json:"id"`
	UserID              string          `json:"-"`
	Name                string          `json:"name"`
	Description         string          `json:"description,omitempty"`
	Category            string          `json:"category"`
	Items               []Item          `json:"items"`
	IsActive            bool            `json:"isActive"`
	StartDate           *time.Time      `json:"startDate,omitempty"`
	EndDate             *time.Time      `json:"endDate,omitempty"`
	TotalCost           decimal.Decimal `json:"totalCost"`
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
	AverageProfitMargin decimal.Decimal `json:"averageProfitMargin"`
	Tags                []string        `json:"tags,omitempty"`
	Notes               string          `json:"notes,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// RecomputeTotals refreshes the menu-level aggregates from the items.
// Runs on every mutation before the document is saved.
func (m *Menu) RecomputeTotals() {
	totalCost := decimal.Zero
	totalRevenue := decimal.Zero
	for _, item := range m.Items {
		totalCost = totalCost.Add(item.Cost)
		totalRevenue = totalRevenue.Add(item.Price)
	}

	m.TotalCost = totalCost
	m.TotalRevenue = totalRevenue
	m.AverageProfitMargin = pricing.RevenueMargin(totalRevenue, totalCost)
}

// ItemByID returns the index of an item, or -1.
func (m *Menu) ItemByID(itemID string) int {
	for i := range m.Items {
		if m.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}
