package recipe

import (
	"time"

	"github.com/shopspring/decimal"
)

type RecipeIngredient struct {
	IngredientID string          `json:"ingredient"`
	Name         string          `json:"name,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

type Instruction struct {
	Step        int    `json:"step"`
	Description string `json:"description"`
}

// Recipe holds its cost fields as snapshots: they are recomputed from
// live ingredient prices only when the recipe itself is written, never
// when an ingredient price changes afterwards.
type Recipe struct {
	ID              string             `json:"id"`
	UserID          string             `json:"-"`
	Name            string             `json:"name"`
	Description     string             `json:"description,omitempty"`
	Servings        int                `json:"servings"`
	Ingredients     []RecipeIngredient `json:"ingredients"`
	Instructions    []Instruction      `json:"instructions,omitempty"`
	PreparationTime int                `json:"preparationTime,omitempty"`
	CookingTime     int                `json:"cookingTime,omitempty"`
	TotalCost       decimal.Decimal    `json:"totalCost"`
	CostPerServing  decimal.Decimal    `json:"costPerServing"`
	ProfitMargin    decimal.Decimal    `json:"profitMargin"`
	SuggestedPrice  decimal.Decimal    `json:"suggestedPrice"`
	ImageURL        string             `json:"imageUrl,omitempty"`
	Tags            []string           `json:"tags,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	IsPublished     bool               `json:"isPublished"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}
