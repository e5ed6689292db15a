package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a supermarket catalog entry. Unlike ingredients these are
// shared across users; ingredient quotes reference them indirectly via
// supermarket and barcode.
type Product struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	SupermarketID   string           `json:"supermarket"`
	SupermarketName string           `json:"supermarketName,omitempty"`
	Category        string           `json:"category"`
	Price           decimal.Decimal  `json:"price"`
	Currency        string           `json:"currency"`
	Unit            string           `json:"unit"`
	PackageSize     string           `json:"packageSize"`
	Brand           string           `json:"brand,omitempty"`
	ProductCode     string           `json:"productCode,omitempty"`
	Barcode         string           `json:"barcode,omitempty"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	IsOnSale        bool             `json:"isOnSale"`
	SalePrice       decimal.Decimal  `json:"salePrice,omitempty"`
	SaleEndDate     *time.Time       `json:"saleEndDate,omitempty"`
	PriceHistory    []PricePoint     `json:"priceHistory"`
	NutritionalInfo *NutritionalInfo `json:"nutritionalInfo,omitempty"`
	IsAvailable     bool             `json:"isAvailable"`
	LastUpdated     time.Time        `json:"lastUpdated"`
	CreatedAt       time.Time        `json:"createdAt"`
}

type PricePoint struct {
	Price decimal.Decimal `json:"price"`
	Date  time.Time       `json:"date"`
}

type NutritionalInfo struct {
	Calories    decimal.Decimal `json:"calories,omitempty"`
	Fat         decimal.Decimal `json:"fat,omitempty"`
	Carbs       decimal.Decimal `json:"carbs,omitempty"`
	Protein     decimal.Decimal `json:"protein,omitempty"`
	ServingSize string          `json:"servingSize,omitempty"`
}

// EffectivePrice is the price a shopper pays today: the sale price while
// a sale is running and not past its end date, otherwise the list price.
func (p *Product) EffectivePrice(now time.Time) decimal.Decimal {
	if !p.IsOnSale || p.SalePrice.LessThanOrEqual(decimal.Zero) {
		return p.Price
	}
	if p.SaleEndDate != nil && now.After(*p.SaleEndDate) {
		return p.Price
	}
	return p.SalePrice
}

// RecordPrice appends to the history whenever the list price changes.
// History rows are never edited afterwards.
func (p *Product) RecordPrice(price decimal.Decimal, at time.Time) {
	if len(p.PriceHistory) > 0 && p.Price.Equal(price) {
		return
	}
	p.Price = price
	p.PriceHistory = append(p.PriceHistory, PricePoint{Price: price, Date: at})
	p.LastUpdated = at
}
