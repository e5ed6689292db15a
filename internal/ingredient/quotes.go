package ingredient

import (
	"time"

	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/pricing"

	"github.com/shopspring/decimal"
)

// sameCalendarDay is the single "is this a new observation" predicate for
// the price history. Two timestamps on the same local calendar day are
// the same observation regardless of clock time.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// UpsertQuote replaces (or inserts) the live quote for a supermarket and
// evaluates the price history: an entry is appended unless the same
// supermarket already has one for that calendar day. History rows are
// never mutated, so re-submitting a price on the same day is a no-op for
// the audit trail.
func (i *Ingredient) UpsertQuote(supermarketID string, price decimal.Decimal, date time.Time, isManualEntry bool) {
	if date.IsZero() {
		date = time.Now()
	}

	quote := PriceQuote{
		Supermarket:   supermarketID,
		Price:         price,
		PriceDate:     date,
		IsManualEntry: isManualEntry,
	}

	replaced := false
	for idx := range i.Prices {
		if i.Prices[idx].Supermarket == supermarketID {
			i.Prices[idx] = quote
			replaced = true
			break
		}
	}
	if !replaced {
		i.Prices = append(i.Prices, quote)
	}

	for _, h := range i.PriceHistory {
		if h.Supermarket == supermarketID && sameCalendarDay(h.Date, date) {
			return
		}
	}

	i.PriceHistory = append(i.PriceHistory, PriceHistoryEntry{
		Supermarket:   supermarketID,
		Price:         price,
		Date:          date,
		IsManualEntry: isManualEntry,
	})
}

// BestPrice returns the lowest live quote, or the fallback purchase price
// when no quotes exist.
func (i *Ingredient) BestPrice() decimal.Decimal {
	if len(i.Prices) == 0 {
		return i.PurchasePrice
	}

	best := i.Prices[0].Price
	for _, q := range i.Prices[1:] {
		if q.Price.LessThan(best) {
			best = q.Price
		}
	}
	return best
}

// PriceForSupermarket returns the live quote for a supermarket, falling
// back to the purchase price when none is recorded.
func (i *Ingredient) PriceForSupermarket(supermarketID string) decimal.Decimal {
	for _, q := range i.Prices {
		if q.Supermarket == supermarketID {
			return q.Price
		}
	}
	return i.PurchasePrice
}

// EffectivePrice is the price used for costing: the preferred
// supermarket's quote when one is set and present, else the purchase
// price.
func (i *Ingredient) EffectivePrice() decimal.Decimal {
	if i.PreferredSupermarket == "" {
		return i.PurchasePrice
	}
	for _, q := range i.Prices {
		if q.Supermarket == i.PreferredSupermarket {
			return q.Price
		}
	}
	return i.PurchasePrice
}

// CostPerRecipeUnit is the effective price divided by the conversion
// ratio.
func (i *Ingredient) CostPerRecipeUnit() (decimal.Decimal, error) {
	return pricing.CostPerRecipeUnit(i.EffectivePrice(), i.ConversionRatio)
}
