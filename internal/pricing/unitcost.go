package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidConversionRatio = errors.New("conversion ratio must be greater than zero")
	ErrNegativePrice          = errors.New("price cannot be negative")
)

// ValidateConversionRatio rejects ratios that would make unit costs
// undefined. Must be called on ingredient create/update before any
// derived field is computed.
func ValidateConversionRatio(ratio decimal.Decimal) error {
	if ratio.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidConversionRatio
	}
	return nil
}

// CostPerRecipeUnit converts a purchase-unit price into the cost of one
// recipe unit: price / conversionRatio.
func CostPerRecipeUnit(price, conversionRatio decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateConversionRatio(conversionRatio); err != nil {
		return decimal.Zero, err
	}
	if price.IsNegative() {
		return decimal.Zero, ErrNegativePrice
	}
	return price.Div(conversionRatio), nil
}

// ToStockUnits converts a quantity bought in a foreign unit into the
// ingredient's stock unit. The same conversionRatio is applied for both
// price and stock conversion, not true dimensional analysis.
func ToStockUnits(quantity, conversionRatio decimal.Decimal) decimal.Decimal {
	if conversionRatio.LessThanOrEqual(decimal.Zero) {
		// legacy rows without a usable ratio fall back to 1:1
		return quantity
	}
	return quantity.Mul(conversionRatio)
}
