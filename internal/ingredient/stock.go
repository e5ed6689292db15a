package ingredient

import (
	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/pricing"

	"github.com/shopspring/decimal"
)

// ApplyPurchase adds a purchased quantity to the stock. A purchase in the
// ingredient's own unit also overwrites the fallback purchase price: the
// most recent matching-unit purchase is treated as authoritative. A
// purchase in any other unit is converted with the conversion ratio and
// leaves the price alone.
func (i *Ingredient) ApplyPurchase(quantity decimal.Decimal, unit string, price decimal.Decimal) {
	if unit == i.PurchaseUnit {
		i.PurchasePrice = price
		i.StockQuantity = i.StockQuantity.Add(quantity)
	} else {
		i.StockQuantity = i.StockQuantity.Add(pricing.ToStockUnits(quantity, i.ConversionRatio))
	}
	i.InStock = i.StockQuantity.GreaterThan(decimal.Zero)
}

// ReversePurchase undoes the stock delta of a purchase, clamping at zero.
// The purchase-price overwrite is not reversed; there is no record of the
// previous price to restore.
func (i *Ingredient) ReversePurchase(quantity decimal.Decimal, unit string) {
	if unit == i.PurchaseUnit {
		i.StockQuantity = i.StockQuantity.Sub(quantity)
	} else {
		i.StockQuantity = i.StockQuantity.Sub(pricing.ToStockUnits(quantity, i.ConversionRatio))
	}

	if i.StockQuantity.IsNegative() {
		i.StockQuantity = decimal.Zero
	}
	i.InStock = i.StockQuantity.GreaterThan(decimal.Zero)
}
