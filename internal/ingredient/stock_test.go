package ingredient

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func flour() *Ingredient {
	return &Ingredient{
		Name:            "Flour",
		PurchasePrice:   d("10"),
		PurchaseUnit:    "kg",
		RecipeUnit:      "g",
		ConversionRatio: d("1000"),
		StockQuantity:   decimal.Zero,
	}
}

func TestApplyPurchase_MatchingUnit(t *testing.T) {
	ing := flour()

	ing.ApplyPurchase(d("2"), "kg", d("9.50"))

	assert.True(t, ing.StockQuantity.Equal(d("2")))
	assert.True(t, ing.InStock)
	// a matching-unit purchase is authoritative for the default price
	assert.True(t, ing.PurchasePrice.Equal(d("9.50")))
}

func TestApplyPurchase_ForeignUnitConverts(t *testing.T) {
	ing := flour()

	ing.ApplyPurchase(d("2"), "bag", d("15"))

	assert.True(t, ing.StockQuantity.Equal(d("2000")), "got %s", ing.StockQuantity)
	assert.True(t, ing.InStock)
	// price untouched when units differ
	assert.True(t, ing.PurchasePrice.Equal(d("10")))
}

func TestReversePurchase_RoundTrip(t *testing.T) {
	ing := flour()

	ing.ApplyPurchase(d("2"), "kg", d("9.50"))
	ing.ReversePurchase(d("2"), "kg")

	assert.True(t, ing.StockQuantity.Equal(decimal.Zero))
	assert.False(t, ing.InStock)
}

func TestReversePurchase_ClampsAtZero(t *testing.T) {
	ing := flour()
	ing.StockQuantity = d("1")
	ing.InStock = true

	ing.ReversePurchase(d("5"), "kg")

	assert.True(t, ing.StockQuantity.Equal(decimal.Zero))
	assert.False(t, ing.InStock)
}

func TestStockLedger_ApplyReverseSequences(t *testing.T) {
	ing := flour()

	ops := []struct {
		apply bool
		qty   string
		unit  string
	}{
		{true, "3", "kg"},
		{true, "500", "box"}, // converts to 500000 g
		{false, "500", "box"},
		{false, "1", "kg"},
		{false, "2", "kg"},
	}

	for _, op := range ops {
		if op.apply {
			ing.ApplyPurchase(d(op.qty), op.unit, d("10"))
		} else {
			ing.ReversePurchase(d(op.qty), op.unit)
		}
		assert.False(t, ing.StockQuantity.IsNegative(), "stock must never go negative")
		assert.Equal(t, ing.StockQuantity.GreaterThan(decimal.Zero), ing.InStock)
	}

	assert.True(t, ing.StockQuantity.Equal(decimal.Zero))
}
