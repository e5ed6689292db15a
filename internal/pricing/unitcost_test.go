package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCostPerRecipeUnit(t *testing.T) {
	// $10/kg at 1000 g per kg -> $0.01/g
	got, err := CostPerRecipeUnit(d("10"), d("1000"))
	assert.NoError(t, err)
	assert.True(t, got.Equal(d("0.01")), "got %s", got)
}

func TestCostPerRecipeUnit_InvalidRatio(t *testing.T) {
	_, err := CostPerRecipeUnit(d("10"), decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidConversionRatio)

	_, err = CostPerRecipeUnit(d("10"), d("-2"))
	assert.ErrorIs(t, err, ErrInvalidConversionRatio)
}

func TestCostPerRecipeUnit_NegativePrice(t *testing.T) {
	_, err := CostPerRecipeUnit(d("-1"), d("1000"))
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestToStockUnits(t *testing.T) {
	assert.True(t, ToStockUnits(d("2"), d("1000")).Equal(d("2000")))
	// unusable ratio falls back to the raw quantity
	assert.True(t, ToStockUnits(d("2"), decimal.Zero).Equal(d("2")))
}

func TestProfitMargin(t *testing.T) {
	// price $10, cost $2.50 -> 75%
	assert.True(t, ProfitMargin(d("10"), d("2.50")).Equal(d("75")))
	assert.True(t, ProfitMargin(decimal.Zero, d("5")).Equal(decimal.Zero))
	assert.True(t, ProfitMargin(d("-3"), d("5")).Equal(decimal.Zero))
}

func TestRevenueMargin(t *testing.T) {
	assert.True(t, RevenueMargin(d("20"), d("5")).Equal(d("75")))
	assert.True(t, RevenueMargin(decimal.Zero, decimal.Zero).Equal(decimal.Zero))
}

func TestScale(t *testing.T) {
	assert.True(t, Scale(d("100"), 10).Equal(d("110")))
	assert.True(t, Scale(d("100"), -10).Equal(d("90")))
}
