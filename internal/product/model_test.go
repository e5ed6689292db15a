package product

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestEffectivePrice(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	p := Product{Price: d("5.00")}
	assert.True(t, p.EffectivePrice(now).Equal(d("5.00")), "no sale means list price")

	p = Product{Price: d("5.00"), IsOnSale: true, SalePrice: d("3.50"), SaleEndDate: &future}
	assert.True(t, p.EffectivePrice(now).Equal(d("3.50")), "active sale uses sale price")

	p = Product{Price: d("5.00"), IsOnSale: true, SalePrice: d("3.50"), SaleEndDate: &past}
	assert.True(t, p.EffectivePrice(now).Equal(d("5.00")), "expired sale reverts to list price")

	p = Product{Price: d("5.00"), IsOnSale: true, SalePrice: d("3.50")}
	assert.True(t, p.EffectivePrice(now).Equal(d("3.50")), "open-ended sale uses sale price")

	p = Product{Price: d("5.00"), IsOnSale: true}
	assert.True(t, p.EffectivePrice(now).Equal(d("5.00")), "sale flag without sale price is ignored")
}

func TestRecordPrice_AppendsOnlyOnChange(t *testing.T) {
	now := time.Now()
	p := Product{Price: d("5.00")}

	p.RecordPrice(d("5.00"), now)
	assert.Len(t, p.PriceHistory, 1, "first record seeds the history")

	p.RecordPrice(d("5.00"), now.Add(time.Hour))
	assert.Len(t, p.PriceHistory, 1, "unchanged price adds nothing")

	p.RecordPrice(d("4.20"), now.Add(2*time.Hour))
	assert.Len(t, p.PriceHistory, 2)
	assert.True(t, p.Price.Equal(d("4.20")))
	assert.True(t, p.PriceHistory[0].Price.Equal(d("5.00")), "earlier rows untouched")
}
