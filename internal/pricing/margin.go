package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ProfitMargin returns (price - cost) / price * 100.
// A price of zero or less yields a margin of 0, never a division by zero.
func ProfitMargin(price, cost decimal.Decimal) decimal.Decimal {
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return price.Sub(cost).Div(price).Mul(hundred)
}

// RevenueMargin returns (revenue - cost) / revenue * 100, the aggregate
// form used for menu-level averages. Zero when revenue is not positive.
func RevenueMargin(revenue, cost decimal.Decimal) decimal.Decimal {
	if revenue.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return revenue.Sub(cost).Div(revenue).Mul(hundred)
}

// Scale applies a percentage delta to an amount, e.g. Scale(x, 10) = x*1.1
// and Scale(x, -10) = x*0.9. Used by the what-if scenarios.
func Scale(amount decimal.Decimal, percent int64) decimal.Decimal {
	factor := decimal.NewFromInt(100 + percent).Div(hundred)
	return amount.Mul(factor)
}
