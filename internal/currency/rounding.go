package currency

import "github.com/shopspring/decimal"

// RoundMoney rounds half away from zero to two decimals. Amounts that already
// have at most two decimals are returned untouched.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	if d.Exponent() >= -2 {
		return d
	}
	return d.Round(2)
}

// SafeRatio returns numerator/denominator, or zero when the denominator is zero
func SafeRatio(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator)
}
