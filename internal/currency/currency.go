// Package currency converts and formats monetary amounts for presentation.
package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Table holds conversion rates keyed by currency code, relative to Base.
// Rates[c] is how many units of c one unit of Base buys.
type Table struct {
	Base  string
	Rates map[string]decimal.Decimal
}

// NewTable creates a rate table; the base currency always has rate 1
func NewTable(base string, rates map[string]decimal.Decimal) *Table {
	t := &Table{Base: strings.ToUpper(base), Rates: make(map[string]decimal.Decimal, len(rates)+1)}
	for code, r := range rates {
		t.Rates[strings.ToUpper(code)] = r
	}
	t.Rates[t.Base] = decimal.NewFromInt(1)
	return t
}

// Rate returns the multiplier converting an amount in from into to
func (t *Table) Rate(from, to string) (decimal.Decimal, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	fromRate, ok := t.Rates[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("no rate for currency %s", from)
	}
	toRate, ok := t.Rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("no rate for currency %s", to)
	}
	if fromRate.IsZero() {
		return decimal.Zero, fmt.Errorf("zero rate for currency %s", from)
	}
	return toRate.Div(fromRate), nil
}

// Convert converts amount from one currency into another
func (t *Table) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	r, err := t.Rate(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(r), nil
}

// Money renders base-currency amounts in a display currency
type Money struct {
	Rate     decimal.Decimal
	Currency string
}

// NewMoney creates a formatter multiplying every amount by rate
func NewMoney(rate decimal.Decimal, currency string) Money {
	return Money{Rate: rate, Currency: strings.ToUpper(currency)}
}

// Identity formats amounts as they are
func Identity(currency string) Money {
	return NewMoney(decimal.NewFromInt(1), currency)
}

// Convert applies the display rate
func (m Money) Convert(amount decimal.Decimal) decimal.Decimal {
	if m.Rate.IsZero() {
		return amount
	}
	return amount.Mul(m.Rate)
}

// Format converts amount and renders it with two decimals and the currency code
func (m Money) Format(amount decimal.Decimal) string {
	s := FormatAmount(m.Convert(amount))
	if m.Currency == "" {
		return s
	}
	return s + " " + m.Currency
}

// FormatAmount renders a value with thousands separators and two decimals
func FormatAmount(amount decimal.Decimal) string {
	s := amount.Round(2).StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	var sb strings.Builder
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(ch)
	}
	out := sb.String() + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// FormatPercent renders a fraction (0.25) as a bare percentage ("25.00%"); it is never converted
func FormatPercent(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
