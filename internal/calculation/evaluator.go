package calculation

import (
	"fmt"

	"github.com/rgehrsitz/colcalc/internal/catalog"
	"github.com/rgehrsitz/colcalc/internal/currency"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// BUDGET EVALUATION RULES:
//
// 1. Unit price: the item's tier picks Price, LowPrice or HighPrice. No tier, or a
//    tier whose variant is missing, prices at Price.
// 2. Category subtotal = sum(unit price * quantity), rounded to cents.
// 3. Total = subtotal + 10% contingency buffer, applied once to the grand total.
// 4. Short stay: a short-term rent is summed at Price; the city's short-stay
//    multiplier then adds housing*(multiplier-1) to the total as one adjustment.
// 5. Missing prices never fail the budget. The item contributes zero and a warning
//    is recorded on the result and sent to the logger.

// BufferRate is the contingency margin added to every budget
var BufferRate = decimal.NewFromFloat(0.10)

// BudgetEvaluator sums line items against a city's price book
type BudgetEvaluator struct {
	Catalog *catalog.Catalog
	// Rates converts records priced in a currency other than the book's; optional
	Rates  *currency.Table
	Logger Logger
}

// NewBudgetEvaluator creates an evaluator over a catalog
func NewBudgetEvaluator(cat *catalog.Catalog) *BudgetEvaluator {
	if cat == nil {
		cat = catalog.Default()
	}
	return &BudgetEvaluator{Catalog: cat, Logger: NopLogger{}}
}

// Evaluate computes category subtotals and the grand total of items in book's city
func (be *BudgetEvaluator) Evaluate(items []domain.LineItem, book domain.PriceBook) domain.BudgetResult {
	result := domain.BudgetResult{
		City:           book.City,
		Currency:       book.Currency,
		CategoryTotals: make(map[domain.Category]decimal.Decimal),
	}
	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		result.Warnings = append(result.Warnings, msg)
		be.logger().Warnf("%s", msg)
	}

	shortTerm := false
	for _, it := range items {
		category, ok := be.Catalog.CategoryOf(it.ItemID)
		if !ok {
			warn("%s: item %d is not in the catalog; counted as zero", book.City, it.ItemID)
			continue
		}
		if _, seen := result.CategoryTotals[category]; !seen {
			result.CategoryTotals[category] = decimal.Zero
		}
		if category == domain.CategoryHousing && it.Tier == domain.TierShortTerm {
			shortTerm = true
		}

		record, ok := book.Lookup(it.ItemID)
		if !ok {
			warn("%s: no price for item %d; counted as zero", book.City, it.ItemID)
			continue
		}

		unit, variantOK := unitPrice(record, it.Tier)
		if !variantOK {
			warn("%s: item %d has no %s price; using the default price", book.City, it.ItemID, it.Tier)
		}
		unit = be.convert(unit, record, book, warn)

		result.CategoryTotals[category] = result.CategoryTotals[category].Add(unit.Mul(it.Quantity))
	}

	subtotal := decimal.Zero
	for category, total := range result.CategoryTotals {
		total = currency.RoundMoney(total)
		result.CategoryTotals[category] = total
		subtotal = subtotal.Add(total)
	}
	result.Subtotal = subtotal
	result.Buffer = currency.RoundMoney(subtotal.Mul(BufferRate))

	if shortTerm {
		if mult, ok := ShortStayIncrease(book.Tags); ok {
			housing := result.CategoryTotals[domain.CategoryHousing]
			result.ShortStayAdjustment = currency.RoundMoney(housing.Mul(mult)).Sub(housing)
		} else {
			be.logger().Infof("%s: short-term housing requested but the city has no %s tag", book.City, ShortStayIncreaseKey)
		}
	}

	result.Total = currency.RoundMoney(subtotal.Add(result.Buffer).Add(result.ShortStayAdjustment))
	if result.Degraded() {
		be.logger().Infof("%s: budget is incomplete (%d warnings)", book.City, len(result.Warnings))
	}
	return result
}

// unitPrice picks the price variant for a tier. ok is false when the tier asks for a
// variant the record does not define.
func unitPrice(record domain.PriceRecord, tier domain.Tier) (decimal.Decimal, bool) {
	switch tier {
	case domain.TierLow:
		if record.LowPrice == nil {
			return record.Price, false
		}
		return *record.LowPrice, true
	case domain.TierHigh:
		if record.HighPrice == nil {
			return record.Price, false
		}
		return *record.HighPrice, true
	default:
		return record.Price, true
	}
}

func (be *BudgetEvaluator) convert(unit decimal.Decimal, record domain.PriceRecord, book domain.PriceBook, warn func(string, ...any)) decimal.Decimal {
	if record.Currency == "" || book.Currency == "" || record.Currency == book.Currency {
		return unit
	}
	if be.Rates == nil {
		warn("%s: item %d is priced in %s but no rate table is configured", book.City, record.ItemID, record.Currency)
		return unit
	}
	converted, err := be.Rates.Convert(unit, record.Currency, book.Currency)
	if err != nil {
		warn("%s: item %d: %v", book.City, record.ItemID, err)
		return unit
	}
	return converted
}

func (be *BudgetEvaluator) logger() Logger {
	if be.Logger == nil {
		return NopLogger{}
	}
	return be.Logger
}
