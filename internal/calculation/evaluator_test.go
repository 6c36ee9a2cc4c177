package calculation

import (
	"testing"

	"github.com/rgehrsitz/colcalc/internal/catalog"
	"github.com/rgehrsitz/colcalc/internal/currency"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// scenarioBook prices the solo medium-food, low-transport basket at food=300,
// transport=50 and average central small housing at 800
func scenarioBook() domain.PriceBook {
	return domain.PriceBook{
		City:     "Testville",
		Currency: "EUR",
		Records: []domain.PriceRecord{
			{ItemID: catalog.RentCentralSmall, Price: dec("800"), LowPrice: decPtr("600"), HighPrice: decPtr("1000")},
			{ItemID: catalog.MealInexpensive, Price: dec("42.5")},
			{ItemID: catalog.Milk, Price: dec("1")},
			{ItemID: catalog.Bread, Price: dec("2")},
			{ItemID: catalog.Eggs, Price: dec("3")},
			{ItemID: catalog.Chicken, Price: dec("10")},
			{ItemID: catalog.Vegetables, Price: dec("2.5")},
			{ItemID: catalog.Fruit, Price: dec("3.5")},
			{ItemID: catalog.Cappuccino, Price: dec("3")},
			{ItemID: catalog.TransitPass, Price: dec("50")},
		},
	}
}

func rentItem(tier domain.Tier) domain.LineItem {
	return domain.LineItem{ItemID: catalog.RentCentralSmall, Quantity: decimal.NewFromInt(1), Tier: tier}
}

func scenarioItems(cat *catalog.Catalog) []domain.LineItem {
	items := []domain.LineItem{rentItem(domain.TierDefault)}
	items = append(items, cat.ConsumptionItems(domain.HouseholdSolo, domain.CategoryFood, domain.ConsumptionMedium)...)
	items = append(items, cat.ConsumptionItems(domain.HouseholdSolo, domain.CategoryTransport, domain.ConsumptionLow)...)
	return items
}

func TestEvaluate_SoloScenario(t *testing.T) {
	be := NewBudgetEvaluator(nil)

	result := be.Evaluate(scenarioItems(be.Catalog), scenarioBook())

	assert.True(t, result.CategoryTotal(domain.CategoryFood).Equal(dec("300")), "food = %s", result.CategoryTotal(domain.CategoryFood))
	assert.True(t, result.CategoryTotal(domain.CategoryTransport).Equal(dec("50")))
	assert.True(t, result.CategoryTotal(domain.CategoryHousing).Equal(dec("800")))
	assert.True(t, result.Subtotal.Equal(dec("1150")))
	assert.True(t, result.Buffer.Equal(dec("115")))
	assert.Equal(t, "1265.00", result.Total.StringFixed(2))
	assert.False(t, result.Degraded())
	assert.Equal(t, "Testville", result.City)
}

func TestEvaluate_MissingPriceDegrades(t *testing.T) {
	be := NewBudgetEvaluator(nil)
	logger := &TestLogger{}
	be.Logger = logger

	book := scenarioBook()
	var records []domain.PriceRecord
	for _, r := range book.Records {
		if r.ItemID != catalog.Eggs {
			records = append(records, r)
		}
	}
	book.Records = records

	result := be.Evaluate(scenarioItems(be.Catalog), book)

	assert.True(t, result.CategoryTotal(domain.CategoryFood).Equal(dec("291")), "3 dozen eggs at 3 are missing")
	assert.True(t, result.Total.Equal(dec("1255.1")), "(291+50+800) * 1.1")
	assert.True(t, result.Degraded())
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "no price for item 205")
	assert.Contains(t, logger.messages, "WARN: "+result.Warnings[0])
}

func TestEvaluate_TierSelection(t *testing.T) {
	be := NewBudgetEvaluator(nil)
	book := scenarioBook()

	tests := []struct {
		tier domain.Tier
		want string
	}{
		{domain.TierDefault, "800"},
		{domain.TierLow, "600"},
		{domain.TierHigh, "1000"},
		{domain.TierShortTerm, "800"},
	}
	for _, tt := range tests {
		result := be.Evaluate([]domain.LineItem{rentItem(tt.tier)}, book)
		assert.True(t, result.CategoryTotal(domain.CategoryHousing).Equal(dec(tt.want)), "tier %q", tt.tier)
	}
}

func TestEvaluate_TierFallbackWithoutVariant(t *testing.T) {
	be := NewBudgetEvaluator(nil)
	book := domain.PriceBook{City: "Plain", Records: []domain.PriceRecord{
		{ItemID: catalog.RentCentralSmall, Price: dec("700")},
	}}

	noTier := be.Evaluate([]domain.LineItem{rentItem(domain.TierDefault)}, book)
	assert.True(t, noTier.CategoryTotal(domain.CategoryHousing).Equal(dec("700")))
	assert.False(t, noTier.Degraded())

	high := be.Evaluate([]domain.LineItem{rentItem(domain.TierHigh)}, book)
	assert.True(t, high.CategoryTotal(domain.CategoryHousing).Equal(dec("700")), "Missing variant falls back to price")
	assert.True(t, high.Degraded(), "Fallback is reported")
}

func TestEvaluate_Additivity(t *testing.T) {
	be := NewBudgetEvaluator(nil)
	book := scenarioBook()
	all := scenarioItems(be.Catalog)

	var a, b []domain.LineItem
	for _, it := range all {
		if cat, _ := be.Catalog.CategoryOf(it.ItemID); cat == domain.CategoryTransport {
			b = append(b, it)
		} else {
			a = append(a, it)
		}
	}

	union := be.Evaluate(all, book)
	ra := be.Evaluate(a, book)
	rb := be.Evaluate(b, book)

	for _, cat := range domain.Categories {
		assert.True(t, union.CategoryTotal(cat).Equal(ra.CategoryTotal(cat).Add(rb.CategoryTotal(cat))), "category %s", cat)
	}
	assert.True(t, union.Subtotal.Equal(ra.Subtotal.Add(rb.Subtotal)))
	// The buffer is applied once to the grand total
	assert.True(t, union.Total.Equal(union.Subtotal.Mul(dec("1.1"))))
}

func TestEvaluate_ShortStay(t *testing.T) {
	be := NewBudgetEvaluator(nil)
	items := scenarioItems(be.Catalog)
	items[0] = rentItem(domain.TierShortTerm)

	book := scenarioBook()
	book.Tags = "capital; coastal; short_stay_increase:1.5"
	result := be.Evaluate(items, book)

	assert.True(t, result.CategoryTotal(domain.CategoryHousing).Equal(dec("800")), "Housing subtotal stays untiered")
	assert.True(t, result.ShortStayAdjustment.Equal(dec("400")))
	assert.True(t, result.Total.Equal(dec("1665")), "1150 * 1.1 + 400")

	book.Tags = "capital"
	plain := be.Evaluate(items, book)
	assert.True(t, plain.ShortStayAdjustment.IsZero())
	assert.True(t, plain.Total.Equal(dec("1265")))
}

func TestEvaluate_ShortStayNeedsShortTermTier(t *testing.T) {
	be := NewBudgetEvaluator(nil)
	book := scenarioBook()
	book.Tags = "short_stay_increase:2"

	result := be.Evaluate(scenarioItems(be.Catalog), book)

	assert.True(t, result.ShortStayAdjustment.IsZero())
}

func TestEvaluate_UnknownItem(t *testing.T) {
	be := NewBudgetEvaluator(nil)

	result := be.Evaluate([]domain.LineItem{{ItemID: 4242, Quantity: decimal.NewFromInt(1)}}, scenarioBook())

	assert.True(t, result.Total.IsZero())
	assert.True(t, result.Degraded())
	assert.Contains(t, result.Warnings[0], "not in the catalog")
}

func TestEvaluate_ConvertsForeignPrices(t *testing.T) {
	be := NewBudgetEvaluator(nil)
	book := domain.PriceBook{City: "Border", Currency: "EUR", Records: []domain.PriceRecord{
		{ItemID: catalog.TransitPass, Price: dec("100"), Currency: "USD"},
	}}
	items := []domain.LineItem{{ItemID: catalog.TransitPass, Quantity: decimal.NewFromInt(1)}}

	unconverted := be.Evaluate(items, book)
	assert.True(t, unconverted.CategoryTotal(domain.CategoryTransport).Equal(dec("100")))
	assert.True(t, unconverted.Degraded(), "Missing rate table is reported")

	be.Rates = currency.NewTable("EUR", map[string]decimal.Decimal{"USD": dec("2")})
	converted := be.Evaluate(items, book)
	assert.True(t, converted.CategoryTotal(domain.CategoryTransport).Equal(dec("50")))
	assert.False(t, converted.Degraded())
}

func TestEvaluate_RoundsSubtotals(t *testing.T) {
	be := NewBudgetEvaluator(nil)
	book := domain.PriceBook{City: "Odd", Records: []domain.PriceRecord{
		{ItemID: catalog.Jeans, Price: dec("33.33")},
	}}
	items := []domain.LineItem{{ItemID: catalog.Jeans, Quantity: dec("0.25")}}

	result := be.Evaluate(items, book)

	assert.Equal(t, "8.33", result.CategoryTotal(domain.CategoryClothing).String(), "8.3325 rounds to 8.33")
	assert.Equal(t, "9.16", result.Total.String(), "8.33 + 0.833 buffer rounds to 0.83")
}

func TestParseCityTags(t *testing.T) {
	tags := ParseCityTags("capital;Short Stay Increase: 1.35 | region:north, coastal")

	assert.Equal(t, "1.35", tags[ShortStayIncreaseKey])
	assert.Equal(t, "north", tags["region"])
	assert.NotContains(t, tags, "capital")

	mult, ok := ShortStayIncrease("x:1;short-stay-increase:1.2")
	assert.True(t, ok)
	assert.True(t, mult.Equal(dec("1.2")))

	_, ok = ShortStayIncrease("short_stay_increase:abc")
	assert.False(t, ok)
	_, ok = ShortStayIncrease("short_stay_increase:-1")
	assert.False(t, ok)
	_, ok = ShortStayIncrease("")
	assert.False(t, ok)
}
