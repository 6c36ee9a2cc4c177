package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
base_currency: eur
rates:
  USD: 1.1
  CZK: 25
price_books:
  - city: Lisbon
    tags: "capital; short_stay_increase:1.4"
    records:
      - item_id: 101
        price: 1200
        low_price: 950
        high_price: 1500
      - item_id: 201
        price: 12.5
      - item_id: 301
        price: 40
        currency: usd
  - city: Brno
    currency: czk
    records:
      - item_id: 101
        price: 18000
jurisdictions:
  - name: Spain
    reductions: LAST
    notices:
      - "Configured notice"
scenarios:
  - name: Frugal
    household: SOLO
    city: Lisbon
    changes: [food_low, housing_price_low]
  - name: Family in Brno
    household: family
    city: Brno
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	parser := NewInputParser()

	config, err := parser.LoadFromFile(writeFile(t, "config.yaml", validYAML))
	require.NoError(t, err)

	assert.Equal(t, "EUR", config.BaseCurrency)
	assert.True(t, config.Rates["USD"].Equal(dec("1.1")))
	assert.Equal(t, []string{"Lisbon", "Brno"}, config.Cities())

	lisbon, ok := config.PriceBook("Lisbon")
	require.True(t, ok)
	assert.Equal(t, "EUR", lisbon.Currency, "Book currency defaults to the base currency")
	require.Len(t, lisbon.Records, 3)
	require.NotNil(t, lisbon.Records[0].LowPrice)
	assert.True(t, lisbon.Records[0].LowPrice.Equal(dec("950")))
	assert.True(t, lisbon.Records[1].Price.Equal(dec("12.5")))
	assert.Equal(t, "USD", lisbon.Records[2].Currency)

	brno, _ := config.PriceBook("Brno")
	assert.Equal(t, "CZK", brno.Currency)

	spain, ok := config.Jurisdiction("Spain")
	require.True(t, ok)
	assert.Equal(t, domain.ReductionsKeepLast, spain.Reductions)

	require.Len(t, config.Scenarios, 2)
	assert.Equal(t, domain.HouseholdSolo, config.Scenarios[0].Household)
	assert.Equal(t, []string{"food_low", "housing_price_low"}, config.Scenarios[0].Changes)
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	_, err = parser.LoadFromFile(writeFile(t, "bad.yaml", "scenarios: [\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"rates without base", "rates: {USD: 1.1}", "base_currency"},
		{"non-positive rate", "base_currency: EUR\nrates: {USD: 0}", "rates.USD"},
		{"missing city", "price_books: [{records: []}]", "city"},
		{"unknown item", "price_books: [{city: A, records: [{item_id: 9999, price: 1}]}]", "records[9999]"},
		{"negative price", "price_books: [{city: A, records: [{item_id: 201, price: -1}]}]", "records[201].price"},
		{"tier on untierable item", "price_books: [{city: A, records: [{item_id: 201, price: 1, low_price: 1}]}]", "records[201]"},
		{"duplicate record", "price_books: [{city: A, records: [{item_id: 201, price: 1}, {item_id: 201, price: 2}]}]", "records[201]"},
		{"duplicate city", "price_books: [{city: A}, {city: A}]", "city"},
		{"bad reductions", "jurisdictions: [{name: Italy, reductions: average}]", "reductions"},
		{"unnamed jurisdiction", "jurisdictions: [{reductions: sum}]", "name"},
		{"bad household", "price_books: [{city: A}]\nscenarios: [{name: s, household: commune, city: A}]", "household"},
		{"unknown city", "scenarios: [{name: s, household: solo, city: Nowhere}]", "city"},
		{"unnamed scenario", "price_books: [{city: A}]\nscenarios: [{household: solo, city: A}]", "name"},
		{"duplicate scenario", "price_books: [{city: A}]\nscenarios: [{name: s, household: solo, city: A}, {name: S, household: pair, city: A}]", "name"},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse([]byte(tt.yaml))
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "want a ValidationError, got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateConfiguration_StrictChanges(t *testing.T) {
	yaml := "price_books: [{city: A}]\nscenarios: [{name: s, household: solo, city: A, changes: [food_low, fly_private]}]"

	lenient := NewInputParser()
	_, err := lenient.Parse([]byte(yaml))
	assert.NoError(t, err, "Unknown changes are ignored at resolution time")

	strict := NewInputParser()
	strict.StrictChanges = true
	_, err = strict.Parse([]byte(yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fly_private")
}

const taxReportYAML = `
jurisdiction: Italy
currency: eur
household:
  earners:
    - name: Ada
      regime: flat_rate
    - name: Bo
      regime: ordinary
      us_person: true
  dependents:
    - age: 4
cost_items:
  - income_maker_index: 0
    category: gross
    label: Gross income
    amount: 50000
  - income_maker_index: 1
    category: us_income_tax
    label: US federal income tax
    amount: 120.55
    note: Foreign tax credit applied.
  - income_maker_index: 0
    category: additional_2nd
    label: Tax
    amount: 4600
`

func TestLoadTaxReport(t *testing.T) {
	parser := NewInputParser()

	report, err := parser.LoadTaxReport(writeFile(t, "report.yaml", taxReportYAML))
	require.NoError(t, err)

	assert.Equal(t, "Italy", report.Jurisdiction)
	assert.Equal(t, "EUR", report.Currency)
	assert.Equal(t, "flat_rate", report.RegimeFor(0))
	assert.True(t, report.Household.Earners[1].USPerson)
	assert.Equal(t, 4, report.Household.Dependents[0].Age)
	require.Len(t, report.CostItems, 3)
	assert.True(t, report.CostItems[1].Amount.Equal(dec("120.55")))
	assert.Equal(t, "Foreign tax credit applied.", report.CostItems[1].Note)
	assert.Equal(t, []int{0, 1}, report.EarnerIndexes())
}

func TestValidateTaxReport(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"earner index out of range", "cost_items: [{income_maker_index: 2, category: gross, amount: 1}]", "cost_items[0].income_maker_index"},
		{"negative earner index", "cost_items: [{income_maker_index: -1, category: gross, amount: 1}]", "cost_items[0].income_maker_index"},
		{"missing category", "cost_items: [{income_maker_index: 0, amount: 1}]", "cost_items[0].category"},
		{"too many earners", "household: {earners: [{name: a}, {name: b}, {name: c}]}", "household.earners"},
		{"negative dependent age", "household: {dependents: [{age: -3}]}", "household.dependents[0].age"},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.ParseTaxReport([]byte(tt.yaml))
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateTaxReport_UnknownRegimeAccepted(t *testing.T) {
	report := &domain.TaxReport{Household: domain.HouseholdComposition{Earners: []domain.Earner{{Regime: "mystery"}}}}

	assert.NoError(t, NewInputParser().ValidateTaxReport(report))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
