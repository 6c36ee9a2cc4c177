package calculation

import (
	"testing"

	"github.com/rgehrsitz/colcalc/internal/currency"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/rgehrsitz/colcalc/internal/regime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func householdReport() domain.TaxReport {
	return domain.TaxReport{
		Jurisdiction: "Italy",
		Currency:     "EUR",
		Household: domain.HouseholdComposition{
			Earners: []domain.Earner{
				{Name: "Ada", Regime: "flat_rate"},
				{Name: "Bo", Regime: "mystery"},
			},
		},
		CostItems: []domain.CostItem{
			item(0, domain.CostGross, "Gross income", "50000"),
			item(0, domain.CostExpenses, "Business expenses", "1000"),
			item(0, domain.CostSocial, "Social contributions", "2700"),
			item(0, domain.CostIncomeTax, "Regional income tax", "400"),
			item(0, domain.CostIncomeTax, "State income tax", "4000"),
			item(0, domain.CostTotalTax, "Total tax", "4400"),
			item(1, domain.CostGross, "Gross income", "30000"),
			item(1, domain.CostSocial, "Social contributions", "1000"),
			item(1, domain.CostTotalTax, "Total tax", "2000"),
			item(2, domain.CostGross, "Gross income", "1000000"),
			item(0, "additional_2nd", "Tax", "4600"),
			item(0, "additional_2nd", "Net income", "42000"),
		},
	}
}

func TestAggregate_Household(t *testing.T) {
	ar := NewAggregateReporter()
	logger := &TestLogger{}
	ar.Logger = logger

	summary := ar.Aggregate(householdReport(), currency.Identity("EUR"), DefaultPolicy("Italy"))

	assert.Equal(t, "Italy", summary.Jurisdiction)
	assert.Equal(t, "EUR", summary.Currency)
	assert.True(t, summary.TotalGross.Equal(dec("80000")), "Out-of-range earner is ignored")
	assert.True(t, summary.CumulativeTax.Equal(dec("10100")))
	assert.True(t, summary.EffectiveTaxRate.Equal(dec("0.12625")))

	require.Len(t, summary.Breakdowns, 2)
	first := summary.Breakdowns[0]
	assert.Equal(t, 0, first.EarnerIndex)
	assert.Equal(t, "flat_rate", first.Regime)
	assert.True(t, first.Taxes.Equal(dec("4400")))
	assert.True(t, first.CostOfOperation.Equal(dec("8100")))
	assert.True(t, first.Net.Equal(dec("41900")))

	second := summary.Breakdowns[1]
	assert.Equal(t, 1, second.EarnerIndex)
	assert.Equal(t, regime.KindDefault.String(), second.Regime, "Unknown regime falls back to the default")
	assert.True(t, second.Net.Equal(dec("29000")))

	require.Len(t, summary.Forecast, 1)
	assert.Equal(t, "2nd", summary.Forecast[0].YearLabel)
	assert.True(t, summary.Forecast[0].EffectiveTaxRate.Equal(dec("0.0575")))

	assert.Equal(t, DefaultNotices["italy"], summary.Notices)
	assert.True(t, logger.contains("WARN: unknown regime \"mystery\""))
	assert.True(t, logger.contains("income maker index 2"))
}

func TestAggregate_ZeroGross(t *testing.T) {
	report := domain.TaxReport{
		Jurisdiction: "Nowhere",
		CostItems:    []domain.CostItem{item(0, domain.CostTotalTax, "Total tax", "100")},
	}

	summary := NewAggregateReporter().Aggregate(report, currency.Identity(""), DefaultPolicy("Nowhere"))

	assert.True(t, summary.TotalGross.IsZero())
	assert.True(t, summary.EffectiveTaxRate.IsZero())
	assert.Empty(t, summary.Notices)
	require.Len(t, summary.Breakdowns, 1)
}

func TestAggregate_EmptyReport(t *testing.T) {
	summary := NewAggregateReporter().Aggregate(domain.TaxReport{}, currency.Identity("EUR"), domain.JurisdictionPolicy{})

	assert.Empty(t, summary.Breakdowns)
	assert.Empty(t, summary.Forecast)
	assert.True(t, summary.CumulativeTax.IsZero())
}

func TestNotices(t *testing.T) {
	young := domain.HouseholdComposition{Dependents: []domain.Dependent{{Age: 9}, {Age: 3}, {Age: 1}}}
	older := domain.HouseholdComposition{Dependents: []domain.Dependent{{Age: 6}, {Age: 12}}}

	notices := Notices(" Portugal ", domain.JurisdictionPolicy{}, young)
	assert.Equal(t, append(append([]string{}, DefaultNotices["portugal"]...), YoungDependentNotice), notices,
		"Young dependent notice appears once")

	assert.Equal(t, DefaultNotices["portugal"], Notices("Portugal", domain.JurisdictionPolicy{}, older))

	custom := domain.JurisdictionPolicy{Notices: []string{"Custom notice"}}
	assert.Equal(t, []string{"Custom notice"}, Notices("Portugal", custom, older))

	assert.Empty(t, Notices("Atlantis", domain.JurisdictionPolicy{}, older))
}
