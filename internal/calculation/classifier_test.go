package calculation

import (
	"testing"

	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/stretchr/testify/assert"
)

func item(earner int, category, label, amount string) domain.CostItem {
	return domain.CostItem{IncomeMakerIndex: earner, Category: category, Label: label, Amount: dec(amount)}
}

func TestClassify_Slots(t *testing.T) {
	items := []domain.CostItem{
		item(0, domain.CostGross, "Gross income", "50000"),
		item(0, domain.CostExpenses, "Business expenses", "1000"),
		item(0, domain.CostSocial, "Social contributions", "2700"),
		item(0, domain.CostIncomeTax, "Regional income tax", "400"),
		item(0, domain.CostIncomeTax, "Municipal surcharge", "100"),
		item(0, domain.CostIncomeTax, "State income tax", "4000"),
		item(0, domain.CostIncomeTax, "Corporate tax", "900"),
		item(0, domain.CostDividendTax, "Dividend tax", "300"),
		item(0, domain.CostTaxCredit, "Employment credit", "100"),
		item(0, domain.CostTaxCredit, "Family allowance", "250"),
		item(0, domain.CostHealthInsurance, "Health insurance", "1200"),
		item(1, domain.CostGross, "Gross income", "99999"),
	}

	c := NewCostItemClassifier(DefaultPolicy("Italy")).Classify(items, 0)

	assert.Equal(t, 0, c.EarnerIndex)
	assert.True(t, c.Gross.Equal(dec("50000")), "Only earner 0 items count")
	assert.True(t, c.Expenses.Equal(dec("1000")))
	assert.True(t, c.Social.Equal(dec("2700")))
	assert.True(t, c.Regional.Equal(dec("400")))
	assert.True(t, c.Municipal.Equal(dec("100")))
	assert.True(t, c.LocalTax().Equal(dec("500")))
	assert.True(t, c.State.Equal(dec("4000")))
	assert.True(t, c.Corporate.Equal(dec("900")))
	assert.True(t, c.Dividend.Equal(dec("300")))
	assert.True(t, c.Credit.Equal(dec("100")), "Allowance is not a deductible credit")
	assert.True(t, c.Allowance.Equal(dec("250")))
	assert.True(t, c.HealthInsurance.Equal(dec("1200")))
}

func TestClassify_ReductionPolicies(t *testing.T) {
	items := []domain.CostItem{
		item(0, domain.CostReduction, "Personal reduction", "1000"),
		item(0, domain.CostReduction, "Dependent reduction", "600"),
	}

	sum := NewCostItemClassifier(domain.JurisdictionPolicy{}).Classify(items, 0)
	assert.True(t, sum.Reduction.Equal(dec("1600")), "Empty policy sums reductions")

	last := NewCostItemClassifier(domain.JurisdictionPolicy{Reductions: domain.ReductionsKeepLast}).Classify(items, 0)
	assert.True(t, last.Reduction.Equal(dec("600")))
}

func TestClassify_TotalIncomeTaxCoalescing(t *testing.T) {
	lone := []domain.CostItem{item(0, domain.CostIncomeTax, "Total income tax", "3000")}

	coalesced := NewCostItemClassifier(DefaultPolicy("Spain")).Classify(lone, 0)
	assert.True(t, coalesced.State.Equal(dec("3000")))

	kept := NewCostItemClassifier(domain.JurisdictionPolicy{Name: "Spain"}).Classify(lone, 0)
	assert.True(t, kept.State.IsZero(), "Without the flag the total is not read as state tax")

	mixed := append(lone, item(0, domain.CostIncomeTax, "Regional income tax", "500"))
	c := NewCostItemClassifier(DefaultPolicy("Spain")).Classify(mixed, 0)
	assert.True(t, c.State.IsZero(), "A labeled regional item disables coalescing")
	assert.True(t, c.Regional.Equal(dec("500")))
}

func TestClassify_UnlabeledIncomeTaxIsState(t *testing.T) {
	items := []domain.CostItem{item(0, domain.CostIncomeTax, "Income tax", "1200")}

	c := NewCostItemClassifier(DefaultPolicy("")).Classify(items, 0)

	assert.True(t, c.State.Equal(dec("1200")))
}

func TestClassify_USTaxes(t *testing.T) {
	items := []domain.CostItem{
		{IncomeMakerIndex: 1, Category: domain.CostUSIncomeTax, Label: "US federal", Amount: dec("150"), Note: "first"},
		{IncomeMakerIndex: 1, Category: domain.CostUSIncomeTax, Label: "US federal", Amount: dec("50"), Note: "Foreign tax credit applied."},
		{IncomeMakerIndex: 1, Category: domain.CostUSSelfTax, Label: "US self-employment", Amount: dec("75")},
	}

	c := NewCostItemClassifier(DefaultPolicy("")).Classify(items, 1)

	assert.True(t, c.USIncomeTax.Equal(dec("200")))
	assert.Equal(t, "Foreign tax credit applied.", c.USIncomeTaxNote)
	assert.True(t, c.USSelfTax.Equal(dec("75")))
	assert.Empty(t, c.USSelfTaxNote)
	assert.True(t, c.USTaxes().Equal(dec("275")))
}

func TestClassify_CustomInformationalCredits(t *testing.T) {
	items := []domain.CostItem{
		item(0, domain.CostTaxCredit, "Family allowance", "250"),
		item(0, domain.CostTaxCredit, "Child bonus", "80"),
	}
	policy := domain.JurisdictionPolicy{InformationalCredits: []string{"BONUS"}}

	c := NewCostItemClassifier(policy).Classify(items, 0)

	assert.True(t, c.Allowance.Equal(dec("80")))
	assert.True(t, c.Credit.Equal(dec("250")))
}
