package domain

import (
	"github.com/shopspring/decimal"
)

// Cost item category tags produced by the tax backend
const (
	CostGross           = "gross"
	CostExpenses        = "expenses"
	CostSocial          = "social_contributions"
	CostReduction       = "reduction"
	CostIncomeTax       = "income_tax"
	CostDividendTax     = "dividend_tax"
	CostUSIncomeTax     = "us_income_tax"
	CostUSSelfTax       = "us_self_tax"
	CostTaxCredit       = "tax_credit"
	CostNet             = "net"
	CostGrossSalary     = "gross_salary"
	CostHighEarnings    = "high_earnings"
	CostHealthInsurance = "health_insurance"
	CostTotalTax        = "total_tax"

	// CostForecastPrefix starts year-suffixed forecast tags such as "additional_2nd"
	CostForecastPrefix = "additional_"
)

// MaxEarners is the number of income makers a report can carry
const MaxEarners = 2

// CostItem is one tagged, labeled monetary fact computed by the tax backend for one earner
type CostItem struct {
	IncomeMakerIndex int             `yaml:"income_maker_index" json:"incomeMakerIndex"`
	Category         string          `yaml:"category" json:"category"`
	Label            string          `yaml:"label" json:"label"`
	Amount           decimal.Decimal `yaml:"amount" json:"amount"`
	Note             string          `yaml:"note,omitempty" json:"note,omitempty"`
}

// ReductionPolicy decides how several reduction items of one earner combine
type ReductionPolicy string

const (
	// ReductionsSum adds every reduction item
	ReductionsSum ReductionPolicy = "sum"
	// ReductionsKeepLast keeps only the last reduction item in report order
	ReductionsKeepLast ReductionPolicy = "last"
)

// JurisdictionPolicy carries the per-jurisdiction classification rules and notices
type JurisdictionPolicy struct {
	Name       string          `yaml:"name" json:"name"`
	Reductions ReductionPolicy `yaml:"reductions" json:"reductions"`
	// CoalesceTotalIncomeTax moves a "Total income tax" item into the state slot
	// when the earner has no separately labeled regional or state tax items
	CoalesceTotalIncomeTax bool `yaml:"coalesce_total_income_tax" json:"coalesceTotalIncomeTax"`
	// InformationalCredits are label fragments of credits that are shown but never subtracted
	InformationalCredits []string `yaml:"informational_credits,omitempty" json:"informationalCredits,omitempty"`
	Notices              []string `yaml:"notices,omitempty" json:"notices,omitempty"`
}

// Classified holds one earner's amounts grouped by semantic role
type Classified struct {
	EarnerIndex int

	Gross           decimal.Decimal
	Expenses        decimal.Decimal
	Social          decimal.Decimal
	Reduction       decimal.Decimal
	Regional        decimal.Decimal
	Municipal       decimal.Decimal
	State           decimal.Decimal
	Corporate       decimal.Decimal
	Dividend        decimal.Decimal
	USIncomeTax     decimal.Decimal
	USIncomeTaxNote string
	USSelfTax       decimal.Decimal
	USSelfTaxNote   string
	Credit          decimal.Decimal
	// Allowance is an informational credit that is never subtracted
	Allowance       decimal.Decimal
	Net             decimal.Decimal
	GrossSalary     decimal.Decimal
	HighEarnings    decimal.Decimal
	HealthInsurance decimal.Decimal
	TotalTax        decimal.Decimal
}

// LocalTax is the regional plus municipal income tax
func (c Classified) LocalTax() decimal.Decimal {
	return c.Regional.Add(c.Municipal)
}

// USTaxes is the federal plus self-employment tax owed by US persons
func (c Classified) USTaxes() decimal.Decimal {
	return c.USIncomeTax.Add(c.USSelfTax)
}

// BreakdownStep is one line of the narrative explaining how gross becomes net
type BreakdownStep struct {
	Name           string          `json:"name"`
	Explanation    string          `json:"explanation"`
	Formula        string          `json:"formula"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"totalFormatted"`
}

// Breakdown is the ordered list of steps built for one earner.
// ReferenceGross is the gross the net income step is derived from.
type Breakdown struct {
	EarnerIndex     int             `json:"earnerIndex"`
	Regime          string          `json:"regime"`
	Steps           []BreakdownStep `json:"steps"`
	ReferenceGross  decimal.Decimal `json:"referenceGross"`
	Taxes           decimal.Decimal `json:"taxes"`
	CostOfOperation decimal.Decimal `json:"costOfOperation"`
	Net             decimal.Decimal `json:"net"`
}

// Step returns the step with the given name
func (b Breakdown) Step(name string) (BreakdownStep, bool) {
	for _, s := range b.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return BreakdownStep{}, false
}

// ForecastYear is one projected future year
type ForecastYear struct {
	YearLabel        string          `json:"yearLabel"`
	Ordinal          int             `json:"ordinal"`
	Net              decimal.Decimal `json:"net"`
	CumulativeTax    decimal.Decimal `json:"cumulativeTax"`
	EffectiveTaxRate decimal.Decimal `json:"effectiveTaxRate"`
}

// Dependent is a member of the household who earns no income
type Dependent struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	Age  int    `yaml:"age" json:"age"`
}

// Earner is an income maker described by the tax backend
type Earner struct {
	Name     string `yaml:"name,omitempty" json:"name,omitempty"`
	Age      int    `yaml:"age,omitempty" json:"age,omitempty"`
	Regime   string `yaml:"regime,omitempty" json:"regime,omitempty"`
	USPerson bool   `yaml:"us_person,omitempty" json:"usPerson,omitempty"`
}

// HouseholdComposition is the household record attached to a tax report
type HouseholdComposition struct {
	Earners    []Earner    `yaml:"earners" json:"earners"`
	Dependents []Dependent `yaml:"dependents,omitempty" json:"dependents,omitempty"`
}

// TaxReport is the flat output of the tax backend for one household
type TaxReport struct {
	Jurisdiction string               `yaml:"jurisdiction" json:"jurisdiction"`
	Currency     string               `yaml:"currency" json:"currency"`
	Household    HouseholdComposition `yaml:"household" json:"household"`
	CostItems    []CostItem           `yaml:"cost_items" json:"costItems"`
}

// RegimeFor returns the regime identifier declared for an earner, empty when none
func (r TaxReport) RegimeFor(earner int) string {
	if earner < 0 || earner >= len(r.Household.Earners) {
		return ""
	}
	return r.Household.Earners[earner].Regime
}

// EarnerIndexes returns the distinct income maker indexes present in the cost items, in order
func (r TaxReport) EarnerIndexes() []int {
	var seen [MaxEarners]bool
	for _, ci := range r.CostItems {
		if ci.IncomeMakerIndex >= 0 && ci.IncomeMakerIndex < MaxEarners {
			seen[ci.IncomeMakerIndex] = true
		}
	}
	var out []int
	for i, ok := range seen {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

// TaxSummary is the aggregate report over every earner of a household
type TaxSummary struct {
	Jurisdiction     string          `json:"jurisdiction"`
	Currency         string          `json:"currency"`
	Rate             decimal.Decimal `json:"rate"`
	TotalGross       decimal.Decimal `json:"totalGross"`
	CumulativeTax    decimal.Decimal `json:"cumulativeTax"`
	EffectiveTaxRate decimal.Decimal `json:"effectiveTaxRate"`
	Breakdowns       []Breakdown     `json:"breakdowns"`
	Forecast         []ForecastYear  `json:"forecast,omitempty"`
	Notices          []string        `json:"notices,omitempty"`
}
