// Package regime builds the narrative of how gross income becomes net income under
// each fiscal regime. Every regime kind has its own builder that constructs the full
// step list; builders share small helpers but never patch each other's output.
package regime

import (
	"strings"

	"github.com/rgehrsitz/colcalc/internal/currency"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Kind identifies a breakdown construction strategy
type Kind int

const (
	KindDefault Kind = iota
	KindFlatRate
	KindImpatriate
	KindOrdinary
	KindFlatMonthly
	KindFlatMonthlyNoExpenses
	KindProgressiveHealth
	KindSingleEntityDividend
	KindDualEntityDividend
	KindFreelancerFlatBase
	KindLimitedLiability
	KindBookkeepingSalary
)

var identifiers = map[Kind]string{
	KindDefault:               "none",
	KindFlatRate:              "flat_rate",
	KindImpatriate:            "impatriate",
	KindOrdinary:              "ordinary",
	KindFlatMonthly:           "flat_monthly",
	KindFlatMonthlyNoExpenses: "flat_monthly_no_expenses",
	KindProgressiveHealth:     "progressive_health",
	KindSingleEntityDividend:  "single_entity_dividend",
	KindDualEntityDividend:    "dual_entity_dividend",
	KindFreelancerFlatBase:    "freelancer_flat_base",
	KindLimitedLiability:      "limited_liability",
	KindBookkeepingSalary:     "bookkeeping_salary",
}

// Kinds lists every regime kind
var Kinds = []Kind{
	KindDefault,
	KindFlatRate,
	KindImpatriate,
	KindOrdinary,
	KindFlatMonthly,
	KindFlatMonthlyNoExpenses,
	KindProgressiveHealth,
	KindSingleEntityDividend,
	KindDualEntityDividend,
	KindFreelancerFlatBase,
	KindLimitedLiability,
	KindBookkeepingSalary,
}

// String returns the regime identifier
func (k Kind) String() string {
	if id, ok := identifiers[k]; ok {
		return id
	}
	return identifiers[KindDefault]
}

// Parse maps a regime identifier to its kind. Empty, "none", "default" and unknown
// identifiers map to KindDefault; ok is false only for unknown identifiers.
func Parse(identifier string) (Kind, bool) {
	id := strings.ToLower(strings.TrimSpace(identifier))
	switch id {
	case "", "none", "default":
		return KindDefault, true
	}
	for k, name := range identifiers {
		if name == id {
			return k, true
		}
	}
	return KindDefault, false
}

// Step names
const (
	StepBaseBeforeReductions = "Taxable base before reductions"
	StepBaseAfterReductions  = "Taxable base after reductions"
	StepTaxableBase          = "Taxable base"
	StepTaxes                = "Taxes"
	StepUSTaxes              = "US taxes"
	StepFlatAnnualPayment    = "Flat annual payment"
	StepSpouseContributions  = "Spouse salary contributions"
	StepCostOfOperation      = "Cost of operation"
	StepNetIncome            = "Net income"
)

// builder constructs the complete breakdown for one regime
type builder func(c domain.Classified, m currency.Money) domain.Breakdown

var builders = map[Kind]builder{
	KindDefault:               buildDefault,
	KindFlatRate:              buildFlatRate,
	KindImpatriate:            buildImpatriate,
	KindOrdinary:              buildOrdinary,
	KindFlatMonthly:           buildFlatMonthly,
	KindFlatMonthlyNoExpenses: buildFlatMonthlyNoExpenses,
	KindProgressiveHealth:     buildProgressiveHealth,
	KindSingleEntityDividend:  buildSingleEntityDividend,
	KindDualEntityDividend:    buildDualEntityDividend,
	KindFreelancerFlatBase:    buildFreelancerFlatBase,
	KindLimitedLiability:      buildLimitedLiability,
	KindBookkeepingSalary:     buildBookkeepingSalary,
}

// Build produces the breakdown of one earner for a regime kind
func Build(c domain.Classified, kind Kind, m currency.Money) domain.Breakdown {
	b, ok := builders[kind]
	if !ok {
		kind, b = KindDefault, buildDefault
	}
	out := b(c, m)
	out.EarnerIndex = c.EarnerIndex
	out.Regime = kind.String()
	return out
}

// BuildFor parses identifier and builds; unknown identifiers use the default builder
func BuildFor(c domain.Classified, identifier string, m currency.Money) domain.Breakdown {
	kind, _ := Parse(identifier)
	return Build(c, kind, m)
}

// narrative accumulates steps, rounding every total to cents
type narrative struct {
	money currency.Money
	steps []domain.BreakdownStep
}

func newNarrative(m currency.Money) *narrative {
	return &narrative{money: m}
}

func (n *narrative) add(name, explanation, formula string, total decimal.Decimal) decimal.Decimal {
	total = currency.RoundMoney(total)
	n.steps = append(n.steps, domain.BreakdownStep{
		Name:           name,
		Explanation:    explanation,
		Formula:        formula,
		Total:          total,
		TotalFormatted: n.money.Format(total),
	})
	return total
}

// f formats a base-currency amount for a formula
func (n *narrative) f(amount decimal.Decimal) string {
	return n.money.Format(amount)
}

// usTaxes adds the US federal and self-employment step when either is owed and
// returns the amount added
func (n *narrative) usTaxes(c domain.Classified) decimal.Decimal {
	us := c.USTaxes()
	if us.IsZero() {
		return decimal.Zero
	}
	var notes []string
	for _, note := range []string{c.USIncomeTaxNote, c.USSelfTaxNote} {
		if note != "" {
			notes = append(notes, note)
		}
	}
	explanation := "Taxes owed to the United States as a US person"
	if len(notes) > 0 {
		explanation = strings.Join(notes, " ")
	}
	return n.add(StepUSTaxes, explanation,
		n.f(c.USIncomeTax)+" federal + "+n.f(c.USSelfTax)+" self-employment",
		us)
}

// finish appends cost of operation and net income. Net is gross minus cost on the
// rounded values, so the two steps always reconcile exactly.
func (n *narrative) finish(gross, cost decimal.Decimal, costExplanation, costFormula string, taxes decimal.Decimal) domain.Breakdown {
	gross = currency.RoundMoney(gross)
	cost = n.add(StepCostOfOperation, costExplanation, costFormula, cost)
	net := n.add(StepNetIncome, "What is left of gross income after the cost of operation",
		n.f(gross)+" - "+n.f(cost), gross.Sub(cost))
	return domain.Breakdown{
		Steps:           n.steps,
		ReferenceGross:  gross,
		Taxes:           currency.RoundMoney(taxes),
		CostOfOperation: cost,
		Net:             net,
	}
}

// localStateTaxes is regional + municipal + state income tax minus credits
func localStateTaxes(c domain.Classified) decimal.Decimal {
	return c.LocalTax().Add(c.State).Sub(c.Credit)
}
