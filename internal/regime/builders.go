package regime

import (
	"github.com/rgehrsitz/colcalc/internal/currency"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Freelancer flat-base regime constants
var (
	FlatBaseCoefficient = decimal.NewFromFloat(0.75)
	FlatBaseTaxRate     = decimal.NewFromFloat(0.10)
)

var twelve = decimal.NewFromInt(12)

const (
	costExplanation = "Everything paid out of gross income: taxes, business expenses and social contributions"
	taxesWithCredit = "Regional and state income tax, minus tax credits"
)

// standardCost is taxes + expenses + social contributions
func (n *narrative) standardCost(c domain.Classified, taxes decimal.Decimal) (decimal.Decimal, string) {
	return taxes.Add(c.Expenses).Add(c.Social),
		n.f(taxes) + " + " + n.f(c.Expenses) + " + " + n.f(c.Social)
}

func (n *narrative) localStateTaxesStep(c domain.Classified) decimal.Decimal {
	return n.add(StepTaxes, taxesWithCredit,
		n.f(c.LocalTax())+" + "+n.f(c.State)+" - "+n.f(c.Credit),
		localStateTaxes(c))
}

func buildDefault(c domain.Classified, m currency.Money) domain.Breakdown {
	n := newNarrative(m)
	before := n.add(StepBaseBeforeReductions,
		"Gross income minus business expenses and social contributions",
		n.f(c.Gross)+" - "+n.f(c.Expenses)+" - "+n.f(c.Social),
		c.Gross.Sub(c.Expenses).Sub(c.Social))
	n.add(StepBaseAfterReductions,
		"Taxable base after personal reductions",
		n.f(before)+" - "+n.f(c.Reduction),
		before.Sub(c.Reduction))
	taxes := n.localStateTaxesStep(c)
	taxes = taxes.Add(n.usTaxes(c))
	cost, formula := n.standardCost(c, taxes)
	return n.finish(c.Gross, cost, costExplanation, formula, taxes)
}

func buildFlatRate(c domain.Classified, m currency.Money) domain.Breakdown {
	n := newNarrative(m)
	n.add(StepBaseAfterReductions,
		"Under the flat-rate regime reductions apply directly to gross income",
		n.f(c.Gross)+" - "+n.f(c.Reduction),
		c.Gross.Sub(c.Reduction))
	taxes := n.localStateTaxesStep(c)
	taxes = taxes.Add(n.usTaxes(c))
	cost, formula := n.standardCost(c, taxes)
	return n.finish(c.Gross, cost, costExplanation, formula, taxes)
}

func buildImpatriate(c domain.Classified, m currency.Money) domain.Breakdown {
	n := newNarrative(m)
	n.add(StepBaseAfterReductions,
		"Gross income minus business expenses and the impatriate reduction",
		n.f(c.Gross)+" - "+n.f(c.Expenses)+" - "+n.f(c.Reduction),
		c.Gross.Sub(c.Expenses).Sub(c.Reduction))
	taxes := n.localStateTaxesStep(c)
	taxes = taxes.Add(n.usTaxes(c))
	cost, formula := n.standardCost(c, taxes)
	return n.finish(c.Gross, cost, costExplanation, formula, taxes)
}

func buildOrdinary(c domain.Classified, m currency.Money) domain.Breakdown {
	n := newNarrative(m)
	n.add(StepTaxableBase,
		"Gross income minus business expenses and social contributions",
		n.f(c.Gross)+" - "+n.f(c.Expenses)+" - "+n.f(c.Social),
		c.Gross.Sub(c.Expenses).Sub(c.Social))
	taxes := n.localStateTaxesStep(c)
	taxes = taxes.Add(n.usTaxes(c))
	cost, formula := n.standardCost(c, taxes)
	return n.finish(c.Gross, cost, costExplanation, formula, taxes)
}

// flatAnnualPayment is the single head step of the flat-monthly regimes. The value is
// the annual tax; the formula only spreads it over twelve months for the reader.
func (n *narrative) flatAnnualPayment(c domain.Classified) decimal.Decimal {
	taxes := localStateTaxes(c)
	monthly := currency.RoundMoney(taxes.Div(twelve))
	return n.add(StepFlatAnnualPayment,
		"A fixed tax paid in equal monthly instalments, independent of income",
		"12 x "+n.f(monthly),
		taxes)
}

func buildFlatMonthly(c domain.Classified, m currency.Money) domain.Breakdown {
	n := newNarrative(m)
	taxes := n.flatAnnualPayment(c)
	taxes = taxes.Add(n.usTaxes(c))
	return n.finish(c.Gross, taxes.Add(c.Expenses),
		"The flat payment plus business expenses",
		n.f(taxes)+" + "+n.f(c.Expenses),
		taxes)
}

// buildFlatMonthlyNoExpenses is the flat-monthly variant whose jurisdiction does not
// let business expenses into the picture
func buildFlatMonthlyNoExpenses(c domain.Classified, m currency.Money) domain.Breakdown {
	n := newNarrative(m)
	taxes := n.flatAnnualPayment(c)
	taxes = taxes.Add(n.usTaxes(c))
	return n.finish(c.Gross, taxes,
		"The flat payment is the only cost",
		n.f(taxes)+" + "+n.f(decimal.Zero),
		taxes)
}

func buildProgressiveHealth(c domain.Classified, m currency.Money) domain.Breakdown {
	n := newNarrative(m)
	n.add(StepTaxableBase,
		"Gross income minus the lump-sum reduction",
		n.f(c.Gross)+" - "+n.f(c.Reduction),
		c.Gross.Sub(c.Reduction))
	taxes := n.add(StepTaxes, "Progressive state income tax, minus tax credits",
		n.f(c.State)+" - "+n.f(c.Credit),
		c.State.Sub(c.Credit))
	taxes = taxes.Add(n.usTaxes(c))
	cost := taxes.Add(c.Expenses).Add(c.Social).Add(c.HealthInsurance)
	return n.finish(c.Gross, cost,
		"Taxes, business expenses, social contributions and health insurance",
		n.f(taxes)+" + "+n.f(c.Expenses)+" + "+n.f(c.Social)+" + "+n.f(c.HealthInsurance),
		taxes)
}

func (n *narrative) corporateDividendTaxes(c domain.Classified) decimal.Decimal {
	return n.add(StepTaxes, "Corporate tax on profit plus withholding tax on the dividend",
		n.f(c.Corporate)+" + "+n.f(c.Dividend),
		c.Corporate.Add(c.Dividend))
}

func buildSingleEntityDividend(c domain.Classified, m currency.Money) domain.Breakdown {
	n := newNarrative(m)
	n.add(StepTaxableBase,
		"Company profit: gross income minus business expenses and social contributions",
		n.f(c.Gross)+" - "+n.f(c.Expenses)+" - "+n.f(c.Social),
		c.Gross.Sub(c.Expenses).Sub(c.Social))
	taxes := n.corporateDividendTaxes(c)
	taxes = taxes.Add(n.usTaxes(c))
	cost, formula := n.standardCost(c, taxes)
	return n.finish(c.Gross, cost, costExplanation, formula, taxes)
}

// buildDualEntityDividend covers the regime where a spouse is employed by the
// household's company. A company without corporate tax only pays the spouse salary,
// so the narrative follows the salary instead of the profit.
func buildDualEntityDividend(c domain.Classified, m currency.Money) domain.Breakdown {
	n := newNarrative(m)
	if c.Corporate.IsZero() {
		taxes := localStateTaxes(c).Add(c.Dividend).Add(c.USTaxes())
		contributions := taxes.Add(c.Social)
		salary := currency.RoundMoney(c.GrossSalary)
		monthlyNet := currency.RoundMoney(salary.Sub(currency.RoundMoney(contributions)).Div(twelve))

		cost := n.add(StepSpouseContributions,
			"Income tax and social contributions withheld from the spouse salary",
			n.f(taxes)+" + "+n.f(c.Social),
			contributions)
		net := n.add(StepNetIncome, "Twelve months of the spouse's net salary",
			"12 x "+n.f(monthlyNet),
			salary.Sub(cost))
		return domain.Breakdown{
			Steps:           n.steps,
			ReferenceGross:  salary,
			Taxes:           currency.RoundMoney(taxes),
			CostOfOperation: cost,
			Net:             net,
		}
	}

	n.add(StepTaxableBase,
		"Company profit: gross income minus expenses, social contributions and the spouse's gross salary",
		n.f(c.Gross)+" - "+n.f(c.Expenses)+" - "+n.f(c.Social)+" - "+n.f(c.GrossSalary),
		c.Gross.Sub(c.Expenses).Sub(c.Social).Sub(c.GrossSalary))
	taxes := n.corporateDividendTaxes(c)
	taxes = taxes.Add(n.usTaxes(c))
	cost := taxes.Add(c.Expenses).Add(c.Social).Add(c.GrossSalary)
	return n.finish(c.Gross, cost,
		"Taxes, business expenses, social contributions and the spouse's gross salary",
		n.f(taxes)+" + "+n.f(c.Expenses)+" + "+n.f(c.Social)+" + "+n.f(c.GrossSalary),
		taxes)
}

func buildFreelancerFlatBase(c domain.Classified, m currency.Money) domain.Breakdown {
	n := newNarrative(m)
	base := n.add(StepTaxableBase,
		"A fixed share of gross income is taxable, whatever the real expenses",
		"75% x "+n.f(c.Gross),
		c.Gross.Mul(FlatBaseCoefficient))
	stateTax := currency.RoundMoney(base.Mul(FlatBaseTaxRate))
	taxes := n.add(StepTaxes,
		"State tax of 10% on the taxable base, "+currency.FormatPercent(currency.SafeRatio(stateTax, c.Gross))+" of gross income",
		"10% x "+n.f(base),
		stateTax)
	taxes = taxes.Add(n.usTaxes(c))
	cost, formula := n.standardCost(c, taxes)
	return n.finish(c.Gross, cost, costExplanation, formula, taxes)
}

// ownerSalaryBase is gross minus expenses minus the mandatory owner salary
func (n *narrative) ownerSalaryBase(c domain.Classified) decimal.Decimal {
	return n.add(StepTaxableBase,
		"Gross income minus business expenses and the mandatory owner salary",
		n.f(c.Gross)+" - "+n.f(c.Expenses)+" - "+n.f(c.GrossSalary),
		c.Gross.Sub(c.Expenses).Sub(c.GrossSalary))
}

func buildLimitedLiability(c domain.Classified, m currency.Money) domain.Breakdown {
	n := newNarrative(m)
	n.ownerSalaryBase(c)
	taxes := n.add(StepTaxes, "Corporate tax, dividend tax and the high-earnings surtax",
		n.f(c.Corporate)+" + "+n.f(c.Dividend)+" + "+n.f(c.HighEarnings),
		c.Corporate.Add(c.Dividend).Add(c.HighEarnings))
	taxes = taxes.Add(n.usTaxes(c))
	return n.finish(c.Gross, taxes.Add(c.Expenses).Add(c.Social),
		"Taxes, business expenses and the contributions on the owner salary",
		n.f(taxes)+" + "+n.f(c.Expenses)+" + "+n.f(c.Social),
		taxes)
}

func buildBookkeepingSalary(c domain.Classified, m currency.Money) domain.Breakdown {
	n := newNarrative(m)
	n.ownerSalaryBase(c)
	taxes := n.add(StepTaxes, "State income tax and the high-earnings surtax",
		n.f(c.State)+" + "+n.f(c.HighEarnings),
		c.State.Add(c.HighEarnings))
	taxes = taxes.Add(n.usTaxes(c))
	return n.finish(c.Gross, taxes.Add(c.Expenses).Add(c.Social),
		"Taxes, business expenses and the contributions on the owner salary",
		n.f(taxes)+" + "+n.f(c.Expenses)+" + "+n.f(c.Social),
		taxes)
}
