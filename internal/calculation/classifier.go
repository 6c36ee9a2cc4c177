package calculation

import (
	"strings"

	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultInformationalCredits are credit labels that are reported but never subtracted
var DefaultInformationalCredits = []string{"allowance"}

// DefaultPolicy returns the classification policy used for jurisdictions that have no
// configured one: reductions are summed, a lone "Total income tax" item is read as
// state tax, and allowance credits are informational
func DefaultPolicy(jurisdiction string) domain.JurisdictionPolicy {
	return domain.JurisdictionPolicy{
		Name:                   jurisdiction,
		Reductions:             domain.ReductionsSum,
		CoalesceTotalIncomeTax: true,
		InformationalCredits:   DefaultInformationalCredits,
	}
}

// CostItemClassifier groups one earner's cost items into semantic slots
type CostItemClassifier struct {
	Policy domain.JurisdictionPolicy
}

// NewCostItemClassifier creates a classifier applying policy
func NewCostItemClassifier(policy domain.JurisdictionPolicy) *CostItemClassifier {
	if policy.Reductions == "" {
		policy.Reductions = domain.ReductionsSum
	}
	if policy.InformationalCredits == nil {
		policy.InformationalCredits = DefaultInformationalCredits
	}
	return &CostItemClassifier{Policy: policy}
}

// Classify scans every cost item and buckets the ones belonging to earner
func (cc *CostItemClassifier) Classify(items []domain.CostItem, earner int) domain.Classified {
	c := domain.Classified{EarnerIndex: earner}

	var sawLocal, sawState, sawTotal bool
	totalIncomeTax := decimal.Zero
	for _, it := range items {
		if it.IncomeMakerIndex != earner {
			continue
		}
		switch it.Category {
		case domain.CostGross:
			c.Gross = c.Gross.Add(it.Amount)
		case domain.CostExpenses:
			c.Expenses = c.Expenses.Add(it.Amount)
		case domain.CostSocial:
			c.Social = c.Social.Add(it.Amount)
		case domain.CostReduction:
			if cc.Policy.Reductions == domain.ReductionsKeepLast {
				c.Reduction = it.Amount
			} else {
				c.Reduction = c.Reduction.Add(it.Amount)
			}
		case domain.CostIncomeTax:
			label := strings.ToLower(it.Label)
			switch {
			case strings.Contains(label, "regional"):
				c.Regional = c.Regional.Add(it.Amount)
				sawLocal = true
			case strings.Contains(label, "municipal"):
				c.Municipal = c.Municipal.Add(it.Amount)
				sawLocal = true
			case strings.Contains(label, "corporate"):
				c.Corporate = c.Corporate.Add(it.Amount)
			case strings.Contains(label, "state"):
				c.State = c.State.Add(it.Amount)
				sawState = true
			case strings.Contains(label, "total"):
				totalIncomeTax = totalIncomeTax.Add(it.Amount)
				sawTotal = true
			default:
				c.State = c.State.Add(it.Amount)
				sawState = true
			}
		case domain.CostDividendTax:
			c.Dividend = c.Dividend.Add(it.Amount)
		case domain.CostUSIncomeTax:
			c.USIncomeTax = c.USIncomeTax.Add(it.Amount)
			if it.Note != "" {
				c.USIncomeTaxNote = it.Note
			}
		case domain.CostUSSelfTax:
			c.USSelfTax = c.USSelfTax.Add(it.Amount)
			if it.Note != "" {
				c.USSelfTaxNote = it.Note
			}
		case domain.CostTaxCredit:
			if cc.informational(it.Label) {
				c.Allowance = c.Allowance.Add(it.Amount)
			} else {
				c.Credit = c.Credit.Add(it.Amount)
			}
		case domain.CostNet:
			c.Net = c.Net.Add(it.Amount)
		case domain.CostGrossSalary:
			c.GrossSalary = c.GrossSalary.Add(it.Amount)
		case domain.CostHighEarnings:
			c.HighEarnings = c.HighEarnings.Add(it.Amount)
		case domain.CostHealthInsurance:
			c.HealthInsurance = c.HealthInsurance.Add(it.Amount)
		case domain.CostTotalTax:
			c.TotalTax = c.TotalTax.Add(it.Amount)
		}
	}

	if sawTotal && !sawLocal && !sawState && cc.Policy.CoalesceTotalIncomeTax {
		c.State = totalIncomeTax
	}
	return c
}

func (cc *CostItemClassifier) informational(label string) bool {
	label = strings.ToLower(label)
	for _, fragment := range cc.Policy.InformationalCredits {
		if fragment != "" && strings.Contains(label, strings.ToLower(fragment)) {
			return true
		}
	}
	return false
}
