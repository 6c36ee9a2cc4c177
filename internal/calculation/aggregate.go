package calculation

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/colcalc/internal/currency"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/rgehrsitz/colcalc/internal/regime"
	"github.com/shopspring/decimal"
)

// DependentAgeThreshold is the age below which a dependent triggers YoungDependentNotice
const DependentAgeThreshold = 6

// YoungDependentNotice is appended when the household has a dependent younger than
// DependentAgeThreshold
var YoungDependentNotice = fmt.Sprintf(
	"Children under %d may qualify for childcare credits or allowances that are not part of this breakdown.",
	DependentAgeThreshold)

// DefaultNotices are the informational messages shown per jurisdiction when the
// jurisdiction policy does not carry its own
var DefaultNotices = map[string][]string{
	"italy": {
		"New self-employed workers pay reduced social contributions during their first year of activity.",
		"The impatriate regime requires residence in Italy for at least two tax periods.",
	},
	"portugal": {
		"Freelancers are exempt from social contributions during their first twelve months of activity.",
	},
	"spain": {
		"New self-employed workers pay a flat reduced social contribution during their first year.",
	},
	"germany": {
		"Taxpayers over 64 receive an age relief allowance on non-pension income.",
	},
	"czech republic": {
		"The flat monthly payment covers income tax, social security and health insurance in one instalment.",
	},
}

// cumulativeCategories are the cost item tags that count towards the household tax burden
var cumulativeCategories = map[string]bool{
	domain.CostTotalTax:        true,
	domain.CostSocial:          true,
	domain.CostHealthInsurance: true,
}

// AggregateReporter combines per-earner results into a household tax summary
type AggregateReporter struct {
	Logger Logger
}

// NewAggregateReporter creates a reporter
func NewAggregateReporter() *AggregateReporter {
	return &AggregateReporter{Logger: NopLogger{}}
}

// Aggregate classifies every earner of report under policy, builds their breakdowns and
// sums the household totals. money renders the breakdown steps.
func (ar *AggregateReporter) Aggregate(report domain.TaxReport, money currency.Money, policy domain.JurisdictionPolicy) domain.TaxSummary {
	log := ar.Logger
	if log == nil {
		log = NopLogger{}
	}

	summary := domain.TaxSummary{
		Jurisdiction: report.Jurisdiction,
		Currency:     money.Currency,
		Rate:         money.Rate,
	}

	totalGross := decimal.Zero
	cumulative := decimal.Zero
	for _, it := range report.CostItems {
		if it.IncomeMakerIndex < 0 || it.IncomeMakerIndex >= domain.MaxEarners {
			log.Warnf("cost item %q has income maker index %d; only %d earners are supported, item ignored",
				it.Label, it.IncomeMakerIndex, domain.MaxEarners)
			continue
		}
		if it.Category == domain.CostGross {
			totalGross = totalGross.Add(it.Amount)
		}
		if cumulativeCategories[it.Category] {
			cumulative = cumulative.Add(it.Amount)
		}
	}
	summary.TotalGross = currency.RoundMoney(totalGross)
	summary.CumulativeTax = currency.RoundMoney(cumulative)
	summary.EffectiveTaxRate = currency.SafeRatio(cumulative, totalGross)

	classifier := NewCostItemClassifier(policy)
	for _, earner := range report.EarnerIndexes() {
		identifier := report.RegimeFor(earner)
		kind, ok := regime.Parse(identifier)
		if !ok {
			log.Warnf("unknown regime %q for earner %d; using the default breakdown", identifier, earner)
		}
		c := classifier.Classify(report.CostItems, earner)
		summary.Breakdowns = append(summary.Breakdowns, regime.Build(c, kind, money))
	}

	summary.Forecast = ForecastYears(ExtractForecast(validItems(report.CostItems)), totalGross)
	summary.Notices = Notices(report.Jurisdiction, policy, report.Household)
	return summary
}

// Notices selects the jurisdiction's static notices and appends the young dependent
// notice when it applies
func Notices(jurisdiction string, policy domain.JurisdictionPolicy, household domain.HouseholdComposition) []string {
	var out []string
	if len(policy.Notices) > 0 {
		out = append(out, policy.Notices...)
	} else {
		out = append(out, DefaultNotices[strings.ToLower(strings.TrimSpace(jurisdiction))]...)
	}
	for _, dep := range household.Dependents {
		if dep.Age < DependentAgeThreshold {
			out = append(out, YoungDependentNotice)
			break
		}
	}
	return out
}

func validItems(items []domain.CostItem) []domain.CostItem {
	out := make([]domain.CostItem, 0, len(items))
	for _, it := range items {
		if it.IncomeMakerIndex >= 0 && it.IncomeMakerIndex < domain.MaxEarners {
			out = append(out, it)
		}
	}
	return out
}
