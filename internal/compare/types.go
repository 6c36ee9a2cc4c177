package compare

import (
	"fmt"

	"github.com/rgehrsitz/colcalc/internal/calculation"
	"github.com/rgehrsitz/colcalc/internal/currency"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// CityResult is one city's budget for the compared scenario with its key metrics
// converted to the comparison's display currency
type CityResult struct {
	City     string               `json:"city"`
	Currency string               `json:"currency"`
	Result   *domain.BudgetResult `json:"result,omitempty"`

	// Key Metrics (display currency)
	Total          decimal.Decimal                     `json:"total"`
	CategoryTotals map[domain.Category]decimal.Decimal `json:"categoryTotals"`
	Degraded       bool                                `json:"degraded"`

	// Comparison to Base
	DiffFromBase decimal.Decimal `json:"diffFromBase"`
	PctFromBase  decimal.Decimal `json:"pctFromBase"`
}

// ComparisonSet represents one scenario evaluated across several cities
type ComparisonSet struct {
	ScenarioName       string               `json:"scenarioName"`
	Household          domain.HouseholdType `json:"household"`
	BaseCity           string               `json:"baseCity"`
	DisplayCurrency    string               `json:"displayCurrency"`
	BaseResult         *CityResult          `json:"baseResult"`
	AlternativeResults []CityResult         `json:"alternativeResults"`
	Recommendations    []string             `json:"recommendations"`
	ConfigPath         string               `json:"configPath,omitempty"`
}

// MetricsCalculator extracts comparable metrics from budget runs
type MetricsCalculator struct {
	Rates *currency.Table
}

// NewMetricsCalculator creates a metrics calculator converting with rates; nil
// rates only allow comparing cities that share the display currency
func NewMetricsCalculator(rates *currency.Table) *MetricsCalculator {
	return &MetricsCalculator{Rates: rates}
}

// CalculateMetrics converts a city's budget into the display currency
func (mc *MetricsCalculator) CalculateMetrics(run calculation.BudgetRun, displayCurrency string) (CityResult, error) {
	result := run.Result
	rate := decimal.NewFromInt(1)
	if displayCurrency != "" && result.Currency != "" && result.Currency != displayCurrency {
		if mc.Rates == nil {
			return CityResult{}, fmt.Errorf("%s prices are in %s; converting to %s requires a rate table",
				result.City, result.Currency, displayCurrency)
		}
		r, err := mc.Rates.Rate(result.Currency, displayCurrency)
		if err != nil {
			return CityResult{}, fmt.Errorf("%s: %w", result.City, err)
		}
		rate = r
	}

	categories := make(map[domain.Category]decimal.Decimal, len(result.CategoryTotals))
	for c, total := range result.CategoryTotals {
		categories[c] = currency.RoundMoney(total.Mul(rate))
	}
	return CityResult{
		City:           result.City,
		Currency:       result.Currency,
		Result:         &result,
		Total:          currency.RoundMoney(result.Total.Mul(rate)),
		CategoryTotals: categories,
		Degraded:       result.Degraded(),
	}, nil
}

// CalculateComparison computes the difference of a city from the base city
func (mc *MetricsCalculator) CalculateComparison(city, base CityResult) CityResult {
	city.DiffFromBase = city.Total.Sub(base.Total)

	if !base.Total.IsZero() {
		city.PctFromBase = city.DiffFromBase.
			Div(base.Total).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	return city
}

// GenerateRecommendations names the cheapest alternative and flags incomplete budgets
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	cheapest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Total.LessThan(cheapest.Total) {
			cheapest = alt
		}
	}

	if cheapest != compSet.BaseResult {
		savings := compSet.BaseResult.Total.Sub(cheapest.Total)
		recommendations = append(recommendations,
			fmt.Sprintf("Cheapest: %s costs %s less per month than %s",
				cheapest.City, displayMoney(compSet).Format(savings), compSet.BaseCity))
	} else {
		recommendations = append(recommendations,
			fmt.Sprintf("Cheapest: %s is the least expensive of the compared cities", compSet.BaseCity))
	}

	var incomplete []string
	if compSet.BaseResult.Degraded {
		incomplete = append(incomplete, compSet.BaseResult.City)
	}
	for _, alt := range compSet.AlternativeResults {
		if alt.Degraded {
			incomplete = append(incomplete, alt.City)
		}
	}
	for _, city := range incomplete {
		recommendations = append(recommendations,
			fmt.Sprintf("Incomplete: %s is missing prices; its total is understated", city))
	}

	return recommendations
}
