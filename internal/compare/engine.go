package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/colcalc/internal/calculation"
	"github.com/rgehrsitz/colcalc/internal/currency"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"golang.org/x/sync/errgroup"
)

// CompareEngine orchestrates city comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(calcEngine.Evaluator.Rates),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	ScenarioName    string   // Scenario whose item set is priced in every city
	BaseCity        string   // Defaults to the scenario's city
	Cities          []string // Defaults to every city with a price book
	DisplayCurrency string   // Defaults to the scenario currency, then the base currency
}

// Compare resolves the scenario once and evaluates it in every requested city.
// Cities are evaluated concurrently; the engine's logger must tolerate concurrent use.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {

	var scenario *domain.BudgetScenario
	for i := range config.Scenarios {
		if strings.EqualFold(config.Scenarios[i].Name, options.ScenarioName) {
			scenario = &config.Scenarios[i]
			break
		}
	}
	if scenario == nil {
		return nil, fmt.Errorf("scenario %s not found in configuration", options.ScenarioName)
	}

	baseCity := options.BaseCity
	if baseCity == "" {
		baseCity = scenario.City
	}
	cities := []string{baseCity}
	requested := options.Cities
	if len(requested) == 0 {
		requested = config.Cities()
	}
	for _, c := range requested {
		if c != baseCity {
			cities = append(cities, c)
		}
	}

	books := make([]domain.PriceBook, len(cities))
	for i, c := range cities {
		book, ok := config.PriceBook(c)
		if !ok {
			return nil, fmt.Errorf("no price book for city %s", c)
		}
		books[i] = book
	}

	display := strings.ToUpper(options.DisplayCurrency)
	if display == "" {
		display = scenario.Currency
	}
	if display == "" {
		display = config.BaseCurrency
	}
	if display == "" {
		display = books[0].Currency
	}

	items, household := ce.CalcEngine.ResolveItems(*scenario)

	runs := make([]calculation.BudgetRun, len(books))
	g, gctx := errgroup.WithContext(ctx)
	for i := range books {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			runs[i] = calculation.BudgetRun{
				Scenario:  *scenario,
				Household: household,
				Items:     items,
				Result:    ce.CalcEngine.Evaluator.Evaluate(items, books[i]),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to evaluate cities: %w", err)
	}

	baseResult, err := ce.MetricsCalculator.CalculateMetrics(runs[0], display)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base city: %w", err)
	}

	alternatives := []CityResult{}
	for _, run := range runs[1:] {
		alt, err := ce.MetricsCalculator.CalculateMetrics(run, display)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate city %s: %w", run.Result.City, err)
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	compSet := &ComparisonSet{
		ScenarioName:       scenario.Name,
		Household:          household,
		BaseCity:           baseCity,
		DisplayCurrency:    display,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	ce.CalcEngine.Logger.Debugf("compared scenario %q across %d cities in %s", scenario.Name, len(cities), display)
	return compSet, nil
}

// displayMoney formats amounts already converted to the display currency
func displayMoney(compSet *ComparisonSet) currency.Money {
	return currency.Identity(compSet.DisplayCurrency)
}
