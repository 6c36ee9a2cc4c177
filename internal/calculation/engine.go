package calculation

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/colcalc/internal/catalog"
	"github.com/rgehrsitz/colcalc/internal/currency"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/rgehrsitz/colcalc/internal/transform"
)

// CalculationEngine orchestrates the budget and tax calculations
type CalculationEngine struct {
	Catalog   *catalog.Catalog
	Resolver  *transform.Resolver
	Evaluator *BudgetEvaluator
	Reporter  *AggregateReporter
	Logger    Logger
}

// NewCalculationEngine creates a new calculation engine over the built-in catalog
func NewCalculationEngine() *CalculationEngine {
	cat := catalog.Default()
	return &CalculationEngine{
		Catalog:   cat,
		Resolver:  transform.NewResolver(cat),
		Evaluator: NewBudgetEvaluator(cat),
		Reporter:  NewAggregateReporter(),
		Logger:    NopLogger{},
	}
}

// NewCalculationEngineWithConfig creates an engine that converts foreign-currency
// prices with the configuration's rate table
func NewCalculationEngineWithConfig(config *domain.Configuration) *CalculationEngine {
	ce := NewCalculationEngine()
	if config != nil && config.BaseCurrency != "" {
		ce.Evaluator.Rates = currency.NewTable(config.BaseCurrency, config.Rates)
	}
	return ce
}

// SetLogger sets the logger for every component; nil installs a no-op logger
func (ce *CalculationEngine) SetLogger(logger Logger) {
	if logger == nil {
		logger = NopLogger{}
	}
	ce.Logger = logger
	ce.Resolver.SetLogger(logger)
	ce.Evaluator.Logger = logger
	ce.Reporter.Logger = logger
}

// BudgetRun is the resolved item set and evaluated budget of one scenario in one city
type BudgetRun struct {
	Scenario  domain.BudgetScenario
	Household domain.HouseholdType
	Items     []domain.LineItem
	Result    domain.BudgetResult
}

// ResolveItems applies a scenario's changes on top of its household baseline
func (ce *CalculationEngine) ResolveItems(scenario domain.BudgetScenario) ([]domain.LineItem, domain.HouseholdType) {
	items, household := ce.Resolver.ResolveAll(scenario.Household, scenario.Changes)
	if err := ce.Catalog.Validate(items, household); err != nil {
		ce.Logger.Warnf("scenario %q: %v", scenario.Name, err)
	}
	return items, household
}

// RunBudget resolves a scenario and evaluates it against book
func (ce *CalculationEngine) RunBudget(scenario domain.BudgetScenario, book domain.PriceBook) BudgetRun {
	items, household := ce.ResolveItems(scenario)
	ce.Logger.Debugf("scenario %q: %d items for a %s household in %s", scenario.Name, len(items), household, book.City)
	return BudgetRun{
		Scenario:  scenario,
		Household: household,
		Items:     items,
		Result:    ce.Evaluator.Evaluate(items, book),
	}
}

// RunScenario evaluates a configured scenario in its configured city
func (ce *CalculationEngine) RunScenario(config *domain.Configuration, scenario domain.BudgetScenario) (BudgetRun, error) {
	book, ok := config.PriceBook(scenario.City)
	if !ok {
		return BudgetRun{}, fmt.Errorf("scenario %q: no price book for city %q", scenario.Name, scenario.City)
	}
	return ce.RunBudget(scenario, book), nil
}

// RunScenarioByName finds a scenario by name (case-insensitive) and evaluates it
func (ce *CalculationEngine) RunScenarioByName(config *domain.Configuration, name string) (BudgetRun, error) {
	for _, s := range config.Scenarios {
		if strings.EqualFold(s.Name, name) {
			return ce.RunScenario(config, s)
		}
	}
	return BudgetRun{}, fmt.Errorf("scenario %q not found", name)
}

// RunTax aggregates a tax report, rendering amounts in displayCurrency. The jurisdiction
// policy comes from the configuration, or DefaultPolicy when none is configured.
func (ce *CalculationEngine) RunTax(config *domain.Configuration, report domain.TaxReport, displayCurrency string) (domain.TaxSummary, error) {
	money := currency.Identity(report.Currency)
	if displayCurrency != "" && !strings.EqualFold(displayCurrency, report.Currency) {
		if config == nil || config.BaseCurrency == "" {
			return domain.TaxSummary{}, fmt.Errorf("converting %s to %s requires a rate table", report.Currency, displayCurrency)
		}
		rate, err := currency.NewTable(config.BaseCurrency, config.Rates).Rate(report.Currency, displayCurrency)
		if err != nil {
			return domain.TaxSummary{}, fmt.Errorf("display currency: %w", err)
		}
		money = currency.NewMoney(rate, displayCurrency)
	}

	policy := DefaultPolicy(report.Jurisdiction)
	if config != nil {
		if p, ok := config.Jurisdiction(report.Jurisdiction); ok {
			policy = p
		}
	}
	return ce.Reporter.Aggregate(report, money, policy), nil
}
