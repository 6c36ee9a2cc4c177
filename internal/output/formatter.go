package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/colcalc/internal/calculation"
	"github.com/rgehrsitz/colcalc/internal/currency"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// BudgetSection is one evaluated scenario in a report
type BudgetSection struct {
	Scenario  string               `json:"scenario"`
	Household domain.HouseholdType `json:"household"`
	Changes   []string             `json:"changes,omitempty"`
	Result    domain.BudgetResult  `json:"result"`
}

// Report is everything a formatter can render: budgets, a tax summary, or both
type Report struct {
	Title       string             `json:"title"`
	Budgets     []BudgetSection    `json:"budgets,omitempty"`
	Tax         *domain.TaxSummary `json:"tax,omitempty"`
	Assumptions []string           `json:"assumptions,omitempty"`
}

// NewBudgetReport wraps evaluated budget runs
func NewBudgetReport(runs ...calculation.BudgetRun) *Report {
	r := &Report{Title: "Monthly Cost of Living", Assumptions: DefaultAssumptions}
	for _, run := range runs {
		r.Budgets = append(r.Budgets, BudgetSection{
			Scenario:  run.Scenario.Name,
			Household: run.Household,
			Changes:   run.Scenario.Changes,
			Result:    run.Result,
		})
	}
	return r
}

// NewTaxReport wraps a household tax summary
func NewTaxReport(summary domain.TaxSummary) *Report {
	return &Report{Title: "Tax Breakdown", Tax: &summary}
}

// Formatter renders a report in one output format
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{}

var aliases = map[string]string{
	"text":    "console",
	"verbose": "console",
	"lite":    "console-lite",
	"summary": "console-lite",
}

func register(f Formatter) {
	formatters[f.Name()] = f
}

func init() {
	register(ConsoleFormatter{})
	register(ConsoleLiteFormatter{})
	register(CSVSummarizer{})
	register(JSONFormatter{})
	register(HTMLFormatter{})
}

// GetFormatterByName returns the formatter registered under name or an alias, nil when unknown
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists registered formatter names
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists alternative format names
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders report and writes it to a timestamped file in the working
// directory, returning the file name
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("failed to format report: %w", err)
	}
	filename := fmt.Sprintf("colcalc_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// taxMoney renders base amounts of a summary in its display currency
func taxMoney(summary *domain.TaxSummary) currency.Money {
	return currency.NewMoney(summary.Rate, summary.Currency)
}

// budgetMoney renders budget amounts, which are already in the book currency
func budgetMoney(result domain.BudgetResult) currency.Money {
	return currency.Identity(result.Currency)
}

// EarnerRate is an earner's taxes over the gross the breakdown starts from
func EarnerRate(b domain.Breakdown) decimal.Decimal {
	return currency.SafeRatio(b.Taxes, b.ReferenceGross)
}
