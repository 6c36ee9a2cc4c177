package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/colcalc/internal/currency"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing cities
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("COST OF LIVING COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Scenario: %s (%s household)\n", compSet.ScenarioName, compSet.Household))
	sb.WriteString(fmt.Sprintf("Base City: %s\n", compSet.BaseCity))
	sb.WriteString(fmt.Sprintf("Currency: %s\n", compSet.DisplayCurrency))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 20
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "City",
		numWidth, "Housing",
		numWidth, "Food",
		numWidth, "Monthly Total",
		numWidth, "vs Base"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single city row
func (tf *TableFormatter) formatRow(result *CityResult, nameWidth, numWidth int, isBase bool) string {
	name := result.City
	if isBase {
		name += " (base)"
	}
	if result.Degraded {
		name += " *"
	}

	delta := "-"
	if !isBase {
		delta = tf.deltaSymbol(result.PctFromBase) + result.PctFromBase.StringFixed(1) + "%"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, currency.FormatAmount(result.CategoryTotals[domain.CategoryHousing]),
		numWidth, currency.FormatAmount(result.CategoryTotals[domain.CategoryFood]),
		numWidth, currency.FormatAmount(result.Total),
		numWidth, delta)
}

// deltaSymbol returns a + for increases; negative values carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each city
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	money := displayMoney(compSet)
	if compSet.BaseResult != nil {
		sb.WriteString(fmt.Sprintf("Base: %s %s", compSet.BaseCity, money.Format(compSet.BaseResult.Total)))
	}

	for _, alt := range compSet.AlternativeResults {
		change := "="
		if !alt.DiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.DiffFromBase) + money.Format(alt.DiffFromBase)
		}
		sb.WriteString(fmt.Sprintf(" | %s: %s", alt.City, change))
	}

	return sb.String()
}
