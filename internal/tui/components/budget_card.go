package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/colcalc/internal/currency"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/rgehrsitz/colcalc/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// BudgetCard renders an evaluated budget as category bars and a total
type BudgetCard struct {
	Result   domain.BudgetResult
	Previous *domain.BudgetResult
	Width    int
	Active   bool
}

// NewBudgetCard creates a card for result
func NewBudgetCard(result domain.BudgetResult) *BudgetCard {
	return &BudgetCard{Result: result, Width: 48}
}

// WithPrevious sets the budget the total is compared against
func (c *BudgetCard) WithPrevious(prev *domain.BudgetResult) *BudgetCard {
	c.Previous = prev
	return c
}

// WithWidth sets the card width
func (c *BudgetCard) WithWidth(width int) *BudgetCard {
	c.Width = width
	return c
}

// Render returns the styled card
func (c *BudgetCard) Render() string {
	money := currency.Identity(c.Result.Currency)
	var sb strings.Builder

	sb.WriteString(tuistyles.TitleStyle.Render(c.Result.City) + "\n\n")

	barWidth := c.Width - 34
	if barWidth < 4 {
		barWidth = 4
	}
	maxTotal := decimal.Zero
	for _, total := range c.Result.CategoryTotals {
		if total.GreaterThan(maxTotal) {
			maxTotal = total
		}
	}
	for _, cat := range domain.Categories {
		total, ok := c.Result.CategoryTotals[cat]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("%-10s %16s %s\n",
			cat,
			money.Format(total),
			tuistyles.BarStyle.Render(Bar(total, maxTotal, barWidth))))
	}

	sb.WriteString("\n")
	sb.WriteString(tuistyles.MetricLabelStyle.Render(fmt.Sprintf("%-10s %16s", "buffer", money.Format(c.Result.Buffer))) + "\n")
	if !c.Result.ShortStayAdjustment.IsZero() {
		sb.WriteString(tuistyles.MetricLabelStyle.Render(fmt.Sprintf("%-10s %16s", "short stay", money.Format(c.Result.ShortStayAdjustment))) + "\n")
	}
	sb.WriteString(tuistyles.MetricValueStyle.Render(fmt.Sprintf("%-10s %16s", "TOTAL", money.Format(c.Result.Total))))
	if trend := c.trend(); trend != "" {
		sb.WriteString(" " + trend)
	}

	if c.Result.Degraded() {
		sb.WriteString("\n" + tuistyles.WarningStyle.Render(fmt.Sprintf("%d items could not be priced", len(c.Result.Warnings))))
	}

	style := tuistyles.BorderStyle
	if c.Active {
		style = tuistyles.ActiveBorderStyle
	}
	return style.Width(c.Width).Render(sb.String())
}

// trend describes the change of the total from the previous budget
func (c *BudgetCard) trend() string {
	if c.Previous == nil {
		return ""
	}
	delta := c.Result.Total.Sub(c.Previous.Total)
	if delta.IsZero() {
		return ""
	}
	up := delta.IsPositive()
	return tuistyles.MetricTrendStyle(!up).Render(
		fmt.Sprintf("%s %s", tuistyles.TrendIndicator(up), currency.FormatAmount(delta.Abs())))
}

// Bar renders value as a proportion of peak using width cells
func Bar(value, peak decimal.Decimal, width int) string {
	if !peak.IsPositive() || !value.IsPositive() {
		return ""
	}
	cells := int(value.Div(peak).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
	if cells < 1 {
		cells = 1
	}
	if cells > width {
		cells = width
	}
	return strings.Repeat("█", cells)
}

// Columns lays cards out side by side
func Columns(cards ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
