package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/colcalc/internal/calculation"
	"github.com/rgehrsitz/colcalc/internal/currency"
	"github.com/rgehrsitz/colcalc/internal/domain"
)

const rule = "================================================================================="

// ConsoleFormatter renders the detailed console report, including the explanation and
// formula of every breakdown step
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	for i, b := range report.Budgets {
		if i > 0 {
			fmt.Fprintln(&buf)
		}
		writeBudget(&buf, b)
	}

	if report.Tax != nil {
		if len(report.Budgets) > 0 {
			fmt.Fprintln(&buf)
		}
		writeTax(&buf, report.Tax, true)
	}

	if len(report.Assumptions) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range report.Assumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
	}

	return buf.Bytes(), nil
}

func writeBudget(buf *bytes.Buffer, b BudgetSection) {
	r := b.Result
	money := budgetMoney(r)

	fmt.Fprintln(buf, rule)
	fmt.Fprintf(buf, "MONTHLY COST OF LIVING: %s\n", strings.ToUpper(r.City))
	fmt.Fprintln(buf, rule)
	if b.Scenario != "" {
		fmt.Fprintf(buf, "Scenario:  %s\n", b.Scenario)
	}
	fmt.Fprintf(buf, "Household: %s\n", b.Household)
	if len(b.Changes) > 0 {
		fmt.Fprintf(buf, "Changes:   %s\n", strings.Join(b.Changes, ", "))
	}
	fmt.Fprintln(buf)

	for _, cat := range domain.Categories {
		if _, ok := r.CategoryTotals[cat]; !ok {
			continue
		}
		fmt.Fprintf(buf, "  %-28s %20s\n", cat, money.Format(r.CategoryTotal(cat)))
	}
	fmt.Fprintln(buf, "  "+strings.Repeat("-", 49))
	fmt.Fprintf(buf, "  %-28s %20s\n", "Subtotal", money.Format(r.Subtotal))
	fmt.Fprintf(buf, "  %-28s %20s\n",
		fmt.Sprintf("Contingency buffer (%s)", currency.FormatPercent(calculation.BufferRate)),
		money.Format(r.Buffer))
	if !r.ShortStayAdjustment.IsZero() {
		fmt.Fprintf(buf, "  %-28s %20s\n", "Short-stay adjustment", money.Format(r.ShortStayAdjustment))
	}
	fmt.Fprintf(buf, "  %-28s %20s\n", "TOTAL", money.Format(r.Total))

	if r.Degraded() {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "WARNINGS (budget is incomplete):")
		for _, w := range r.Warnings {
			fmt.Fprintf(buf, "  ! %s\n", w)
		}
	}
}

func writeTax(buf *bytes.Buffer, s *domain.TaxSummary, verbose bool) {
	money := taxMoney(s)

	fmt.Fprintln(buf, rule)
	fmt.Fprintf(buf, "TAX BREAKDOWN: %s\n", strings.ToUpper(s.Jurisdiction))
	fmt.Fprintln(buf, rule)
	fmt.Fprintf(buf, "Total gross:     %s\n", money.Format(s.TotalGross))
	fmt.Fprintf(buf, "Cumulative tax:  %s\n", money.Format(s.CumulativeTax))
	fmt.Fprintf(buf, "Effective rate:  %s\n", currency.FormatPercent(s.EffectiveTaxRate))

	for _, b := range s.Breakdowns {
		fmt.Fprintln(buf)
		fmt.Fprintf(buf, "EARNER %d (%s)\n", b.EarnerIndex+1, b.Regime)
		fmt.Fprintln(buf, strings.Repeat("-", 50))
		for _, step := range b.Steps {
			fmt.Fprintf(buf, "  %-32s %20s\n", step.Name, step.TotalFormatted)
			if verbose {
				fmt.Fprintf(buf, "      %s\n", step.Explanation)
				fmt.Fprintf(buf, "      = %s\n", step.Formula)
			}
		}
		fmt.Fprintf(buf, "  %-32s %20s\n", "Effective rate", currency.FormatPercent(EarnerRate(b)))
	}

	if len(s.Forecast) > 0 {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "FORECAST")
		fmt.Fprintln(buf, strings.Repeat("-", 50))
		fmt.Fprintf(buf, "  %-8s %20s %20s %10s\n", "Year", "Net", "Tax", "Rate")
		for _, y := range s.Forecast {
			fmt.Fprintf(buf, "  %-8s %20s %20s %10s\n",
				y.YearLabel, money.Format(y.Net), money.Format(y.CumulativeTax), currency.FormatPercent(y.EffectiveTaxRate))
		}
	}

	if len(s.Notices) > 0 {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "NOTICES")
		for _, n := range s.Notices {
			fmt.Fprintf(buf, "• %s\n", n)
		}
	}
}

// ConsoleLiteFormatter prints one line per budget and per earner
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	for _, b := range report.Budgets {
		flag := ""
		if b.Result.Degraded() {
			flag = " (incomplete)"
		}
		fmt.Fprintf(&buf, "%s | %s | %s: %s/month%s\n",
			b.Scenario, b.Household, b.Result.City, budgetMoney(b.Result).Format(b.Result.Total), flag)
	}
	if s := report.Tax; s != nil {
		money := taxMoney(s)
		for _, b := range s.Breakdowns {
			fmt.Fprintf(&buf, "%s | earner %d | %s: net %s, taxes %s (%s)\n",
				s.Jurisdiction, b.EarnerIndex+1, b.Regime,
				money.Format(b.Net), money.Format(b.Taxes), currency.FormatPercent(EarnerRate(b)))
		}
		fmt.Fprintf(&buf, "%s | household: gross %s, cumulative tax %s (%s)\n",
			s.Jurisdiction, money.Format(s.TotalGross), money.Format(s.CumulativeTax), currency.FormatPercent(s.EffectiveTaxRate))
	}
	return buf.Bytes(), nil
}
