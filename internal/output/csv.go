package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/colcalc/internal/domain"
)

// CSVSummarizer writes one row per budget category and per breakdown step
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Section", "Subject", "Item", "Amount", "Currency"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, b := range report.Budgets {
		r := b.Result
		subject := r.City
		if b.Scenario != "" {
			subject = b.Scenario + " @ " + r.City
		}
		var rows [][]string
		for _, cat := range domain.Categories {
			if _, ok := r.CategoryTotals[cat]; ok {
				rows = append(rows, []string{"budget", subject, string(cat), r.CategoryTotal(cat).StringFixed(2), r.Currency})
			}
		}
		rows = append(rows,
			[]string{"budget", subject, "subtotal", r.Subtotal.StringFixed(2), r.Currency},
			[]string{"budget", subject, "buffer", r.Buffer.StringFixed(2), r.Currency},
			[]string{"budget", subject, "short_stay_adjustment", r.ShortStayAdjustment.StringFixed(2), r.Currency},
			[]string{"budget", subject, "total", r.Total.StringFixed(2), r.Currency},
		)
		if err := w.WriteAll(rows); err != nil {
			return nil, err
		}
	}

	if s := report.Tax; s != nil {
		money := taxMoney(s)
		for _, b := range s.Breakdowns {
			subject := "earner " + strconv.Itoa(b.EarnerIndex+1) + " (" + b.Regime + ")"
			for _, step := range b.Steps {
				row := []string{"tax", subject, step.Name, money.Convert(step.Total).StringFixed(2), s.Currency}
				if err := w.Write(row); err != nil {
					return nil, err
				}
			}
		}
		rows := [][]string{
			{"tax", "household", "total_gross", money.Convert(s.TotalGross).StringFixed(2), s.Currency},
			{"tax", "household", "cumulative_tax", money.Convert(s.CumulativeTax).StringFixed(2), s.Currency},
			{"tax", "household", "effective_tax_rate", s.EffectiveTaxRate.StringFixed(4), ""},
		}
		for _, y := range s.Forecast {
			rows = append(rows,
				[]string{"forecast", y.YearLabel, "net", money.Convert(y.Net).StringFixed(2), s.Currency},
				[]string{"forecast", y.YearLabel, "tax", money.Convert(y.CumulativeTax).StringFixed(2), s.Currency},
			)
		}
		if err := w.WriteAll(rows); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
