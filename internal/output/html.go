package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/colcalc/internal/currency"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"amount":       currency.FormatAmount,
	"pct":          currency.FormatPercent,
	"categoryRows": categoryRows,
	"earnerRate":   EarnerRate,
	"inc":          func(i int) int { return i + 1 },
	"convert":      formatTax,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type categoryRow struct {
	Category domain.Category
	Amount   decimal.Decimal
}

// categoryRows lists the categories present in a result in presentation order
func categoryRows(r domain.BudgetResult) []categoryRow {
	var rows []categoryRow
	for _, c := range domain.Categories {
		if total, ok := r.CategoryTotals[c]; ok {
			rows = append(rows, categoryRow{Category: c, Amount: total})
		}
	}
	return rows
}

func formatTax(s *domain.TaxSummary, d decimal.Decimal) string {
	return taxMoney(s).Format(d)
}
