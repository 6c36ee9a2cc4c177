package compare

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/rgehrsitz/colcalc/internal/domain"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{"City", "Type", "Currency"}
	for _, c := range domain.Categories {
		header = append(header, string(c))
	}
	header = append(header, "Total", "Diff from Base", "% Change", "Degraded")
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet, compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(compSet, &alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a city result as a CSV row
func (cf *CSVFormatter) formatRow(compSet *ComparisonSet, result *CityResult, cityType string) []string {
	row := []string{result.City, cityType, compSet.DisplayCurrency}
	for _, c := range domain.Categories {
		row = append(row, result.CategoryTotals[c].StringFixed(2))
	}
	return append(row,
		result.Total.StringFixed(2),
		result.DiffFromBase.StringFixed(2),
		result.PctFromBase.StringFixed(2),
		strconv.FormatBool(result.Degraded),
	)
}
