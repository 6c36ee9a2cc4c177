package calculation

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/colcalc/internal/currency"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/shopspring/decimal"
)

var forecastTag = regexp.MustCompile(`^` + domain.CostForecastPrefix + `(\d+)(st|nd|rd|th)?$`)

// ForecastBucket is one projected year's tax and net, summed over earners
type ForecastBucket struct {
	YearLabel string
	Ordinal   int
	Tax       decimal.Decimal
	Net       decimal.Decimal
}

// ExtractForecast groups "additional_<ordinal>" cost items by year. An item whose
// label mentions "tax" adds to that year's tax; any other item adds to its net.
// Buckets are returned in ordinal order.
func ExtractForecast(items []domain.CostItem) []ForecastBucket {
	byOrdinal := make(map[int]*ForecastBucket)
	for _, it := range items {
		m := forecastTag.FindStringSubmatch(it.Category)
		if m == nil {
			continue
		}
		ordinal, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		b, ok := byOrdinal[ordinal]
		if !ok {
			b = &ForecastBucket{YearLabel: strings.TrimPrefix(it.Category, domain.CostForecastPrefix), Ordinal: ordinal}
			byOrdinal[ordinal] = b
		}
		if strings.Contains(strings.ToLower(it.Label), "tax") {
			b.Tax = b.Tax.Add(it.Amount)
		} else {
			b.Net = b.Net.Add(it.Amount)
		}
	}

	out := make([]ForecastBucket, 0, len(byOrdinal))
	for _, b := range byOrdinal {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ordinal < out[j].Ordinal })
	return out
}

// ForecastYears turns buckets into forecast years. Each year's effective rate is taken
// against the current total gross, not the projected year's own gross.
func ForecastYears(buckets []ForecastBucket, currentGross decimal.Decimal) []domain.ForecastYear {
	years := make([]domain.ForecastYear, 0, len(buckets))
	for _, b := range buckets {
		years = append(years, domain.ForecastYear{
			YearLabel:        b.YearLabel,
			Ordinal:          b.Ordinal,
			Net:              currency.RoundMoney(b.Net),
			CumulativeTax:    currency.RoundMoney(b.Tax),
			EffectiveTaxRate: currency.SafeRatio(b.Tax, currentGross),
		})
	}
	return years
}
