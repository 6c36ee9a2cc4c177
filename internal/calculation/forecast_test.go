package calculation

import (
	"testing"

	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractForecast_GroupsByYear(t *testing.T) {
	items := []domain.CostItem{
		item(0, "additional_3rd", "Tax", "400"),
		item(0, "additional_2nd", "Tax", "300"),
		item(0, "additional_2nd", "Net income", "1000"),
		item(1, "additional_2nd", "Tax", "200"),
		item(1, "additional_2nd", "Net income", "500"),
		item(1, "additional_3rd", "Tax", "200"),
		item(0, "additional_3rd", "Net income", "1800"),
		item(0, domain.CostGross, "Gross income", "10000"),
		item(0, "additional_notes", "Tax", "999"),
	}

	buckets := ExtractForecast(items)

	require.Len(t, buckets, 2)
	assert.Equal(t, "2nd", buckets[0].YearLabel)
	assert.Equal(t, 2, buckets[0].Ordinal)
	assert.True(t, buckets[0].Tax.Equal(dec("500")))
	assert.True(t, buckets[0].Net.Equal(dec("1500")))
	assert.Equal(t, "3rd", buckets[1].YearLabel)
	assert.True(t, buckets[1].Tax.Equal(dec("600")))
	assert.True(t, buckets[1].Net.Equal(dec("1800")))
}

func TestExtractForecast_Empty(t *testing.T) {
	assert.Empty(t, ExtractForecast(nil))
	assert.Empty(t, ExtractForecast([]domain.CostItem{item(0, domain.CostNet, "Net", "10")}))
}

func TestForecastYears_RateAgainstCurrentGross(t *testing.T) {
	buckets := []ForecastBucket{{YearLabel: "2nd", Ordinal: 2, Tax: dec("500"), Net: dec("1500")}}

	years := ForecastYears(buckets, dec("10000"))
	require.Len(t, years, 1)
	assert.True(t, years[0].EffectiveTaxRate.Equal(dec("0.05")))
	assert.True(t, years[0].CumulativeTax.Equal(dec("500")))
	assert.True(t, years[0].Net.Equal(dec("1500")))

	zero := ForecastYears(buckets, decimal.Zero)
	assert.True(t, zero[0].EffectiveTaxRate.IsZero(), "Zero gross never divides")
}
