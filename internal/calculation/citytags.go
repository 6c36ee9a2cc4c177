package calculation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ShortStayIncreaseKey is the city tag holding the short-stay rent multiplier
const ShortStayIncreaseKey = "short_stay_increase"

// ParseCityTags extracts the key:value pairs embedded in a city-tag string.
// Tags are separated by ';', ',', '|' or newlines; tags without a colon are ignored.
// Keys are lower-cased and spaces or dashes in them are read as underscores.
func ParseCityTags(tags string) map[string]string {
	out := make(map[string]string)
	fields := strings.FieldsFunc(tags, func(r rune) bool {
		return r == ';' || r == ',' || r == '|' || r == '\n'
	})
	for _, f := range fields {
		key, value, ok := strings.Cut(f, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	return out
}

// ShortStayIncrease returns the short-stay multiplier of a city, if its tags carry
// a positive one
func ShortStayIncrease(tags string) (decimal.Decimal, bool) {
	raw, ok := ParseCityTags(tags)[ShortStayIncreaseKey]
	if !ok {
		return decimal.Zero, false
	}
	mult, err := decimal.NewFromString(raw)
	if err != nil || !mult.IsPositive() {
		return decimal.Zero, false
	}
	return mult, true
}
