package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// HouseholdType selects the baseline line items and which category tables apply
type HouseholdType string

const (
	HouseholdSolo   HouseholdType = "solo"
	HouseholdPair   HouseholdType = "pair"
	HouseholdFamily HouseholdType = "family"
)

// HouseholdTypes lists every supported household type in display order
var HouseholdTypes = []HouseholdType{HouseholdSolo, HouseholdPair, HouseholdFamily}

// ParseHouseholdType parses a household type name (case-insensitive)
func ParseHouseholdType(s string) (HouseholdType, error) {
	switch HouseholdType(strings.ToLower(strings.TrimSpace(s))) {
	case HouseholdSolo:
		return HouseholdSolo, nil
	case HouseholdPair:
		return HouseholdPair, nil
	case HouseholdFamily:
		return HouseholdFamily, nil
	}
	return "", fmt.Errorf("unknown household type %q", s)
}

// ConsumptionLevel is the per-category spending intensity
type ConsumptionLevel string

const (
	ConsumptionLow    ConsumptionLevel = "low"
	ConsumptionMedium ConsumptionLevel = "medium"
	ConsumptionHigh   ConsumptionLevel = "high"
)

// ConsumptionLevels lists levels from cheapest to most expensive
var ConsumptionLevels = []ConsumptionLevel{ConsumptionLow, ConsumptionMedium, ConsumptionHigh}

// Category groups line items into budget subtotals
type Category string

const (
	CategoryHousing   Category = "housing"
	CategoryUtilities Category = "utilities"
	CategoryFood      Category = "food"
	CategoryTransport Category = "transport"
	CategoryLeisure   Category = "leisure"
	CategoryClothing  Category = "clothing"
	CategoryPreschool Category = "preschool"
)

// Categories is the fixed presentation order of budget categories
var Categories = []Category{
	CategoryHousing,
	CategoryUtilities,
	CategoryFood,
	CategoryTransport,
	CategoryLeisure,
	CategoryClothing,
	CategoryPreschool,
}

// ConsumptionCategories are the categories whose item subset is chosen by a ConsumptionLevel
var ConsumptionCategories = []Category{CategoryFood, CategoryTransport, CategoryLeisure, CategoryClothing}

// Tier selects which price variant of a PriceRecord applies to a line item
type Tier string

const (
	TierDefault   Tier = ""
	TierLow       Tier = "low"
	TierHigh      Tier = "high"
	TierShortTerm Tier = "short-term"
)

// LineItem is one priced component of a household budget
type LineItem struct {
	ItemID   int             `yaml:"item_id" json:"itemId"`
	Quantity decimal.Decimal `yaml:"quantity" json:"quantity"`
	Tier     Tier            `yaml:"tier,omitempty" json:"tier,omitempty"`
}

// CloneItems returns a copy of items that can be modified without touching the input
func CloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

// PriceRecord is the externally supplied price of one item in one city
type PriceRecord struct {
	ItemID    int              `yaml:"item_id" json:"itemId"`
	Price     decimal.Decimal  `yaml:"price" json:"price"`
	LowPrice  *decimal.Decimal `yaml:"low_price,omitempty" json:"lowPrice,omitempty"`
	HighPrice *decimal.Decimal `yaml:"high_price,omitempty" json:"highPrice,omitempty"`
	Currency  string           `yaml:"currency,omitempty" json:"currency,omitempty"`
}

// PriceBook holds every price record known for a city.
// Tags is the raw city-tag string; it can embed key:value pairs such as
// "short_stay_increase:1.4".
type PriceBook struct {
	City     string        `yaml:"city" json:"city"`
	Tags     string        `yaml:"tags,omitempty" json:"tags,omitempty"`
	Currency string        `yaml:"currency" json:"currency"`
	Records  []PriceRecord `yaml:"records" json:"records"`
}

// Lookup returns the record for itemID
func (pb PriceBook) Lookup(itemID int) (PriceRecord, bool) {
	for _, r := range pb.Records {
		if r.ItemID == itemID {
			return r, true
		}
	}
	return PriceRecord{}, false
}

// BudgetResult is the evaluated budget of one item set in one city.
// All amounts are in the price book currency.
type BudgetResult struct {
	City           string                       `json:"city"`
	Currency       string                       `json:"currency"`
	CategoryTotals map[Category]decimal.Decimal `json:"categoryTotals"`
	Subtotal       decimal.Decimal              `json:"subtotal"`
	Buffer         decimal.Decimal              `json:"buffer"`
	// ShortStayAdjustment is the extra housing cost of a short-term stay
	ShortStayAdjustment decimal.Decimal `json:"shortStayAdjustment"`
	Total               decimal.Decimal `json:"total"`
	Warnings            []string        `json:"warnings,omitempty"`
}

// Degraded reports whether some items could not be priced
func (br BudgetResult) Degraded() bool {
	return len(br.Warnings) > 0
}

// CategoryTotal returns the subtotal of one category, zero when absent
func (br BudgetResult) CategoryTotal(c Category) decimal.Decimal {
	if br.CategoryTotals == nil {
		return decimal.Zero
	}
	return br.CategoryTotals[c]
}

// BudgetScenario describes a household budget to evaluate: a household type,
// a city and the control changes applied on top of the household baseline
type BudgetScenario struct {
	Name      string        `yaml:"name" json:"name"`
	Household HouseholdType `yaml:"household" json:"household"`
	City      string        `yaml:"city" json:"city"`
	Changes   []string      `yaml:"changes,omitempty" json:"changes,omitempty"`
	Currency  string        `yaml:"currency,omitempty" json:"currency,omitempty"`
}
