// Package catalog defines the line items a household budget is composed of:
// which item belongs to which category, the baseline item set of every household
// type and the precomputed item lists for each consumption level.
package catalog

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// HousingLocation is where the rented home is
type HousingLocation string

const (
	LocationCentral HousingLocation = "central"
	LocationOuter   HousingLocation = "outer"
)

// HousingSize is the size of the rented home
type HousingSize string

const (
	SizeSmall HousingSize = "small"
	SizeBig   HousingSize = "big"
)

// Entry describes one catalog item
type Entry struct {
	ItemID   int
	Category domain.Category
	Name     string
	// Tierable items define low/high price variants and accept a tier
	Tierable bool
}

type housingKey struct {
	location HousingLocation
	size     HousingSize
}

type levelTable map[domain.ConsumptionLevel][]domain.LineItem

// Catalog holds the item definitions and category tables
type Catalog struct {
	entries     map[int]Entry
	housing     map[housingKey]int
	utilities   map[HousingSize][]domain.LineItem
	consumption map[domain.HouseholdType]map[domain.Category]levelTable
	preschool   map[domain.HouseholdType][]domain.LineItem
}

// Entry returns the definition of an item
func (c *Catalog) Entry(itemID int) (Entry, bool) {
	e, ok := c.entries[itemID]
	return e, ok
}

// CategoryOf returns the category an item belongs to
func (c *Catalog) CategoryOf(itemID int) (domain.Category, bool) {
	e, ok := c.entries[itemID]
	return e.Category, ok
}

// Entries returns every item definition ordered by item ID
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

// HousingItem returns the rent item for a location and size
func (c *Catalog) HousingItem(location HousingLocation, size HousingSize) int {
	return c.housing[housingKey{location, size}]
}

// HousingAttributes reverses HousingItem
func (c *Catalog) HousingAttributes(itemID int) (HousingLocation, HousingSize, bool) {
	for k, id := range c.housing {
		if id == itemID {
			return k.location, k.size, true
		}
	}
	return "", "", false
}

// UtilitiesItems returns the utility items matching a housing size
func (c *Catalog) UtilitiesItems(size HousingSize) []domain.LineItem {
	return domain.CloneItems(c.utilities[size])
}

// ConsumptionItems returns the precomputed item list of a category at a level
func (c *Catalog) ConsumptionItems(household domain.HouseholdType, category domain.Category, level domain.ConsumptionLevel) []domain.LineItem {
	byCategory, ok := c.consumption[household]
	if !ok {
		return nil
	}
	return domain.CloneItems(byCategory[category][level])
}

// PreschoolItems returns the preschool items of a household, nil when it has none
func (c *Catalog) PreschoolItems(household domain.HouseholdType) []domain.LineItem {
	return domain.CloneItems(c.preschool[household])
}

// Baseline returns the default item set of a household type: central average-priced
// housing, medium consumption everywhere, and for families big housing with preschool
func (c *Catalog) Baseline(household domain.HouseholdType) []domain.LineItem {
	size := SizeSmall
	if household == domain.HouseholdFamily {
		size = SizeBig
	}

	items := []domain.LineItem{{ItemID: c.HousingItem(LocationCentral, size), Quantity: decimal.NewFromInt(1)}}
	items = append(items, c.UtilitiesItems(size)...)
	for _, cat := range domain.ConsumptionCategories {
		items = append(items, c.ConsumptionItems(household, cat, domain.ConsumptionMedium)...)
	}
	items = append(items, c.PreschoolItems(household)...)
	return items
}

// Level detects the consumption level the current items of a category match
func (c *Catalog) Level(items []domain.LineItem, household domain.HouseholdType, category domain.Category) (domain.ConsumptionLevel, bool) {
	current := c.Subset(items, category)
	for _, level := range domain.ConsumptionLevels {
		if sameItems(current, c.ConsumptionItems(household, category, level)) {
			return level, true
		}
	}
	return "", false
}

// Subset returns the items of one category, in order
func (c *Catalog) Subset(items []domain.LineItem, category domain.Category) []domain.LineItem {
	var out []domain.LineItem
	for _, it := range items {
		if cat, ok := c.CategoryOf(it.ItemID); ok && cat == category {
			out = append(out, it)
		}
	}
	return out
}

// Validate checks the line item invariants: every item exists in the tables that apply
// to the household type and tiers are only set on tierable items
func (c *Catalog) Validate(items []domain.LineItem, household domain.HouseholdType) error {
	for i, it := range items {
		e, ok := c.entries[it.ItemID]
		if !ok {
			return fmt.Errorf("item %d: unknown item id %d", i, it.ItemID)
		}
		if e.Category == domain.CategoryPreschool && len(c.preschool[household]) == 0 {
			return fmt.Errorf("item %d: %s is not available for %s households", i, e.Name, household)
		}
		if it.Tier != domain.TierDefault && !e.Tierable {
			return fmt.Errorf("item %d: %s has no price tiers but tier %q is set", i, e.Name, it.Tier)
		}
		if it.Quantity.IsNegative() {
			return fmt.Errorf("item %d: negative quantity %s", i, it.Quantity)
		}
	}
	return nil
}

func sameItems(a, b []domain.LineItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ItemID != b[i].ItemID || !a[i].Quantity.Equal(b[i].Quantity) || a[i].Tier != b[i].Tier {
			return false
		}
	}
	return true
}
