package transform

import (
	"fmt"

	"github.com/rgehrsitz/colcalc/internal/catalog"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// housingState is the housing configuration encoded in a line item set
type housingState struct {
	location catalog.HousingLocation
	size     catalog.HousingSize
	tier     domain.Tier
}

// readHousing recovers the housing state from the current items. Without a rent item
// it falls back to the household's baseline housing.
func readHousing(cat *catalog.Catalog, current []domain.LineItem, household domain.HouseholdType) housingState {
	for _, it := range cat.Subset(current, domain.CategoryHousing) {
		if loc, size, ok := cat.HousingAttributes(it.ItemID); ok {
			return housingState{location: loc, size: size, tier: it.Tier}
		}
	}
	size := catalog.SizeSmall
	if household == domain.HouseholdFamily {
		size = catalog.SizeBig
	}
	return housingState{location: catalog.LocationCentral, size: size}
}

// writeHousing replaces the housing subset with the single rent item of state
func writeHousing(cat *catalog.Catalog, current []domain.LineItem, state housingState) []domain.LineItem {
	rent := domain.LineItem{
		ItemID:   cat.HousingItem(state.location, state.size),
		Quantity: decimal.NewFromInt(1),
		Tier:     state.tier,
	}
	return replaceCategory(cat, current, domain.CategoryHousing, []domain.LineItem{rent})
}

// HousingPriceChange selects the low, average or high rent price. A short-term
// stay takes precedence over the price tier and is left untouched.
type HousingPriceChange struct {
	Catalog *catalog.Catalog
	Price   string // low, average or high
}

func (c *HousingPriceChange) Apply(current []domain.LineItem, household domain.HouseholdType) []domain.LineItem {
	state := readHousing(c.Catalog, current, household)
	if state.tier == domain.TierShortTerm {
		return domain.CloneItems(current)
	}
	switch c.Price {
	case "low":
		state.tier = domain.TierLow
	case "high":
		state.tier = domain.TierHigh
	default:
		state.tier = domain.TierDefault
	}
	return writeHousing(c.Catalog, current, state)
}

func (c *HousingPriceChange) Name() string { return "housing_price_" + c.Price }

func (c *HousingPriceChange) Description() string {
	return fmt.Sprintf("Price housing at the %s rent for its size and location", c.Price)
}

// HousingLocationChange swaps the rent item for the same size in another location
type HousingLocationChange struct {
	Catalog  *catalog.Catalog
	Location catalog.HousingLocation
}

func (c *HousingLocationChange) Apply(current []domain.LineItem, household domain.HouseholdType) []domain.LineItem {
	state := readHousing(c.Catalog, current, household)
	state.location = c.Location
	return writeHousing(c.Catalog, current, state)
}

func (c *HousingLocationChange) Name() string { return "housing_location_" + string(c.Location) }

func (c *HousingLocationChange) Description() string {
	if c.Location == catalog.LocationOuter {
		return "Move housing outside of the city centre"
	}
	return "Move housing to the city centre"
}

// HousingSizeChange swaps the rent item and the matching utilities for another size
type HousingSizeChange struct {
	Catalog *catalog.Catalog
	Size    catalog.HousingSize
}

func (c *HousingSizeChange) Apply(current []domain.LineItem, household domain.HouseholdType) []domain.LineItem {
	state := readHousing(c.Catalog, current, household)
	state.size = c.Size
	items := writeHousing(c.Catalog, current, state)
	return replaceCategory(c.Catalog, items, domain.CategoryUtilities, c.Catalog.UtilitiesItems(c.Size))
}

func (c *HousingSizeChange) Name() string { return "housing_size_" + string(c.Size) }

func (c *HousingSizeChange) Description() string {
	if c.Size == catalog.SizeBig {
		return "Rent a three-bedroom apartment"
	}
	return "Rent a one-bedroom apartment"
}

// HousingTermChange toggles a short-term stay. It keeps the same items and only
// tags the rent with the short-term tier so the evaluator applies the city's
// short-stay multiplier.
type HousingTermChange struct {
	Catalog   *catalog.Catalog
	ShortTerm bool
}

func (c *HousingTermChange) Apply(current []domain.LineItem, household domain.HouseholdType) []domain.LineItem {
	state := readHousing(c.Catalog, current, household)
	switch {
	case c.ShortTerm:
		state.tier = domain.TierShortTerm
	case state.tier == domain.TierShortTerm:
		state.tier = domain.TierDefault
	}
	return writeHousing(c.Catalog, current, state)
}

func (c *HousingTermChange) Name() string {
	if c.ShortTerm {
		return "housing_term_short"
	}
	return "housing_term_long"
}

func (c *HousingTermChange) Description() string {
	if c.ShortTerm {
		return "Rent for a short stay at the city's short-stay rate"
	}
	return "Rent on a long-term lease"
}

// ConsumptionChange replaces a whole category with its precomputed list for a level
type ConsumptionChange struct {
	Catalog  *catalog.Catalog
	Category domain.Category
	Level    domain.ConsumptionLevel
}

func (c *ConsumptionChange) Apply(current []domain.LineItem, household domain.HouseholdType) []domain.LineItem {
	return replaceCategory(c.Catalog, current, c.Category, c.Catalog.ConsumptionItems(household, c.Category, c.Level))
}

func (c *ConsumptionChange) Name() string { return fmt.Sprintf("%s_%s", c.Category, c.Level) }

func (c *ConsumptionChange) Description() string {
	return fmt.Sprintf("Set %s consumption to %s", c.Category, c.Level)
}

// PreschoolChange enables or disables preschool; it only applies to family households
type PreschoolChange struct {
	Catalog *catalog.Catalog
	Enabled bool
}

func (c *PreschoolChange) Apply(current []domain.LineItem, household domain.HouseholdType) []domain.LineItem {
	if household != domain.HouseholdFamily {
		return domain.CloneItems(current)
	}
	var replacement []domain.LineItem
	if c.Enabled {
		replacement = c.Catalog.PreschoolItems(household)
	}
	return replaceCategory(c.Catalog, current, domain.CategoryPreschool, replacement)
}

func (c *PreschoolChange) Name() string {
	if c.Enabled {
		return "preschool_on"
	}
	return "preschool_off"
}

func (c *PreschoolChange) Description() string {
	if c.Enabled {
		return "Enroll the child in full-day preschool (family only)"
	}
	return "Remove preschool from the budget (family only)"
}

// HouseholdChange resets the items to another household type's baseline
type HouseholdChange struct {
	Catalog   *catalog.Catalog
	Household domain.HouseholdType
}

func (c *HouseholdChange) Apply([]domain.LineItem, domain.HouseholdType) []domain.LineItem {
	return c.Catalog.Baseline(c.Household)
}

func (c *HouseholdChange) Name() string { return "household_" + string(c.Household) }

func (c *HouseholdChange) Description() string {
	return fmt.Sprintf("Start over from the %s household baseline", c.Household)
}
