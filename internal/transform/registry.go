package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/colcalc/internal/catalog"
	"github.com/rgehrsitz/colcalc/internal/domain"
)

// ChangeRegistry provides a central registry for all available budget changes.
// It enables lookup of changes by name, useful for CLI commands and the explorer.
type ChangeRegistry struct {
	changes map[string]BudgetChange
	order   []string
}

// NewChangeRegistry creates a new registry with all built-in changes registered.
func NewChangeRegistry(cat *catalog.Catalog) *ChangeRegistry {
	registry := &ChangeRegistry{
		changes: make(map[string]BudgetChange),
	}

	// Housing
	for _, tier := range []string{"low", "average", "high"} {
		registry.Register(&HousingPriceChange{Catalog: cat, Price: tier})
	}
	registry.Register(&HousingLocationChange{Catalog: cat, Location: catalog.LocationCentral})
	registry.Register(&HousingLocationChange{Catalog: cat, Location: catalog.LocationOuter})
	registry.Register(&HousingSizeChange{Catalog: cat, Size: catalog.SizeSmall})
	registry.Register(&HousingSizeChange{Catalog: cat, Size: catalog.SizeBig})
	registry.Register(&HousingTermChange{Catalog: cat, ShortTerm: false})
	registry.Register(&HousingTermChange{Catalog: cat, ShortTerm: true})

	// Consumption levels
	for _, category := range domain.ConsumptionCategories {
		for _, level := range domain.ConsumptionLevels {
			registry.Register(&ConsumptionChange{Catalog: cat, Category: category, Level: level})
		}
	}

	// Preschool
	registry.Register(&PreschoolChange{Catalog: cat, Enabled: true})
	registry.Register(&PreschoolChange{Catalog: cat, Enabled: false})

	// Household switch
	for _, hh := range domain.HouseholdTypes {
		registry.Register(&HouseholdChange{Catalog: cat, Household: hh})
	}

	return registry
}

// Register adds a change to the registry, replacing any change with the same name.
func (r *ChangeRegistry) Register(c BudgetChange) {
	if _, exists := r.changes[c.Name()]; !exists {
		r.order = append(r.order, c.Name())
	}
	r.changes[c.Name()] = c
}

// Get returns the change registered under name.
func (r *ChangeRegistry) Get(name string) (BudgetChange, bool) {
	c, ok := r.changes[strings.TrimSpace(name)]
	return c, ok
}

// List returns the names of all registered changes in registration order.
func (r *ChangeRegistry) List() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Describe returns "name: description" lines for every registered change.
func (r *ChangeRegistry) Describe() []string {
	out := make([]string, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, fmt.Sprintf("%s: %s", name, r.changes[name].Description()))
	}
	return out
}
