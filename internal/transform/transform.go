// Package transform rewrites the active set of budget line items in response to
// named control changes. Every change replaces a whole item subset; none of them
// edits quantities incrementally.
package transform

import (
	"github.com/rgehrsitz/colcalc/internal/catalog"
	"github.com/rgehrsitz/colcalc/internal/domain"
)

// BudgetChange is one named control change.
// Apply is a pure function of the current items and the household type; it never
// mutates current.
type BudgetChange interface {
	Apply(current []domain.LineItem, household domain.HouseholdType) []domain.LineItem

	// Name returns the change identifier (e.g., "housing_location_outer").
	Name() string

	// Description returns a human-readable description of what this change does.
	Description() string
}

// debugLogger is the subset of calculation.Logger the resolver needs
type debugLogger interface {
	Debugf(format string, args ...any)
}

type nopDebug struct{}

func (nopDebug) Debugf(string, ...any) {}

// Resolver applies named changes to line item sets
type Resolver struct {
	Catalog  *catalog.Catalog
	Registry *ChangeRegistry
	logger   debugLogger
}

// NewResolver creates a resolver with every built-in change registered
func NewResolver(cat *catalog.Catalog) *Resolver {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Resolver{
		Catalog:  cat,
		Registry: NewChangeRegistry(cat),
		logger:   nopDebug{},
	}
}

// SetLogger sets the logger used to report ignored changes; nil disables logging
func (r *Resolver) SetLogger(l debugLogger) {
	if l == nil {
		r.logger = nopDebug{}
		return
	}
	r.logger = l
}

// Resolve applies one change. An unrecognized change name is a no-op and returns a copy
// of the input unchanged.
func (r *Resolver) Resolve(current []domain.LineItem, household domain.HouseholdType, change string) []domain.LineItem {
	c, ok := r.Registry.Get(change)
	if !ok {
		r.logger.Debugf("ignoring unknown budget change %q", change)
		return domain.CloneItems(current)
	}
	return c.Apply(current, household)
}

// Reset returns the baseline item set of a household type
func (r *Resolver) Reset(household domain.HouseholdType) []domain.LineItem {
	return r.Catalog.Baseline(household)
}

// ResolveAll starts from the household baseline and applies changes in order.
// A household_* change switches the household type used by the following changes.
func (r *Resolver) ResolveAll(household domain.HouseholdType, changes []string) ([]domain.LineItem, domain.HouseholdType) {
	items := r.Reset(household)
	for _, name := range changes {
		if c, ok := r.Registry.Get(name); ok {
			if hc, ok := c.(*HouseholdChange); ok {
				household = hc.Household
			}
		}
		items = r.Resolve(items, household, name)
	}
	return items, household
}

// replaceCategory swaps every item of category for replacement. The replacement
// takes the position of the first removed item, or is appended when the category
// was absent.
func replaceCategory(cat *catalog.Catalog, current []domain.LineItem, category domain.Category, replacement []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(current)+len(replacement))
	inserted := false
	for _, it := range current {
		if c, ok := cat.CategoryOf(it.ItemID); ok && c == category {
			if !inserted {
				out = append(out, replacement...)
				inserted = true
			}
			continue
		}
		out = append(out, it)
	}
	if !inserted {
		out = append(out, replacement...)
	}
	return out
}
