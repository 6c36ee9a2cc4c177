package domain

import "github.com/shopspring/decimal"

// Configuration is the complete set of inputs the engine works from
type Configuration struct {
	BaseCurrency  string                     `yaml:"base_currency" json:"base_currency"`
	Rates         map[string]decimal.Decimal `yaml:"rates,omitempty" json:"rates,omitempty"`
	PriceBooks    []PriceBook                `yaml:"price_books" json:"price_books"`
	Jurisdictions []JurisdictionPolicy       `yaml:"jurisdictions,omitempty" json:"jurisdictions,omitempty"`
	Scenarios     []BudgetScenario           `yaml:"scenarios" json:"scenarios"`
}

// PriceBook returns the price book of a city (case-sensitive)
func (c *Configuration) PriceBook(city string) (PriceBook, bool) {
	for _, pb := range c.PriceBooks {
		if pb.City == city {
			return pb, true
		}
	}
	return PriceBook{}, false
}

// Jurisdiction returns the configured policy for a jurisdiction
func (c *Configuration) Jurisdiction(name string) (JurisdictionPolicy, bool) {
	for _, j := range c.Jurisdictions {
		if j.Name == name {
			return j, true
		}
	}
	return JurisdictionPolicy{}, false
}

// Cities lists the cities that have a price book, in file order
func (c *Configuration) Cities() []string {
	out := make([]string, 0, len(c.PriceBooks))
	for _, pb := range c.PriceBooks {
		out = append(out, pb.City)
	}
	return out
}
