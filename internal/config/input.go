package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/colcalc/internal/catalog"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/rgehrsitz/colcalc/internal/transform"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ValidationError reports one invalid field of an input file
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// InputParser handles parsing of input configuration files
type InputParser struct {
	catalog  *catalog.Catalog
	registry *transform.ChangeRegistry
	// StrictChanges rejects scenarios naming an unknown budget change instead of
	// leaving them to be ignored at resolution time
	StrictChanges bool
}

// NewInputParser creates a new input parser validating against the built-in catalog
func NewInputParser() *InputParser {
	cat := catalog.Default()
	return &InputParser{catalog: cat, registry: transform.NewChangeRegistry(cat)}
}

// LoadFromFile loads a configuration (rates, price books, jurisdictions, scenarios)
// from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a YAML configuration
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.applyDefaults(&config)
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// LoadPriceBooks loads a prices file holding a list of price books and merges it into
// config, replacing books of the same city
func (ip *InputParser) LoadPriceBooks(filename string, config *domain.Configuration) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	var books []domain.PriceBook
	if err := yaml.Unmarshal(data, &books); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	for _, book := range books {
		replaced := false
		for i := range config.PriceBooks {
			if config.PriceBooks[i].City == book.City {
				config.PriceBooks[i] = book
				replaced = true
				break
			}
		}
		if !replaced {
			config.PriceBooks = append(config.PriceBooks, book)
		}
	}

	ip.applyDefaults(config)
	if err := ip.ValidateConfiguration(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// LoadTaxReport loads a tax backend report from a YAML file
func (ip *InputParser) LoadTaxReport(filename string) (*domain.TaxReport, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseTaxReport(data)
}

// ParseTaxReport decodes and validates a YAML tax report
func (ip *InputParser) ParseTaxReport(data []byte) (*domain.TaxReport, error) {
	var report domain.TaxReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	report.Currency = strings.ToUpper(strings.TrimSpace(report.Currency))
	if err := ip.ValidateTaxReport(&report); err != nil {
		return nil, fmt.Errorf("tax report validation failed: %w", err)
	}
	return &report, nil
}

// applyDefaults normalizes currency codes and household names and gives price books
// without a currency the base currency
func (ip *InputParser) applyDefaults(config *domain.Configuration) {
	config.BaseCurrency = strings.ToUpper(strings.TrimSpace(config.BaseCurrency))
	for i := range config.PriceBooks {
		pb := &config.PriceBooks[i]
		pb.Currency = strings.ToUpper(strings.TrimSpace(pb.Currency))
		if pb.Currency == "" {
			pb.Currency = config.BaseCurrency
		}
		for j := range pb.Records {
			pb.Records[j].Currency = strings.ToUpper(strings.TrimSpace(pb.Records[j].Currency))
		}
	}
	for i := range config.Scenarios {
		s := &config.Scenarios[i]
		if h, err := domain.ParseHouseholdType(string(s.Household)); err == nil {
			s.Household = h
		}
		s.Currency = strings.ToUpper(strings.TrimSpace(s.Currency))
	}
	for i := range config.Jurisdictions {
		j := &config.Jurisdictions[i]
		j.Reductions = domain.ReductionPolicy(strings.ToLower(strings.TrimSpace(string(j.Reductions))))
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config == nil {
		return errors.New("configuration is required")
	}
	if err := ip.validateRates(config); err != nil {
		return fmt.Errorf("rates validation failed: %w", err)
	}

	cities := make(map[string]bool, len(config.PriceBooks))
	for i, pb := range config.PriceBooks {
		if err := ip.validatePriceBook(&pb); err != nil {
			return fmt.Errorf("price book %d (%s) validation failed: %w", i, pb.City, err)
		}
		if cities[pb.City] {
			return fmt.Errorf("price book %d validation failed: %w", i, invalid("city", "duplicate city %q", pb.City))
		}
		cities[pb.City] = true
	}

	for i, j := range config.Jurisdictions {
		if err := validateJurisdiction(&j); err != nil {
			return fmt.Errorf("jurisdiction %d (%s) validation failed: %w", i, j.Name, err)
		}
	}

	names := make(map[string]bool, len(config.Scenarios))
	for i, s := range config.Scenarios {
		if err := ip.validateScenario(&s, cities); err != nil {
			return fmt.Errorf("scenario %d (%s) validation failed: %w", i, s.Name, err)
		}
		key := strings.ToLower(s.Name)
		if names[key] {
			return fmt.Errorf("scenario %d validation failed: %w", i, invalid("name", "duplicate scenario %q", s.Name))
		}
		names[key] = true
	}

	return nil
}

func (ip *InputParser) validateRates(config *domain.Configuration) error {
	if len(config.Rates) > 0 && config.BaseCurrency == "" {
		return invalid("base_currency", "is required when rates are given")
	}
	for code, rate := range config.Rates {
		if !rate.IsPositive() {
			return invalid("rates."+code, "must be positive, got %s", rate)
		}
	}
	return nil
}

func (ip *InputParser) validatePriceBook(pb *domain.PriceBook) error {
	if strings.TrimSpace(pb.City) == "" {
		return invalid("city", "is required")
	}
	seen := make(map[int]bool, len(pb.Records))
	for _, r := range pb.Records {
		field := fmt.Sprintf("records[%d]", r.ItemID)
		entry, ok := ip.catalog.Entry(r.ItemID)
		if !ok {
			return invalid(field, "unknown item id %d", r.ItemID)
		}
		if seen[r.ItemID] {
			return invalid(field, "duplicate price for item %d", r.ItemID)
		}
		seen[r.ItemID] = true

		if r.Price.IsNegative() {
			return invalid(field+".price", "cannot be negative")
		}
		for _, variant := range []*decimal.Decimal{r.LowPrice, r.HighPrice} {
			if variant == nil {
				continue
			}
			if !entry.Tierable {
				return invalid(field, "%s has no price tiers", entry.Name)
			}
			if variant.IsNegative() {
				return invalid(field, "tier prices cannot be negative")
			}
		}
	}
	return nil
}

func validateJurisdiction(j *domain.JurisdictionPolicy) error {
	if strings.TrimSpace(j.Name) == "" {
		return invalid("name", "is required")
	}
	switch j.Reductions {
	case "", domain.ReductionsSum, domain.ReductionsKeepLast:
	default:
		return invalid("reductions", "must be %q or %q, got %q", domain.ReductionsSum, domain.ReductionsKeepLast, j.Reductions)
	}
	return nil
}

func (ip *InputParser) validateScenario(s *domain.BudgetScenario, cities map[string]bool) error {
	if strings.TrimSpace(s.Name) == "" {
		return invalid("name", "is required")
	}
	if _, err := domain.ParseHouseholdType(string(s.Household)); err != nil {
		return invalid("household", "%v", err)
	}
	if !cities[s.City] {
		return invalid("city", "no price book for city %q", s.City)
	}
	if ip.StrictChanges {
		for _, change := range s.Changes {
			if _, ok := ip.registry.Get(change); !ok {
				return invalid("changes", "unknown budget change %q", change)
			}
		}
	}
	return nil
}

// ValidateTaxReport checks income maker indexes, earner count and dependent ages.
// Unknown regime identifiers are accepted; they fall back to the default breakdown.
func (ip *InputParser) ValidateTaxReport(report *domain.TaxReport) error {
	if report == nil {
		return errors.New("tax report is required")
	}
	if len(report.Household.Earners) > domain.MaxEarners {
		return invalid("household.earners", "at most %d earners are supported, got %d", domain.MaxEarners, len(report.Household.Earners))
	}
	for i, d := range report.Household.Dependents {
		if d.Age < 0 {
			return invalid(fmt.Sprintf("household.dependents[%d].age", i), "cannot be negative")
		}
	}
	for i, it := range report.CostItems {
		field := fmt.Sprintf("cost_items[%d]", i)
		if it.IncomeMakerIndex < 0 || it.IncomeMakerIndex >= domain.MaxEarners {
			return invalid(field+".income_maker_index", "must be 0 or 1, got %d", it.IncomeMakerIndex)
		}
		if strings.TrimSpace(it.Category) == "" {
			return invalid(field+".category", "is required")
		}
	}
	return nil
}
