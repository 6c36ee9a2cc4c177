// Package tui implements the interactive budget explorer: pick control changes from
// a list and watch the monthly budget of the selected city update.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/colcalc/internal/calculation"
	"github.com/rgehrsitz/colcalc/internal/config"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/rgehrsitz/colcalc/internal/transform"
)

// changeItem is one registered control change in the change list
type changeItem struct {
	name        string
	description string
}

func (i changeItem) Title() string       { return i.name }
func (i changeItem) Description() string { return i.description }
func (i changeItem) FilterValue() string { return i.name }

// Model represents the entire explorer state
type Model struct {
	// Terminal dimensions
	width  int
	height int

	// Configuration and data
	configPath string
	config     *domain.Configuration

	// Calculation engine
	engine *calculation.CalculationEngine

	// Current selections
	cities    []string
	cityIndex int
	household domain.HouseholdType
	applied   []string

	// Evaluated state
	items    []domain.LineItem
	active   domain.HouseholdType
	result   *domain.BudgetResult
	previous *domain.BudgetResult

	// UI components
	changes  list.Model
	keys     keyMap
	help     help.Model
	showHelp bool

	logger  calculation.Logger
	err     error
	loading bool
}

// NewModel creates an explorer that loads its configuration from configPath on start
func NewModel(configPath string) Model {
	m := newModel()
	m.configPath = configPath
	m.loading = true
	return m
}

// NewModelWithConfig creates an explorer over an already loaded configuration
func NewModelWithConfig(cfg *domain.Configuration) Model {
	m := newModel()
	m.setConfig(cfg)
	return m
}

func newModel() Model {
	registry := transform.NewChangeRegistry(nil)
	items := make([]list.Item, 0, len(registry.List()))
	for _, name := range registry.List() {
		c, _ := registry.Get(name)
		items = append(items, changeItem{name: name, description: c.Description()})
	}

	changes := list.New(items, list.NewDefaultDelegate(), 0, 0)
	changes.Title = "Changes"
	changes.SetShowHelp(false)

	m := Model{
		household: domain.HouseholdSolo,
		changes:   changes,
		keys:      defaultKeyMap(),
		help:      help.New(),
		logger:    calculation.NopLogger{},
		width:     80,
		height:    24,
	}
	m.resize(m.width, m.height)
	return m
}

// SetLogger sets the logger handed to the calculation engine
func (m *Model) SetLogger(logger calculation.Logger) {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	m.logger = logger
	if m.engine != nil {
		m.engine.SetLogger(logger)
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.config != nil {
		return nil
	}
	return loadConfigCmd(m.configPath)
}

// loadConfigCmd returns a command that loads the configuration file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// setConfig starts exploring cfg from its first scenario, or from a solo
// baseline in the first city when no scenario is defined
func (m *Model) setConfig(cfg *domain.Configuration) {
	m.config = cfg
	m.loading = false
	m.engine = calculation.NewCalculationEngineWithConfig(cfg)
	m.engine.SetLogger(m.logger)
	m.cities = cfg.Cities()
	m.cityIndex = 0
	m.applied = nil

	if len(cfg.Scenarios) > 0 {
		first := cfg.Scenarios[0]
		m.household = first.Household
		m.applied = append(m.applied, first.Changes...)
		for i, city := range m.cities {
			if city == first.City {
				m.cityIndex = i
			}
		}
	}
	m.previous = nil
	m.recalculate()
}

// City returns the city currently evaluated
func (m Model) City() string {
	if len(m.cities) == 0 {
		return ""
	}
	return m.cities[m.cityIndex]
}

// Applied returns the changes applied on top of the household baseline
func (m Model) Applied() []string {
	return append([]string(nil), m.applied...)
}

// Result returns the budget of the current selections, nil before a configuration is loaded
func (m Model) Result() *domain.BudgetResult {
	return m.result
}

// recalculate resolves the applied changes and evaluates them in the current city
func (m *Model) recalculate() {
	if m.engine == nil || len(m.cities) == 0 {
		return
	}
	book, ok := m.config.PriceBook(m.City())
	if !ok {
		return
	}

	scenario := domain.BudgetScenario{
		Name:      "explorer",
		Household: m.household,
		City:      book.City,
		Changes:   m.applied,
	}
	m.items, m.active = m.engine.ResolveItems(scenario)
	result := m.engine.Evaluator.Evaluate(m.items, book)
	if m.result != nil && m.result.City == result.City {
		m.previous = m.result
	} else {
		m.previous = nil
	}
	m.result = &result
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	listWidth := width / 2
	if listWidth < 20 {
		listWidth = 20
	}
	listHeight := height - 8
	if listHeight < 5 {
		listHeight = 5
	}
	m.changes.SetSize(listWidth, listHeight)
	m.help.Width = width
}
