package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/colcalc/internal/catalog"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rentBook(city string, rent int64) domain.PriceBook {
	low := decimal.NewFromInt(rent / 2)
	return domain.PriceBook{
		City:     city,
		Currency: "EUR",
		Records: []domain.PriceRecord{
			{ItemID: catalog.RentCentralSmall, Price: decimal.NewFromInt(rent), LowPrice: &low},
		},
	}
}

func testConfig() *domain.Configuration {
	return &domain.Configuration{
		BaseCurrency: "EUR",
		PriceBooks:   []domain.PriceBook{rentBook("Lisbon", 1000), rentBook("Porto", 800)},
		Scenarios: []domain.BudgetScenario{
			{Name: "start", Household: domain.HouseholdSolo, City: "Porto"},
		},
	}
}

func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	updated, _ := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next
}

func TestNewModelWithConfig_StartsFromFirstScenario(t *testing.T) {
	m := NewModelWithConfig(testConfig())

	assert.Equal(t, "Porto", m.City())
	assert.Empty(t, m.Applied())
	require.NotNil(t, m.Result())
	assert.Equal(t, "Porto", m.Result().City)
	assert.True(t, m.Result().CategoryTotal(domain.CategoryHousing).Equal(decimal.NewFromInt(800)))
	assert.Nil(t, m.Init(), "Nothing to load")
}

func TestModel_ApplyUndoReset(t *testing.T) {
	m := NewModelWithConfig(testConfig())
	selected, ok := m.changes.SelectedItem().(changeItem)
	require.True(t, ok)

	m = press(t, m, "enter")
	assert.Equal(t, []string{selected.name}, m.Applied())

	m = press(t, m, "enter")
	assert.Len(t, m.Applied(), 2)

	m = press(t, m, "u")
	assert.Equal(t, []string{selected.name}, m.Applied())

	m = press(t, m, "r")
	assert.Empty(t, m.Applied())
	assert.True(t, m.Result().CategoryTotal(domain.CategoryHousing).Equal(decimal.NewFromInt(800)))
}

func TestModel_ApplyHousingPriceChange(t *testing.T) {
	m := NewModelWithConfig(testConfig())
	before := m.Result().Total

	m.applied = append(m.applied, "housing_price_low")
	m.recalculate()

	assert.True(t, m.Result().CategoryTotal(domain.CategoryHousing).Equal(decimal.NewFromInt(400)))
	require.NotNil(t, m.previous)
	assert.True(t, m.previous.Total.Equal(before))
}

func TestModel_SwitchCity(t *testing.T) {
	m := NewModelWithConfig(testConfig())

	m = press(t, m, "tab")
	assert.Equal(t, "Lisbon", m.City())
	assert.True(t, m.Result().CategoryTotal(domain.CategoryHousing).Equal(decimal.NewFromInt(1000)))
	assert.Nil(t, m.previous, "Totals of different cities are not compared")

	m = press(t, m, "tab")
	assert.Equal(t, "Porto", m.City(), "Cities wrap around")
}

func TestModel_Messages(t *testing.T) {
	m := NewModel("missing.yaml")
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Loading configuration")

	updated, _ := m.Update(ConfigLoadedMsg{Config: testConfig()})
	loaded := updated.(Model)
	assert.Equal(t, "Porto", loaded.City())
	assert.Contains(t, loaded.View(), "Cost of Living Explorer")
	assert.Contains(t, loaded.View(), "Porto")

	updated, _ = m.Update(ErrorMsg{Err: errors.New("boom")})
	assert.Contains(t, updated.(Model).View(), "Error: boom")

	updated, _ = loaded.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, updated.(Model).width)
}

func TestModel_LoadConfigCmdReportsErrors(t *testing.T) {
	msg := loadConfigCmd("does-not-exist.yaml")()

	errMsg, ok := msg.(ErrorMsg)
	require.True(t, ok)
	assert.Error(t, errMsg.Err)
}

func TestModel_Quit(t *testing.T) {
	m := NewModelWithConfig(testConfig())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
