package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case ConfigLoadedMsg:
		m.setConfig(msg.Config)
		return m, nil
	}

	var cmd tea.Cmd
	m.changes, cmd = m.changes.Update(msg)
	return m, cmd
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While filtering, every key belongs to the list
	if m.changes.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.changes, cmd = m.changes.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case m.config == nil:
		return m, nil

	case key.Matches(msg, m.keys.Apply):
		if item, ok := m.changes.SelectedItem().(changeItem); ok {
			m.applied = append(m.applied, item.name)
			m.recalculate()
		}
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		if len(m.applied) > 0 {
			m.applied = m.applied[:len(m.applied)-1]
			m.recalculate()
		}
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.applied = nil
		m.recalculate()
		return m, nil

	case key.Matches(msg, m.keys.NextCity):
		m.switchCity(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevCity):
		m.switchCity(-1)
		return m, nil
	}

	var cmd tea.Cmd
	m.changes, cmd = m.changes.Update(msg)
	return m, cmd
}

func (m *Model) switchCity(step int) {
	if len(m.cities) < 2 {
		return
	}
	m.cityIndex = (m.cityIndex + step + len(m.cities)) % len(m.cities)
	m.recalculate()
}
