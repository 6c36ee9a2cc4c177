package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/colcalc/internal/tui/components"
	"github.com/rgehrsitz/colcalc/internal/tui/tuistyles"
)

// View renders the current state
func (m Model) View() string {
	if m.err != nil {
		return tuistyles.AppStyle.Render(
			tuistyles.ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n" +
				tuistyles.SubtitleStyle.Render("Press q to quit"))
	}
	if m.loading || m.config == nil {
		return tuistyles.AppStyle.Render("Loading configuration...")
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader() + "\n\n")

	right := ""
	if m.result != nil {
		right = components.NewBudgetCard(*m.result).
			WithPrevious(m.previous).
			WithWidth(m.cardWidth()).
			Render()
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.changes.View(), "  ", right))
	sb.WriteString("\n\n" + m.renderApplied())
	sb.WriteString("\n" + m.help.View(m.keys))

	return tuistyles.AppStyle.Render(sb.String())
}

func (m Model) renderHeader() string {
	title := tuistyles.TitleStyle.Render("Cost of Living Explorer")
	household := string(m.active)
	if household == "" {
		household = string(m.household)
	}
	sub := tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s household | %s (%d/%d)",
		household, m.City(), m.cityIndex+1, len(m.cities)))
	return title + "\n" + sub
}

func (m Model) renderApplied() string {
	label := tuistyles.StatusKeyStyle.Render("Applied: ")
	if len(m.applied) == 0 {
		return label + tuistyles.SubtitleStyle.Render("baseline")
	}
	return label + strings.Join(m.applied, " → ")
}

func (m Model) cardWidth() int {
	w := m.width - m.width/2 - 8
	if w < 40 {
		w = 40
	}
	return w
}
