package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/innobee/feedback/internal/logging"
)

// handleThanksKeys handles input on the confirmation step
func (m Model) handleThanksKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Restart), key.Matches(msg, m.keys.Confirm):
		if err := m.wizard.Reset(); err != nil {
			logging.Warn("UI: reset refused: %v", err)
			return m, nil
		}
		return m.resetInputs(), nil

	case key.Matches(msg, m.keys.Leave):
		return m, tea.Quit
	}
	return m, nil
}

// renderThanks renders the confirmation step
func (m Model) renderThanks() string {
	lines := []string{
		SuccessStyle.Render("✓ Thanks for your feedback!"),
		SubtitleStyle.Render("Your response has been recorded."),
	}
	if r := m.wizard.Receipt(); r != nil && r.ID != "" {
		lines = append(lines, "", HeaderInfoStyle.Render("Reference: "+r.ID))
	}
	lines = append(lines, "", HelpBar(HelpItem("n", "send another response"), HelpItem("q", "quit")))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
