package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelpOverlay renders the help screen as a modal overlay
func (m Model) renderHelpOverlay(baseView string) string {
	helpContent := m.renderHelpContent()
	return m.renderWithModal(baseView, helpContent)
}

// renderHelpContent renders the help content
func (m Model) renderHelpContent() string {
	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	type helpEntry struct {
		key  string
		desc string
	}
	sections := []struct {
		title string
		items []helpEntry
	}{
		{
			title: "Rating",
			items: []helpEntry{
				{"1-5", "Choose a rating"},
				{"←/→", "Lower / higher rating"},
				{"enter", "Next step"},
			},
		},
		{
			title: "Opinion",
			items: []helpEntry{
				{"tab", "Next step"},
				{"S-tab", "Previous step"},
			},
		},
		{
			title: "Research",
			items: []helpEntry{
				{"↑/↓", "Move between answers"},
				{"space", "Choose answer"},
				{"ctrl+s", "Send feedback"},
				{"esc", "Leave the email field"},
			},
		},
		{
			title: "General",
			items: []helpEntry{
				{"?", "Toggle help"},
				{"q", "Quit"},
				{"ctrl+c", "Quit from anywhere"},
			},
		},
	}

	// Styles
	sectionStyle := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Width(8)

	descStyle := lipgloss.NewStyle().
		Foreground(ColorText)

	// Render sections
	for i, section := range sections {
		b.WriteString(sectionStyle.Render(section.title))
		b.WriteString("\n")

		for _, item := range section.items {
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(descStyle.Render(item.desc))
			b.WriteString("\n")
		}

		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	// Footer
	b.WriteString("\n")
	footerStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
	b.WriteString(footerStyle.Render("Press ? or esc to close"))

	return b.String()
}

// renderWithModal overlays a modal on top of a base view (default width 50)
func (m Model) renderWithModal(baseView, modalContent string) string {
	return m.renderWithModalWidth(baseView, modalContent, 50, ColorPrimary)
}

// renderWithModalWidth overlays a modal with custom width and border color
func (m Model) renderWithModalWidth(baseView, modalContent string, width int, borderColor lipgloss.TerminalColor) string {
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2).
		Width(width)

	modalLines := strings.Split(modalStyle.Render(modalContent), "\n")
	baseLines := strings.Split(baseView, "\n")

	// Centered, clamped to the top left on small terminals
	startX := max(0, (m.width-lipgloss.Width(modalLines[0]))/2)
	startY := max(0, (m.height-len(modalLines))/2)

	result := make([]string, len(baseLines))
	copy(result, baseLines)
	for len(result) < startY+len(modalLines) {
		result = append(result, strings.Repeat(" ", m.width))
	}

	leftPad := strings.Repeat(" ", startX)
	for i, modalLine := range modalLines {
		result[startY+i] = leftPad + modalLine
	}

	return strings.Join(result, "\n")
}
