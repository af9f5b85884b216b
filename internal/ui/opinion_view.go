package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/innobee/feedback/internal/feedback"
	"github.com/innobee/feedback/internal/logging"
)

// handleOpinionKeys handles input on the opinion step. The text area is
// the only buffer until Next flushes it into the record.
func (m Model) handleOpinionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next):
		text := m.opinion.Value()
		if err := feedback.ValidateOpinion(text); err != nil {
			m.stepErr = err.Error()
			return m, nil
		}
		if err := m.wizard.Mutate(feedback.Patch{ImprovementText: feedback.String(text)}); err != nil {
			logging.Warn("UI: opinion not recorded: %v", err)
			return m, nil
		}
		if err := m.wizard.Advance(context.Background()); err != nil {
			m.stepErr = err.Error()
			return m, nil
		}
		m.stepErr = ""
		m.opinion.Blur()
		m.interestCursor = choiceNotInterested
		if m.wizard.Record().Interested() {
			m.interestCursor = choiceInterested
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if err := m.wizard.Retreat(); err != nil {
			return m, nil
		}
		// Unsaved typing is dropped.
		m.opinion.SetValue(m.wizard.Record().ImprovementText)
		m.stepErr = ""
		m.opinion.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.opinion, cmd = m.opinion.Update(msg)
	if m.stepErr != "" && m.opinionValid() {
		m.stepErr = ""
	}
	return m, cmd
}

// opinionValid reports whether the text area could be flushed as is.
func (m Model) opinionValid() bool {
	return feedback.ValidateOpinion(m.opinion.Value()) == nil
}

// renderOpinion renders the opinion step
func (m Model) renderOpinion() string {
	length := feedback.OpinionLength(m.opinion.Value())
	counterStyle := CounterStyle
	if length >= feedback.MaxOpinionLength {
		counterStyle = CounterFullStyle
	}
	counter := counterStyle.Render(fmt.Sprintf("%d/%d", length, feedback.MaxOpinionLength))

	lines := []string{
		QuestionStyle.Render("What could we do better?") + " " + OptionalStyle.Render("(optional)"),
		InputFocusedStyle.Render(m.opinion.View()),
		counter,
		"",
	}
	if m.stepErr != "" {
		lines = append(lines, FieldErrorStyle.Render(m.stepErr), "")
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
		ButtonSecondaryStyle.Render("← Back"),
		" ",
		Button("Next →", m.opinionValid()),
	))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
