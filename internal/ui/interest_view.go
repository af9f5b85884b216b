package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/innobee/feedback/internal/feedback"
	"github.com/innobee/feedback/internal/logging"
)

var interestChoices = [choiceCount]string{
	choiceNotInterested: "Not interested.",
	choiceInterested:    "Interested, sign me up!",
}

// handleInterestKeys handles input on the research interest step
func (m Model) handleInterestKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.emailFocused {
		return m.handleEmailKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.interestCursor > 0 {
			m.interestCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.interestCursor < choiceCount-1 {
			m.interestCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Confirm):
		return m.chooseInterest(m.interestCursor)

	case key.Matches(msg, m.keys.Next):
		if m.wizard.Record().Interested() {
			m.emailFocused = true
			return m, m.email.Focus()
		}
		return m.finish()

	case key.Matches(msg, m.keys.Finish):
		return m.finish()

	case key.Matches(msg, m.keys.Back):
		if err := m.wizard.Retreat(); err != nil {
			return m, nil
		}
		m.wizard.ClearError()
		return m, m.opinion.Focus()

	case key.Matches(msg, m.keys.Leave):
		return m, tea.Quit
	}
	return m, nil
}

// handleEmailKeys handles input while the email field has focus
func (m Model) handleEmailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "ctrl+s":
		return m.finish()
	case "esc", "up", "shift+tab":
		m.emailFocused = false
		m.email.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	value := m.email.Value()
	if value != m.wizard.Record().Email {
		if err := m.wizard.Mutate(feedback.Patch{Email: feedback.String(value)}); err != nil {
			logging.Warn("UI: email not recorded: %v", err)
		}
		m.emailErr = ""
	}
	return m, cmd
}

// chooseInterest records the answer under the cursor. Opting in moves
// focus to the email field, opting out discards any typed email.
func (m Model) chooseInterest(choice int) (tea.Model, tea.Cmd) {
	m.interestCursor = choice

	if choice == choiceInterested {
		err := m.wizard.Mutate(feedback.Patch{
			InterestedInResearch: feedback.Bool(true),
			Email:                feedback.String(m.email.Value()),
		})
		if err != nil {
			logging.Warn("UI: interest not recorded: %v", err)
			return m, nil
		}
		m.emailFocused = true
		return m, m.email.Focus()
	}

	err := m.wizard.Mutate(feedback.Patch{
		InterestedInResearch: feedback.Bool(false),
		Email:                feedback.String(""),
	})
	if err != nil {
		logging.Warn("UI: interest not recorded: %v", err)
		return m, nil
	}
	m.email.SetValue("")
	m.email.Blur()
	m.emailFocused = false
	m.emailErr = ""
	return m, nil
}

// finish validates the email inline and starts the submission.
func (m Model) finish() (tea.Model, tea.Cmd) {
	if rec := m.wizard.Record(); rec.Interested() {
		if err := feedback.ValidateEmailInput(rec.Email); err != nil {
			m.emailErr = err.Error()
			m.emailFocused = true
			return m, m.email.Focus()
		}
	}

	payload, err := m.wizard.BeginSubmit()
	if err != nil {
		logging.Warn("UI: cannot submit: %v", err)
		return m, nil
	}

	m.emailErr = ""
	m.emailFocused = false
	m.email.Blur()
	return m, tea.Batch(m.spinner.Tick, m.submitFeedback(payload))
}

// renderInterest renders the research interest step
func (m Model) renderInterest() string {
	rec := m.wizard.Record()

	var choices strings.Builder
	for i, label := range interestChoices {
		marker := "○"
		if rec.InterestedInResearch != nil && *rec.InterestedInResearch == (i == choiceInterested) {
			marker = "●"
		}
		line := marker + " " + label
		if i == m.interestCursor && !m.emailFocused {
			choices.WriteString(MenuItemSelectedStyle.Render("▸ " + line))
		} else {
			choices.WriteString(MenuItemStyle.Render("  " + line))
		}
		if i < len(interestChoices)-1 {
			choices.WriteString("\n")
		}
	}

	lines := []string{
		QuestionStyle.Width(ContentWidth).Render("We are always looking for feedback from InnoBee users like yourself to help shape our future."),
		SubtitleStyle.Width(ContentWidth).Render("If you're interested in participating further, let us know below and we'll add you to our research email list."),
		"",
		choices.String(),
	}

	if rec.Interested() {
		inputStyle := InputStyle
		switch {
		case m.emailErr != "":
			inputStyle = InputErrorStyle
		case m.emailFocused:
			inputStyle = InputFocusedStyle
		}
		lines = append(lines, "", InputLabelStyle.Render("Email address"), inputStyle.Render(m.email.View()))
		if m.emailErr != "" {
			lines = append(lines, FieldErrorStyle.Render(m.emailErr))
		}
	}

	lines = append(lines, "", lipgloss.JoinHorizontal(lipgloss.Top,
		ButtonSecondaryStyle.Render("← Back"),
		" ",
		Button("Submit Feedback", m.wizard.CanAdvance()),
	))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
