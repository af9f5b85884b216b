package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/innobee/feedback/internal/feedback"
	"github.com/innobee/feedback/internal/logging"
)

// handleRatingKeys handles input on the rating step
func (m Model) handleRatingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Rate):
		return m.selectRating(int(msg.Runes[0] - '0')), nil

	case key.Matches(msg, m.keys.Left):
		return m.selectRating(max(feedback.MinRating, m.ratingCursor-1)), nil

	case key.Matches(msg, m.keys.Right):
		return m.selectRating(min(feedback.MaxRating, m.ratingCursor+1)), nil

	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Next):
		// Next stays disabled until a rating is chosen.
		if !m.wizard.CanAdvance() {
			return m, nil
		}
		if err := m.wizard.Advance(context.Background()); err != nil {
			m.stepErr = err.Error()
			return m, nil
		}
		m.stepErr = ""
		return m, m.opinion.Focus()

	case key.Matches(msg, m.keys.Leave):
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) selectRating(n int) Model {
	if !feedback.IsValidRating(n) {
		return m
	}
	if err := m.wizard.Mutate(feedback.Patch{Rating: feedback.Int(n)}); err != nil {
		logging.Warn("UI: rating not recorded: %v", err)
		return m
	}
	m.ratingCursor = n
	m.stepErr = ""
	return m
}

// renderRating renders the rating step
func (m Model) renderRating() string {
	selected := m.wizard.Record().RatingValue()

	boxes := make([]string, 0, feedback.MaxRating*2)
	for n := feedback.MinRating; n <= feedback.MaxRating; n++ {
		style := RatingStyle
		switch {
		case n == selected:
			style = RatingSelectedStyle
		case n == m.ratingCursor:
			style = RatingCursorStyle
		}
		if n > feedback.MinRating {
			boxes = append(boxes, " ")
		}
		boxes = append(boxes, style.Render(fmt.Sprint(n)))
	}
	scale := lipgloss.JoinHorizontal(lipgloss.Center, boxes...)

	caption := ScaleLabelStyle.Render(ratingLabel(feedback.MinRating) + " to " + ratingLabel(feedback.MaxRating))
	if selected > 0 {
		stars := strings.Repeat("★", selected) + strings.Repeat("☆", feedback.MaxRating-selected)
		caption = SuccessStyle.Render(stars) + "  " + ratingLabel(selected)
	}

	lines := []string{
		QuestionStyle.Render("How would you rate your experience with InnoBee?"),
		scale,
		caption,
		"",
	}
	if m.stepErr != "" {
		lines = append(lines, FieldErrorStyle.Render(m.stepErr), "")
	}
	lines = append(lines, Button("Next →", m.wizard.CanAdvance()))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
