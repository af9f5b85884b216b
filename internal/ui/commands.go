package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/innobee/feedback/internal/feedback"
	"github.com/innobee/feedback/internal/logging"
)

// submitFeedback sends the payload asynchronously
func (m Model) submitFeedback(payload feedback.Payload) tea.Cmd {
	submitter := m.submitter
	return func() tea.Msg {
		if submitter == nil {
			return submitResultMsg{err: feedback.ErrNoSubmitter}
		}
		logging.Debug("UI: sending feedback (rating %d)", payload.Rating)
		receipt, err := submitter.Submit(context.Background(), payload)
		return submitResultMsg{receipt: receipt, err: err}
	}
}
