package ui

import "github.com/innobee/feedback/internal/feedback"

// Message types for Tea commands
type submitResultMsg struct {
	receipt *feedback.Receipt
	err     error
}
