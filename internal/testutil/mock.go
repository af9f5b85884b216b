package testutil

import (
	"context"
	"net/http"
	"sync"

	"github.com/innobee/feedback/internal/feedback"
)

// MockSubmitter implements feedback.Submitter for testing.
type MockSubmitter struct {
	mu sync.Mutex

	// Receipt to return on success
	Receipt *feedback.Receipt
	// Err to return instead of a receipt
	Err error

	// Payloads records every submitted payload in order
	Payloads []feedback.Payload
}

// NewMockSubmitter creates a MockSubmitter that accepts everything with 201.
func NewMockSubmitter() *MockSubmitter {
	return &MockSubmitter{
		Receipt: &feedback.Receipt{
			Status:  http.StatusCreated,
			ID:      "mock-feedback-1",
			Message: "Feedback accepted",
		},
	}
}

// FailWith makes subsequent submissions fail with the given status and
// message, the way the HTTP client reports a non-2xx response.
func (m *MockSubmitter) FailWith(status int, message string) *MockSubmitter {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = &feedback.SubmitError{Status: status, Message: message}
	return m
}

// Succeed clears a previous failure.
func (m *MockSubmitter) Succeed() *MockSubmitter {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = nil
	return m
}

// Submit records p and returns the mocked result.
func (m *MockSubmitter) Submit(ctx context.Context, p feedback.Payload) (*feedback.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Payloads = append(m.Payloads, p)
	if m.Err != nil {
		return nil, m.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.Receipt, nil
}

// Calls returns how many times Submit was called.
func (m *MockSubmitter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Payloads)
}

// LastPayload returns the most recent payload.
func (m *MockSubmitter) LastPayload() (feedback.Payload, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Payloads) == 0 {
		return feedback.Payload{}, false
	}
	return m.Payloads[len(m.Payloads)-1], true
}
