package feedback

import (
	"context"
	"errors"

	"github.com/innobee/feedback/internal/logging"
)

// Messages for submission failures that carry no better explanation.
const (
	MsgUnexpectedResponse = "Unexpected server response."
	MsgSubmissionFailed   = "Submission failed."
)

var (
	// ErrBusy is returned while a submission is in flight.
	ErrBusy = errors.New("a submission is already in progress")
	// ErrNotAtInterest is returned when submitting from any step but the last interactive one.
	ErrNotAtInterest = errors.New("feedback can only be submitted from the interest step")
	// ErrNotSubmitting is returned by FinishSubmit without a matching BeginSubmit.
	ErrNotSubmitting = errors.New("no submission in progress")
	// ErrNoSubmitter is returned by Submit when the wizard has nowhere to send the payload.
	ErrNoSubmitter = errors.New("no submitter configured")
)

// Wizard owns the feedback record and the step pointer. Step views read
// from it and call its methods to change anything.
type Wizard struct {
	submitter Submitter

	record  Record
	step    Step
	busy    bool
	err     string
	receipt *Receipt
}

// NewWizard creates a wizard at the rating step with an empty record.
// submitter may be nil when the caller drives BeginSubmit/FinishSubmit itself.
func NewWizard(submitter Submitter) *Wizard {
	return &Wizard{submitter: submitter}
}

// Record returns a copy of the current record.
func (w *Wizard) Record() Record { return w.record.Clone() }

// Step returns the current step.
func (w *Wizard) Step() Step { return w.step }

// Progress returns the completion percentage of the current step.
func (w *Wizard) Progress() int { return w.step.Progress() }

// Busy reports whether a submission is in flight.
func (w *Wizard) Busy() bool { return w.busy }

// Err returns the page-level error message, empty when there is none.
func (w *Wizard) Err() string { return w.err }

// ClearError drops the page-level error message.
func (w *Wizard) ClearError() { w.err = "" }

// Receipt returns the acknowledgement of the last successful submission.
func (w *Wizard) Receipt() *Receipt { return w.receipt }

// CanAdvance reports whether Advance would leave the current step
// without a validation error.
func (w *Wizard) CanAdvance() bool {
	if w.busy {
		return false
	}
	switch w.step {
	case StepRating:
		return ValidateRating(w.record.Rating) == nil
	case StepOpinion:
		return ValidateOpinion(w.record.ImprovementText) == nil
	case StepInterest:
		return w.record.Validate() == nil
	default:
		return false
	}
}

// Mutate merges p into the record. Opting out of research always clears
// the email.
func (w *Wizard) Mutate(p Patch) error {
	if w.busy {
		return ErrBusy
	}
	w.record = w.record.Merge(p)
	if w.record.InterestedInResearch != nil && !*w.record.InterestedInResearch {
		w.record.Email = ""
	}
	return nil
}

// Advance moves to the next step. Leaving the rating step requires a valid
// rating and leaving the opinion step requires an opinion within bounds.
// At the interest step Advance submits instead.
func (w *Wizard) Advance(ctx context.Context) error {
	if w.busy {
		return ErrBusy
	}
	switch w.step {
	case StepRating:
		if err := ValidateRating(w.record.Rating); err != nil {
			return err
		}
	case StepOpinion:
		if err := ValidateOpinion(w.record.ImprovementText); err != nil {
			return err
		}
	case StepInterest:
		return w.Submit(ctx)
	}

	next, ok := w.step.Next()
	if !ok {
		return nil
	}
	logging.Debug("Wizard: %s -> %s (progress %d%%)", w.step, next, next.Progress())
	w.step = next
	return nil
}

// Retreat moves to the previous step. It does nothing on the rating step
// and on the thanks step.
func (w *Wizard) Retreat() error {
	if w.busy {
		return ErrBusy
	}
	prev, ok := w.step.Prev()
	if !ok {
		return nil
	}
	logging.Debug("Wizard: %s <- %s (progress %d%%)", prev, w.step, prev.Progress())
	w.step = prev
	return nil
}

// BeginSubmit validates the record and marks the wizard busy. The returned
// payload must be handed to FinishSubmit together with the outcome of
// sending it. A failed rule is stored as the page error.
func (w *Wizard) BeginSubmit() (Payload, error) {
	if w.busy {
		return Payload{}, ErrBusy
	}
	if w.step != StepInterest {
		return Payload{}, ErrNotAtInterest
	}
	w.err = ""

	if err := w.record.Validate(); err != nil {
		w.err = err.Error()
		logging.Warn("Wizard: submission blocked: %v", err)
		return Payload{}, err
	}

	w.busy = true
	logging.Info("Wizard: submitting feedback: %s", w.record)
	return w.record.Snapshot(), nil
}

// FinishSubmit applies the outcome of a submission started with
// BeginSubmit. Success moves to the thanks step. Anything else keeps the
// wizard on the interest step with the record intact and a page error set.
func (w *Wizard) FinishSubmit(receipt *Receipt, sendErr error) error {
	if !w.busy {
		return ErrNotSubmitting
	}
	w.busy = false

	if sendErr != nil {
		w.err = submissionMessage(sendErr)
		logging.Error("Wizard: submission failed: %v", sendErr)
		return sendErr
	}
	if !receipt.Accepted() {
		status := 0
		if receipt != nil {
			status = receipt.Status
		}
		w.err = MsgUnexpectedResponse
		logging.Error("Wizard: unexpected response status %d", status)
		return &SubmitError{Status: status, Message: MsgUnexpectedResponse}
	}

	w.receipt = receipt
	w.step = StepThanks
	logging.Info("Wizard: feedback accepted (status %d, id %q)", receipt.Status, receipt.ID)
	return nil
}

// Submit validates and sends the record with the wizard's submitter.
func (w *Wizard) Submit(ctx context.Context) error {
	if w.submitter == nil {
		return ErrNoSubmitter
	}
	payload, err := w.BeginSubmit()
	if err != nil {
		return err
	}
	receipt, sendErr := w.submitter.Submit(ctx, payload)
	return w.FinishSubmit(receipt, sendErr)
}

// Reset restores the empty record and returns to the rating step.
func (w *Wizard) Reset() error {
	if w.busy {
		return ErrBusy
	}
	w.record = Record{}
	w.step = StepRating
	w.err = ""
	w.receipt = nil
	logging.Debug("Wizard: reset")
	return nil
}

func submissionMessage(err error) string {
	var se *SubmitError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgSubmissionFailed
}
