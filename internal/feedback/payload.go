package feedback

import (
	"context"
	"net/http"
)

// Payload is the immutable snapshot sent to the backend.
type Payload struct {
	Rating               int    `json:"rating"`
	ImprovementText      string `json:"improvementText"`
	InterestedInResearch bool   `json:"interestedInResearch"`
	Email                string `json:"email,omitempty"`
}

// Snapshot builds the payload for r. The email is carried only when the
// user opted into research.
func (r Record) Snapshot() Payload {
	p := Payload{
		Rating:               r.RatingValue(),
		ImprovementText:      r.ImprovementText,
		InterestedInResearch: r.Interested(),
	}
	if p.InterestedInResearch {
		p.Email = r.Email
	}
	return p
}

// Receipt is the backend's acknowledgement of a submission.
type Receipt struct {
	Status  int
	ID      string
	Message string
}

// Accepted reports whether the backend confirmed the submission.
func (r *Receipt) Accepted() bool {
	return r != nil && (r.Status == http.StatusOK || r.Status == http.StatusCreated)
}

// Submitter delivers a payload to the feedback backend.
type Submitter interface {
	Submit(ctx context.Context, p Payload) (*Receipt, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, p Payload) (*Receipt, error)

// Submit calls f.
func (f SubmitterFunc) Submit(ctx context.Context, p Payload) (*Receipt, error) {
	return f(ctx, p)
}

// SubmitError is a failed submission: a non-success status from the
// backend, or a transport failure when Status is 0.
type SubmitError struct {
	Status  int
	Message string
	Field   string // set when the backend blamed a specific field
	Err     error
}

func (e *SubmitError) Error() string {
	return e.Message
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// Transport reports whether the request never got an HTTP response.
func (e *SubmitError) Transport() bool {
	return e.Status == 0
}
