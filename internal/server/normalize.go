package server

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/innobee/feedback/internal/feedback"
)

// Research opt-in values of the canonical schema.
const (
	OptInInterested    = "interested"
	OptInNotInterested = "not_interested"
)

// Submission is a request body normalised to the canonical schema.
type Submission struct {
	Rating        int     `json:"rating"`
	Opinion       *string `json:"opinion"`
	ResearchOptIn string  `json:"research_optin"`
	Email         *string `json:"email"`
}

// FieldError is a rejected request, reported as 400 {"error", "field"}.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func reject(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

// newValidator builds the validator used for field rules. simple_email is
// the same local@domain.tld shape the wizard checks.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return feedback.IsValidEmail(fl.Field().String())
	})
	return v
}

// Normalizer turns either accepted request shape into a Submission.
//
// The canonical shape is
//
//	{"rating": 1..5, "opinion": "...", "research_optin": "not_interested|interested", "email": "..."}
//
// and the wizard's shape is
//
//	{"rating": 1..5, "improvementText": "...", "interestedInResearch": true|false, "email": "..."}
//
// Rules are checked in order and the first failure is returned.
type Normalizer struct {
	validate *validator.Validate
}

// NewNormalizer creates a Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{validate: newValidator()}
}

// Normalize decodes a JSON body and applies the submission rules.
func (n *Normalizer) Normalize(body []byte) (*Submission, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, reject("body", "Request body must be a JSON object")
	}

	var sub Submission

	// rating
	ratingRaw, ok := raw["rating"]
	if !ok || isNull(ratingRaw) {
		return nil, reject("rating", "Field 'rating' is required")
	}
	var rating json.Number
	if ratingRaw[0] == '"' {
		return nil, reject("rating", "Field 'rating' must be an integer")
	}
	if err := json.Unmarshal(ratingRaw, &rating); err != nil {
		return nil, reject("rating", "Field 'rating' must be an integer")
	}
	r, err := rating.Int64()
	if err != nil {
		return nil, reject("rating", "Field 'rating' must be an integer")
	}
	if err := n.validate.Var(r, "min=1,max=5"); err != nil {
		return nil, reject("rating", "Field 'rating' must be between 1 and 5")
	}
	sub.Rating = int(r)

	// opinion, or improvementText from the wizard
	opinionRaw, ok := raw["opinion"]
	if !ok {
		opinionRaw, ok = raw["improvementText"]
	}
	if ok && !isNull(opinionRaw) {
		var opinion string
		if err := json.Unmarshal(opinionRaw, &opinion); err != nil {
			return nil, reject("opinion", "Opinion must be a string")
		}
		if err := n.validate.Var(opinion, "max=500"); err != nil {
			return nil, reject("opinion", "Opinion must be at most 500 characters")
		}
		sub.Opinion = &opinion
	}

	// research opt-in: canonical enum or the wizard's boolean
	optInRaw, hasOptIn := raw["research_optin"]
	hasOptIn = hasOptIn && !isNull(optInRaw)
	interestedRaw, hasInterested := raw["interestedInResearch"]
	hasInterested = hasInterested && !isNull(interestedRaw)

	switch {
	case hasOptIn:
		var optIn string
		if err := json.Unmarshal(optInRaw, &optIn); err != nil {
			return nil, reject("research_optin", "Must be 'not_interested' or 'interested'")
		}
		if err := n.validate.Var(optIn, "oneof=not_interested interested"); err != nil {
			return nil, reject("research_optin", "Must be 'not_interested' or 'interested'")
		}
		sub.ResearchOptIn = optIn
	case hasInterested:
		var interested bool
		if err := json.Unmarshal(interestedRaw, &interested); err != nil {
			return nil, reject("research_optin", "Field 'interestedInResearch' must be a boolean")
		}
		sub.ResearchOptIn = OptInNotInterested
		if interested {
			sub.ResearchOptIn = OptInInterested
		}
	default:
		return nil, reject("research_optin", "Provide 'research_optin' or 'interestedInResearch'")
	}

	// email is only kept for interested users
	if sub.ResearchOptIn == OptInInterested {
		emailRaw, ok := raw["email"]
		if !ok || isNull(emailRaw) || string(emailRaw) == `""` {
			return nil, reject("email", "Email is required when 'interested'")
		}
		var email string
		if err := json.Unmarshal(emailRaw, &email); err != nil {
			return nil, reject("email", "Email must be a valid address")
		}
		if err := n.validate.Var(email, "simple_email"); err != nil {
			return nil, reject("email", "Email must be a valid address")
		}
		sub.Email = &email
	}

	return &sub, nil
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
