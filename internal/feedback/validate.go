package feedback

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

const (
	// MinRating and MaxRating bound the rating scale.
	MinRating = 1
	MaxRating = 5
	// MaxOpinionLength is the opinion limit in characters.
	MaxOpinionLength = 500
)

// Field names used in validation errors. They match the JSON payload keys.
const (
	FieldRating   = "rating"
	FieldOpinion  = "improvementText"
	FieldInterest = "interestedInResearch"
	FieldEmail    = "email"
)

// User-facing validation messages.
const (
	MsgRatingRequired = "Please select a rating from 1 to 5."
	MsgOpinionTooLong = "Opinion must be at most 500 characters."
	MsgEmailInvalid   = "Please provide a valid email address."

	// Inline messages shown next to the email field on the interest step.
	MsgEmailMissing   = "Please provide your email if you are interested."
	MsgEmailMalformed = "Please enter a valid email address."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError is a local, user-correctable problem with one field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidRating reports whether n is on the 1..5 scale.
func IsValidRating(n int) bool {
	return n >= MinRating && n <= MaxRating
}

// IsValidEmail reports whether email has the local@domain.tld shape.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// OpinionLength counts characters the way the limit is enforced.
func OpinionLength(text string) int {
	return utf8.RuneCountInString(text)
}

// TruncateOpinion cuts text down to MaxOpinionLength characters.
func TruncateOpinion(text string) string {
	if OpinionLength(text) <= MaxOpinionLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:MaxOpinionLength])
}

// ValidateRating checks a possibly unset rating.
func ValidateRating(rating *int) error {
	if rating == nil || !IsValidRating(*rating) {
		return invalid(FieldRating, MsgRatingRequired)
	}
	return nil
}

// ValidateOpinion checks the opinion length.
func ValidateOpinion(text string) error {
	if OpinionLength(text) > MaxOpinionLength {
		return invalid(FieldOpinion, MsgOpinionTooLong)
	}
	return nil
}

// ValidateEmailInput checks the email field on the interest step and
// returns the inline message to show next to it.
func ValidateEmailInput(email string) error {
	if email == "" {
		return invalid(FieldEmail, MsgEmailMissing)
	}
	if !IsValidEmail(email) {
		return invalid(FieldEmail, MsgEmailMalformed)
	}
	return nil
}

// Validate runs every submission rule and returns the first failure.
func (r Record) Validate() error {
	if err := ValidateRating(r.Rating); err != nil {
		return err
	}
	if err := ValidateOpinion(r.ImprovementText); err != nil {
		return err
	}
	if r.Interested() && !IsValidEmail(r.Email) {
		return invalid(FieldEmail, MsgEmailInvalid)
	}
	return nil
}

// String is used in log lines. The email is never included.
func (r Record) String() string {
	interest := "unset"
	if r.InterestedInResearch != nil {
		interest = fmt.Sprintf("%t", *r.InterestedInResearch)
	}
	return fmt.Sprintf("rating=%d opinion=%d chars interested=%s email_set=%t",
		r.RatingValue(), OpinionLength(r.ImprovementText), interest, r.Email != "")
}
