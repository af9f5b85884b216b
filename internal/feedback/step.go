package feedback

import "math"

// Step represents the current step of the feedback wizard
type Step int

const (
	StepRating Step = iota
	StepOpinion
	StepInterest
	StepThanks
)

// InteractiveSteps is the number of steps that collect input.
const InteractiveSteps = 3

func (s Step) String() string {
	switch s {
	case StepRating:
		return "rating"
	case StepOpinion:
		return "opinion"
	case StepInterest:
		return "interest"
	case StepThanks:
		return "thanks"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the four known steps.
func (s Step) Valid() bool {
	return s >= StepRating && s <= StepThanks
}

// Number is the 1-based position shown to the user ("step 2 of 3").
func (s Step) Number() int {
	return int(s) + 1
}

// Interactive reports whether the step collects input.
func (s Step) Interactive() bool {
	return s >= StepRating && s <= StepInterest
}

// Next returns the following step. Thanks has no successor, and Interest
// only leads to Thanks through a successful submission, so both return
// themselves with ok=false.
func (s Step) Next() (Step, bool) {
	if s < StepInterest {
		return s + 1, true
	}
	return s, false
}

// Prev returns the preceding step. Rating and Thanks cannot be left backwards.
func (s Step) Prev() (Step, bool) {
	if s > StepRating && s < StepThanks {
		return s - 1, true
	}
	return s, false
}

// Progress returns the completion percentage for a step: the number of
// finished interactive steps over InteractiveSteps, rounded.
// Rating=0, Opinion=33, Interest=67, Thanks=100.
func (s Step) Progress() int {
	return int(math.Round(s.Fraction() * 100))
}

// Fraction is Progress as a value in [0,1], for progress bars.
func (s Step) Fraction() float64 {
	switch {
	case s <= StepRating:
		return 0
	case s >= StepThanks:
		return 1
	default:
		return float64(s) / InteractiveSteps
	}
}
