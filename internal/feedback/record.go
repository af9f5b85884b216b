// Package feedback holds the feedback record collected by the wizard, the
// rules it must satisfy before submission, and the controller that walks a
// user through the wizard steps.
package feedback

// Record is the aggregate feedback collected across the wizard steps.
type Record struct {
	Rating               *int   // 1..5, nil until chosen
	ImprovementText      string // optional opinion, at most MaxOpinionLength characters
	InterestedInResearch *bool  // nil until the interest step is answered
	Email                string // only meaningful when InterestedInResearch is true
}

// Patch is a partial Record. Nil fields are left untouched by Merge.
type Patch struct {
	Rating               *int
	ImprovementText      *string
	InterestedInResearch *bool
	Email                *string
}

// Int returns a pointer to v, for building patches.
func Int(v int) *int { return &v }

// String returns a pointer to v, for building patches.
func String(v string) *string { return &v }

// Bool returns a pointer to v, for building patches.
func Bool(v bool) *bool { return &v }

// Merge returns a copy of r with every non-nil field of p applied.
func (r Record) Merge(p Patch) Record {
	if p.Rating != nil {
		r.Rating = Int(*p.Rating)
	}
	if p.ImprovementText != nil {
		r.ImprovementText = *p.ImprovementText
	}
	if p.InterestedInResearch != nil {
		r.InterestedInResearch = Bool(*p.InterestedInResearch)
	}
	if p.Email != nil {
		r.Email = *p.Email
	}
	return r
}

// Clone returns a deep copy, so callers cannot reach the wizard's pointers.
func (r Record) Clone() Record {
	out := r
	if r.Rating != nil {
		out.Rating = Int(*r.Rating)
	}
	if r.InterestedInResearch != nil {
		out.InterestedInResearch = Bool(*r.InterestedInResearch)
	}
	return out
}

// IsZero reports whether r holds only default values.
func (r Record) IsZero() bool {
	return r.Rating == nil && r.ImprovementText == "" && r.InterestedInResearch == nil && r.Email == ""
}

// RatingValue returns the rating, or 0 when unset.
func (r Record) RatingValue() int {
	if r.Rating == nil {
		return 0
	}
	return *r.Rating
}

// Interested reports whether the user opted into research. Unset counts as no.
func (r Record) Interested() bool {
	return r.InterestedInResearch != nil && *r.InterestedInResearch
}
