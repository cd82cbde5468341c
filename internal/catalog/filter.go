package catalog

import "pafinder/internal/program"

// Exclusion names one of the two test-requirement checkboxes.
type Exclusion int

const (
	// ExcludeGRERequired hides programs whose GRE requirement is mandatory.
	ExcludeGRERequired Exclusion = iota
	// ExcludePACATRequired hides programs whose PA-CAT requirement is mandatory.
	ExcludePACATRequired
)

// Exclusions lists both checkboxes in filter-panel order.
var Exclusions = []Exclusion{ExcludeGRERequired, ExcludePACATRequired}

// Label is the checkbox caption.
func (e Exclusion) Label() string {
	switch e {
	case ExcludeGRERequired:
		return "No GRE Required"
	case ExcludePACATRequired:
		return "No PA-CAT Required"
	}
	return ""
}

// FilterState is a complete filter specification. The zero value has every
// constraint inactive. It is a value type; the With methods return modified
// copies.
type FilterState struct {
	State                string
	DegreeOffered        string
	HealthcareExperience string
	MinGPA               string
	StartMonth           string

	ExcludeGRERequired   bool
	ExcludePACATRequired bool
}

// Get returns the constraint value for field ("" when inactive).
func (s FilterState) Get(field Field) string {
	switch field {
	case FieldState:
		return s.State
	case FieldDegreeOffered:
		return s.DegreeOffered
	case FieldHealthcareExperience:
		return s.HealthcareExperience
	case FieldMinGPA:
		return s.MinGPA
	case FieldStartMonth:
		return s.StartMonth
	}
	return ""
}

// With returns a copy of s with field set to value. An empty value clears
// the constraint.
func (s FilterState) With(field Field, value string) FilterState {
	switch field {
	case FieldState:
		s.State = value
	case FieldDegreeOffered:
		s.DegreeOffered = value
	case FieldHealthcareExperience:
		s.HealthcareExperience = value
	case FieldMinGPA:
		s.MinGPA = value
	case FieldStartMonth:
		s.StartMonth = value
	}
	return s
}

// Excludes reports whether the given checkbox is on.
func (s FilterState) Excludes(e Exclusion) bool {
	switch e {
	case ExcludeGRERequired:
		return s.ExcludeGRERequired
	case ExcludePACATRequired:
		return s.ExcludePACATRequired
	}
	return false
}

// WithExclusion returns a copy of s with the checkbox set to on.
func (s FilterState) WithExclusion(e Exclusion, on bool) FilterState {
	switch e {
	case ExcludeGRERequired:
		s.ExcludeGRERequired = on
	case ExcludePACATRequired:
		s.ExcludePACATRequired = on
	}
	return s
}

// IsActive reports whether any constraint is set.
func (s FilterState) IsActive() bool {
	return s != FilterState{}
}

// Matches reports whether p satisfies every active constraint.
func (s FilterState) Matches(p program.Program) bool {
	for _, f := range Fields {
		if want := s.Get(f); want != "" && f.Value(p) != want {
			return false
		}
	}
	if s.ExcludeGRERequired && p.GRERequired {
		return false
	}
	if s.ExcludePACATRequired && p.PACATRequired {
		return false
	}
	return true
}

// Apply returns the records that satisfy s, in their original order. The
// result is always a new slice.
func Apply(records []program.Program, s FilterState) []program.Program {
	out := make([]program.Program, 0, len(records))
	for _, p := range records {
		if s.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
