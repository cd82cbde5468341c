// Package program defines the canonical PA program record and the rules that
// turn a loosely-typed spreadsheet row into one.
package program

// Program is one directory entry. Values are built once by Normalize and are
// not mutated afterwards.
type Program struct {
	ID string

	// Identity / location
	Name          string
	State         string
	City          string
	DegreeOffered string

	// Clinical experience
	HealthcareExperience string // "Clinical Hours Requirement"
	ExperienceType       string
	ExperienceNote       string
	ShadowingHours       string

	// Academics
	MinGPA          string // "GPA Requirement"
	PrerequisiteGPA string

	// Dates & duration
	StartDate           string // raw, e.g. "5/15/2026"
	StartMonth          string // derived from StartDate
	ApplicationDeadline string
	ProgramLength       string

	// Cost
	Tuition string

	// Testing & accreditation
	GRERequirement         string
	PACATRequirement       string
	TestRequirementDetails string
	PANCEPassRate          string
	AccreditationStatus    string

	// Derived requirement flags
	GRERequired   bool
	PACATRequired bool

	// Program features. The sheet carries no columns for these yet, so they
	// come from Defaults.
	PartTimeOption       bool
	UndergradToMasters   bool
	MastersToDoctorate   bool
	AcceptsInternational bool
	VeteranSupport       bool
	OnCampusHousing      bool
	DistanceLearning     bool
}

// Location renders "City, State" the way the detail header shows it, dropping
// the separator when either half is empty.
func (p Program) Location() string {
	switch {
	case p.City == "":
		return p.State
	case p.State == "":
		return p.City
	default:
		return p.City + ", " + p.State
	}
}
