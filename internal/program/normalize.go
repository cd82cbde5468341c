package program

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// UnknownMonth is the StartMonth of a program whose start date is missing or
// cannot be read as a date.
const UnknownMonth = "Unknown"

// Defaults holds the values assumed for fields the sheet has no column for.
// Everything listed here is fabricated rather than sourced.
var Defaults = struct {
	City            string
	DegreeOffered   string
	ExperienceType  string
	ExperienceNote  string
	PrerequisiteGPA string

	PartTimeOption       bool
	UndergradToMasters   bool
	MastersToDoctorate   bool
	AcceptsInternational bool
	VeteranSupport       bool
	OnCampusHousing      bool
	DistanceLearning     bool
}{
	City:           "",
	DegreeOffered:  "Masters",
	ExperienceType: "Direct Patient Care",
}

// Normalize converts one raw sheet row into a Program. index is the zero-based
// position of the row in load order; the program ID is index+1.
func Normalize(row RawRow, index int) Program {
	cell := func(label string) string {
		v := row.Get(label)
		if strings.TrimSpace(v) == "" {
			return ""
		}
		return v
	}

	startDate := cell(ColumnStartDate)
	gre := cell(ColumnGRERequirement)
	paCat := cell(ColumnPACATRequirement)

	return Program{
		ID:            strconv.Itoa(index + 1),
		Name:          cell(ColumnName),
		State:         cell(ColumnState),
		City:          Defaults.City,
		DegreeOffered: Defaults.DegreeOffered,

		HealthcareExperience: cell(ColumnClinicalHours),
		ExperienceType:       Defaults.ExperienceType,
		ExperienceNote:       Defaults.ExperienceNote,
		ShadowingHours:       cell(ColumnShadowingHours),

		MinGPA:          cell(ColumnGPARequirement),
		PrerequisiteGPA: Defaults.PrerequisiteGPA,

		StartDate:           startDate,
		StartMonth:          StartMonth(startDate),
		ApplicationDeadline: cell(ColumnApplicationDeadline),
		ProgramLength:       cell(ColumnProgramLength),

		Tuition: cell(ColumnTuition),

		GRERequirement:         gre,
		PACATRequirement:       paCat,
		TestRequirementDetails: gre,
		PANCEPassRate:          cell(ColumnPANCEPassRate),
		AccreditationStatus:    cell(ColumnAccreditation),

		GRERequired:   IsRequired(gre),
		PACATRequired: IsRequired(paCat),

		PartTimeOption:       Defaults.PartTimeOption,
		UndergradToMasters:   Defaults.UndergradToMasters,
		MastersToDoctorate:   Defaults.MastersToDoctorate,
		AcceptsInternational: Defaults.AcceptsInternational,
		VeteranSupport:       Defaults.VeteranSupport,
		OnCampusHousing:      Defaults.OnCampusHousing,
		DistanceLearning:     Defaults.DistanceLearning,
	}
}

// NormalizeAll normalizes rows in order.
func NormalizeAll(rows []RawRow) []Program {
	out := make([]Program, 0, len(rows))
	for i, row := range rows {
		out = append(out, Normalize(row, i))
	}
	return out
}

// IsRequired reports whether requirement text marks a test as mandatory: it
// must mention "required" and must not say "not required". Qualified text such
// as "required for some applicants" counts as required.
func IsRequired(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return false
	}
	return strings.Contains(lower, "required") && !strings.Contains(lower, "not required")
}

// StartMonth returns the full English month name of a start date, or
// UnknownMonth when the date is empty or unparseable.
func StartMonth(startDate string) (month string) {
	s := strings.TrimSpace(startDate)
	if s == "" {
		return UnknownMonth
	}

	// dateparse can panic on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			month = UnknownMonth
		}
	}()

	t, err := dateparse.ParseIn(s, time.UTC)
	if err == nil {
		return t.Month().String()
	}
	if m, ok := partialMonth(s); ok {
		return m.String()
	}
	return UnknownMonth
}

// partialMonth reads the month-only forms dateparse rejects: "8/2026",
// "May 2026", "Sept. 2026" and a bare "August".
func partialMonth(s string) (time.Month, bool) {
	if t, err := time.Parse("1/2006", s); err == nil {
		return t.Month(), true
	}

	fields := strings.Fields(strings.ReplaceAll(strings.ToLower(s), ",", " "))
	if len(fields) == 0 || len(fields) > 2 {
		return 0, false
	}
	if len(fields) == 2 {
		if _, err := strconv.Atoi(fields[1]); err != nil || len(fields[1]) != 4 {
			return 0, false
		}
	}

	word := strings.TrimSuffix(fields[0], ".")
	if len(word) < 3 {
		return 0, false
	}
	for m := time.January; m <= time.December; m++ {
		if strings.HasPrefix(strings.ToLower(m.String()), word) {
			return m, true
		}
	}
	return 0, false
}
