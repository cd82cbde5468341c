package program

// Column labels expected in the header row of the published sheet.
const (
	ColumnName                = "Program Name"
	ColumnState               = "State"
	ColumnTuition             = "Tuition"
	ColumnProgramLength       = "Program Length"
	ColumnGRERequirement      = "GRE Requirement"
	ColumnGPARequirement      = "GPA Requirement"
	ColumnPACATRequirement    = "PA-CAT Requirement"
	ColumnPANCEPassRate       = "PANCE Pass Rate"
	ColumnAccreditation       = "Accreditation Status"
	ColumnShadowingHours      = "PA Shadowing Hours"
	ColumnClinicalHours       = "Clinical Hours Requirement"
	ColumnApplicationDeadline = "Application Deadline"
	ColumnStartDate           = "Start Date"
)

// Columns lists every label Normalize reads, in sheet order.
var Columns = []string{
	ColumnName,
	ColumnState,
	ColumnTuition,
	ColumnProgramLength,
	ColumnGRERequirement,
	ColumnGPARequirement,
	ColumnPACATRequirement,
	ColumnPANCEPassRate,
	ColumnAccreditation,
	ColumnShadowingHours,
	ColumnClinicalHours,
	ColumnApplicationDeadline,
	ColumnStartDate,
}

// RawRow maps column labels to the raw cell text of one sheet row. A missing
// key reads as the empty string.
type RawRow map[string]string

// Get returns the cell for label, or "" when absent.
func (r RawRow) Get(label string) string {
	if r == nil {
		return ""
	}
	return r[label]
}

// IsKnownColumn reports whether label is one of Columns.
func IsKnownColumn(label string) bool {
	for _, c := range Columns {
		if c == label {
			return true
		}
	}
	return false
}
