package selection

import "pafinder/internal/program"

// Attribute is one textual row of the comparison grid.
type Attribute struct {
	Label string
	Value func(program.Program) string
}

// Feature is one yes/no row of the comparison grid.
type Feature struct {
	Label string
	Value func(program.Program) bool
}

// Attributes are the textual comparison rows, in display order.
var Attributes = []Attribute{
	{"State", func(p program.Program) string { return p.State }},
	{"City", func(p program.Program) string { return p.City }},
	{"Tuition", func(p program.Program) string { return p.Tuition }},
	{"Program Length", func(p program.Program) string { return p.ProgramLength }},
	{"Start Date", func(p program.Program) string { return p.StartDate }},
	{"Deadline", func(p program.Program) string { return p.ApplicationDeadline }},
	{"Clinical Hours", func(p program.Program) string { return p.HealthcareExperience }},
	{"Shadowing Hours", func(p program.Program) string { return p.ShadowingHours }},
	{"Min GPA", func(p program.Program) string { return p.MinGPA }},
	{"Prereq GPA", func(p program.Program) string { return p.PrerequisiteGPA }},
	{"GRE", func(p program.Program) string { return p.GRERequirement }},
	{"PA-CAT", func(p program.Program) string { return p.PACATRequirement }},
	{"PANCE Rate", func(p program.Program) string { return p.PANCEPassRate }},
	{"Accreditation", func(p program.Program) string { return p.AccreditationStatus }},
}

// Features are the boolean comparison rows, in display order.
var Features = []Feature{
	{"Part-time Option", func(p program.Program) bool { return p.PartTimeOption }},
	{"Undergrad to Masters", func(p program.Program) bool { return p.UndergradToMasters }},
	{"Masters to Doctorate", func(p program.Program) bool { return p.MastersToDoctorate }},
	{"Accepts Int'l", func(p program.Program) bool { return p.AcceptsInternational }},
	{"Veteran Support", func(p program.Program) bool { return p.VeteranSupport }},
	{"On Campus Housing", func(p program.Program) bool { return p.OnCampusHousing }},
	{"Distance Learning", func(p program.Program) bool { return p.DistanceLearning }},
}

// YesNo renders a feature flag.
func YesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// Row is one labelled line of the grid with a cell per compared program.
type Row struct {
	Label string
	Cells []string
}

// Comparison is the side-by-side view of the selected programs.
type Comparison struct {
	Programs []program.Program
	Rows     []Row
}

// Headers returns the column titles: a leading "Feature" column followed by
// each program's name.
func (c Comparison) Headers() []string {
	headers := make([]string, 0, len(c.Programs)+1)
	headers = append(headers, "Feature")
	for _, p := range c.Programs {
		headers = append(headers, p.Name)
	}
	return headers
}

// Compare builds the comparison over records, which should be the full
// unfiltered set so a selected program stays comparable after the list is
// filtered. Programs appear in selection order; ids that no longer resolve
// are skipped.
func (c *Controller) Compare(records []program.Program) Comparison {
	return Build(records, c.selected)
}

// Build assembles a Comparison of the programs with the given ids.
func Build(records []program.Program, ids []string) Comparison {
	byID := make(map[string]program.Program, len(records))
	for _, p := range records {
		byID[p.ID] = p
	}

	var cmp Comparison
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			cmp.Programs = append(cmp.Programs, p)
		}
	}

	cmp.Rows = make([]Row, 0, len(Attributes)+len(Features))
	for _, a := range Attributes {
		row := Row{Label: a.Label, Cells: make([]string, 0, len(cmp.Programs))}
		for _, p := range cmp.Programs {
			row.Cells = append(row.Cells, a.Value(p))
		}
		cmp.Rows = append(cmp.Rows, row)
	}
	for _, f := range Features {
		row := Row{Label: f.Label, Cells: make([]string, 0, len(cmp.Programs))}
		for _, p := range cmp.Programs {
			row.Cells = append(row.Cells, YesNo(f.Value(p)))
		}
		cmp.Rows = append(cmp.Rows, row)
	}
	return cmp
}
