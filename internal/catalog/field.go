// Package catalog holds the filter engine and the option indexer that drive
// the program list.
package catalog

import (
	"fmt"
	"sort"

	"pafinder/internal/program"
)

// Field identifies one of the filterable string fields of a Program.
type Field int

const (
	FieldState Field = iota
	FieldDegreeOffered
	FieldHealthcareExperience
	FieldMinGPA
	FieldStartMonth
)

// Fields lists the filterable fields in filter-panel order.
var Fields = []Field{
	FieldState,
	FieldDegreeOffered,
	FieldHealthcareExperience,
	FieldMinGPA,
	FieldStartMonth,
}

var fieldInfo = map[Field]struct {
	key   string
	label string
	get   func(program.Program) string
}{
	FieldState:                {"state", "State", func(p program.Program) string { return p.State }},
	FieldDegreeOffered:        {"degree", "Degree Offered", func(p program.Program) string { return p.DegreeOffered }},
	FieldHealthcareExperience: {"clinical", "Clinical Hours", func(p program.Program) string { return p.HealthcareExperience }},
	FieldMinGPA:               {"min-gpa", "Minimum GPA", func(p program.Program) string { return p.MinGPA }},
	FieldStartMonth:           {"start-month", "Start Month", func(p program.Program) string { return p.StartMonth }},
}

// Value extracts the field from p.
func (f Field) Value(p program.Program) string {
	if info, ok := fieldInfo[f]; ok {
		return info.get(p)
	}
	return ""
}

// Label is the human-readable name used as the selector placeholder.
func (f Field) Label() string {
	if info, ok := fieldInfo[f]; ok {
		return info.label
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// Key is the short machine name used by CLI flags and arguments.
func (f Field) Key() string {
	return fieldInfo[f].key
}

func (f Field) String() string {
	return f.Label()
}

// ParseField resolves a Key back to its Field.
func ParseField(key string) (Field, error) {
	for _, f := range Fields {
		if fieldInfo[f].key == key {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", key)
}

// UniqueValues returns the distinct non-empty values of field across records,
// sorted ascending.
func UniqueValues(records []program.Program, field Field) []string {
	seen := make(map[string]struct{}, len(records))
	for _, p := range records {
		v := field.Value(p)
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Options maps each filterable field to its option list.
type Options map[Field][]string

// BuildOptions indexes every filterable field of records. Callers pass the
// full record set so option lists do not shrink as filters are applied.
func BuildOptions(records []program.Program) Options {
	opts := make(Options, len(Fields))
	for _, f := range Fields {
		opts[f] = UniqueValues(records, f)
	}
	return opts
}
