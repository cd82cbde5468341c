// Package export serializes a program list to the downloadable CSV format.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pafinder/internal/program"
)

// DefaultFilename is the name used when the caller does not pick one.
const DefaultFilename = "pa_programs.csv"

// ErrNoRecords is returned when there is nothing to export.
var ErrNoRecords = errors.New("no programs to export")

// column is one CSV column. quoted columns are always wrapped in double
// quotes because their values routinely contain commas.
type column struct {
	title  string
	value  func(program.Program) string
	quoted bool
}

var columns = []column{
	{"ID", func(p program.Program) string { return p.ID }, false},
	{"Program Name", func(p program.Program) string { return p.Name }, true},
	{"State", func(p program.Program) string { return p.State }, false},
	{"City", func(p program.Program) string { return p.City }, false},
	{"Degree", func(p program.Program) string { return p.DegreeOffered }, false},
	{"Tuition", func(p program.Program) string { return p.Tuition }, true},
	{"Length", func(p program.Program) string { return p.ProgramLength }, false},
	{"Start Date", func(p program.Program) string { return p.StartDate }, false},
	{"Deadline", func(p program.Program) string { return p.ApplicationDeadline }, false},
	{"Clinical Hours", func(p program.Program) string { return p.HealthcareExperience }, true},
	{"Shadowing Hours", func(p program.Program) string { return p.ShadowingHours }, false},
	{"Min GPA", func(p program.Program) string { return p.MinGPA }, false},
	{"Prereq GPA", func(p program.Program) string { return p.PrerequisiteGPA }, false},
	{"GRE Req", func(p program.Program) string { return p.GRERequirement }, false},
	{"PA-CAT Req", func(p program.Program) string { return p.PACATRequirement }, false},
	{"PANCE Rate", func(p program.Program) string { return p.PANCEPassRate }, false},
	{"Accreditation", func(p program.Program) string { return p.AccreditationStatus }, false},
}

// Headers returns the fixed column titles.
func Headers() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.title
	}
	return out
}

// Format renders records as a CSV document: a header row followed by one row
// per record, joined with "\n" and without a trailing newline. Embedded double
// quotes are doubled.
func Format(records []program.Program) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(Headers(), ","))

	cells := make([]string, len(columns))
	for _, p := range records {
		for i, c := range columns {
			cells[i] = quote(c.value(p), c.quoted)
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return []byte(strings.Join(lines, "\n")), nil
}

func quote(v string, always bool) string {
	if !always && !strings.ContainsAny(v, ",\"\r\n") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// WriteFile formats records and writes them to path. A directory path gets
// DefaultFilename appended. Nothing is written when records is empty.
func WriteFile(path string, records []program.Program) (string, error) {
	data, err := Format(records)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = DefaultFilename
	} else if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFilename)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
