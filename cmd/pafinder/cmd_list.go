package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pafinder/cmd/pafinder/ui"
	"pafinder/internal/catalog"
	"pafinder/internal/program"
)

var listFilters filterFlags

// listCmd prints the filtered program table
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List programs matching the given filters",
	Long: `Loads the program sheet and prints every program that satisfies the
filters, in sheet order.

Examples:
  pafinder list --state TX
  pafinder list --start-month May --no-gre`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// optionsCmd prints the distinct values available to a filter
var optionsCmd = &cobra.Command{
	Use:   "options [field]",
	Short: "Show the values each filter can take",
	Long: `Prints the sorted distinct values of the filterable fields. With no
argument every field is listed.

Fields: state, degree, clinical, min-gpa, start-month`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOptions,
}

func init() {
	listFilters.bind(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	applyFilters(s, listFilters)

	out := cmd.OutOrStdout()
	displayed := s.Displayed()
	if len(displayed) == 0 {
		fmt.Fprintln(out, "No programs match your filters.")
		return nil
	}

	fmt.Fprintln(out, programTable(displayed).View(ui.DefaultStyles()))
	if s.Filter().IsActive() {
		fmt.Fprintf(out, "Showing %d of %d programs\n", len(displayed), s.Total())
	} else {
		fmt.Fprintf(out, "%d programs\n", s.Total())
	}
	return nil
}

// programTable lays the records out as rows of the plain-text table.
func programTable(records []program.Program) *ui.SimpleTable {
	t := ui.NewSimpleTable("", []string{"ID", "Program", "State", "Tuition", "Length", "Start", "GRE", "PA-CAT"})
	t.MaxCellWidth = 40
	for _, p := range records {
		t.AddRow(p.ID, p.Name, p.State, p.Tuition, p.ProgramLength, p.StartMonth,
			requirement(p.GRERequired), requirement(p.PACATRequired))
	}
	return t
}

func requirement(required bool) string {
	if required {
		return "Required"
	}
	return "-"
}

func runOptions(cmd *cobra.Command, args []string) error {
	fields := catalog.Fields
	if len(args) == 1 {
		f, err := catalog.ParseField(strings.ToLower(args[0]))
		if err != nil {
			return err
		}
		fields = []catalog.Field{f}
	}

	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	opts := s.Options()
	logger.Debug("Listing filter options", zap.Int("fields", len(fields)))

	out := cmd.OutOrStdout()
	for i, f := range fields {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s (%s):\n", f.Label(), f.Key())
		values := opts[f]
		if len(values) == 0 {
			fmt.Fprintln(out, "  (none)")
			continue
		}
		for _, v := range values {
			fmt.Fprintf(out, "  %s\n", v)
		}
	}
	return nil
}
