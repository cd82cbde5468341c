package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pafinder/internal/catalog"
	"pafinder/internal/logging"
	"pafinder/internal/program"
	"pafinder/internal/session"
	"pafinder/internal/source"
)

// programLoader fetches the configured sheet.
func programLoader() session.LoadFunc {
	src := cfg.DataSource()
	srcLogger := logging.For(logger, logging.CategorySource)
	return func(ctx context.Context) ([]program.Program, error) {
		return source.Load(ctx, src, srcLogger)
	}
}

// loadSession loads the program set for a one-shot subcommand.
func loadSession(cmd *cobra.Command) (*session.Session, error) {
	s := session.New(logging.For(logger, logging.CategorySession))
	if err := s.Load(commandContext(cmd), programLoader()); err != nil {
		return nil, err
	}
	return s, nil
}

// filterFlags are the filter options shared by list and export.
type filterFlags struct {
	state      string
	degree     string
	clinical   string
	minGPA     string
	startMonth string
	noGRE      bool
	noPACAT    bool
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.state, "state", "", "Only programs in this state (exact match)")
	cmd.Flags().StringVar(&f.degree, "degree", "", "Only programs offering this degree")
	cmd.Flags().StringVar(&f.clinical, "clinical", "", "Only programs with this clinical hours requirement")
	cmd.Flags().StringVar(&f.minGPA, "min-gpa", "", "Only programs with this minimum GPA")
	cmd.Flags().StringVar(&f.startMonth, "start-month", "", "Only programs starting in this month (e.g. May, Unknown)")
	cmd.Flags().BoolVar(&f.noGRE, "no-gre", false, "Hide programs that require the GRE")
	cmd.Flags().BoolVar(&f.noPACAT, "no-pacat", false, "Hide programs that require the PA-CAT")
}

func (f filterFlags) filterState() catalog.FilterState {
	return catalog.FilterState{
		State:                f.state,
		DegreeOffered:        f.degree,
		HealthcareExperience: f.clinical,
		MinGPA:               f.minGPA,
		StartMonth:           f.startMonth,
		ExcludeGRERequired:   f.noGRE,
		ExcludePACATRequired: f.noPACAT,
	}
}

// applyFilters sets the filter built from the flags on s.
func applyFilters(s *session.Session, f filterFlags) {
	state := f.filterState()
	fields := make([]zap.Field, 0, len(catalog.Fields)+2)
	for _, field := range catalog.Fields {
		if v := state.Get(field); v != "" {
			fields = append(fields, zap.String(field.Key(), v))
		}
	}
	fields = append(fields, zap.Bool("no_gre", state.ExcludeGRERequired), zap.Bool("no_pacat", state.ExcludePACATRequired))
	logging.For(logger, logging.CategoryCatalog).Debug("filter from flags", fields...)

	s.SetFilter(state)
}
