// Package session holds the state of one browsing session: the loaded program
// set, the active filter and the displayed subsequence it yields, the option
// lists, and the comparison selection.
//
// Dependent state is recomputed explicitly. SetFilter recomputes the displayed
// set; option lists are rebuilt only when a load completes.
//
// A Session is not safe for concurrent use. The interactive browser runs the
// fetch in a command goroutine and hands the result back through FinishLoad
// on its update loop.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pafinder/internal/catalog"
	"pafinder/internal/export"
	"pafinder/internal/program"
	"pafinder/internal/selection"
)

var (
	// ErrNotLoaded is returned by operations that need the program set before
	// a load has succeeded.
	ErrNotLoaded = errors.New("programs are not loaded")

	// ErrUnknownProgram is returned when an id does not name a loaded program.
	ErrUnknownProgram = errors.New("unknown program")
)

// Status is the load state of a session.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// LoadFunc fetches and normalizes the program set.
type LoadFunc func(ctx context.Context) ([]program.Program, error)

// Session is the browsing state over one loaded program set.
type Session struct {
	id     string
	logger *zap.Logger

	status Status
	err    error

	records   []program.Program
	byID      map[string]int
	options   catalog.Options
	filter    catalog.FilterState
	displayed []program.Program

	selection *selection.Controller
}

// New creates a session in StatusLoading with an empty program set.
func New(logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New().String()
	return &Session{
		id:        id,
		logger:    logger.With(zap.String("session_id", id)),
		status:    StatusLoading,
		options:   catalog.Options{},
		selection: selection.NewController(),
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Status returns the load state.
func (s *Session) Status() Status { return s.status }

// Err returns the error of the last failed load, or nil.
func (s *Session) Err() error { return s.err }

// Load runs fn and installs its result. It is BeginLoad followed by
// FinishLoad.
func (s *Session) Load(ctx context.Context, fn LoadFunc) error {
	s.BeginLoad()
	records, err := fn(ctx)
	return s.FinishLoad(records, err)
}

// BeginLoad marks the session as loading and clears any previous error.
func (s *Session) BeginLoad() {
	s.status = StatusLoading
	s.err = nil
}

// FinishLoad installs the outcome of a fetch. On error the session moves to
// StatusFailed and keeps whatever it had before; err is returned unchanged.
// On success the option lists are rebuilt, the selection is cleared and the
// current filter is reapplied.
func (s *Session) FinishLoad(records []program.Program, err error) error {
	if err != nil {
		s.status = StatusFailed
		s.err = err
		s.logger.Warn("load failed", zap.Error(err))
		return err
	}

	s.records = records
	s.byID = make(map[string]int, len(records))
	for i, p := range records {
		s.byID[p.ID] = i
	}
	s.options = catalog.BuildOptions(records)
	s.selection.Clear()
	s.displayed = catalog.Apply(s.records, s.filter)
	s.status = StatusReady
	s.err = nil

	s.logger.Info("programs loaded",
		zap.Int("programs", len(records)),
		zap.Int("states", len(s.options[catalog.FieldState])),
		zap.Int("displayed", len(s.displayed)))
	return nil
}

// Records returns the full program set in source order. Callers must not
// modify it.
func (s *Session) Records() []program.Program { return s.records }

// Total returns the size of the full program set.
func (s *Session) Total() int { return len(s.records) }

// Options returns the filter option lists built at load time.
func (s *Session) Options() catalog.Options { return s.options }

// Filter returns the active filter.
func (s *Session) Filter() catalog.FilterState { return s.filter }

// SetFilter replaces the active filter and recomputes the displayed set.
func (s *Session) SetFilter(f catalog.FilterState) {
	s.filter = f
	s.displayed = catalog.Apply(s.records, f)
	s.logger.Debug("filter applied",
		zap.Bool("active", f.IsActive()),
		zap.Int("displayed", len(s.displayed)))
}

// ResetFilter restores the all-inactive filter.
func (s *Session) ResetFilter() {
	s.SetFilter(catalog.FilterState{})
}

// Displayed returns the programs passing the active filter, in source order.
// Callers must not modify it.
func (s *Session) Displayed() []program.Program { return s.displayed }

// Program looks up a loaded program by id.
func (s *Session) Program(id string) (program.Program, error) {
	if s.byID == nil {
		return program.Program{}, ErrNotLoaded
	}
	i, ok := s.byID[id]
	if !ok {
		return program.Program{}, fmt.Errorf("%w: %q", ErrUnknownProgram, id)
	}
	return s.records[i], nil
}

// Toggle adds or removes a program from the comparison selection. It
// returns selection.ErrCapacity when a fourth program is added; the
// selection is then unchanged.
func (s *Session) Toggle(id string) error {
	if _, err := s.Program(id); err != nil {
		return err
	}
	if err := s.selection.Toggle(id); err != nil {
		s.logger.Debug("toggle rejected", zap.String("program_id", id), zap.Error(err))
		return err
	}
	return nil
}

// IsSelected reports whether a program is selected for comparison.
func (s *Session) IsSelected(id string) bool { return s.selection.IsSelected(id) }

// Selected returns the selected ids in selection order.
func (s *Session) Selected() []string { return s.selection.Selected() }

// SelectedCount returns the number of selected programs.
func (s *Session) SelectedCount() int { return s.selection.Len() }

// ClearSelection empties the selection and leaves the comparison view.
func (s *Session) ClearSelection() { s.selection.Clear() }

// CanCompare reports whether the comparison view is available.
func (s *Session) CanCompare() bool { return s.selection.CanCompare() }

// EnterComparison opens the comparison view.
func (s *Session) EnterComparison() error { return s.selection.EnterComparison() }

// ExitComparison closes the comparison view and keeps the selection.
func (s *Session) ExitComparison() { s.selection.ExitComparison() }

// Mode returns whether the comparison view is open.
func (s *Session) Mode() selection.Mode { return s.selection.Mode() }

// Comparison builds the side-by-side view of the selection over the full
// program set, so a selected program stays comparable after it is filtered
// out of the list.
func (s *Session) Comparison() selection.Comparison {
	return s.selection.Compare(s.records)
}

// ExportDocument formats the displayed set as CSV.
func (s *Session) ExportDocument() ([]byte, error) {
	return export.Format(s.displayed)
}

// Export writes the displayed set to path and returns the file written. An
// empty displayed set writes nothing and returns export.ErrNoRecords.
func (s *Session) Export(path string) (string, error) {
	written, err := export.WriteFile(path, s.displayed)
	if err != nil {
		return "", err
	}
	s.logger.Info("exported programs",
		zap.String("path", written),
		zap.Int("programs", len(s.displayed)))
	return written, nil
}
