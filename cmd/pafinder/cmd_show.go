package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pafinder/cmd/pafinder/ui"
)

var (
	showRaw   bool
	showWidth int
)

// showCmd prints one program's detail page
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the full details of one program",
	Long: `Renders the detail view of a program. IDs are the sheet row numbers
printed by "pafinder list".

Example:
  pafinder show 12
  pafinder show 12 --raw > program.md`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

// compareCmd prints the side-by-side comparison of two or three programs
var compareCmd = &cobra.Command{
	Use:   "compare <id> <id> [id]",
	Short: "Compare two or three programs side by side",
	Long: `Selects the given programs and prints the comparison grid: one row per
attribute, one column per program, in argument order.

Example:
  pafinder compare 3 7 12`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCompare,
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the markdown source instead of rendering it")
	showCmd.Flags().IntVar(&showWidth, "width", ui.DefaultWidth, "Word wrap width")
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	p, err := s.Program(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if showRaw {
		fmt.Fprintln(out, ui.DetailMarkdown(p))
		return nil
	}

	rendered, err := ui.RenderDetail(p, showWidth, cfg.UI.GlamourStyle)
	if err != nil {
		logger.Warn("Detail render failed, printing markdown", zap.Error(err))
		rendered = ui.DetailMarkdown(p)
	}
	fmt.Fprint(out, rendered)
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(args))
	for _, id := range args {
		if seen[id] {
			return fmt.Errorf("program %s listed more than once", id)
		}
		seen[id] = true
		if err := s.Toggle(id); err != nil {
			return err
		}
	}
	if err := s.EnterComparison(); err != nil {
		return err
	}

	t := ui.ComparisonTable(s.Comparison())
	t.MaxCellWidth = ui.NewLayoutConfig(ui.DefaultWidth, ui.DefaultHeight).CompareCellWidth(s.SelectedCount())
	fmt.Fprintln(cmd.OutOrStdout(), t.View(ui.DefaultStyles()))
	return nil
}
