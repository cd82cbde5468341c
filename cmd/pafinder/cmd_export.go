package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pafinder/internal/export"
	"pafinder/internal/logging"
)

var (
	exportFilters filterFlags
	exportOutput  string
)

// exportCmd writes the filtered programs as CSV
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the filtered programs as CSV",
	Long: `Writes the programs matching the filters to a CSV file with the same
columns as the browser's download. A directory output gets pa_programs.csv
inside it; "-" writes to standard output.

Examples:
  pafinder export --state CA
  pafinder export --no-gre -o ~/Downloads
  pafinder export -o - | head`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportFilters.bind(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file or directory (default from config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	applyFilters(s, exportFilters)
	exportLogger := logging.For(logger, logging.CategoryExport)

	if exportOutput == "-" {
		data, err := s.ExportDocument()
		if err != nil {
			return exportError(err)
		}
		exportLogger.Debug("writing export to stdout",
			zap.Int("programs", len(s.Displayed())),
			zap.Int("bytes", len(data)))
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	path := exportOutput
	if path == "" {
		path = cfg.ExportPath()
	}
	written, err := s.Export(path)
	if err != nil {
		exportLogger.Debug("export failed", zap.String("path", path), zap.Error(err))
		return exportError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d programs to %s\n", len(s.Displayed()), written)
	return nil
}

func exportError(err error) error {
	if errors.Is(err, export.ErrNoRecords) {
		return errors.New("nothing to export: no programs match your filters")
	}
	return err
}
