package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"pafinder/internal/program"
)

var (
	// ErrMissingHeader is returned for a document with no header row.
	ErrMissingHeader = errors.New("missing header row")

	// ErrUnrecognizedHeader is returned when none of the expected column
	// labels appear in the header, which usually means the URL served an
	// HTML page instead of the sheet export.
	ErrUnrecognizedHeader = errors.New("header has none of the expected columns")
)

// Parse reads a comma-separated document with a header row into raw rows
// keyed by header label. Blank lines are skipped, a UTF-8 byte order mark is
// dropped, header labels are trimmed and short rows read as empty cells.
func Parse(r io.Reader) ([]program.RawRow, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	labels := make([]string, len(header))
	known := 0
	for i, h := range header {
		labels[i] = strings.TrimSpace(h)
		if program.IsKnownColumn(labels[i]) {
			known++
		}
	}
	if known == 0 {
		return nil, ErrUnrecognizedHeader
	}

	var rows []program.RawRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}

		row := make(program.RawRow, len(labels))
		for i, label := range labels {
			if label == "" || i >= len(record) {
				continue
			}
			row[label] = record[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
