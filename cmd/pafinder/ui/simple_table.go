package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pafinder/internal/selection"
)

// SimpleTable renders a static grid. The comparison view uses it with a
// label column followed by one column per program.
type SimpleTable struct {
	Title   string
	Headers []string
	Rows    [][]string

	// MaxCellWidth truncates cells wider than this, except in the first
	// (label) column. Zero means no limit.
	MaxCellWidth int
}

// NewSimpleTable creates a new SimpleTable with the given title and headers.
func NewSimpleTable(title string, headers []string) *SimpleTable {
	return &SimpleTable{
		Title:   title,
		Headers: headers,
		Rows:    make([][]string, 0),
	}
}

// ComparisonTable lays out a comparison as a table: the "Feature" column
// first, then the programs in selection order.
func ComparisonTable(c selection.Comparison) *SimpleTable {
	t := NewSimpleTable("Compare Programs", c.Headers())
	for _, r := range c.Rows {
		t.AddRow(append([]string{r.Label}, r.Cells...)...)
	}
	return t
}

// AddRow adds a row to the table.
func (t *SimpleTable) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table using the provided styles.
func (t *SimpleTable) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = t.fit(i, h)
	}

	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(t.fit(i, cell)); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}

	// lipgloss Width includes padding
	for i := range colWidths {
		colWidths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	labelStyle := styles.Muted.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)
	sepStyle := styles.Muted

	for i, h := range headers {
		sb.WriteString(headerStyle.Width(colWidths[i]).Render(h))
		if i < len(headers)-1 {
			sb.WriteString(sepStyle.Render("|"))
		}
	}
	sb.WriteString("\n")

	totalWidth := len(colWidths) - 1 // separators
	for _, w := range colWidths {
		totalWidth += w
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("-", totalWidth)) + "\n")

	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(colWidths) {
				break
			}
			style := rowStyle
			if i == 0 {
				style = labelStyle
			}
			sb.WriteString(style.Width(colWidths[i]).Render(t.fit(i, cell)))
			if i < len(colWidths)-1 {
				sb.WriteString(sepStyle.Render("|"))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (t *SimpleTable) fit(col int, s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if t.MaxCellWidth <= 0 || col == 0 {
		return s
	}
	return truncate(s, t.MaxCellWidth)
}

// truncate shortens s to at most l cells, marking the cut with an ellipsis.
func truncate(s string, l int) string {
	if lipgloss.Width(s) <= l {
		return s
	}
	if l <= 1 {
		return "…"
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > l {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
