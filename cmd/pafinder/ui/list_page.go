package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"pafinder/internal/program"
	"pafinder/internal/selection"
)

// emptyListMessage is shown in place of the table when no program passes
// the filter.
const emptyListMessage = "No programs match your filters."

// ListPageModel is the program table with its result count and controls bar.
type ListPageModel struct {
	width  int
	height int
	table  table.Model

	// Data
	programs      []program.Program
	selected      map[string]bool
	total         int
	filterActive  bool
	selectedCount int
	canCompare    bool

	styles Styles
}

// NewListPageModel creates an empty program table.
func NewListPageModel(styles Styles) ListPageModel {
	// space and f belong to the page, not to table paging
	km := table.DefaultKeyMap()
	km.PageUp = key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up"))
	km.PageDown = key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down"))

	t := table.New(
		table.WithColumns(listColumns(DefaultWidth)),
		table.WithFocused(true),
		table.WithHeight(15),
		table.WithKeyMap(km),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(styles.Panel.GetBorderStyle()).
		BorderForeground(styles.Theme.Border).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(styles.Theme.Card).
		Background(styles.Theme.Primary).
		Bold(false)
	t.SetStyles(ts)

	return ListPageModel{
		table:  t,
		styles: styles,
	}
}

// listColumns sizes the table for width. The program name takes whatever
// the fixed columns leave.
func listColumns(width int) []table.Column {
	fixed := []table.Column{
		{Title: "", Width: 2},
		{Title: "Program", Width: 0},
		{Title: "State", Width: 5},
		{Title: "Tuition", Width: 12},
		{Title: "Length", Width: 10},
		{Title: "Start", Width: 10},
		{Title: "GRE", Width: 14},
		{Title: "PA-CAT", Width: 14},
	}
	if width < CompactModeWidth {
		fixed = append(fixed[:5:5], fixed[6:]...)
	}

	used := 0
	for _, c := range fixed {
		used += c.Width + 2 // cell padding
	}
	fixed[1].Width = max(width-used-ViewportHorizontalPadding, 16)
	return fixed
}

// SetSize updates the size.
func (m *ListPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	// Rows must match the column count before the table re-renders.
	m.table.SetRows(nil)
	m.table.SetColumns(listColumns(w))
	m.table.SetHeight(max(h, MinTableHeight))
	m.updateTableRows()
}

// UpdateContent replaces the displayed programs and the selection summary.
func (m *ListPageModel) UpdateContent(displayed []program.Program, total int, filterActive bool, isSelected func(id string) bool, selectedCount int, canCompare bool) {
	m.programs = displayed
	m.total = total
	m.filterActive = filterActive
	m.selectedCount = selectedCount
	m.canCompare = canCompare

	m.selected = make(map[string]bool, selectedCount)
	for _, p := range displayed {
		if isSelected != nil && isSelected(p.ID) {
			m.selected[p.ID] = true
		}
	}
	m.updateTableRows()
}

// updateTableRows rebuilds the rows for the current column layout.
func (m *ListPageModel) updateTableRows() {
	compact := len(m.table.Columns()) < 8

	rows := make([]table.Row, 0, len(m.programs))
	for _, p := range m.programs {
		mark := ""
		if m.selected[p.ID] {
			mark = "✓"
		}

		row := table.Row{mark, p.Name, p.State, p.Tuition, p.ProgramLength}
		if !compact {
			row = append(row, p.StartDate)
		}
		row = append(row, p.GRERequirement, p.PACATRequirement)
		for j := range row {
			row[j] = strings.ReplaceAll(row[j], "\n", " ")
		}
		rows = append(rows, row)
	}
	m.table.SetRows(rows)

	// An empty table leaves the cursor at -1; start a refilled one at the top.
	switch c := m.table.Cursor(); {
	case len(rows) == 0:
	case c < 0:
		m.table.SetCursor(0)
	case c >= len(rows):
		m.table.SetCursor(len(rows) - 1)
	}
}

// Current returns the program under the cursor.
func (m ListPageModel) Current() (program.Program, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.programs) {
		return program.Program{}, false
	}
	return m.programs[c], true
}

// Update handles messages.
func (m ListPageModel) Update(msg tea.Msg) (ListPageModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the page.
func (m ListPageModel) View() string {
	var sb strings.Builder

	if len(m.programs) == 0 {
		sb.WriteString(m.styles.Content.Render(m.styles.Subtitle.Render(emptyListMessage)))
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.table.View())
		sb.WriteString("\n")
	}

	if m.filterActive {
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("Showing %d of %d programs", len(m.programs), m.total)))
	} else {
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d programs", m.total)))
	}
	sb.WriteString("\n")
	sb.WriteString(m.renderControls())

	return sb.String()
}

// renderControls renders the selection summary and the actions it enables.
func (m ListPageModel) renderControls() string {
	parts := []string{
		m.styles.Bold.Render(fmt.Sprintf("%d programs selected (max %d)", m.selectedCount, selection.MaxSelected)),
	}

	compare := "[c] Compare"
	if m.canCompare {
		parts = append(parts, m.styles.Success.Render(compare))
	} else {
		parts = append(parts, m.styles.Muted.Render(compare))
	}
	if m.selectedCount > 0 {
		parts = append(parts, m.styles.Body.Render("[x] Clear"))
	}
	parts = append(parts, m.styles.Body.Render("[e] Download CSV"))

	return strings.Join(parts, "   ")
}
