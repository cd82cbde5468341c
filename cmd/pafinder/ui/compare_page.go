package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"pafinder/internal/selection"
)

// ComparePageModel shows the comparison grid in a scrollable viewport.
type ComparePageModel struct {
	viewport   viewport.Model
	comparison selection.Comparison
	styles     Styles
	width      int
	height     int
}

// NewComparePageModel creates an empty comparison page.
func NewComparePageModel(styles Styles) ComparePageModel {
	return ComparePageModel{
		viewport: viewport.New(DefaultWidth, DefaultHeight),
		styles:   styles,
		width:    DefaultWidth,
		height:   DefaultHeight,
	}
}

// SetSize updates the size of the viewport.
func (m *ComparePageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = max(h, MinTableHeight)
	m.UpdateContent()
}

// SetComparison shows c from the top.
func (m *ComparePageModel) SetComparison(c selection.Comparison) {
	m.comparison = c
	m.UpdateContent()
	m.viewport.GotoTop()
}

// UpdateContent re-renders the grid.
func (m *ComparePageModel) UpdateContent() {
	if len(m.comparison.Programs) == 0 {
		m.viewport.SetContent(m.styles.Muted.Render("Nothing to compare."))
		return
	}
	t := ComparisonTable(m.comparison)
	t.MaxCellWidth = NewLayoutConfig(m.width, m.height).CompareCellWidth(len(m.comparison.Programs))
	m.viewport.SetContent(t.View(m.styles))
}

// Update handles messages.
func (m ComparePageModel) Update(msg tea.Msg) (ComparePageModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m ComparePageModel) View() string {
	return m.viewport.View()
}
