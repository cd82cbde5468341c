// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants for viewport and panel sizing
const (
	// Viewport padding
	ViewportHorizontalPadding = 4

	// Control areas
	HeaderHeight    = 2
	FooterHeight    = 2
	FilterBarHeight = 5
	ControlsHeight  = 2
	StatusBarHeight = 1

	// Table dimensions
	TableHeaderHeight = 2
	MinTableHeight    = 3

	// Responsive breakpoints
	MinimumTerminalWidth  = 80
	MinimumTerminalHeight = 24
	CompactModeWidth      = 100

	// Comparison grid
	CompareLabelWidth   = 22
	CompareMinCellWidth = 12
	CompareMaxCellWidth = 36

	// Default size before the first WindowSizeMsg
	DefaultWidth  = 100
	DefaultHeight = 30
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// ContentWidth returns the usable content width
func (l LayoutConfig) ContentWidth() int {
	return max(l.TerminalWidth-ViewportHorizontalPadding, 20)
}

// PageHeight returns the height left for a page below the header and above
// the footer
func (l LayoutConfig) PageHeight() int {
	return max(l.TerminalHeight-HeaderHeight-FooterHeight, MinTableHeight)
}

// TableHeight returns the rows available to the program table given
// whether the filter bar is showing
func (l LayoutConfig) TableHeight(filtersShown bool) int {
	h := l.PageHeight() - TableHeaderHeight - ControlsHeight - StatusBarHeight
	if filtersShown {
		h -= FilterBarHeight
	}
	return max(h, MinTableHeight)
}

// CompareCellWidth returns the width of one program column in the
// comparison grid
func (l LayoutConfig) CompareCellWidth(programs int) int {
	if programs < 1 {
		programs = 1
	}
	w := (l.ContentWidth() - CompareLabelWidth) / programs
	return min(max(w, CompareMinCellWidth), CompareMaxCellWidth)
}
