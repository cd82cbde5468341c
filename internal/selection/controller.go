// Package selection implements the capped multi-select used to pick programs
// for side-by-side comparison.
package selection

import (
	"errors"
	"fmt"
)

// MaxSelected is the most programs that can be compared at once.
const MaxSelected = 3

// MinCompare is the fewest programs a comparison needs.
const MinCompare = 2

var (
	// ErrCapacity is returned when a toggle would exceed MaxSelected.
	ErrCapacity = fmt.Errorf("you can compare up to %d programs at a time", MaxSelected)

	// ErrTooFewSelected is returned when comparison is requested with fewer
	// than MinCompare programs selected.
	ErrTooFewSelected = errors.New("select at least two programs to compare")
)

// Mode is the view the controller is in.
type Mode int

const (
	Listing Mode = iota
	Comparing
)

func (m Mode) String() string {
	switch m {
	case Listing:
		return "listing"
	case Comparing:
		return "comparing"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Controller tracks the selected program ids and whether the comparison view
// is open. The zero value is an empty selection in Listing mode.
type Controller struct {
	selected []string
	mode     Mode
}

// NewController returns an empty controller.
func NewController() *Controller {
	return &Controller{}
}

// Toggle removes id if it is selected, otherwise appends it. Adding past
// MaxSelected returns ErrCapacity and leaves the selection unchanged.
func (c *Controller) Toggle(id string) error {
	for i, sid := range c.selected {
		if sid == id {
			c.selected = append(c.selected[:i:i], c.selected[i+1:]...)
			return nil
		}
	}
	if len(c.selected) >= MaxSelected {
		return ErrCapacity
	}
	c.selected = append(c.selected, id)
	return nil
}

// IsSelected reports whether id is in the selection.
func (c *Controller) IsSelected(id string) bool {
	for _, sid := range c.selected {
		if sid == id {
			return true
		}
	}
	return false
}

// Selected returns a copy of the selected ids in insertion order.
func (c *Controller) Selected() []string {
	return append([]string(nil), c.selected...)
}

// Len returns the number of selected programs.
func (c *Controller) Len() int {
	return len(c.selected)
}

// Clear empties the selection and returns to Listing.
func (c *Controller) Clear() {
	c.selected = nil
	c.mode = Listing
}

// CanCompare reports whether EnterComparison would succeed.
func (c *Controller) CanCompare() bool {
	return len(c.selected) >= MinCompare && len(c.selected) <= MaxSelected
}

// EnterComparison switches to Comparing when two or three programs are
// selected.
func (c *Controller) EnterComparison() error {
	if !c.CanCompare() {
		return ErrTooFewSelected
	}
	c.mode = Comparing
	return nil
}

// ExitComparison returns to Listing. The selection is kept.
func (c *Controller) ExitComparison() {
	c.mode = Listing
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	return c.mode
}
