package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pafinder/internal/catalog"
)

// anyValue labels an inactive selector.
const anyValue = "Any"

// filterControl is one focusable slot of the bar: a selector over a field's
// options or an exclusion checkbox.
type filterControl struct {
	field       catalog.Field
	exclusion   catalog.Exclusion
	isExclusion bool
}

func (c filterControl) label() string {
	if c.isExclusion {
		return c.exclusion.Label()
	}
	return c.field.Label()
}

// FilterBar edits a catalog.FilterState. Selectors cycle through "Any" and
// the option list of their field; checkboxes flip an exclusion.
type FilterBar struct {
	controls []filterControl
	focus    int
	focused  bool
	visible  bool

	state   catalog.FilterState
	options catalog.Options

	styles Styles
	keys   keyMap
}

// NewFilterBar creates a bar with every control inactive.
func NewFilterBar(styles Styles, visible bool) FilterBar {
	controls := make([]filterControl, 0, len(catalog.Fields)+len(catalog.Exclusions))
	for _, f := range catalog.Fields {
		controls = append(controls, filterControl{field: f})
	}
	for _, e := range catalog.Exclusions {
		controls = append(controls, filterControl{exclusion: e, isExclusion: true})
	}
	return FilterBar{
		controls: controls,
		visible:  visible,
		options:  catalog.Options{},
		styles:   styles,
		keys:     defaultKeyMap(),
	}
}

// SetOptions replaces the selector option lists.
func (b *FilterBar) SetOptions(opts catalog.Options) {
	b.options = opts
}

// State returns the filter being edited.
func (b FilterBar) State() catalog.FilterState {
	return b.state
}

// SetState replaces the filter being edited.
func (b *FilterBar) SetState(s catalog.FilterState) {
	b.state = s
}

// Focus gives the bar keyboard focus and shows it.
func (b *FilterBar) Focus() {
	b.focused = true
	b.visible = true
}

// Blur returns keyboard focus to the list.
func (b *FilterBar) Blur() {
	b.focused = false
}

// Focused reports whether the bar has keyboard focus.
func (b FilterBar) Focused() bool {
	return b.focused
}

// Visible reports whether the bar is expanded.
func (b FilterBar) Visible() bool {
	return b.visible
}

// ToggleVisible expands or collapses the bar. Collapsing also blurs it.
func (b *FilterBar) ToggleVisible() {
	b.visible = !b.visible
	if !b.visible {
		b.focused = false
	}
}

// Update handles keys while the bar is focused.
func (b FilterBar) Update(msg tea.Msg) (FilterBar, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !b.focused {
		return b, nil
	}

	switch {
	case key.Matches(keyMsg, b.keys.Leave):
		b.focused = false
	case key.Matches(keyMsg, b.keys.NextControl):
		b.focus = (b.focus + 1) % len(b.controls)
	case key.Matches(keyMsg, b.keys.PrevControl):
		b.focus = (b.focus - 1 + len(b.controls)) % len(b.controls)
	case key.Matches(keyMsg, b.keys.NextValue):
		b.step(1)
	case key.Matches(keyMsg, b.keys.PrevValue):
		b.step(-1)
	case key.Matches(keyMsg, b.keys.ResetOne):
		b.reset(b.controls[b.focus])
	case key.Matches(keyMsg, b.keys.ResetAll):
		b.state = catalog.FilterState{}
	}
	return b, nil
}

// step moves the focused control by delta through its values. Checkboxes
// flip regardless of direction.
func (b *FilterBar) step(delta int) {
	c := b.controls[b.focus]
	if c.isExclusion {
		b.state = b.state.WithExclusion(c.exclusion, !b.state.Excludes(c.exclusion))
		return
	}

	values := append([]string{""}, b.options[c.field]...)
	cur := 0
	for i, v := range values {
		if v == b.state.Get(c.field) {
			cur = i
			break
		}
	}
	next := (cur + delta + len(values)) % len(values)
	b.state = b.state.With(c.field, values[next])
}

func (b *FilterBar) reset(c filterControl) {
	if c.isExclusion {
		b.state = b.state.WithExclusion(c.exclusion, false)
		return
	}
	b.state = b.state.With(c.field, "")
}

// activeCount returns how many controls constrain the list.
func (b FilterBar) activeCount() int {
	n := 0
	for _, c := range b.controls {
		if c.isExclusion {
			if b.state.Excludes(c.exclusion) {
				n++
			}
		} else if b.state.Get(c.field) != "" {
			n++
		}
	}
	return n
}

// View renders the bar.
func (b FilterBar) View(width int) string {
	if !b.visible {
		summary := b.styles.Muted.Render("Filters hidden")
		if n := b.activeCount(); n > 0 {
			summary += " " + b.styles.Badge.Render(fmt.Sprintf("%d active", n))
		}
		return summary + b.styles.Muted.Render("  [f] show")
	}

	var selectors, checks []string
	for i, c := range b.controls {
		var label, text string
		active := false
		if c.isExclusion {
			mark := "[ ]"
			if b.state.Excludes(c.exclusion) {
				mark = "[x]"
				active = true
			}
			text = mark + " " + c.label()
		} else {
			v := b.state.Get(c.field)
			active = v != ""
			if v == "" {
				v = anyValue
			}
			label = b.styles.FilterLabel.Render(c.label()+":") + " "
			text = v
		}

		style := b.styles.FilterValue
		switch {
		case b.focused && i == b.focus:
			style = b.styles.FilterFocused
		case active:
			style = b.styles.FilterActive
		}
		rendered := label + style.Render(text)
		if c.isExclusion {
			checks = append(checks, rendered)
		} else {
			selectors = append(selectors, rendered)
		}
	}

	hint := "[/] edit  [f] hide"
	if b.focused {
		hint = "[←/→] move  [↑/↓] change  [⌫] reset  [R] reset all  [esc] done"
	}
	lines := strings.Join(selectors, "  ") + "\n" +
		strings.Join(checks, "  ") + "\n" +
		b.styles.Muted.Render(hint)

	panel := b.styles.Panel
	if b.focused {
		panel = panel.BorderForeground(b.styles.Theme.Primary)
	}
	if width > 2 {
		panel = panel.Width(width - 2)
	}
	return panel.Render(lines)
}
