package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings for every page. The help line shows only the
// bindings that apply to the current page.
type keyMap struct {
	// List
	Up          key.Binding
	Down        key.Binding
	Open        key.Binding
	Toggle      key.Binding
	Compare     key.Binding
	Clear       key.Binding
	Export      key.Binding
	FocusFilter key.Binding
	ShowFilters key.Binding

	// Filter bar
	NextControl key.Binding
	PrevControl key.Binding
	NextValue   key.Binding
	PrevValue   key.Binding
	ResetOne    key.Binding
	ResetAll    key.Binding
	Leave       key.Binding

	// Detail and compare
	Back key.Binding

	Retry key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Compare:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compare")),
		Clear:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
		Export:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "download csv")),
		FocusFilter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filters")),
		ShowFilters: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "show/hide filters")),

		NextControl: key.NewBinding(key.WithKeys("right", "tab", "l"), key.WithHelp("→/tab", "next filter")),
		PrevControl: key.NewBinding(key.WithKeys("left", "shift+tab", "h"), key.WithHelp("←/shift+tab", "prev filter")),
		NextValue:   key.NewBinding(key.WithKeys("down", "j", " "), key.WithHelp("↓/space", "next value")),
		PrevValue:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "prev value")),
		ResetOne:    key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("⌫", "reset filter")),
		ResetAll:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset all")),
		Leave:       key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc", "done")),

		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),

		Retry: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpKeys adapts one page's bindings to help.KeyMap.
type helpKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (h helpKeys) ShortHelp() []key.Binding  { return h.short }
func (h helpKeys) FullHelp() [][]key.Binding { return h.full }

func (k keyMap) listHelp() helpKeys {
	return helpKeys{
		short: []key.Binding{k.Open, k.Toggle, k.Compare, k.Export, k.FocusFilter, k.Help, k.Quit},
		full: [][]key.Binding{
			{k.Up, k.Down, k.Open},
			{k.Toggle, k.Compare, k.Clear},
			{k.Export, k.FocusFilter, k.ShowFilters},
			{k.Help, k.Quit},
		},
	}
}

func (k keyMap) filterHelp() helpKeys {
	short := []key.Binding{k.NextControl, k.NextValue, k.ResetOne, k.ResetAll, k.Leave}
	return helpKeys{short: short, full: [][]key.Binding{short, {k.PrevControl, k.PrevValue}}}
}

func (k keyMap) detailHelp() helpKeys {
	short := []key.Binding{k.Up, k.Down, k.Back, k.Quit}
	return helpKeys{short: short, full: [][]key.Binding{short}}
}

func (k keyMap) compareHelp() helpKeys {
	short := []key.Binding{k.Back, k.Clear, k.Quit}
	return helpKeys{short: short, full: [][]key.Binding{short}}
}

func (k keyMap) failedHelp() helpKeys {
	short := []key.Binding{k.Retry, k.Quit}
	return helpKeys{short: short, full: [][]key.Binding{short}}
}
