package config

// UIConfig holds user interface configuration.
type UIConfig struct {
	// DarkMode forces the dark palette; otherwise it is detected from the
	// terminal.
	DarkMode bool `json:"dark_mode" yaml:"dark_mode"`

	// GlamourStyle is the markdown style for the detail view: "auto", "dark",
	// "light" or "notty".
	GlamourStyle string `json:"glamour_style,omitempty" yaml:"glamour_style,omitempty"`

	// ShowFilters controls whether the filter panel starts expanded.
	ShowFilters bool `json:"show_filters" yaml:"show_filters"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		DarkMode:     false,
		GlamourStyle: "auto",
		ShowFilters:  true,
	}
}
