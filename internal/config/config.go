package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"pafinder/internal/export"
	"pafinder/internal/source"
)

// DefaultPath is where the CLI looks for a config file when --config is not
// given.
const DefaultPath = "pafinder.yaml"

// Config holds all pafinder configuration.
type Config struct {
	// Where the program sheet comes from
	Source SourceConfig `yaml:"source"`

	// Where exports are written
	Export ExportConfig `yaml:"export"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// SourceConfig configures the program sheet location.
type SourceConfig struct {
	URL     string `yaml:"url"`
	File    string `yaml:"file"` // local CSV; takes precedence over url
	Timeout string `yaml:"timeout"`
	Watch   bool   `yaml:"watch"` // reload the browser when file changes
}

// ExportConfig configures CSV export.
type ExportConfig struct {
	Dir      string `yaml:"dir"`
	Filename string `yaml:"filename"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			URL:     source.DefaultURL,
			Timeout: "30s",
		},
		Export: ExportConfig{
			Dir:      ".",
			Filename: export.DefaultFilename,
		},
		UI: *DefaultUIConfig(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   "",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("PAFINDER_DATA_URL"); url != "" {
		c.Source.URL = url
	}
	if file := os.Getenv("PAFINDER_DATA_FILE"); file != "" {
		c.Source.File = file
	}
	if dir := os.Getenv("PAFINDER_EXPORT_DIR"); dir != "" {
		c.Export.Dir = dir
	}
	if v := os.Getenv("PAFINDER_DARK_MODE"); v != "" {
		c.UI.DarkMode = v == "1" || strings.EqualFold(v, "true")
	}
	if lvl := os.Getenv("PAFINDER_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
}

// GetSourceTimeout returns the fetch timeout as a duration.
func (c *Config) GetSourceTimeout() time.Duration {
	d, err := time.ParseDuration(c.Source.Timeout)
	if err != nil || d <= 0 {
		return source.DefaultTimeout
	}
	return d
}

// DataSource builds the loader's view of the source settings.
func (c *Config) DataSource() source.Source {
	return source.Source{
		FilePath: c.Source.File,
		URL:      c.Source.URL,
		Timeout:  c.GetSourceTimeout(),
	}
}

// ExportPath returns the file the interactive browser exports to.
func (c *Config) ExportPath() string {
	name := c.Export.Filename
	if name == "" {
		name = export.DefaultFilename
	}
	return filepath.Join(c.Export.Dir, name)
}

// ValidLogLevels lists the accepted logging.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Source.URL == "" && c.Source.File == "" {
		return fmt.Errorf("no program source configured (set source.url, source.file, PAFINDER_DATA_URL or PAFINDER_DATA_FILE)")
	}

	level, ok := normalizeLevel(c.Logging.Level)
	if !ok {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	c.Logging.Level = level

	return nil
}

// normalizeLevel folds case and surrounding space, maps "warning" to "warn"
// and an empty level to "info".
func normalizeLevel(level string) (string, bool) {
	l := strings.ToLower(strings.TrimSpace(level))
	switch l {
	case "":
		return "info", true
	case "warning":
		return "warn", true
	}
	for _, v := range ValidLogLevels {
		if l == v {
			return l, true
		}
	}
	return level, false
}
