// Package logging provides config-driven categorized logging for pafinder.
// Each category is a named child of one zap logger and can be switched off
// in the logging section of the config file.
package logging

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pafinder/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, config resolution
	CategorySource  Category = "source"  // Sheet fetch and parse
	CategoryCatalog Category = "catalog" // Filtering and option indexing
	CategorySession Category = "session" // Session state transitions
	CategoryUI      Category = "ui"      // Interactive browser
	CategoryExport  Category = "export"  // CSV export
)

// Categories lists every category.
var Categories = []Category{
	CategoryBoot,
	CategorySource,
	CategoryCatalog,
	CategorySession,
	CategoryUI,
	CategoryExport,
}

var (
	enabled   map[Category]bool
	enabledMu sync.RWMutex
)

// New builds the root logger from cfg. Subcommands log to stderr unless a
// file is configured. The interactive browser owns the terminal, so without
// a file it gets a no-op logger.
func New(cfg config.LoggingConfig, interactive bool) (*zap.Logger, error) {
	setCategories(cfg)

	if interactive && cfg.File == "" {
		return zap.NewNop(), nil
	}

	var zc zap.Config
	if strings.EqualFold(cfg.Format, "json") {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if cfg.File != "" {
		zc.OutputPaths = []string{cfg.File}
		zc.ErrorOutputPaths = []string{cfg.File}
	} else {
		zc.OutputPaths = []string{"stderr"}
		zc.ErrorOutputPaths = []string{"stderr"}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// ParseLevel maps a config level name onto a zap level. Empty means info.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
}

func setCategories(cfg config.LoggingConfig) {
	enabledMu.Lock()
	defer enabledMu.Unlock()

	enabled = make(map[Category]bool, len(Categories))
	for _, c := range Categories {
		enabled[c] = cfg.IsCategoryEnabled(string(c))
	}
}

// IsCategoryEnabled returns whether a specific category is enabled. Before
// New is called every category is enabled.
func IsCategoryEnabled(category Category) bool {
	enabledMu.RLock()
	defer enabledMu.RUnlock()

	if enabled == nil {
		return true
	}
	on, ok := enabled[category]
	if !ok {
		return true
	}
	return on
}

// For returns the category logger derived from base, or a no-op logger when
// the category is disabled or base is nil.
func For(base *zap.Logger, category Category) *zap.Logger {
	if base == nil || !IsCategoryEnabled(category) {
		return zap.NewNop()
	}
	return base.Named(string(category))
}
