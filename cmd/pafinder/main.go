package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pafinder/cmd/pafinder/ui"
	"pafinder/internal/config"
	"pafinder/internal/logging"
	"pafinder/internal/source"
)

var (
	// Global flags
	verbose  bool
	cfgPath  string
	dataURL  string
	dataFile string
	timeout  time.Duration
	watch    bool

	// Resolved configuration
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pafinder",
	Short: "pafinder - browse and compare PA graduate programs",
	Long: `pafinder loads the published directory of Physician Assistant graduate
programs and lets you filter it, read a program's details, compare up to
three programs side by side, and download the current list as CSV.

Run without arguments to open the interactive browser.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = resolveConfig()
		if err != nil {
			return err
		}

		// The browser owns the terminal; it only logs to a configured file.
		interactive := !cmd.HasParent()
		logger, err = logging.New(cfg.Logging, interactive)
		if err != nil {
			return err
		}

		logging.For(logger, logging.CategoryBoot).Debug("configuration resolved",
			zap.String("config", cfgPath),
			zap.String("source", cfg.DataSource().String()),
			zap.Duration("timeout", cfg.GetSourceTimeout()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch the interactive browser
		ctx := commandContext(cmd)

		var changes <-chan struct{}
		if cfg.Source.Watch && cfg.Source.File != "" {
			w, err := source.NewWatcher(cfg.Source.File, logging.For(logger, logging.CategorySource))
			if err != nil {
				return fmt.Errorf("failed to watch %s: %w", cfg.Source.File, err)
			}
			if err := w.Start(ctx); err != nil {
				w.Stop()
				return fmt.Errorf("failed to watch %s: %w", cfg.Source.File, err)
			}
			defer w.Stop()
			changes = w.Changes()
		}

		return ui.Run(ctx, cfg, programLoader(), changes, logger)
	},
}

// resolveConfig layers the config file, environment and command-line flags.
func resolveConfig() (*config.Config, error) {
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	if dataURL != "" {
		c.Source.URL = dataURL
	}
	if dataFile != "" {
		c.Source.File = dataFile
	}
	if timeout > 0 {
		c.Source.Timeout = timeout.String()
	}
	if watch {
		c.Source.Watch = true
	}
	if verbose {
		c.Logging.Level = "debug"
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringVar(&dataURL, "data-url", "", "Program sheet CSV URL (or set PAFINDER_DATA_URL)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data-file", "", "Local program sheet CSV; overrides the URL (or set PAFINDER_DATA_FILE)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Sheet fetch timeout (default from config, 30s)")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the browser when --data-file changes")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
