// Splash-demo runs a terminal application behind a loading overlay.
//
// The overlay is configured from a YAML file and stays up while simulated
// boot tasks run, then fades out to reveal a markdown document (or a boot
// report when no document is given).
//
// Usage:
//
//	splash-demo [flags]
//
// See 'splash-demo --help' for available options.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danhigham/splashscreen/internal/config"
	"github.com/danhigham/splashscreen/internal/domain"
	"github.com/danhigham/splashscreen/internal/logging"
	"github.com/danhigham/splashscreen/internal/state"
	"github.com/danhigham/splashscreen/internal/surface"
	"github.com/danhigham/splashscreen/internal/ui"
)

// Set at build time via -ldflags "-X main.version=v1.2.3 -X main.commit=abc123".
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var (
	cfgPath    string
	watch      bool
	logLevel   string
	logFile    string
	docPath    string
	minDisplay time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "splash-demo",
	Short: "Terminal loading overlay demo",
	Long: `Runs a terminal application behind a configurable loading overlay.

The overlay shows a logo, a message, a progress bar and a spinner while the
application's boot tasks run, then fades out. Every option can be set in the
YAML config file; with --watch, edits to that file restyle the live overlay.`,
	Example: `  # Run with the default config file
  splash-demo

  # Hot-reload a custom config and show a document once booted
  splash-demo --config ./splash.yaml --watch --document README.md

  # Verbose logs to a custom file
  splash-demo --log-level debug --log-file /tmp/splash.log`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("splash-demo %s (commit: %s)\n", version, commit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	rootCmd.Flags().StringVar(&cfgPath, "config", config.Path(), "Path to the YAML config file (missing file = defaults)")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "Reload the config file when it changes")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level ("+strings.Join(config.LogLevels(), ", ")+"); overrides the config file")
	rootCmd.Flags().StringVar(&logFile, "log-file", filepath.Join(config.Dir(), "splash-demo.log"), "Log file path (empty disables logging)")
	rootCmd.Flags().StringVar(&docPath, "document", "", "Markdown file shown once the overlay is gone")
	rootCmd.Flags().DurationVar(&minDisplay, "min-display", time.Second, "Minimum time the overlay stays up while boot tasks run")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return fmt.Errorf("load config from %s: %w", cfgPath, err)
	}

	level := cfg.LogLevel
	if cmd.Flags().Changed("log-level") {
		level = logLevel
	}
	logger, err := logging.New(level, logFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var document string
	if docPath != "" {
		data, err := os.ReadFile(docPath)
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}
		document = string(data)
	}

	tasks := make([]domain.BootTask, len(cfg.Boot))
	for i, b := range cfg.Boot {
		tasks[i] = domain.BootTask{Name: b.Name, Duration: b.Duration()}
	}

	// Create store (drawFunc will be set after app is created)
	store := state.New(nil)

	model := ui.NewModel(store, ui.Options{
		Splash: cfg.Splash.ToPartial(func() {
			logger.Info("overlay dismissed")
		}),
		Tasks:     tasks,
		Document:  document,
		MinSplash: minDisplay,
		Surface:   surface.New(surface.WithLogger(logger)),
		Logger:    logger,
	})
	app := ui.NewApp(model)

	// Now wire drawFunc
	store.SetDrawFunc(app.DrawFunc())

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if watch {
		w, err := config.NewWatcher(cfgPath, logger, func(c *config.Config) {
			app.Send(ui.ConfigReloadedMsg{Config: c})
		})
		if err != nil {
			return fmt.Errorf("watch config: %w", err)
		}
		defer w.Stop()
		go w.Start(ctx)
	}

	logger.Info("starting",
		zap.String("config", cfgPath),
		zap.Int("boot_tasks", len(tasks)),
		zap.Bool("watch", watch),
	)

	// Run TUI (blocks until quit)
	return app.Run()
}
