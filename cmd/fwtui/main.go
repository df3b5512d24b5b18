// Fwtui is a terminal dashboard for Framework laptops.
//
// It shows battery, charger, USB-PD, thermal, privacy switch and BIOS
// telemetry, and lets the user adjust the battery charge limit, the
// fingerprint LED brightness and the keyboard backlight.
//
// Usage:
//
//	fwtui [command] [flags]
//
// Running without arguments launches the dashboard.
// See 'fwtui --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/muurk/fwtui/internal/config"
	"github.com/muurk/fwtui/internal/event"
	"github.com/muurk/fwtui/internal/hardware"
	"github.com/muurk/fwtui/internal/logging"
	"github.com/muurk/fwtui/internal/tui"
	"github.com/muurk/fwtui/internal/version"
)

const logFileName = "fwtui.log"

// Global flags
var (
	configPath   string
	logLevel     string
	demoMode     bool
	tickInterval time.Duration
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fwtui",
	Short: "Framework laptop hardware dashboard",
	Long: `A terminal dashboard for Framework laptops.

Shows battery, charger, USB-PD port, thermal, privacy switch and BIOS
telemetry, and adjusts the max charge limit, fingerprint LED brightness
and keyboard backlight.

Keys: tab switches panels, enter edits or applies, esc cancels,
left/right change a value, t cycles themes, +/- change the refresh rate.`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runDashboard,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is <config dir>/fwtui/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); logs go to "+logFileName+" in the config dir")
	rootCmd.PersistentFlags().BoolVar(&demoMode, "demo", false, "Use a simulated laptop instead of the hardware")
	rootCmd.Flags().DurationVar(&tickInterval, "tick-interval", 0, "Refresh period, e.g. 500ms (default from config)")
}

// setupLogging sends logs to a file, since the dashboard owns the terminal.
func setupLogging(cmd *cobra.Command, args []string) error {
	if logLevel == "" && os.Getenv(logging.LogLevelEnvVar) == "" {
		return logging.Initialize("", "")
	}

	path := os.Getenv(logging.LogFileEnvVar)
	if path == "" {
		dir, err := config.GetConfigDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		path = filepath.Join(dir, logFileName)
	}
	return logging.Initialize(logLevel, path)
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}

func openDevice() hardware.Device {
	if demoMode {
		return hardware.NewDemo()
	}
	return hardware.OpenSysfs()
}

// loadDashboardConfig loads the config at path and applies the
// --tick-interval override. Failing to write the default config is not
// fatal; the defaults are used for this run.
func loadDashboardConfig(path string, override time.Duration) (*config.Config, error) {
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		logging.Warn("Failed to write default config, continuing with defaults",
			zap.String("path", path),
			zap.Error(err),
		)
	}
	if override != 0 {
		if override < config.MinTickIntervalMs*time.Millisecond {
			return nil, fmt.Errorf("tick interval %v is below the minimum of %dms", override, config.MinTickIntervalMs)
		}
		cfg.TickIntervalMs = override.Milliseconds()
	}
	return cfg, nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the dashboard needs a terminal; use 'fwtui status' for plain output")
	}

	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	cfg, err := loadDashboardConfig(path, tickInterval)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	loop := event.New(cfg.TickInterval())
	loop.Run(ctx)
	defer loop.CloseInput()

	app := tui.NewApp(ctx, openDevice(), loop, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithFilter(loop.Filter))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}

	if m, ok := final.(tui.App); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
