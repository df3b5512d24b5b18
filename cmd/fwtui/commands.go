package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/fwtui/internal/config"
	"github.com/muurk/fwtui/internal/fingerprint"
	"github.com/muurk/fwtui/internal/hardware"
	"github.com/muurk/fwtui/internal/tui"
	"github.com/muurk/fwtui/internal/version"
)

const statusPollTimeout = 5 * time.Second

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(configCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fwtui %s\n", version.Full())
	},
}

// statusCmd prints one snapshot without starting the dashboard
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the current hardware status",
	Long: `Read the hardware once and print battery, brightness, privacy,
BIOS, thermal and USB-PD information.`,
	Example: `  # Status of this laptop
  fwtui status

  # Status of the simulated laptop
  fwtui status --demo`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), statusPollTimeout)
	defer cancel()

	device := openDevice()
	snap := device.Poll(ctx)
	printStatus(cmd.OutOrStdout(), snap, fingerprint.NewPolicy(device.FingerprintCapability()))
	return nil
}

func printStatus(w io.Writer, snap hardware.Snapshot, policy fingerprint.Policy) {
	fmt.Fprintln(w, bold("Battery:"))
	if snap.ChargePercentage != nil {
		fmt.Fprintf(w, "  Charge: %s (%s)\n", bold("%d%%", *snap.ChargePercentage), chargingText(snap))
	} else {
		fmt.Fprintf(w, "  Charge: N/A (%s)\n", chargingText(snap))
	}
	fmt.Fprintf(w, "  Max charge limit: %s\n", bold("%s", hardware.FormatOptional(snap.MaxChargeLimit, "%")))
	fmt.Fprintf(w, "  Charger: %s, %s\n",
		hardware.FormatOptional(snap.ChargerVoltage, " mV"),
		hardware.FormatOptional(snap.ChargerCurrent, " mA"))
	fmt.Fprintf(w, "  Cycle count: %s\n", hardware.FormatOptional(snap.CycleCount, ""))
	if loss, ok := snap.CapacityLossPercentage(); ok {
		fmt.Fprintf(w, "  Capacity loss: %s\n", bold("%.2f%%", loss))
	}
	if perCycle, ok := snap.CapacityLossPerCycle(); ok {
		text := color.New(color.Bold, color.FgGreen).Sprintf("%.3f%%", perCycle)
		if perCycle > hardware.NormalCapacityLossPerCycle {
			text = color.New(color.Bold, color.FgRed).Sprintf("%.3f%% (above %.3f%%)", perCycle, hardware.NormalCapacityLossPerCycle)
		}
		fmt.Fprintf(w, "  Capacity loss per cycle: %s\n", text)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, bold("Brightness:"))
	if snap.FingerprintBrightness != nil {
		fmt.Fprintf(w, "  Fingerprint LED: %s\n", bold("%s", policy.Label(*snap.FingerprintBrightness)))
	} else {
		fmt.Fprintln(w, "  Fingerprint LED: N/A")
	}
	fmt.Fprintf(w, "  Keyboard: %s\n", bold("%s", hardware.FormatOptional(snap.KeyboardBrightness, "%")))
	fmt.Fprintln(w)

	fmt.Fprintln(w, bold("Privacy:"))
	fmt.Fprintf(w, "  Microphone: %s\n", bool2Text(snap.MicrophoneEnabled))
	fmt.Fprintf(w, "  Camera: %s\n", bool2Text(snap.CameraEnabled))
	fmt.Fprintln(w)

	fmt.Fprintln(w, bold("BIOS:"))
	fmt.Fprintf(w, "  Vendor: %s\n", orNA(snap.BIOSVendor))
	fmt.Fprintf(w, "  Version: %s\n", orNA(snap.BIOSVersion))
	fmt.Fprintf(w, "  Release date: %s\n", orNA(snap.BIOSReleaseDate))
	fmt.Fprintf(w, "  OS: %s\n", orNA(snap.Platform))

	if len(snap.FanRPM) > 0 || len(snap.Temperatures) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, bold("Thermal:"))
		for i, rpm := range snap.FanRPM {
			fmt.Fprintf(w, "  Fan %d: %s\n", i+1, bold("%d RPM", rpm))
		}
		for _, t := range snap.Temperatures {
			fmt.Fprintf(w, "  %s: %s\n", t.Name, bold("%.0f °C", t.Celsius))
		}
	}

	if len(snap.PDPorts) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, bold("USB-PD ports:"))
		for _, p := range snap.PDPorts {
			if !p.Connected {
				fmt.Fprintf(w, "  %s: disconnected\n", p.Name)
				continue
			}
			fmt.Fprintf(w, "  %s: %s, %s, %s\n", p.Name, p.Role, p.ChargingType,
				bold("%.1f V / %d mA", float64(p.VoltageNow)/1000, p.CurrentLimit))
		}
	}
}

func chargingText(snap hardware.Snapshot) string {
	switch status := snap.ChargingStatus(); status {
	case "Charging":
		return color.GreenString(status)
	case "Discharging":
		return color.RedString(status)
	default:
		return status
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("ON")
	}
	return color.New(color.Bold, color.FgRed).Sprint("OFF")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the dashboard themes",
	Long:  `List the built-in themes. The active one is marked with '*'; press t in the dashboard to cycle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		current := config.DefaultTheme
		if cfg, err := config.Load(path); err == nil {
			current = cfg.Theme
		}

		active, _ := tui.ThemeByName(current)
		for _, t := range tui.Themes {
			marker := " "
			if t.Name == active.Name {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, t.Name)
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		cfg, err := config.Load(path)
		if err != nil {
			cmd.PrintErrf("Using defaults: %v\n", err)
			cfg = config.Default(path)
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}
