// Package config provides user configuration management for fwtui.
//
// The configuration is a small YAML file holding the selected theme and the
// hardware refresh interval. It is loaded once at startup and written back
// whenever either value changes from the dashboard.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/fwtui/config.yaml or $HOME/.config/fwtui/config.yaml
//   - macOS: $HOME/.config/fwtui/config.yaml
//   - Windows: %LOCALAPPDATA%\fwtui\config.yaml
//
// # Usage Example
//
//	cfg, err := config.LoadOrCreate("")
//	if err != nil {
//	    logging.Warn("config not saved", zap.Error(err))
//	}
//
//	if err := cfg.SetTheme("Nord"); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// File writes are protected by a mutex and performed atomically (write to a
// temporary file, then rename). A Config value itself is not safe for
// concurrent mutation.
package config
