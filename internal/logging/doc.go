// Package logging provides structured logging for fwtui.
//
// This package wraps a package-level zap logger with convenience functions
// and a few domain helpers for hardware polls and commands.
//
// # Log Levels
//
//   - Debug: every poll, sysfs probing details
//   - Info: applied commands, refresh interval changes
//   - Warn: failed commands, fire-and-forget writes that did not stick
//   - Error: fatal event loop failures
//
// # Configuration
//
// Logging is silent unless a level is given with --log-level or
// FWTUI_LOG_LEVEL. The dashboard draws on the terminal, so logs go to a file:
//
//	if err := logging.Initialize("debug", "/tmp/fwtui.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
package logging
