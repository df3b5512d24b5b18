package config

import "time"

const (
	// CurrentVersion is the config file format version.
	CurrentVersion = 1
	// DefaultTheme is used when the file names no theme.
	DefaultTheme = "Framework"
	// DefaultTickIntervalMs is the default hardware refresh period.
	DefaultTickIntervalMs = 1000
	// MinTickIntervalMs is the fastest refresh period accepted from disk.
	MinTickIntervalMs = 100
)

// Config represents the entire user configuration file.
type Config struct {
	Version        int    `yaml:"version"`
	Theme          string `yaml:"theme"`            // Theme name, e.g. "Dracula"
	TickIntervalMs int64  `yaml:"tick_interval_ms"` // Hardware refresh period

	path string
}

// Default creates a new Config with default values, stored at path.
func Default(path string) *Config {
	return &Config{
		Version:        CurrentVersion,
		Theme:          DefaultTheme,
		TickIntervalMs: DefaultTickIntervalMs,
		path:           path,
	}
}

// Path returns the file the config is saved to.
func (c *Config) Path() string {
	return c.path
}

// TickInterval returns the refresh period as a duration.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// normalize replaces missing or out-of-range values with defaults.
func (c *Config) normalize() {
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.TickIntervalMs < MinTickIntervalMs {
		c.TickIntervalMs = DefaultTickIntervalMs
	}
}
