package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/muurk/fwtui/internal/logging"
)

const (
	appName    = "fwtui"
	configFile = "config.yaml"
)

// Mutex for thread-safe file operations
var fileMutex sync.Mutex

// GetConfigDir returns the OS-appropriate configuration directory for the application.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/fwtui or $HOME/.config/fwtui
//   - macOS: $HOME/.config/fwtui (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\fwtui
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			return "", fmt.Errorf("cannot determine config directory (LOCALAPPDATA not set)")
		}
		baseDir = filepath.Join(localAppData, appName)

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the default configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Load reads the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{path: path}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported config version: %d (expected %d)", cfg.Version, CurrentVersion)
	}

	cfg.normalize()
	return cfg, nil
}

// LoadOrCreate loads the configuration at path, or the default path when
// path is empty. A missing or unreadable file is replaced with defaults,
// which are written back. The returned Config is always usable; a non-nil
// error only reports that writing the defaults failed.
func LoadOrCreate(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return Default(""), fmt.Errorf("failed to get config path: %w", err)
		}
	}

	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		logging.Warn("Config file unusable, recreating with defaults",
			zap.String("path", path),
			zap.Error(err),
		)
	}

	cfg = Default(path)
	if err := cfg.Save(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save saves the config to disk.
// Performs an atomic write to prevent corruption on crash.
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("config has no file path")
	}

	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# fwtui configuration file
# Theme and refresh interval are updated automatically when changed
# from the dashboard ([t] and [+]/[-]).

`)
	data = append(header, data...)

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}

// SetTheme records the theme and saves if it changed.
func (c *Config) SetTheme(name string) error {
	if c.Theme == name {
		return nil
	}
	c.Theme = name
	return c.Save()
}

// SetTickInterval records the refresh period and saves if it changed.
func (c *Config) SetTickInterval(d time.Duration) error {
	ms := d.Milliseconds()
	if c.TickIntervalMs == ms {
		return nil
	}
	c.TickIntervalMs = ms
	return c.Save()
}
