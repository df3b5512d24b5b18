package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/muurk/fwtui/internal/config"
)

func TestLoadDashboardConfig(t *testing.T) {
	// A regular file as the parent directory makes the default config unwritable.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		override time.Duration
		wantTick time.Duration
		wantErr  bool
	}{
		{"writable", filepath.Join(t.TempDir(), "config.yaml"), 0, time.Second, false},
		{"unwritable uses defaults", filepath.Join(blocker, "config.yaml"), 0, time.Second, false},
		{"override", filepath.Join(t.TempDir(), "config.yaml"), 250 * time.Millisecond, 250 * time.Millisecond, false},
		{"override below minimum", filepath.Join(t.TempDir(), "config.yaml"), 10 * time.Millisecond, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadDashboardConfig(tt.path, tt.override)
			if (err != nil) != tt.wantErr {
				t.Fatalf("loadDashboardConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg.Theme != config.DefaultTheme {
				t.Errorf("Theme = %q, want %q", cfg.Theme, config.DefaultTheme)
			}
			if cfg.TickInterval() != tt.wantTick {
				t.Errorf("TickInterval() = %v, want %v", cfg.TickInterval(), tt.wantTick)
			}
		})
	}
}
