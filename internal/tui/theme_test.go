package tui

import (
	"strings"
	"testing"

	"github.com/muurk/fwtui/internal/hardware"
	"github.com/muurk/fwtui/internal/panel"
)

func TestThemeByName(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"Dracula", "Dracula", true},
		{"catppuccin mocha", "Catppuccin Mocha", true},
		{"monokai pro light", "Monokai Pro Light", true},
		{"Alucard", "Alucard", true},
		{"Solarized", "Framework", false},
		{"", "Framework", false},
	}

	for _, tt := range tests {
		got, ok := ThemeByName(tt.name)
		if got.Name != tt.want || ok != tt.wantOK {
			t.Errorf("ThemeByName(%q) = %q, %v, want %q, %v", tt.name, got.Name, ok, tt.want, tt.wantOK)
		}
	}
}

func TestThemeCycleStartsWithDarkPalettes(t *testing.T) {
	want := []string{"Framework", "Dracula", "Nord", "Gruvbox"}
	name := Themes[0].Name
	for i, w := range want {
		if name != w {
			t.Errorf("theme %d = %q, want %q", i, name, w)
		}
		name = NextTheme(name).Name
	}
}

func TestNextThemeCyclesAll(t *testing.T) {
	name := Themes[0].Name
	seen := map[string]bool{}
	for range Themes {
		seen[name] = true
		name = NextTheme(name).Name
	}
	if name != Themes[0].Name {
		t.Errorf("after %d steps theme = %q, want %q", len(Themes), name, Themes[0].Name)
	}
	if len(seen) != len(Themes) {
		t.Errorf("visited %d themes, want %d", len(seen), len(Themes))
	}
	if got := NextTheme("unknown").Name; got != Themes[0].Name {
		t.Errorf("NextTheme(unknown) = %q, want %q", got, Themes[0].Name)
	}
}

func TestSeriesKeepsNewestSamples(t *testing.T) {
	s := newSeries(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		s.push(v)
	}
	if s.len() != 3 {
		t.Fatalf("len() = %d, want 3", s.len())
	}
	if s.samples[0] != 3 || s.samples[2] != 5 {
		t.Errorf("samples = %v, want [3 4 5]", s.samples)
	}
	if v, _ := s.last(); v != 5 {
		t.Errorf("last() = %v, want 5", v)
	}
}

func TestSparkline(t *testing.T) {
	s := newSeries(HistorySize)
	s.push(0)
	s.push(10)
	s.push(25)

	got := s.sparkline(5, 20)
	if got != "  ▁▄█" {
		t.Errorf("sparkline() = %q, want %q", got, "  ▁▄█")
	}
	if got := s.sparkline(2, 20); len([]rune(got)) != 2 {
		t.Errorf("sparkline(2) = %q, want 2 runes", got)
	}
}

func TestChargePanelsRecordsMissingAsZero(t *testing.T) {
	c := NewChargePanels(panel.DefaultKeyMap())
	c.Record(hardware.Snapshot{})

	if c.Samples() != 1 {
		t.Fatalf("Samples() = %d, want 1", c.Samples())
	}
	if v, _ := c.voltage.last(); v != 0 {
		t.Errorf("voltage = %v, want 0", v)
	}

	out := c.renderGraph(NewStyles(Themes[0]), 20)
	if !strings.Contains(out, "Voltage 0.0 V") {
		t.Errorf("renderGraph() = %q, want voltage label", out)
	}
}

func TestThermalHistoryRecordsFirstFan(t *testing.T) {
	h := NewThermalHistory()
	h.Record(hardware.Snapshot{FanRPM: []uint32{3000, 1200}})
	h.Record(hardware.Snapshot{})

	if h.Samples() != 2 {
		t.Fatalf("Samples() = %d, want 2", h.Samples())
	}
	if h.fan.samples[0] != 3000 || h.fan.samples[1] != 0 {
		t.Errorf("samples = %v, want [3000 0]", h.fan.samples)
	}

	h.Record(hardware.Snapshot{FanRPM: []uint32{6000}})
	out := h.renderGraph(NewStyles(Themes[0]), 10)
	if !strings.Contains(out, "Fan 6000 RPM") || !strings.Contains(out, "█") {
		t.Errorf("renderGraph() = %q, want the label and a full block", out)
	}
}
