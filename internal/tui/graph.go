package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/fwtui/internal/hardware"
	"github.com/muurk/fwtui/internal/panel"
)

// History window and graph ranges.
const (
	HistorySize   = 200
	maxVoltageV   = 20.0
	maxCurrentA   = 5.0
	maxFanRPM     = 6000.0
	graphMinWidth = 8
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// series is a fixed-capacity ring of samples, oldest first.
type series struct {
	samples []float64
	limit   int
}

func newSeries(limit int) *series {
	return &series{samples: make([]float64, 0, limit), limit: limit}
}

func (s *series) push(v float64) {
	if len(s.samples) == s.limit {
		copy(s.samples, s.samples[1:])
		s.samples = s.samples[:s.limit-1]
	}
	s.samples = append(s.samples, v)
}

func (s *series) len() int { return len(s.samples) }

func (s *series) last() (float64, bool) {
	if len(s.samples) == 0 {
		return 0, false
	}
	return s.samples[len(s.samples)-1], true
}

// sparkline renders the newest width samples scaled against ceiling. Missing
// samples on the left are padded with spaces.
func (s *series) sparkline(width int, ceiling float64) string {
	if width < 1 {
		return ""
	}
	start := 0
	if len(s.samples) > width {
		start = len(s.samples) - width
	}
	visible := s.samples[start:]

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width-len(visible)))
	for _, v := range visible {
		idx := int(clampRatio(v/ceiling) * float64(len(sparkBlocks)-1))
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}

// ChargePanels pairs the charger history graph with the charge settings.
// It takes focus as one panel; keys and snapshots go to the settings.
type ChargePanels struct {
	settings *panel.ChargePanel
	voltage  *series
	current  *series
}

// NewChargePanels creates the composite with empty history.
func NewChargePanels(keys panel.KeyMap) *ChargePanels {
	return &ChargePanels{
		settings: panel.NewChargePanel(keys),
		voltage:  newSeries(HistorySize),
		current:  newSeries(HistorySize),
	}
}

// Panel implements panel.Adjustable.
func (c *ChargePanels) Panel() *panel.Panel { return c.settings.Panel() }

// HandleKey implements panel.Adjustable.
func (c *ChargePanels) HandleKey(msg tea.KeyMsg) (panel.Command, bool) {
	return c.settings.HandleKey(msg)
}

// Sync implements panel.Adjustable.
func (c *ChargePanels) Sync(snap hardware.Snapshot) {
	c.settings.Sync(snap)
}

// Record appends one sample per polled snapshot. Missing readings count
// as zero.
func (c *ChargePanels) Record(snap hardware.Snapshot) {
	v, _ := snap.ChargerVoltageVolts()
	a, _ := snap.ChargerCurrentAmps()
	c.voltage.push(v)
	c.current.push(a)
}

// Samples returns the number of recorded samples.
func (c *ChargePanels) Samples() int { return c.voltage.len() }

func (c *ChargePanels) renderGraph(s Styles, width int) string {
	if width < graphMinWidth {
		width = graphMinWidth
	}
	label := func(name string, ser *series, unit string) string {
		v, ok := ser.last()
		if !ok {
			return s.Info.Render(name + " N/A")
		}
		return s.Info.Render(fmt.Sprintf("%s %.1f %s", name, v, unit))
	}

	volts := lipgloss.NewStyle().Foreground(s.Theme().ChargeBar).
		Render(c.voltage.sparkline(width, maxVoltageV))
	amps := lipgloss.NewStyle().Foreground(s.Theme().BrightnessBar).
		Render(c.current.sparkline(width, maxCurrentA))

	return lipgloss.JoinVertical(lipgloss.Left,
		label("Voltage", c.voltage, "V"),
		volts,
		label("Current", c.current, "A"),
		amps,
	)
}

// ThermalHistory keeps the fan speed history shown above the sensors.
type ThermalHistory struct {
	fan *series
}

// NewThermalHistory creates an empty history.
func NewThermalHistory() *ThermalHistory {
	return &ThermalHistory{fan: newSeries(HistorySize)}
}

// Record appends the first fan's speed, or zero without a fan reading.
func (h *ThermalHistory) Record(snap hardware.Snapshot) {
	var rpm float64
	if len(snap.FanRPM) > 0 {
		rpm = float64(snap.FanRPM[0])
	}
	h.fan.push(rpm)
}

// Samples returns the number of recorded samples.
func (h *ThermalHistory) Samples() int { return h.fan.len() }

func (h *ThermalHistory) renderGraph(s Styles, width int) string {
	if width < graphMinWidth {
		width = graphMinWidth
	}
	label := s.Info.Render("Fan N/A")
	if rpm, ok := h.fan.last(); ok {
		label = s.Info.Render(fmt.Sprintf("Fan %.0f RPM", rpm))
	}
	graph := lipgloss.NewStyle().Foreground(s.Theme().HighlightedText).
		Render(h.fan.sparkline(width, maxFanRPM))
	return lipgloss.JoinVertical(lipgloss.Left, label, graph)
}
