// Package tui implements the fwtui dashboard: the bubbletea model that
// drives the panels from the event loop, executes their commands against
// the hardware, and renders the telemetry.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/fwtui/internal/config"
	"github.com/muurk/fwtui/internal/event"
	"github.com/muurk/fwtui/internal/fingerprint"
	"github.com/muurk/fwtui/internal/hardware"
	"github.com/muurk/fwtui/internal/logging"
	"github.com/muurk/fwtui/internal/panel"
	"github.com/muurk/fwtui/internal/refresh"
)

// RefreshPresets are the tick intervals the +/- keys step through.
var RefreshPresets = []time.Duration{
	250 * time.Millisecond,
	500 * time.Millisecond,
	time.Second,
	2 * time.Second,
	5 * time.Second,
}

// FirmwareUpdateMessage is shown when the EC rejects a fingerprint
// brightness write because its firmware predates the command.
const FirmwareUpdateMessage = "Couldn't set fingerprint brightness. Please, update your BIOS."

// eventMsg carries one event from the loop into Update.
type eventMsg struct {
	event.Event
}

// loopErrMsg reports that the loop can no longer deliver events.
type loopErrMsg struct {
	err error
}

// App is the dashboard model. It owns the current snapshot, the panels and
// the theme; all hardware calls happen synchronously in Update.
type App struct {
	ctx    context.Context
	device hardware.Device
	source *refresh.Source
	loop   *event.Loop
	cfg    *config.Config

	keys       panel.KeyMap
	registry   *panel.Registry
	charge     *ChargePanels
	brightness *panel.BrightnessPanel
	thermal    *ThermalHistory

	snapshot hardware.Snapshot
	styles   Styles
	help     help.Model

	status   string // dismissible message, empty when hidden
	err      error  // fatal error that ended the program
	quitting bool

	Width  int
	Height int
}

// NewApp builds the dashboard and takes the first snapshot. The refresh
// period and theme come from cfg; ctx bounds every hardware call and the
// wait on loop.
func NewApp(ctx context.Context, device hardware.Device, loop *event.Loop, cfg *config.Config) App {
	keys := panel.DefaultKeyMap()
	charge := NewChargePanels(keys)
	brightness := panel.NewBrightnessPanel(keys, fingerprint.NewPolicy(device.FingerprintCapability()))

	theme, ok := ThemeByName(cfg.Theme)
	if !ok {
		logging.Warn("Unknown theme in config, using default",
			zap.String("theme", cfg.Theme),
			zap.String("default", theme.Name))
	}

	m := App{
		ctx:        ctx,
		device:     device,
		source:     refresh.New(device, cfg.TickInterval()),
		loop:       loop,
		cfg:        cfg,
		keys:       keys,
		registry:   panel.NewRegistry(keys, charge, brightness),
		charge:     charge,
		brightness: brightness,
		thermal:    NewThermalHistory(),
		styles:     NewStyles(theme),
		help:       help.New(),
	}
	m.applySnapshot(m.source.Poll(ctx))
	m.registry.Sync(m.snapshot)
	return m
}

// Init starts waiting for the first event.
func (m App) Init() tea.Cmd {
	return m.waitForEvent()
}

// waitForEvent returns the single outstanding receive on the loop. A new
// one is issued only after the previous event has been handled, so events
// reach Update in queue order.
func (m App) waitForEvent() tea.Cmd {
	loop, ctx := m.loop, m.ctx
	return func() tea.Msg {
		ev, err := loop.Next(ctx)
		if err != nil {
			return loopErrMsg{err: err}
		}
		return eventMsg{ev}
	}
}

// Update handles loop events and window resizes.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		// Normally diverted by Loop.Filter before reaching the model.
		m.loop.Feed(msg)
		return m, nil

	case eventMsg:
		m.handleEvent(msg.Event)
		if m.quitting {
			return m, tea.Quit
		}
		return m, m.waitForEvent()

	case loopErrMsg:
		if !errors.Is(msg.err, context.Canceled) {
			m.err = fmt.Errorf("event loop: %w", msg.err)
			logging.Error("Event loop stopped", zap.Error(msg.err))
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *App) handleEvent(ev event.Event) {
	switch ev.Kind {
	case event.KindTick:
		m.applySnapshot(m.source.Poll(m.ctx))
	case event.KindInput:
		if snap, ok := m.source.PollIfNeeded(m.ctx); ok {
			m.applySnapshot(snap)
		}
		m.handleKey(ev.Key)
	}
	m.registry.Sync(m.snapshot)
}

func (m *App) handleKey(k tea.KeyMsg) {
	if m.status != "" && key.Matches(k, m.keys.Cancel) {
		m.status = ""
		return
	}
	if cmd, ok := m.registry.HandleKey(k); ok {
		m.execute(cmd)
	}
}

func (m *App) execute(cmd panel.Command) {
	logging.Debug("Executing command", zap.Stringer("command", cmd))

	switch cmd.Kind {
	case panel.CommandQuit:
		m.quitting = true
	case panel.CommandSetMaxChargeLimit:
		m.finishWrite(cmd, m.device.SetMaxChargeLimit(m.ctx, cmd.Value))
	case panel.CommandSetFingerprintBrightness:
		m.finishWrite(cmd, m.device.SetFingerprintBrightness(m.ctx, cmd.Value))
	case panel.CommandSetKeyboardBrightness:
		m.device.SetKeyboardBrightness(m.ctx, cmd.Value)
		m.finishWrite(cmd, nil)
	case panel.CommandCycleTheme:
		m.cycleTheme()
	case panel.CommandFasterRefresh:
		m.setTickInterval(fasterPreset(m.source.Period()))
	case panel.CommandSlowerRefresh:
		m.setTickInterval(slowerPreset(m.source.Period()))
	}
}

// finishWrite reports a hardware write. A successful write is followed by
// a fresh snapshot so the panels show what the hardware accepted.
func (m *App) finishWrite(cmd panel.Command, err error) {
	logging.LogCommand(cmd.Kind.String(), cmd.Value, err)
	if err != nil {
		m.status = commandErrorMessage(cmd, err)
		return
	}
	m.applySnapshot(m.source.Poll(m.ctx))
}

func commandErrorMessage(cmd panel.Command, err error) string {
	if cmd.Kind == panel.CommandSetFingerprintBrightness && errors.Is(err, hardware.ErrFirmwareUpdateRequired) {
		return FirmwareUpdateMessage
	}
	return fmt.Sprintf("Couldn't %s: %v", cmd.Kind, err)
}

func (m *App) applySnapshot(snap hardware.Snapshot) {
	m.snapshot = snap
	m.charge.Record(snap)
	m.thermal.Record(snap)
}

func (m *App) cycleTheme() {
	next := NextTheme(m.styles.Theme().Name)
	m.styles = NewStyles(next)
	if err := m.cfg.SetTheme(next.Name); err != nil {
		logging.Warn("Failed to save theme", zap.String("theme", next.Name), zap.Error(err))
	}
}

func (m *App) setTickInterval(d time.Duration) {
	from := m.source.Period()
	if d == from {
		return
	}
	m.loop.SetTickInterval(d)
	m.source.SetPeriod(d)
	logging.LogTickInterval(from, d)
	if err := m.cfg.SetTickInterval(d); err != nil {
		logging.Warn("Failed to save tick interval", zap.Duration("interval", d), zap.Error(err))
	}
}

// fasterPreset returns the largest preset shorter than cur, or cur when
// none is.
func fasterPreset(cur time.Duration) time.Duration {
	for i := len(RefreshPresets) - 1; i >= 0; i-- {
		if RefreshPresets[i] < cur {
			return RefreshPresets[i]
		}
	}
	return cur
}

// slowerPreset returns the smallest preset longer than cur, or cur when
// none is.
func slowerPreset(cur time.Duration) time.Duration {
	for _, p := range RefreshPresets {
		if p > cur {
			return p
		}
	}
	return cur
}

// Err returns the fatal error that stopped the dashboard, if any.
func (m App) Err() error { return m.err }

// Quitting reports whether the last Update ended the program.
func (m App) Quitting() bool { return m.quitting }

// Snapshot returns the snapshot currently displayed.
func (m App) Snapshot() hardware.Snapshot { return m.snapshot }

// Status returns the visible status message, or "".
func (m App) Status() string { return m.status }

// Theme returns the active theme.
func (m App) Theme() Theme { return m.styles.Theme() }

// TickInterval returns the current refresh period.
func (m App) TickInterval() time.Duration { return m.source.Period() }

// Registry exposes the panel registry for rendering and tests.
func (m App) Registry() *panel.Registry { return m.registry }
