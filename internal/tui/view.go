package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/fwtui/internal/hardware"
	"github.com/muurk/fwtui/internal/panel"
	"github.com/muurk/fwtui/internal/version"
)

const (
	percentLabelWidth = 20
	portKeyWidth      = 15
	notAvailable      = "N/A"
)

// View renders the whole dashboard.
func (m App) View() string {
	if m.quitting {
		return ""
	}

	width := m.Width
	if width <= 0 {
		width = DefaultWidth
	}

	body := m.renderBody(width)
	if m.status != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body,
			m.styles.Status.Render(m.status+"  (esc to dismiss)"))
	}

	return m.styles.RenderApplicationContainer(
		m.renderTitle(),
		body,
		m.styles.Help.Render(m.help.View(m.keys)),
		width,
		m.Height,
	)
}

func (m App) renderTitle() string {
	s := m.styles
	snap := m.snapshot

	statusStyle := s.Info
	if snap.ACConnected {
		statusStyle = s.OK
	}

	parts := []string{
		s.Highlight.Render(AppTitle + " " + version.Short()),
	}
	if snap.BIOSVersion != "" {
		parts = append(parts, "BIOS "+snap.BIOSVersion)
	}
	parts = append(parts, statusStyle.Render(snap.ChargingStatus()))
	if snap.ChargePercentage != nil {
		parts = append(parts, statusStyle.Render(fmt.Sprintf("%d%%", *snap.ChargePercentage)))
	}
	if snap.MaxChargeLimit != nil {
		parts = append(parts, fmt.Sprintf("Max: %d%%", *snap.MaxChargeLimit))
	}
	parts = append(parts, s.Info.Render("Refresh: "+m.source.Period().String()))

	return strings.Join(parts, "  │  ")
}

func (m App) renderBody(width int) string {
	if width < MinTerminalWidth {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderCharge(width),
			m.renderBrightness(width),
			m.renderPrivacy(width),
			m.renderBIOS(width),
			m.renderPDPorts(width),
			m.renderThermal(width),
		)
	}

	leftW := width / 2
	rightW := width - leftW
	privacyW := leftW / 2

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderCharge(leftW),
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderPrivacy(privacyW),
			m.renderBIOS(leftW-privacyW),
		),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderBrightness(rightW),
		m.renderPDPorts(rightW),
		m.renderThermal(rightW),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func gaugeWidth(panelWidth int) int {
	return panelWidth - panelChromeWidth - KeyColumnWidth - percentLabelWidth
}

// controlText decorates a control's value while it is being edited.
func (m App) controlText(c panel.Control, text string) string {
	if c.Focused() {
		return m.styles.Highlight.Render("◀ " + text + " ▶")
	}
	return text
}

func isCurrent(p *panel.Panel, i int) bool {
	return p.Selected() && p.Current() == i
}

func (m App) renderCharge(width int) string {
	s := m.styles
	snap := m.snapshot
	p := m.charge.Panel()
	gw := gaugeWidth(width)

	var rows []string

	if snap.ChargePercentage != nil {
		pct := *snap.ChargePercentage
		rows = append(rows, s.RenderSelectableRow("Charge level",
			s.RenderGauge(s.Theme().ChargeBar, float64(pct)/100, gw)+" "+fmt.Sprintf("%s %d%%", snap.ChargingStatus(), pct),
			false))
	} else {
		rows = append(rows, s.RenderSelectableRow("Charge level", notAvailable, false))
	}

	limit := p.Control(panel.MaxChargeLimitControl)
	v, _ := limit.Percentage()
	limitText := notAvailable
	if snap.MaxChargeLimit != nil || limit.Focused() {
		limitText = s.RenderGauge(s.Theme().ChargeBar, float64(v)/100, gw) + " " +
			m.controlText(limit, fmt.Sprintf("%3d%%", v))
	}
	rows = append(rows, s.RenderSelectableRow("Max charge limit", limitText, isCurrent(p, panel.MaxChargeLimitControl)))

	rows = append(rows,
		s.RenderSelectableRow("Charger voltage", hardware.FormatOptional(snap.ChargerVoltage, " mV"), false),
		s.RenderSelectableRow("Charger current", hardware.FormatOptional(snap.ChargerCurrent, " mA"), false),
		s.RenderSelectableRow("Design capacity", hardware.FormatOptional(snap.DesignCapacity, " mWh"), false),
		s.RenderSelectableRow("Last full capacity", hardware.FormatOptional(snap.LastFullCapacity, " mWh"), false),
	)

	lossText := notAvailable
	if loss, ok := snap.CapacityLossPercentage(); ok {
		lossText = fmt.Sprintf("%.2f%%", loss)
	}
	rows = append(rows,
		s.RenderSelectableRow("Capacity loss", lossText, false),
		s.RenderSelectableRow("Cycle count", hardware.FormatOptional(snap.CycleCount, ""), false),
	)

	perCycle := notAvailable
	if loss, ok := snap.CapacityLossPerCycle(); ok {
		if loss > hardware.NormalCapacityLossPerCycle {
			perCycle = s.Warning.Render(fmt.Sprintf("%.3f%% (above %.3f%%)", loss, hardware.NormalCapacityLossPerCycle))
		} else {
			perCycle = s.OK.Render(fmt.Sprintf("%.3f%%", loss))
		}
	}
	rows = append(rows, s.RenderSelectableRow("Capacity loss per cycle", perCycle, false))

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.charge.renderGraph(s, width-panelChromeWidth),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
	return s.RenderPanel("Charge", body, p.Selected(), width)
}

func (m App) renderBrightness(width int) string {
	s := m.styles
	snap := m.snapshot
	p := m.brightness.Panel()
	policy := m.brightness.Policy()
	gw := gaugeWidth(width)

	fp := p.Control(panel.FingerprintControl)
	fv, _ := fp.Percentage()
	fpText := notAvailable
	if snap.FingerprintBrightness != nil || fp.Focused() {
		fpText = s.RenderGauge(s.Theme().BrightnessBar, float64(fv)/100, gw) + " " +
			m.controlText(fp, policy.Label(fv))
	}

	kbd := p.Control(panel.KeyboardControl)
	kv, _ := kbd.Percentage()
	kbdText := notAvailable
	if snap.KeyboardBrightness != nil || kbd.Focused() {
		kbdText = s.RenderGauge(s.Theme().BrightnessBar, float64(kv)/100, gw) + " " +
			m.controlText(kbd, fmt.Sprintf("%3d%%", kv))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		s.RenderSelectableRow("Fingerprint LED brightness", fpText, isCurrent(p, panel.FingerprintControl)),
		s.RenderSelectableRow("Keyboard brightness", kbdText, isCurrent(p, panel.KeyboardControl)),
	)
	return s.RenderPanel("Brightness", body, p.Selected(), width)
}

func (m App) renderPrivacy(width int) string {
	s := m.styles
	row := func(k, v string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(portKeyWidth).Render(k), v)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		row("Microphone", s.RenderOnOff(m.snapshot.MicrophoneEnabled)),
		row("Camera", s.RenderOnOff(m.snapshot.CameraEnabled)),
	)
	return s.RenderPanel("Privacy", body, false, width)
}

func orNA(v string) string {
	if v == "" {
		return notAvailable
	}
	return v
}

func (m App) renderBIOS(width int) string {
	s := m.styles
	snap := m.snapshot
	row := func(k, v string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(portKeyWidth).Render(k), orNA(v))
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		row("Vendor", snap.BIOSVendor),
		row("Version", snap.BIOSVersion),
		row("Release date", snap.BIOSReleaseDate),
		row("OS", snap.Platform),
	)
	return s.RenderPanel("BIOS", body, false, width)
}

func (m App) renderPort(port hardware.PDPort, width int) string {
	s := m.styles
	row := func(k, v string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(portKeyWidth).Render(k), v)
	}

	lines := []string{s.Highlight.Render(port.Name)}
	if !port.Connected {
		lines = append(lines, s.Info.Render("Disconnected"))
		return lipgloss.NewStyle().Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	dual := "No"
	if port.DualRole {
		dual = "Yes"
	}
	lines = append(lines,
		row("Role", port.Role),
		row("Dual role", dual),
		row("Charging type", port.ChargingType),
		row("Voltage now", fmt.Sprintf("%.1f V", float64(port.VoltageNow)/1000)),
		row("Voltage max", fmt.Sprintf("%.1f V", float64(port.VoltageMax)/1000)),
		row("Current limit", fmt.Sprintf("%d mA", port.CurrentLimit)),
		row("Current max", fmt.Sprintf("%d mA", port.CurrentMax)),
		row("Max power", fmt.Sprintf("%.1f W", float64(port.MaxPower)/1000)),
	)
	return lipgloss.NewStyle().Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m App) renderPDPorts(width int) string {
	s := m.styles
	ports := m.snapshot.PDPorts
	if len(ports) == 0 {
		return s.RenderPanel("PD ports", notAvailable, false, width)
	}

	colW := (width - panelChromeWidth) / 2
	var pairs []string
	for i := 0; i < len(ports); i += 2 {
		left := m.renderPort(ports[i], colW)
		if i+1 < len(ports) {
			pairs = append(pairs, lipgloss.JoinHorizontal(lipgloss.Top, left, m.renderPort(ports[i+1], colW)))
		} else {
			pairs = append(pairs, left)
		}
	}
	return s.RenderPanel("PD ports", lipgloss.JoinVertical(lipgloss.Left, pairs...), false, width)
}

func (m App) renderThermal(width int) string {
	s := m.styles
	snap := m.snapshot

	var rows []string
	for i, rpm := range snap.FanRPM {
		name := "Fan speed"
		if len(snap.FanRPM) > 1 {
			name = fmt.Sprintf("Fan %d speed", i+1)
		}
		rows = append(rows, s.RenderRow(name, s.Info.Render(fmt.Sprintf("%d RPM", rpm))))
	}
	for _, t := range snap.Temperatures {
		style := s.Info
		if t.High > 0 && t.Celsius >= t.High {
			style = s.Warning
		}
		rows = append(rows, s.RenderRow(t.Name, style.Render(fmt.Sprintf("%.0f °C", t.Celsius))))
	}
	if len(rows) == 0 {
		rows = append(rows, notAvailable)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.thermal.renderGraph(s, width-panelChromeWidth),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
	return s.RenderPanel("Thermal", body, false, width)
}
