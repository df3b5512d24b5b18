package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	AppTitle         = "Framework System"
	MinTerminalWidth = 80 // Below this the two columns are stacked
	DefaultWidth     = 120
	KeyColumnWidth   = 30
	GaugeMinWidth    = 10
	panelChromeWidth = 4 // border + horizontal padding
)

// Styles are the lipgloss styles derived from a Theme. They are rebuilt
// whenever the theme changes.
type Styles struct {
	theme Theme

	Panel       lipgloss.Style
	PanelActive lipgloss.Style
	PanelTitle  lipgloss.Style
	Key         lipgloss.Style
	KeySelected lipgloss.Style
	Value       lipgloss.Style
	Info        lipgloss.Style
	OK          lipgloss.Style
	Warning     lipgloss.Style
	Highlight   lipgloss.Style
	Help        lipgloss.Style
	Status      lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		theme: t,

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		PanelActive: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(t.BorderActive).
			Padding(0, 1),

		PanelTitle: lipgloss.NewStyle().
			Foreground(t.HighlightedText).
			Bold(true),

		Key: lipgloss.NewStyle().
			Width(KeyColumnWidth),

		KeySelected: lipgloss.NewStyle().
			Width(KeyColumnWidth).
			Foreground(t.HighlightedText).
			Bold(true),

		Value: lipgloss.NewStyle(),

		Info: lipgloss.NewStyle().
			Foreground(t.InformativeText),

		OK: lipgloss.NewStyle().
			Foreground(t.IndicationOK),

		Warning: lipgloss.NewStyle().
			Foreground(t.IndicationWarning).
			Bold(true),

		Highlight: lipgloss.NewStyle().
			Foreground(t.HighlightedText).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(t.InformativeText),

		Status: lipgloss.NewStyle().
			Foreground(t.IndicationWarning).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.IndicationWarning).
			Padding(0, 2),
	}
}

// Theme returns the theme the styles were built from.
func (s Styles) Theme() Theme { return s.theme }

// RenderPanel draws a bordered panel of the given outer width with the
// title on its first line.
func (s Styles) RenderPanel(title, body string, active bool, width int) string {
	style := s.Panel
	if active {
		style = s.PanelActive
	}
	inner := width - panelChromeWidth
	if inner < 1 {
		inner = 1
	}
	content := lipgloss.JoinVertical(lipgloss.Left, s.PanelTitle.Render(title), body)
	return style.Width(inner + 2).Render(content)
}

// RenderRow renders a key/value line.
func (s Styles) RenderRow(key, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.Key.Render(key), value)
}

// RenderSelectableRow renders a key/value line whose key is highlighted
// when the row is the panel's current control.
func (s Styles) RenderSelectableRow(key, value string, current bool) string {
	if current {
		return lipgloss.JoinHorizontal(lipgloss.Top, s.KeySelected.Render("▸ "+key), value)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, s.Key.Render("  "+key), value)
}

// RenderOnOff renders ON in the OK color and OFF in the warning color.
func (s Styles) RenderOnOff(on bool) string {
	if on {
		return s.OK.Render("ON")
	}
	return s.Warning.Render("OFF")
}

// RenderGauge draws a solid bar filled to ratio (0..1).
func (s Styles) RenderGauge(color lipgloss.Color, ratio float64, width int) string {
	if width < GaugeMinWidth {
		width = GaugeMinWidth
	}
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
	)
	return bar.ViewAs(clampRatio(ratio))
}

// RenderApplicationContainer wraps the dashboard with the title bar on top
// and the help footer at the bottom, filling the terminal.
func (s Styles) RenderApplicationContainer(title, content, footer string, width, height int) string {
	header := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(s.theme.Border).
		Width(width).
		Render(title)

	foot := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(s.theme.Border).
		Width(width).
		Render(footer)

	body := lipgloss.JoinVertical(lipgloss.Left, header, content, foot)
	if height <= 0 {
		return body
	}
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, body)
}

func clampRatio(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}
