package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named dashboard color palette.
type Theme struct {
	Name string

	Background        lipgloss.Color
	Border            lipgloss.Color
	BorderActive      lipgloss.Color
	IndicationOK      lipgloss.Color
	IndicationWarning lipgloss.Color
	BrightnessBar     lipgloss.Color
	ChargeBar         lipgloss.Color
	HighlightedText   lipgloss.Color
	InformativeText   lipgloss.Color
}

// Themes lists the built-in palettes in cycling order. The first entry is
// the default.
var Themes = []Theme{
	{
		Name:              "Framework",
		Background:        lipgloss.Color("#000000"),
		Border:            lipgloss.Color("#FF7447"),
		BorderActive:      lipgloss.Color("#FFD600"),
		IndicationOK:      lipgloss.Color("#00B16A"),
		IndicationWarning: lipgloss.Color("#E53935"),
		BrightnessBar:     lipgloss.Color("#FFD600"),
		ChargeBar:         lipgloss.Color("#9481D8"),
		HighlightedText:   lipgloss.Color("#FF7447"),
		InformativeText:   lipgloss.Color("#9481D8"),
	},
	{
		Name:              "Dracula",
		Background:        lipgloss.Color("#282a36"),
		Border:            lipgloss.Color("#bd93f9"),
		BorderActive:      lipgloss.Color("#ffb86c"),
		IndicationOK:      lipgloss.Color("#50fa7b"),
		IndicationWarning: lipgloss.Color("#ff5555"),
		BrightnessBar:     lipgloss.Color("#f1fa8c"),
		ChargeBar:         lipgloss.Color("#bd93f9"),
		HighlightedText:   lipgloss.Color("#ff79c6"),
		InformativeText:   lipgloss.Color("#8be9fd"),
	},
	{
		Name:              "Nord",
		Background:        lipgloss.Color("#2e3440"),
		Border:            lipgloss.Color("#88c0d0"),
		BorderActive:      lipgloss.Color("#ebcb8b"),
		IndicationOK:      lipgloss.Color("#a3be8c"),
		IndicationWarning: lipgloss.Color("#bf616a"),
		BrightnessBar:     lipgloss.Color("#ebcb8b"),
		ChargeBar:         lipgloss.Color("#b48ead"),
		HighlightedText:   lipgloss.Color("#81a1c1"),
		InformativeText:   lipgloss.Color("#8fbcbb"),
	},
	{
		Name:              "Gruvbox",
		Background:        lipgloss.Color("#282828"),
		Border:            lipgloss.Color("#fe8019"),
		BorderActive:      lipgloss.Color("#fabd2f"),
		IndicationOK:      lipgloss.Color("#b8bb26"),
		IndicationWarning: lipgloss.Color("#fb4934"),
		BrightnessBar:     lipgloss.Color("#fabd2f"),
		ChargeBar:         lipgloss.Color("#d3869b"),
		HighlightedText:   lipgloss.Color("#fe8019"),
		InformativeText:   lipgloss.Color("#83a598"),
	},
	{
		Name:              "Alucard",
		Background:        lipgloss.Color("#FFFBEB"),
		Border:            lipgloss.Color("#A34D14"),
		BorderActive:      lipgloss.Color("#846E15"),
		IndicationOK:      lipgloss.Color("#14710A"),
		IndicationWarning: lipgloss.Color("#CB3A2A"),
		BrightnessBar:     lipgloss.Color("#846E15"),
		ChargeBar:         lipgloss.Color("#644AC9"),
		HighlightedText:   lipgloss.Color("#A34D14"),
		InformativeText:   lipgloss.Color("#644AC9"),
	},
	{
		Name:              "Catppuccin Latte",
		Background:        lipgloss.Color("#dce0e8"),
		Border:            lipgloss.Color("#fe640b"),
		BorderActive:      lipgloss.Color("#df8e1d"),
		IndicationOK:      lipgloss.Color("#40a02b"),
		IndicationWarning: lipgloss.Color("#d20f39"),
		BrightnessBar:     lipgloss.Color("#df8e1d"),
		ChargeBar:         lipgloss.Color("#8839ef"),
		HighlightedText:   lipgloss.Color("#fe640b"),
		InformativeText:   lipgloss.Color("#8839ef"),
	},
	{
		Name:              "Catppuccin Frappe",
		Background:        lipgloss.Color("#232634"),
		Border:            lipgloss.Color("#ef9f76"),
		BorderActive:      lipgloss.Color("#e5c890"),
		IndicationOK:      lipgloss.Color("#a6d189"),
		IndicationWarning: lipgloss.Color("#e78284"),
		BrightnessBar:     lipgloss.Color("#e5c890"),
		ChargeBar:         lipgloss.Color("#ca9ee6"),
		HighlightedText:   lipgloss.Color("#ef9f76"),
		InformativeText:   lipgloss.Color("#ca9ee6"),
	},
	{
		Name:              "Catppuccin Macchiato",
		Background:        lipgloss.Color("#181926"),
		Border:            lipgloss.Color("#f5a97f"),
		BorderActive:      lipgloss.Color("#eed49f"),
		IndicationOK:      lipgloss.Color("#a6da95"),
		IndicationWarning: lipgloss.Color("#ed8796"),
		BrightnessBar:     lipgloss.Color("#eed49f"),
		ChargeBar:         lipgloss.Color("#c6a0f6"),
		HighlightedText:   lipgloss.Color("#f5a97f"),
		InformativeText:   lipgloss.Color("#c6a0f6"),
	},
	{
		Name:              "Catppuccin Mocha",
		Background:        lipgloss.Color("#11111b"),
		Border:            lipgloss.Color("#fab387"),
		BorderActive:      lipgloss.Color("#f9e2af"),
		IndicationOK:      lipgloss.Color("#a6e3a1"),
		IndicationWarning: lipgloss.Color("#f38ba8"),
		BrightnessBar:     lipgloss.Color("#f9e2af"),
		ChargeBar:         lipgloss.Color("#cba6f7"),
		HighlightedText:   lipgloss.Color("#fab387"),
		InformativeText:   lipgloss.Color("#cba6f7"),
	},
	{
		Name:              "GitHub Light",
		Background:        lipgloss.Color("#FFFFFF"),
		Border:            lipgloss.Color("#A04100"),
		BorderActive:      lipgloss.Color("#735C0F"),
		IndicationOK:      lipgloss.Color("#144620"),
		IndicationWarning: lipgloss.Color("#86181D"),
		BrightnessBar:     lipgloss.Color("#735C0F"),
		ChargeBar:         lipgloss.Color("#29134E"),
		HighlightedText:   lipgloss.Color("#A04100"),
		InformativeText:   lipgloss.Color("#29134E"),
	},
	{
		Name:              "GitHub Dark",
		Background:        lipgloss.Color("#1B1F23"),
		Border:            lipgloss.Color("#FFF8F2"),
		BorderActive:      lipgloss.Color("#FFFDEF"),
		IndicationOK:      lipgloss.Color("#F0FFF4"),
		IndicationWarning: lipgloss.Color("#FFEEF0"),
		BrightnessBar:     lipgloss.Color("#FFFDEF"),
		ChargeBar:         lipgloss.Color("#F5F0FF"),
		HighlightedText:   lipgloss.Color("#FFF8F2"),
		InformativeText:   lipgloss.Color("#F5F0FF"),
	},
	{
		Name:              "Monokai Pro Light",
		Background:        lipgloss.Color("#FFFFFF"),
		Border:            lipgloss.Color("#FC9768"),
		BorderActive:      lipgloss.Color("#FFD866"),
		IndicationOK:      lipgloss.Color("#a9dc77"),
		IndicationWarning: lipgloss.Color("#ff6189"),
		BrightnessBar:     lipgloss.Color("#FFD866"),
		ChargeBar:         lipgloss.Color("#AB9DF2"),
		HighlightedText:   lipgloss.Color("#FC9768"),
		InformativeText:   lipgloss.Color("#AB9DF2"),
	},
}

// ThemeByName looks a theme up case-insensitively.
func ThemeByName(name string) (Theme, bool) {
	for _, t := range Themes {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Themes[0], false
}

// NextTheme returns the theme after the named one, wrapping around. An
// unknown name yields the default theme.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if strings.EqualFold(t.Name, name) {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
