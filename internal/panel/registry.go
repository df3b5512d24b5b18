// Package panel holds the dashboard's focus and editing state machine.
//
// A Registry owns an ordered list of Adjustable panels, at most one of which
// holds top-level focus. Each panel owns a list of Controls, one of which is
// current; a current control can be focused to edit its value. Committing an
// edit yields a Command for the application to execute against the hardware.
package panel

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/fwtui/internal/hardware"
)

// Adjustable is a panel that can take top-level focus. Composite panels
// forward to the Panel they edit so the Registry sees a single contract.
type Adjustable interface {
	// Panel returns the focus state the Registry toggles.
	Panel() *Panel
	// HandleKey offers a key press; it returns a command when the key
	// committed an edit.
	HandleKey(msg tea.KeyMsg) (Command, bool)
	// Sync refreshes unfocused controls from a new snapshot.
	Sync(snap hardware.Snapshot)
}

// Registry routes keys to panels and tracks which one is selected.
type Registry struct {
	keys     KeyMap
	panels   []Adjustable
	selected int // -1 when no panel has focus
}

// NewRegistry creates a registry with no panel selected.
func NewRegistry(keys KeyMap, panels ...Adjustable) *Registry {
	return &Registry{keys: keys, panels: panels, selected: -1}
}

// Keys returns the key bindings used for routing.
func (r *Registry) Keys() KeyMap { return r.keys }

// Len returns the number of panels.
func (r *Registry) Len() int { return len(r.panels) }

// Panel returns panel i.
func (r *Registry) Panel(i int) Adjustable { return r.panels[i] }

// Selected returns the index of the focused panel.
func (r *Registry) Selected() (int, bool) {
	return r.selected, r.selected >= 0
}

// SwitchPanels moves focus to the next panel. From the last panel focus
// leaves the panels entirely; the following call starts again at panel 0.
// An edit in progress on the panel losing focus is cancelled.
func (r *Registry) SwitchPanels() {
	n := len(r.panels)
	if n == 0 {
		return
	}

	if r.selected < 0 {
		r.panels[0].Panel().Toggle()
		r.selected = 0
		return
	}

	leaving := r.panels[r.selected].Panel()
	leaving.CancelEdit()
	leaving.Toggle()

	if r.selected < n-1 {
		r.selected++
		r.panels[r.selected].Panel().Toggle()
		return
	}
	r.selected = -1
}

// HandleKey routes one key press. Global keys are checked first and never
// reach a panel; then Tab; then each panel in order until one yields a
// command.
func (r *Registry) HandleKey(msg tea.KeyMsg) (Command, bool) {
	switch {
	case key.Matches(msg, r.keys.Quit):
		return Command{Kind: CommandQuit}, true
	case key.Matches(msg, r.keys.Theme):
		return Command{Kind: CommandCycleTheme}, true
	case key.Matches(msg, r.keys.Faster):
		return Command{Kind: CommandFasterRefresh}, true
	case key.Matches(msg, r.keys.Slower):
		return Command{Kind: CommandSlowerRefresh}, true
	case key.Matches(msg, r.keys.SwitchPanel):
		r.SwitchPanels()
		return Command{}, false
	}

	for _, p := range r.panels {
		if cmd, ok := p.HandleKey(msg); ok {
			return cmd, true
		}
	}
	return Command{}, false
}

// Sync forwards a fresh snapshot to every panel.
func (r *Registry) Sync(snap hardware.Snapshot) {
	for _, p := range r.panels {
		p.Sync(snap)
	}
}
