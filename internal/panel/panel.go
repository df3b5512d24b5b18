package panel

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// AdjustStep is how much Left/Right move a percentage.
const AdjustStep int8 = 5

// Panel is the focus state of one visual panel: whether it holds top-level
// focus, its controls, and which control is current.
//
// A panel is armed for value edits only when it is selected and its current
// control is focused.
type Panel struct {
	title    string
	selected bool
	controls []Control
	current  int
}

// NewPanel creates an unselected panel. It panics without controls.
func NewPanel(title string, controls ...Control) *Panel {
	if len(controls) == 0 {
		panic("panel: NewPanel needs at least one control")
	}
	return &Panel{title: title, controls: controls}
}

// Title returns the panel's display title.
func (p *Panel) Title() string { return p.title }

// Toggle flips the selected flag.
func (p *Panel) Toggle() { p.selected = !p.selected }

// Selected reports whether the panel holds top-level focus.
func (p *Panel) Selected() bool { return p.selected }

// Len returns the number of controls.
func (p *Panel) Len() int { return len(p.controls) }

// Current returns the index of the current control.
func (p *Panel) Current() int { return p.current }

// Control returns control i.
func (p *Panel) Control(i int) Control { return p.controls[i] }

// SelectedControl returns the current control.
func (p *Panel) SelectedControl() Control { return p.controls[p.current] }

// Armed reports whether value edits apply to the current control.
func (p *Panel) Armed() bool {
	return p.selected && p.controls[p.current].focused
}

// CycleControlsUp moves to the previous control, wrapping to the last.
func (p *Panel) CycleControlsUp() {
	p.current = (p.current + len(p.controls) - 1) % len(p.controls)
}

// CycleControlsDown moves to the next control, wrapping to the first.
func (p *Panel) CycleControlsDown() {
	p.current = (p.current + 1) % len(p.controls)
}

// ToggleSelectedControlFocus arms or disarms the current control.
func (p *Panel) ToggleSelectedControlFocus() {
	p.controls[p.current] = p.controls[p.current].ToggleFocus()
}

// CancelEdit disarms the current control without emitting anything.
func (p *Panel) CancelEdit() {
	if p.controls[p.current].focused {
		p.ToggleSelectedControlFocus()
	}
}

// AdjustFocusedPercentageByDelta adds delta to the current control if it is
// a focused percentage. A result outside [0,100] is ignored; the value is
// never clamped or wrapped. It reports whether the value changed.
func (p *Panel) AdjustFocusedPercentageByDelta(delta int8) bool {
	c := p.controls[p.current]
	if !c.focused || c.kind != ControlPercentage {
		return false
	}
	next, ok := c.withPercentage(int(c.value) + int(delta))
	if !ok {
		return false
	}
	p.controls[p.current] = next
	return next.value != c.value
}

// SetFocusedPercentage stores v in the current control if it is a focused
// percentage and v is at most 100.
func (p *Panel) SetFocusedPercentage(v uint8) bool {
	c := p.controls[p.current]
	if !c.focused {
		return false
	}
	next, ok := c.withPercentage(int(v))
	if !ok {
		return false
	}
	p.controls[p.current] = next
	return true
}

// SetPercentageControlByIndex replaces control i. Out-of-range indexes are
// ignored.
func (p *Panel) SetPercentageControlByIndex(i int, c Control) {
	if i < 0 || i >= len(p.controls) {
		return
	}
	p.controls[i] = c
}

// SyncPercentage refreshes control i from live data unless the control is
// focused, so telemetry never overwrites an edit in progress.
func (p *Panel) SyncPercentage(i int, v uint8) {
	if i < 0 || i >= len(p.controls) || p.controls[i].focused {
		return
	}
	p.SetPercentageControlByIndex(i, PercentageControl(v))
}

// SyncOptionalPercentage is SyncPercentage for a reading that may be
// missing. A missing reading resets the control to 0 so a cancelled edit
// is not left behind.
func (p *Panel) SyncOptionalPercentage(i int, v *uint8) {
	var value uint8
	if v != nil {
		value = *v
	}
	p.SyncPercentage(i, value)
}

// EditResult reports what HandleEditKey did with a key.
type EditResult int

const (
	// EditIgnored means the key does not apply to this panel right now.
	EditIgnored EditResult = iota
	// EditHandled means the panel state changed but nothing is emitted.
	EditHandled
	// EditCommitted means Enter left focus on the current control; the
	// caller turns its value into a command.
	EditCommitted
)

// HandleEditKey applies the shared key discipline of editable panels:
//
//   - Up/Down move between controls while nothing is armed
//   - Enter arms the current control, or commits it if armed
//   - Esc disarms the current control, discarding the edit
//   - Left/Right step an armed value by AdjustStep
//
// step performs the value arithmetic; nil means AdjustFocusedPercentageByDelta.
// Keys are ignored while the panel is not selected.
func (p *Panel) HandleEditKey(keys KeyMap, msg tea.KeyMsg, step func(delta int8)) EditResult {
	if !p.selected {
		return EditIgnored
	}
	if step == nil {
		step = func(delta int8) { p.AdjustFocusedPercentageByDelta(delta) }
	}

	switch {
	case key.Matches(msg, keys.Down):
		if p.Armed() {
			return EditIgnored
		}
		p.CycleControlsDown()
	case key.Matches(msg, keys.Up):
		if p.Armed() {
			return EditIgnored
		}
		p.CycleControlsUp()
	case key.Matches(msg, keys.Enter):
		committed := p.Armed()
		p.ToggleSelectedControlFocus()
		if committed {
			return EditCommitted
		}
	case key.Matches(msg, keys.Cancel):
		if !p.Armed() {
			return EditIgnored
		}
		p.ToggleSelectedControlFocus()
	case key.Matches(msg, keys.Left):
		if !p.Armed() {
			return EditIgnored
		}
		step(-AdjustStep)
	case key.Matches(msg, keys.Right):
		if !p.Armed() {
			return EditIgnored
		}
		step(AdjustStep)
	default:
		return EditIgnored
	}
	return EditHandled
}
