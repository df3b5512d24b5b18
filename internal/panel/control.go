package panel

// ControlKind tags the payload carried by a Control.
type ControlKind int

const (
	// ControlPercentage holds an integer percentage in [0,100].
	ControlPercentage ControlKind = iota
	// ControlRange holds a from/to pair.
	ControlRange
)

// Control is one editable value together with its focus flag. Focus and
// value live in the same value so they cannot drift apart. Controls are
// immutable; every operation returns a new Control.
type Control struct {
	kind    ControlKind
	focused bool
	value   uint8
	from    float32
	to      float32
}

// PercentageControl returns an unfocused percentage control. Values above
// 100 are stored as 100.
func PercentageControl(v uint8) Control {
	if v > 100 {
		v = 100
	}
	return Control{kind: ControlPercentage, value: v}
}

// RangeControl returns an unfocused range control.
func RangeControl(from, to float32) Control {
	return Control{kind: ControlRange, from: from, to: to}
}

// Kind returns the control's payload kind.
func (c Control) Kind() ControlKind { return c.kind }

// Focused reports whether the control is armed for value edits.
func (c Control) Focused() bool { return c.focused }

// ToggleFocus returns the control with its focus flag flipped.
func (c Control) ToggleFocus() Control {
	c.focused = !c.focused
	return c
}

// Percentage returns the value of a percentage control.
func (c Control) Percentage() (uint8, bool) {
	if c.kind != ControlPercentage {
		return 0, false
	}
	return c.value, true
}

// Range returns the bounds of a range control.
func (c Control) Range() (from, to float32, ok bool) {
	if c.kind != ControlRange {
		return 0, 0, false
	}
	return c.from, c.to, true
}

// withPercentage returns the control holding v, or false if the control is
// not a percentage or v is out of range.
func (c Control) withPercentage(v int) (Control, bool) {
	if c.kind != ControlPercentage || v < 0 || v > 100 {
		return c, false
	}
	c.value = uint8(v)
	return c, true
}
