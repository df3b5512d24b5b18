// Package fingerprint maps fingerprint LED brightness between the 0-100
// percentage shown in the dashboard and the hardware's native scale.
//
// Older Framework firmware exposes only three discrete levels, newer
// firmware accepts a real percentage. The Policy hides that difference so
// a panel can step the value with Left/Right regardless of generation.
package fingerprint

import "strconv"

// Representative percentages for the discrete levels.
const (
	LowPercentage    uint8 = 15
	MediumPercentage uint8 = 40
	HighPercentage   uint8 = 55
)

// MinPercentage is the lowest brightness reachable by stepping. Anything
// dimmer is effectively invisible.
const MinPercentage uint8 = 5

// Capability describes which brightness scale the hardware accepts.
type Capability int

const (
	// CapabilityPercentage means the hardware takes an arbitrary 0-100 value.
	CapabilityPercentage Capability = iota
	// CapabilityLevel means the hardware only knows Low/Medium/High.
	CapabilityLevel
)

func (c Capability) String() string {
	switch c {
	case CapabilityPercentage:
		return "percentage"
	case CapabilityLevel:
		return "level"
	default:
		return "unknown"
	}
}

// Level is one of the three discrete LED brightness steps.
type Level int

const (
	LevelLow Level = iota
	LevelMedium
	LevelHigh
)

func (l Level) String() string {
	switch l {
	case LevelLow:
		return "Low"
	case LevelMedium:
		return "Medium"
	case LevelHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// PercentageToLevel buckets a percentage into a level.
func PercentageToLevel(p uint8) Level {
	switch {
	case p <= LowPercentage:
		return LevelLow
	case p <= MediumPercentage:
		return LevelMedium
	default:
		return LevelHigh
	}
}

// LevelToPercentage returns the percentage shown for a level.
func LevelToPercentage(l Level) uint8 {
	switch l {
	case LevelLow:
		return LowPercentage
	case LevelMedium:
		return MediumPercentage
	default:
		return HighPercentage
	}
}

// next returns the level reached from l by one step of the given sign.
// Positive steps rotate Low->Medium->High->Low, everything else rotates
// the other way.
func (l Level) next(delta int8) Level {
	if delta > 0 {
		return (l + 1) % 3
	}
	return (l + 2) % 3
}

// Policy adjusts fingerprint brightness for a fixed capability.
type Policy struct {
	capability Capability
}

// NewPolicy returns a policy bound to the probed capability. The capability
// never changes for the lifetime of the process.
func NewPolicy(c Capability) Policy {
	return Policy{capability: c}
}

// Capability returns the capability the policy was built with.
func (p Policy) Capability() Capability {
	return p.capability
}

// Adjust returns the brightness reached from current by one step of delta.
//
// With CapabilityPercentage the result is current+delta, unless that falls
// below MinPercentage or above 100, in which case current is returned
// unchanged. With CapabilityLevel the current value is bucketed into a
// level, rotated one step, and mapped back to its representative
// percentage.
func (p Policy) Adjust(current uint8, delta int8) uint8 {
	if p.capability == CapabilityLevel {
		return LevelToPercentage(PercentageToLevel(current).next(delta))
	}

	v := int(current) + int(delta)
	if v < int(MinPercentage) || v > 100 {
		return current
	}
	return uint8(v)
}

// Label formats a brightness value for display. Level hardware shows the
// level name, percentage hardware shows the number.
func (p Policy) Label(v uint8) string {
	if p.capability == CapabilityLevel {
		return PercentageToLevel(v).String()
	}
	return strconv.Itoa(int(v)) + "%"
}
