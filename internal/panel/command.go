package panel

import "fmt"

// CommandKind identifies a high-level action produced by the panels.
type CommandKind int

const (
	CommandQuit CommandKind = iota + 1
	CommandSetMaxChargeLimit
	CommandSetFingerprintBrightness
	CommandSetKeyboardBrightness
	CommandCycleTheme
	CommandFasterRefresh
	CommandSlowerRefresh
)

func (k CommandKind) String() string {
	switch k {
	case CommandQuit:
		return "quit"
	case CommandSetMaxChargeLimit:
		return "set max charge limit"
	case CommandSetFingerprintBrightness:
		return "set fingerprint brightness"
	case CommandSetKeyboardBrightness:
		return "set keyboard brightness"
	case CommandCycleTheme:
		return "cycle theme"
	case CommandFasterRefresh:
		return "faster refresh"
	case CommandSlowerRefresh:
		return "slower refresh"
	default:
		return fmt.Sprintf("CommandKind(%d)", k)
	}
}

// Command is an action for the application to carry out. Value is the
// committed percentage for the Set* kinds.
type Command struct {
	Kind  CommandKind
	Value uint8
}

func (c Command) String() string {
	switch c.Kind {
	case CommandSetMaxChargeLimit, CommandSetFingerprintBrightness, CommandSetKeyboardBrightness:
		return fmt.Sprintf("%s(%d)", c.Kind, c.Value)
	default:
		return c.Kind.String()
	}
}
