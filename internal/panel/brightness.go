package panel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/fwtui/internal/fingerprint"
	"github.com/muurk/fwtui/internal/hardware"
)

// Control indexes of the brightness panel.
const (
	FingerprintControl = 0
	KeyboardControl    = 1
)

// BrightnessPanel edits fingerprint LED and keyboard backlight brightness.
// Fingerprint steps go through a fingerprint.Policy so level-only hardware
// cycles through its three levels.
type BrightnessPanel struct {
	panel  *Panel
	keys   KeyMap
	policy fingerprint.Policy
}

// NewBrightnessPanel creates the brightness panel for the given policy.
func NewBrightnessPanel(keys KeyMap, policy fingerprint.Policy) *BrightnessPanel {
	return &BrightnessPanel{
		panel:  NewPanel("Brightness", PercentageControl(0), PercentageControl(0)),
		keys:   keys,
		policy: policy,
	}
}

// Panel implements Adjustable.
func (b *BrightnessPanel) Panel() *Panel { return b.panel }

// Policy returns the fingerprint policy used for display labels.
func (b *BrightnessPanel) Policy() fingerprint.Policy { return b.policy }

// HandleKey implements Adjustable.
func (b *BrightnessPanel) HandleKey(msg tea.KeyMsg) (Command, bool) {
	if b.panel.HandleEditKey(b.keys, msg, b.step) != EditCommitted {
		return Command{}, false
	}

	current := b.panel.Current()
	v, _ := b.panel.Control(current).Percentage()
	if current == FingerprintControl {
		return Command{Kind: CommandSetFingerprintBrightness, Value: v}, true
	}
	return Command{Kind: CommandSetKeyboardBrightness, Value: v}, true
}

func (b *BrightnessPanel) step(delta int8) {
	if b.panel.Current() != FingerprintControl {
		b.panel.AdjustFocusedPercentageByDelta(delta)
		return
	}
	v, _ := b.panel.SelectedControl().Percentage()
	b.panel.SetFocusedPercentage(b.policy.Adjust(v, delta))
}

// Sync implements Adjustable.
func (b *BrightnessPanel) Sync(snap hardware.Snapshot) {
	b.panel.SyncOptionalPercentage(FingerprintControl, snap.FingerprintBrightness)
	b.panel.SyncOptionalPercentage(KeyboardControl, snap.KeyboardBrightness)
}
