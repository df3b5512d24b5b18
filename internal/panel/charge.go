package panel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/fwtui/internal/hardware"
)

// MaxChargeLimitControl is the index of the max charge limit control.
const MaxChargeLimitControl = 0

// ChargePanel edits the battery max charge limit.
type ChargePanel struct {
	panel *Panel
	keys  KeyMap
}

// NewChargePanel creates the charge settings panel.
func NewChargePanel(keys KeyMap) *ChargePanel {
	return &ChargePanel{
		panel: NewPanel("Charge", PercentageControl(0)),
		keys:  keys,
	}
}

// Panel implements Adjustable.
func (c *ChargePanel) Panel() *Panel { return c.panel }

// HandleKey implements Adjustable.
func (c *ChargePanel) HandleKey(msg tea.KeyMsg) (Command, bool) {
	if c.panel.HandleEditKey(c.keys, msg, nil) != EditCommitted {
		return Command{}, false
	}
	v, _ := c.panel.Control(MaxChargeLimitControl).Percentage()
	return Command{Kind: CommandSetMaxChargeLimit, Value: v}, true
}

// Sync implements Adjustable.
func (c *ChargePanel) Sync(snap hardware.Snapshot) {
	c.panel.SyncOptionalPercentage(MaxChargeLimitControl, snap.MaxChargeLimit)
}
