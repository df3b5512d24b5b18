package hardware

import (
	"context"

	"github.com/muurk/fwtui/internal/fingerprint"
)

// Device is the hardware access layer the dashboard drives.
//
// Poll never fails as a whole; readings the hardware could not provide are
// left empty in the Snapshot. Setters are synchronous.
type Device interface {
	Poll(ctx context.Context) Snapshot
	SetMaxChargeLimit(ctx context.Context, pct uint8) error
	SetFingerprintBrightness(ctx context.Context, pct uint8) error
	// SetKeyboardBrightness is fire-and-forget: the firmware interface gives
	// no usable error, so failures are only logged.
	SetKeyboardBrightness(ctx context.Context, pct uint8)
	// FingerprintCapability is probed once when the device is opened.
	FingerprintCapability() fingerprint.Capability
}
