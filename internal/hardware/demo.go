package hardware

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/muurk/fwtui/internal/fingerprint"
	"github.com/muurk/fwtui/internal/logging"
)

// Demo is a simulated Framework laptop. It lets the dashboard run on
// machines without the hardware and gives tests a deterministic device.
type Demo struct {
	mu sync.Mutex

	capability  fingerprint.Capability
	outdatedFW  bool
	now         func() time.Time
	polls       int
	charging    bool
	charge      float64
	chargeLimit uint8
	fpBright    uint8
	kbdBright   uint8
}

// DemoOption configures a Demo device.
type DemoOption func(*Demo)

// WithFingerprintCapability sets the simulated fingerprint LED capability.
func WithFingerprintCapability(c fingerprint.Capability) DemoOption {
	return func(d *Demo) { d.capability = c }
}

// WithOutdatedFirmware makes fingerprint brightness writes fail the way an
// EC without the command does.
func WithOutdatedFirmware() DemoOption {
	return func(d *Demo) { d.outdatedFW = true }
}

// WithClock replaces time.Now for TakenAt.
func WithClock(now func() time.Time) DemoOption {
	return func(d *Demo) { d.now = now }
}

// NewDemo creates a simulated device charging from 62% with an 80% limit.
func NewDemo(opts ...DemoOption) *Demo {
	d := &Demo{
		capability:  fingerprint.CapabilityPercentage,
		now:         time.Now,
		charging:    true,
		charge:      62,
		chargeLimit: 80,
		fpBright:    fingerprint.MediumPercentage,
		kbdBright:   50,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.capability == fingerprint.CapabilityLevel {
		d.fpBright = fingerprint.LevelToPercentage(fingerprint.PercentageToLevel(d.fpBright))
	}
	return d
}

// FingerprintCapability implements Device.
func (d *Demo) FingerprintCapability() fingerprint.Capability {
	return d.capability
}

// Poll implements Device. Each call advances the simulation by one step.
func (d *Demo) Poll(_ context.Context) Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.polls++
	d.step()

	phase := float64(d.polls) / 8
	voltage := uint32(17200 + 300*math.Sin(phase))
	current := uint32(0)
	if d.charging {
		current = uint32(2400 + 400*math.Cos(phase))
	}

	return Snapshot{
		ChargePercentage: ptr(uint32(d.charge)),
		ChargerVoltage:   ptr(voltage),
		ChargerCurrent:   ptr(current),
		DesignCapacity:   ptr(uint32(55000)),
		LastFullCapacity: ptr(uint32(52470)),
		CycleCount:       ptr(uint32(87)),

		Charging:    d.charging,
		ACConnected: true,

		MaxChargeLimit: ptr(d.chargeLimit),

		MicrophoneEnabled: true,
		CameraEnabled:     d.polls%40 < 30,

		FingerprintBrightness: ptr(d.fpBright),
		KeyboardBrightness:    ptr(d.kbdBright),

		BIOSVendor:      "INSYDE Corp.",
		BIOSVersion:     "03.05",
		BIOSReleaseDate: "03/29/2024",
		Platform:        "demo",

		PDPorts: []PDPort{
			{Name: portNames[0], Connected: true, Role: "Sink", DualRole: true, ChargingType: "PD",
				VoltageNow: 20000, VoltageMax: 20000, CurrentLimit: 3000, CurrentMax: 3250, MaxPower: 65000},
			{Name: portNames[1], Role: "Disconnected", ChargingType: "None"},
			{Name: portNames[2], Connected: true, Role: "Source", ChargingType: "Type-C",
				VoltageNow: 5000, VoltageMax: 5000, CurrentLimit: 900, CurrentMax: 1500, MaxPower: 7500},
			{Name: portNames[3], Role: "Disconnected", ChargingType: "None"},
		},
		FanRPM: []uint32{uint32(2100 + 150*math.Sin(phase*2))},
		Temperatures: []TempSensor{
			{Name: "cpu", Celsius: 52 + 4*math.Sin(phase), High: 100},
			{Name: "battery", Celsius: 31.5, High: 60},
			{Name: "ddr", Celsius: 41 + 2*math.Cos(phase), High: 85},
		},

		TakenAt: d.now(),
	}
}

// SetMaxChargeLimit implements Device.
func (d *Demo) SetMaxChargeLimit(_ context.Context, pct uint8) error {
	if pct > 100 {
		return &Error{Op: "set max charge limit", Kind: KindInvalidValue}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.chargeLimit = pct
	logging.Info("Demo max charge limit set", zap.Uint8("percentage", pct))
	return nil
}

// SetFingerprintBrightness implements Device.
func (d *Demo) SetFingerprintBrightness(_ context.Context, pct uint8) error {
	const op = "set fingerprint brightness"
	if d.outdatedFW {
		return errors.Wrap(&Error{Op: op, Kind: KindFirmwareUpdateRequired}, "demo")
	}
	if pct > 100 {
		return &Error{Op: op, Kind: KindInvalidValue}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.capability == fingerprint.CapabilityLevel {
		pct = fingerprint.LevelToPercentage(fingerprint.PercentageToLevel(pct))
	}
	d.fpBright = pct
	return nil
}

// SetKeyboardBrightness implements Device.
func (d *Demo) SetKeyboardBrightness(_ context.Context, pct uint8) {
	if pct > 100 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.kbdBright = pct
}

func (d *Demo) step() {
	switch {
	case d.charging && d.charge >= float64(d.chargeLimit):
		d.charging = false
	case !d.charging && d.charge < float64(d.chargeLimit)-5:
		d.charging = true
	}
	if d.charging {
		d.charge = math.Min(d.charge+0.5, 100)
	} else {
		d.charge = math.Max(d.charge-0.1, 0)
	}
}
