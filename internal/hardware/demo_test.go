package hardware

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/muurk/fwtui/internal/fingerprint"
)

func TestDemoSetters(t *testing.T) {
	ctx := context.Background()
	d := NewDemo()

	if err := d.SetMaxChargeLimit(ctx, 90); err != nil {
		t.Fatalf("SetMaxChargeLimit() error = %v", err)
	}
	if err := d.SetFingerprintBrightness(ctx, 20); err != nil {
		t.Fatalf("SetFingerprintBrightness() error = %v", err)
	}
	d.SetKeyboardBrightness(ctx, 70)

	s := d.Poll(ctx)
	if *s.MaxChargeLimit != 90 {
		t.Errorf("MaxChargeLimit = %d, want 90", *s.MaxChargeLimit)
	}
	if *s.FingerprintBrightness != 20 {
		t.Errorf("FingerprintBrightness = %d, want 20", *s.FingerprintBrightness)
	}
	if *s.KeyboardBrightness != 70 {
		t.Errorf("KeyboardBrightness = %d, want 70", *s.KeyboardBrightness)
	}
}

func TestDemoLevelCapability(t *testing.T) {
	ctx := context.Background()
	d := NewDemo(WithFingerprintCapability(fingerprint.CapabilityLevel))

	if got := d.FingerprintCapability(); got != fingerprint.CapabilityLevel {
		t.Errorf("FingerprintCapability() = %v, want %v", got, fingerprint.CapabilityLevel)
	}
	if err := d.SetFingerprintBrightness(ctx, 30); err != nil {
		t.Fatalf("SetFingerprintBrightness() error = %v", err)
	}
	if got := *d.Poll(ctx).FingerprintBrightness; got != fingerprint.MediumPercentage {
		t.Errorf("FingerprintBrightness = %d, want %d", got, fingerprint.MediumPercentage)
	}
}

func TestDemoOutdatedFirmware(t *testing.T) {
	d := NewDemo(WithOutdatedFirmware())
	err := d.SetFingerprintBrightness(context.Background(), 40)
	if !errors.Is(err, ErrFirmwareUpdateRequired) {
		t.Errorf("SetFingerprintBrightness() error = %v, want ErrFirmwareUpdateRequired", err)
	}
}

func TestDemoPollIsWholesale(t *testing.T) {
	at := time.Date(2024, 3, 29, 12, 0, 0, 0, time.UTC)
	d := NewDemo(WithClock(func() time.Time { return at }))
	ctx := context.Background()

	first := d.Poll(ctx)
	if err := d.SetMaxChargeLimit(ctx, 60); err != nil {
		t.Fatalf("SetMaxChargeLimit() error = %v", err)
	}
	second := d.Poll(ctx)

	if *first.MaxChargeLimit != 80 {
		t.Errorf("first.MaxChargeLimit = %d, want 80 (earlier snapshot must not change)", *first.MaxChargeLimit)
	}
	if *second.MaxChargeLimit != 60 {
		t.Errorf("second.MaxChargeLimit = %d, want 60", *second.MaxChargeLimit)
	}
	if !second.TakenAt.Equal(at) {
		t.Errorf("TakenAt = %v, want %v", second.TakenAt, at)
	}
}
