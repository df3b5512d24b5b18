package hardware

import (
	"math"
	"testing"
)

func TestCapacityLoss(t *testing.T) {
	s := Snapshot{
		DesignCapacity:   ptr(uint32(55000)),
		LastFullCapacity: ptr(uint32(52250)),
		CycleCount:       ptr(uint32(100)),
	}

	loss, ok := s.CapacityLossPercentage()
	if !ok || math.Abs(loss-5) > 1e-9 {
		t.Errorf("CapacityLossPercentage() = %v, %v, want 5, true", loss, ok)
	}

	perCycle, ok := s.CapacityLossPerCycle()
	if !ok || math.Abs(perCycle-0.05) > 1e-9 {
		t.Errorf("CapacityLossPerCycle() = %v, %v, want 0.05, true", perCycle, ok)
	}
	if perCycle <= NormalCapacityLossPerCycle {
		t.Errorf("CapacityLossPerCycle() = %v, expected above normal", perCycle)
	}
}

func TestCapacityLossMissing(t *testing.T) {
	tests := []struct {
		name string
		s    Snapshot
	}{
		{"empty", Snapshot{}},
		{"zero design", Snapshot{DesignCapacity: ptr(uint32(0)), LastFullCapacity: ptr(uint32(10))}},
		{"no last full", Snapshot{DesignCapacity: ptr(uint32(10))}},
	}

	for _, tt := range tests {
		if _, ok := tt.s.CapacityLossPercentage(); ok {
			t.Errorf("%s: CapacityLossPercentage() ok = true, want false", tt.name)
		}
		if _, ok := tt.s.CapacityLossPerCycle(); ok {
			t.Errorf("%s: CapacityLossPerCycle() ok = true, want false", tt.name)
		}
	}

	zeroCycles := Snapshot{
		DesignCapacity:   ptr(uint32(100)),
		LastFullCapacity: ptr(uint32(90)),
		CycleCount:       ptr(uint32(0)),
	}
	if _, ok := zeroCycles.CapacityLossPerCycle(); ok {
		t.Error("CapacityLossPerCycle() with zero cycles ok = true, want false")
	}
}

func TestChargingStatus(t *testing.T) {
	tests := []struct {
		charging, ac bool
		want         string
	}{
		{true, true, "Charging"},
		{false, true, "Fully charged"},
		{false, false, "Discharging"},
		{true, false, "Unknown"},
	}

	for _, tt := range tests {
		s := Snapshot{Charging: tt.charging, ACConnected: tt.ac}
		if got := s.ChargingStatus(); got != tt.want {
			t.Errorf("ChargingStatus(charging=%v, ac=%v) = %q, want %q", tt.charging, tt.ac, got, tt.want)
		}
	}
}

func TestFormatOptional(t *testing.T) {
	if got := FormatOptional[uint8](nil, "%"); got != "N/A" {
		t.Errorf("FormatOptional(nil) = %q, want N/A", got)
	}
	if got := FormatOptional(ptr(uint32(17200)), " mV"); got != "17200 mV" {
		t.Errorf("FormatOptional(17200) = %q, want %q", got, "17200 mV")
	}
}
