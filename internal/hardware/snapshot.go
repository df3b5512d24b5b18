package hardware

import (
	"fmt"
	"time"
)

// NormalCapacityLossPerCycle is the per-cycle capacity loss (in percent)
// above which the battery is considered to wear faster than expected.
const NormalCapacityLossPerCycle = 0.048

// Snapshot is one point-in-time read of every value the dashboard shows.
// A Snapshot is produced wholesale by Device.Poll and replaced on the next
// poll; holders must treat it and its slices as read-only.
//
// Optional readings are nil when the hardware did not report them.
type Snapshot struct {
	ChargePercentage *uint32
	ChargerVoltage   *uint32 // mV
	ChargerCurrent   *uint32 // mA
	DesignCapacity   *uint32 // mWh
	LastFullCapacity *uint32 // mWh
	CycleCount       *uint32

	Charging    bool
	ACConnected bool

	MaxChargeLimit *uint8

	MicrophoneEnabled bool
	CameraEnabled     bool

	FingerprintBrightness *uint8
	KeyboardBrightness    *uint8

	BIOSVendor      string
	BIOSVersion     string
	BIOSReleaseDate string
	Platform        string

	PDPorts      []PDPort
	FanRPM       []uint32
	Temperatures []TempSensor

	TakenAt time.Time
}

// PDPort is the USB Power Delivery state of one Type-C port.
type PDPort struct {
	Name         string
	Connected    bool
	Role         string
	DualRole     bool
	ChargingType string
	VoltageNow   uint32 // mV
	VoltageMax   uint32 // mV
	CurrentLimit uint32 // mA
	CurrentMax   uint32 // mA
	MaxPower     uint32 // mW
}

// TempSensor is one temperature reading.
type TempSensor struct {
	Name    string
	Celsius float64
	High    float64
}

// CapacityLossPercentage returns how much of the design capacity the battery
// has lost, in percent.
func (s Snapshot) CapacityLossPercentage() (float64, bool) {
	if s.DesignCapacity == nil || s.LastFullCapacity == nil || *s.DesignCapacity == 0 {
		return 0, false
	}
	design := float64(*s.DesignCapacity)
	last := float64(*s.LastFullCapacity)
	return (design - last) / design * 100, true
}

// CapacityLossPerCycle returns CapacityLossPercentage divided by the cycle count.
func (s Snapshot) CapacityLossPerCycle() (float64, bool) {
	loss, ok := s.CapacityLossPercentage()
	if !ok || s.CycleCount == nil || *s.CycleCount == 0 {
		return 0, false
	}
	return loss / float64(*s.CycleCount), true
}

// ChargingStatus summarises the Charging and ACConnected flags.
func (s Snapshot) ChargingStatus() string {
	switch {
	case s.Charging && s.ACConnected:
		return "Charging"
	case !s.Charging && s.ACConnected:
		return "Fully charged"
	case !s.Charging && !s.ACConnected:
		return "Discharging"
	default:
		return "Unknown"
	}
}

// ChargerVoltageVolts returns ChargerVoltage converted to volts.
func (s Snapshot) ChargerVoltageVolts() (float64, bool) {
	if s.ChargerVoltage == nil {
		return 0, false
	}
	return float64(*s.ChargerVoltage) / 1000, true
}

// ChargerCurrentAmps returns ChargerCurrent converted to amps.
func (s Snapshot) ChargerCurrentAmps() (float64, bool) {
	if s.ChargerCurrent == nil {
		return 0, false
	}
	return float64(*s.ChargerCurrent) / 1000, true
}

// FormatOptional renders an optional reading with a unit suffix, or "N/A".
func FormatOptional[T uint8 | uint32](v *T, unit string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d%s", *v, unit)
}

func ptr[T any](v T) *T {
	return &v
}
