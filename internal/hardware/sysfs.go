package hardware

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/distatus/battery"
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/sensors"
	"go.uber.org/zap"

	"github.com/muurk/fwtui/internal/fingerprint"
	"github.com/muurk/fwtui/internal/logging"
)

// Framework laptops number their expansion-card ports clockwise starting
// at the right rear.
var portNames = []string{"Right back", "Right front", "Left front", "Left back"}

// levelMaxBrightness is the largest max_brightness an LED can report and
// still be treated as a three-step level LED.
const levelMaxBrightness = 3

// Sysfs reads and writes Framework laptop state through the Linux sysfs
// interfaces exposed by the cros_ec, cros_charge-control and typec drivers.
type Sysfs struct {
	root         string
	batteries    func() ([]*battery.Battery, error)
	temperatures func(ctx context.Context) ([]sensors.TemperatureStat, error)
	hostInfo     func(ctx context.Context) (*host.InfoStat, error)
	privacy      func() (microphone, camera bool, err error)

	batteryDir string
	fpLED      string
	kbdLED     string
	capability fingerprint.Capability
	platform   string
}

// Option configures a Sysfs device.
type Option func(*Sysfs)

// WithRoot reads sysfs and procfs relative to root instead of "/".
func WithRoot(root string) Option {
	return func(d *Sysfs) { d.root = root }
}

// WithBatteryReader replaces battery.GetAll.
func WithBatteryReader(f func() ([]*battery.Battery, error)) Option {
	return func(d *Sysfs) { d.batteries = f }
}

// WithTemperatureReader replaces sensors.TemperaturesWithContext.
func WithTemperatureReader(f func(ctx context.Context) ([]sensors.TemperatureStat, error)) Option {
	return func(d *Sysfs) { d.temperatures = f }
}

// WithHostInfo replaces host.InfoWithContext.
func WithHostInfo(f func(ctx context.Context) (*host.InfoStat, error)) Option {
	return func(d *Sysfs) { d.hostInfo = f }
}

// WithPrivacyReader replaces the EC privacy switch query.
func WithPrivacyReader(f func() (microphone, camera bool, err error)) Option {
	return func(d *Sysfs) { d.privacy = f }
}

// OpenSysfs locates the battery and LED nodes and probes the fingerprint
// LED capability. Missing nodes are not an error; the matching readings
// stay empty and the matching setters report KindUnsupported.
func OpenSysfs(opts ...Option) *Sysfs {
	d := &Sysfs{
		root:         "/",
		batteries:    battery.GetAll,
		temperatures: sensors.TemperaturesWithContext,
		hostInfo:     host.InfoWithContext,
	}
	d.privacy = d.readECPrivacy
	for _, opt := range opts {
		opt(d)
	}

	d.batteryDir = d.first("sys/class/power_supply/BAT*")
	d.kbdLED = d.first("sys/class/leds/*kbd_backlight")
	d.fpLED = d.first("sys/class/leds/*fingerprint*")
	d.capability = fingerprint.CapabilityPercentage
	if d.fpLED != "" {
		if maxRaw, err := readUint(filepath.Join(d.fpLED, "max_brightness")); err == nil && maxRaw <= levelMaxBrightness {
			d.capability = fingerprint.CapabilityLevel
		}
	}

	logging.Debug("Opened sysfs device",
		zap.String("root", d.root),
		zap.String("battery", d.batteryDir),
		zap.String("kbd_led", d.kbdLED),
		zap.String("fp_led", d.fpLED),
		zap.Stringer("fp_capability", d.capability),
	)
	return d
}

// FingerprintCapability implements Device.
func (d *Sysfs) FingerprintCapability() fingerprint.Capability {
	return d.capability
}

// Poll implements Device.
func (d *Sysfs) Poll(ctx context.Context) Snapshot {
	start := time.Now()
	s := Snapshot{TakenAt: start}

	d.readBattery(&s)
	s.ACConnected = d.acOnline()

	s.BIOSVendor = d.readText("sys/class/dmi/id/bios_vendor")
	s.BIOSVersion = d.readText("sys/class/dmi/id/bios_version")
	s.BIOSReleaseDate = d.readText("sys/class/dmi/id/bios_date")

	s.MicrophoneEnabled, s.CameraEnabled = d.readPrivacy()

	if d.fpLED != "" {
		if v, err := d.ledPercentage(d.fpLED); err == nil {
			s.FingerprintBrightness = ptr(v)
		}
	}
	if d.kbdLED != "" {
		if v, err := d.ledPercentage(d.kbdLED); err == nil {
			s.KeyboardBrightness = ptr(v)
		}
	}

	s.PDPorts = d.readPDPorts()
	s.FanRPM = d.readFans()
	s.Temperatures = d.readTemperatures(ctx)
	s.Platform = d.readPlatform(ctx)

	logging.LogPoll(time.Since(start), len(s.PDPorts), len(s.FanRPM))
	return s
}

// SetMaxChargeLimit implements Device.
func (d *Sysfs) SetMaxChargeLimit(_ context.Context, pct uint8) error {
	const op = "set max charge limit"
	if pct > 100 {
		return &Error{Op: op, Kind: KindInvalidValue}
	}
	if d.batteryDir == "" {
		return &Error{Op: op, Kind: KindUnsupported}
	}
	err := writeUint(filepath.Join(d.batteryDir, "charge_control_end_threshold"), uint64(pct))
	return ClassifyWriteError(op, err).orNil()
}

// SetFingerprintBrightness implements Device.
func (d *Sysfs) SetFingerprintBrightness(_ context.Context, pct uint8) error {
	const op = "set fingerprint brightness"
	if pct > 100 {
		return &Error{Op: op, Kind: KindInvalidValue}
	}
	if d.fpLED == "" {
		return &Error{Op: op, Kind: KindUnsupported}
	}

	var raw uint64
	if d.capability == fingerprint.CapabilityLevel {
		raw = uint64(fingerprint.PercentageToLevel(pct)) + 1
	} else {
		maxRaw, err := readUint(filepath.Join(d.fpLED, "max_brightness"))
		if err != nil {
			return ClassifyWriteError(op, err)
		}
		raw = uint64(pct) * maxRaw / 100
	}
	err := writeUint(filepath.Join(d.fpLED, "brightness"), raw)
	return ClassifyWriteError(op, err).orNil()
}

// SetKeyboardBrightness implements Device.
func (d *Sysfs) SetKeyboardBrightness(_ context.Context, pct uint8) {
	if d.kbdLED == "" || pct > 100 {
		return
	}
	maxRaw, err := readUint(filepath.Join(d.kbdLED, "max_brightness"))
	if err == nil {
		err = writeUint(filepath.Join(d.kbdLED, "brightness"), uint64(pct)*maxRaw/100)
	}
	if err != nil {
		logging.Warn("Keyboard brightness write failed", zap.Uint8("percentage", pct), zap.Error(err))
	}
}

func (d *Sysfs) readBattery(s *Snapshot) {
	bats, err := d.batteries()
	var bat *battery.Battery
	for _, b := range bats {
		if b != nil {
			bat = b
			break
		}
	}
	if bat == nil {
		if err != nil {
			logging.Debug("No battery reading", zap.Error(err))
		}
		return
	}

	if bat.Full > 0 {
		s.ChargePercentage = ptr(uint32(bat.Current / bat.Full * 100))
	}
	if bat.Design > 0 {
		s.DesignCapacity = ptr(uint32(bat.Design))
	}
	if bat.Full > 0 {
		s.LastFullCapacity = ptr(uint32(bat.Full))
	}
	if bat.Voltage > 0 {
		s.ChargerVoltage = ptr(uint32(math.Round(bat.Voltage * 1000)))
		s.ChargerCurrent = ptr(uint32(math.Round(bat.ChargeRate / bat.Voltage)))
	}
	s.Charging = bat.State == battery.Charging

	if d.batteryDir == "" {
		return
	}
	if v, err := readUint(filepath.Join(d.batteryDir, "cycle_count")); err == nil {
		s.CycleCount = ptr(uint32(v))
	}
	if v, err := readUint(filepath.Join(d.batteryDir, "charge_control_end_threshold")); err == nil && v <= 100 {
		s.MaxChargeLimit = ptr(uint8(v))
	}
}

func (d *Sysfs) acOnline() bool {
	supplies, _ := filepath.Glob(d.path("sys/class/power_supply/*"))
	for _, dir := range supplies {
		kind, err := readString(filepath.Join(dir, "type"))
		if err != nil || kind != "Mains" {
			continue
		}
		if v, err := readUint(filepath.Join(dir, "online")); err == nil && v == 1 {
			return true
		}
	}
	return false
}

func (d *Sysfs) ledPercentage(dir string) (uint8, error) {
	cur, err := readUint(filepath.Join(dir, "brightness"))
	if err != nil {
		return 0, err
	}
	maxRaw, err := readUint(filepath.Join(dir, "max_brightness"))
	if err != nil {
		return 0, err
	}
	if maxRaw == 0 {
		return 0, errors.Errorf("%s: max_brightness is zero", dir)
	}

	if dir == d.fpLED && d.capability == fingerprint.CapabilityLevel {
		if cur == 0 {
			cur = 1
		}
		return fingerprint.LevelToPercentage(fingerprint.Level(cur - 1)), nil
	}
	if cur > maxRaw {
		cur = maxRaw
	}
	return uint8(cur * 100 / maxRaw), nil
}

func (d *Sysfs) readPDPorts() []PDPort {
	dirs, _ := filepath.Glob(d.path("sys/class/typec/port[0-9]"))
	sort.Strings(dirs)
	supplies, _ := filepath.Glob(d.path("sys/class/power_supply/ucsi-source-psy-*"))
	sort.Strings(supplies)

	ports := make([]PDPort, 0, len(dirs))
	for i, dir := range dirs {
		p := PDPort{Name: fmt.Sprintf("Port %d", i), Role: "Disconnected", ChargingType: "None"}
		if i < len(portNames) {
			p.Name = portNames[i]
		}

		if _, err := os.Stat(dir + "-partner"); err == nil {
			p.Connected = true
			roles, _ := readString(filepath.Join(dir, "power_role"))
			p.Role = activeRole(roles)
			p.DualRole = strings.Contains(roles, "source") && strings.Contains(roles, "sink")
			mode, _ := readString(filepath.Join(dir, "power_operation_mode"))
			p.ChargingType = chargingType(mode)
		}

		if i < len(supplies) {
			psy := supplies[i]
			p.VoltageNow = microToMilli(psy, "voltage_now")
			p.VoltageMax = microToMilli(psy, "voltage_max")
			p.CurrentLimit = microToMilli(psy, "current_now")
			p.CurrentMax = microToMilli(psy, "current_max")
			p.MaxPower = p.VoltageMax * p.CurrentMax / 1000
		}
		ports = append(ports, p)
	}
	return ports
}

func (d *Sysfs) readFans() []uint32 {
	inputs, _ := filepath.Glob(d.path("sys/class/hwmon/hwmon*/fan*_input"))
	sort.Strings(inputs)

	var rpm []uint32
	for _, in := range inputs {
		if v, err := readUint(in); err == nil {
			rpm = append(rpm, uint32(v))
		}
	}
	return rpm
}

func (d *Sysfs) readTemperatures(ctx context.Context) []TempSensor {
	stats, err := d.temperatures(ctx)
	if err != nil && len(stats) == 0 {
		logging.Debug("No temperature reading", zap.Error(err))
		return nil
	}

	temps := make([]TempSensor, 0, len(stats))
	for _, st := range stats {
		if st.Temperature <= 0 {
			continue
		}
		temps = append(temps, TempSensor{Name: st.SensorKey, Celsius: st.Temperature, High: st.High})
	}
	sort.Slice(temps, func(i, j int) bool { return temps[i].Name < temps[j].Name })
	return temps
}

// readPrivacy reports the switch positions from the EC. Without the EC the
// microphone reads as off, and the camera as on while its USB video node
// exists; the camera switch disconnects the device.
func (d *Sysfs) readPrivacy() (bool, bool) {
	microphone, camera, err := d.privacy()
	if err == nil {
		return microphone, camera
	}
	logging.Debug("EC privacy query failed", zap.Error(err))
	return false, d.first("sys/class/video4linux/video*") != ""
}

func (d *Sysfs) readPlatform(ctx context.Context) string {
	if d.platform != "" {
		return d.platform
	}
	info, err := d.hostInfo(ctx)
	if err != nil || info == nil {
		return ""
	}
	d.platform = strings.TrimSpace(fmt.Sprintf("%s %s (kernel %s)", info.Platform, info.PlatformVersion, info.KernelVersion))
	return d.platform
}

func (d *Sysfs) path(rel string) string {
	return filepath.Join(d.root, rel)
}

func (d *Sysfs) first(pattern string) string {
	matches, _ := filepath.Glob(d.path(pattern))
	if len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return matches[0]
}

func (d *Sysfs) readText(rel string) string {
	s, _ := readString(d.path(rel))
	return s
}

func (e *Error) orNil() error {
	if e == nil {
		return nil
	}
	return e
}

// activeRole picks the bracketed entry of a typec role file such as
// "[source] sink".
func activeRole(roles string) string {
	switch {
	case strings.Contains(roles, "[source]"):
		return "Source"
	case strings.Contains(roles, "[sink]"):
		return "Sink"
	case roles == "source":
		return "Source"
	case roles == "sink":
		return "Sink"
	default:
		return "Unknown"
	}
}

func chargingType(mode string) string {
	switch mode {
	case "usb_power_delivery":
		return "PD"
	case "default", "1.5A", "3.0A":
		return "Type-C"
	case "":
		return "None"
	default:
		return "Other"
	}
}

func microToMilli(dir, name string) uint32 {
	v, err := readUint(filepath.Join(dir, name))
	if err != nil {
		return 0
	}
	return uint32(v / 1000)
}

func readString(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	return strings.TrimSpace(string(b)), nil
}

func readUint(path string) (uint64, error) {
	s, err := readString(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", path)
	}
	return v, nil
}

func writeUint(path string, v uint64) error {
	if err := os.WriteFile(path, []byte(strconv.FormatUint(v, 10)), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
