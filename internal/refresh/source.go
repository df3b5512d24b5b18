// Package refresh decides when the hardware snapshot is fetched again.
package refresh

import (
	"context"
	"time"

	"github.com/muurk/fwtui/internal/hardware"
)

// Source wraps a hardware.Device with the time of the last poll and a
// minimum refresh period.
type Source struct {
	device   hardware.Device
	period   time.Duration
	lastPoll time.Time
	now      func() time.Time
}

// New creates a Source that has never polled, so the first PollIfNeeded
// always fetches.
func New(device hardware.Device, period time.Duration) *Source {
	return &Source{device: device, period: period, now: time.Now}
}

// WithClock replaces time.Now. Intended for tests.
func (s *Source) WithClock(now func() time.Time) *Source {
	s.now = now
	return s
}

// Device returns the wrapped device.
func (s *Source) Device() hardware.Device {
	return s.device
}

// Poll fetches a fresh snapshot unconditionally.
func (s *Source) Poll(ctx context.Context) hardware.Snapshot {
	snap := s.device.Poll(ctx)
	s.lastPoll = s.now()
	return snap
}

// PollIfNeeded fetches a fresh snapshot only if at least one period has
// elapsed since the last fetch. The bool reports whether a fetch happened.
func (s *Source) PollIfNeeded(ctx context.Context) (hardware.Snapshot, bool) {
	if !s.lastPoll.IsZero() && s.now().Sub(s.lastPoll) < s.period {
		return hardware.Snapshot{}, false
	}
	return s.Poll(ctx), true
}

// SetPeriod changes the minimum refresh period.
func (s *Source) SetPeriod(d time.Duration) {
	s.period = d
}

// Period returns the minimum refresh period.
func (s *Source) Period() time.Duration {
	return s.period
}

// LastPoll returns when the last fetch finished, or the zero time.
func (s *Source) LastPoll() time.Time {
	return s.lastPoll
}
