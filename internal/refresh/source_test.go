package refresh

import (
	"context"
	"testing"
	"time"

	"github.com/muurk/fwtui/internal/fingerprint"
	"github.com/muurk/fwtui/internal/hardware"
)

type countingDevice struct {
	polls int
}

func (d *countingDevice) Poll(context.Context) hardware.Snapshot {
	d.polls++
	return hardware.Snapshot{CycleCount: func() *uint32 { v := uint32(d.polls); return &v }()}
}
func (d *countingDevice) SetMaxChargeLimit(context.Context, uint8) error { return nil }
func (d *countingDevice) SetFingerprintBrightness(context.Context, uint8) error { return nil }
func (d *countingDevice) SetKeyboardBrightness(context.Context, uint8) {}
func (d *countingDevice) FingerprintCapability() fingerprint.Capability { return 0 }

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestPollIfNeeded(t *testing.T) {
	ctx := context.Background()
	dev := &countingDevice{}
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	src := New(dev, time.Second).WithClock(clock.now)

	if _, ok := src.PollIfNeeded(ctx); !ok {
		t.Fatal("first PollIfNeeded() should fetch")
	}

	tests := []struct {
		advance time.Duration
		want    bool
	}{
		{0, false},
		{999 * time.Millisecond, false},
		{1 * time.Millisecond, true},  // exactly one period
		{0, false},                    // immediately again
		{1500 * time.Millisecond, true},
	}

	for i, tt := range tests {
		clock.advance(tt.advance)
		before := dev.polls
		snap, ok := src.PollIfNeeded(ctx)
		if ok != tt.want {
			t.Errorf("step %d: PollIfNeeded() fetched = %v, want %v", i, ok, tt.want)
		}
		if fetched := dev.polls - before; (fetched == 1) != tt.want {
			t.Errorf("step %d: device polled %d times", i, fetched)
		}
		if ok && (snap.CycleCount == nil || *snap.CycleCount != uint32(dev.polls)) {
			t.Errorf("step %d: snapshot is not the fresh one", i)
		}
	}
}

func TestPollIfNeededTwiceFetchesAtMostOnce(t *testing.T) {
	ctx := context.Background()
	dev := &countingDevice{}
	clock := &fakeClock{t: time.Unix(0, 0)}
	src := New(dev, time.Second).WithClock(clock.now)

	src.Poll(ctx)
	clock.advance(2 * time.Second)

	src.PollIfNeeded(ctx)
	src.PollIfNeeded(ctx)

	if dev.polls != 2 {
		t.Errorf("device polled %d times, want 2", dev.polls)
	}
}

func TestPollAlwaysFetches(t *testing.T) {
	ctx := context.Background()
	dev := &countingDevice{}
	clock := &fakeClock{t: time.Unix(100, 0)}
	src := New(dev, time.Hour).WithClock(clock.now)

	src.Poll(ctx)
	src.Poll(ctx)

	if dev.polls != 2 {
		t.Errorf("device polled %d times, want 2", dev.polls)
	}
	if !src.LastPoll().Equal(clock.t) {
		t.Errorf("LastPoll() = %v, want %v", src.LastPoll(), clock.t)
	}
}

func TestSetPeriod(t *testing.T) {
	ctx := context.Background()
	dev := &countingDevice{}
	clock := &fakeClock{t: time.Unix(0, 0)}
	src := New(dev, 5*time.Second).WithClock(clock.now)

	src.Poll(ctx)
	clock.advance(time.Second)
	if _, ok := src.PollIfNeeded(ctx); ok {
		t.Error("PollIfNeeded() fetched before the 5s period elapsed")
	}

	src.SetPeriod(500 * time.Millisecond)
	if src.Period() != 500*time.Millisecond {
		t.Errorf("Period() = %v, want 500ms", src.Period())
	}
	if _, ok := src.PollIfNeeded(ctx); !ok {
		t.Error("PollIfNeeded() should fetch after the period was shortened")
	}
}
