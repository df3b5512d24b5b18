package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeTicker struct {
	c        chan time.Time
	period   time.Duration
	stopped  chan struct{}
	stopOnce sync.Once
}

func (f *fakeTicker) C() <-chan time.Time { return f.c }
func (f *fakeTicker) Stop() { f.stopOnce.Do(func() { close(f.stopped) }) }

type tickerFactory struct {
	created chan *fakeTicker
}

func newTickerFactory() *tickerFactory {
	return &tickerFactory{created: make(chan *fakeTicker, 8)}
}

func (f *tickerFactory) newTicker(d time.Duration) Ticker {
	t := &fakeTicker{c: make(chan time.Time), period: d, stopped: make(chan struct{})}
	f.created <- t
	return t
}

func (f *tickerFactory) next(t *testing.T) *fakeTicker {
	t.Helper()
	select {
	case ft := <-f.created:
		return ft
	case <-time.After(2 * time.Second):
		t.Fatal("no ticker created")
		return nil
	}
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func nextEvent(t *testing.T, l *Loop) Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ev, err := l.Next(ctx)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	return ev
}

func waitPending(t *testing.T, l *Loop, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for l.Pending() < n {
		if time.Now().After(deadline) {
			t.Fatalf("Pending() = %d, want %d", l.Pending(), n)
		}
		time.Sleep(time.Millisecond)
	}
}

func startLoop(t *testing.T, period time.Duration) (*Loop, *tickerFactory) {
	t.Helper()
	f := newTickerFactory()
	l := New(period, WithTicker(f.newTicker))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	l.Run(ctx)
	return l, f
}

func TestInputOrder(t *testing.T) {
	l, _ := startLoop(t, time.Hour)

	for _, r := range "abc" {
		l.Feed(key(r))
	}

	for _, want := range "abc" {
		ev := nextEvent(t, l)
		if ev.Kind != KindInput {
			t.Fatalf("Kind = %v, want input", ev.Kind)
		}
		if got := ev.Key.String(); got != string(want) {
			t.Errorf("Key = %q, want %q", got, string(want))
		}
	}
}

func TestTicksAndInputFIFO(t *testing.T) {
	l, f := startLoop(t, time.Second)
	ticker := f.next(t)

	t1 := time.Unix(1, 0)
	t2 := time.Unix(2, 0)

	ticker.c <- t1
	waitPending(t, l, 1)
	l.Feed(key('x'))
	waitPending(t, l, 2)
	ticker.c <- t2

	want := []Kind{KindTick, KindInput, KindTick}
	for i, k := range want {
		ev := nextEvent(t, l)
		if ev.Kind != k {
			t.Errorf("event %d Kind = %v, want %v", i, ev.Kind, k)
		}
	}
}

func TestSetTickIntervalRecreatesTicker(t *testing.T) {
	l, f := startLoop(t, time.Second)
	first := f.next(t)
	if first.period != time.Second {
		t.Errorf("initial period = %v, want 1s", first.period)
	}

	l.SetTickInterval(250 * time.Millisecond)
	second := f.next(t)

	if second.period != 250*time.Millisecond {
		t.Errorf("new period = %v, want 250ms", second.period)
	}
	select {
	case <-first.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("old ticker was not stopped")
	}

	at := time.Unix(42, 0)
	second.c <- at
	ev := nextEvent(t, l)
	if ev.Kind != KindTick || !ev.At.Equal(at) {
		t.Errorf("event = %+v, want tick at %v", ev, at)
	}
	if l.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", l.Pending())
	}
}

func TestSetTickIntervalLatestWins(t *testing.T) {
	f := newTickerFactory()
	l := New(time.Second, WithTicker(f.newTicker))

	l.SetTickInterval(2 * time.Second)
	l.SetTickInterval(3 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l.Run(ctx)

	f.next(t)
	if got := f.next(t).period; got != 3*time.Second {
		t.Errorf("period = %v, want 3s", got)
	}

	select {
	case extra := <-f.created:
		t.Errorf("unexpected extra ticker with period %v", extra.period)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSetTickIntervalIgnoresNonPositive(t *testing.T) {
	l := New(time.Second)
	l.SetTickInterval(0)
	l.SetTickInterval(-time.Second)

	select {
	case d := <-l.interval:
		t.Errorf("interval cell holds %v, want empty", d)
	default:
	}
}

func TestCloseInputDrainsThenErrClosed(t *testing.T) {
	l, _ := startLoop(t, time.Hour)

	l.Feed(key('a'))
	l.Feed(key('b'))
	l.CloseInput()

	for _, want := range "ab" {
		if got := nextEvent(t, l).Key.String(); got != string(want) {
			t.Errorf("Key = %q, want %q", got, string(want))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := l.Next(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Next() error = %v, want ErrClosed", err)
	}
}

func TestContextCancelStopsProducer(t *testing.T) {
	f := newTickerFactory()
	l := New(time.Second, WithTicker(f.newTicker))
	ctx, cancel := context.WithCancel(context.Background())
	l.Run(ctx)
	ticker := f.next(t)

	cancel()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	if _, err := l.Next(waitCtx); !errors.Is(err, ErrClosed) {
		t.Fatalf("Next() error = %v, want ErrClosed", err)
	}

	select {
	case <-ticker.stopped:
	default:
		t.Error("ticker not stopped after producer exit")
	}

	// Feeding a stopped loop must not block.
	fed := make(chan struct{})
	go func() {
		for i := 0; i < inputBuffer+10; i++ {
			l.Feed(key('z'))
		}
		close(fed)
	}()
	select {
	case <-fed:
	case <-time.After(2 * time.Second):
		t.Fatal("Feed() blocked after the producer stopped")
	}
}

func TestNextHonoursContext(t *testing.T) {
	l, _ := startLoop(t, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := l.Next(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Next() error = %v, want deadline exceeded", err)
	}
}

func TestFilter(t *testing.T) {
	l, _ := startLoop(t, time.Hour)

	if got := l.Filter(nil, key('q')); got != nil {
		t.Errorf("Filter(KeyMsg) = %v, want nil", got)
	}
	size := tea.WindowSizeMsg{Width: 80, Height: 24}
	if got := l.Filter(nil, size); got != size {
		t.Errorf("Filter(WindowSizeMsg) = %v, want passthrough", got)
	}

	if ev := nextEvent(t, l); ev.Key.String() != "q" {
		t.Errorf("Key = %q, want q", ev.Key.String())
	}
}

func TestRunTwicePanics(t *testing.T) {
	l, _ := startLoop(t, time.Hour)
	defer func() {
		if recover() == nil {
			t.Error("second Run() did not panic")
		}
	}()
	l.Run(context.Background())
}

func TestRealTickerReconfigure(t *testing.T) {
	l := New(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l.Run(ctx)

	changed := time.Now()
	l.SetTickInterval(20 * time.Millisecond)

	var ticks []time.Time
	for len(ticks) < 3 {
		ev := nextEvent(t, l)
		if ev.Kind == KindTick {
			ticks = append(ticks, ev.At)
		}
	}

	if first := ticks[0].Sub(changed); first < 10*time.Millisecond {
		t.Errorf("first tick after %v, want about one new period", first)
	}
	for i := 1; i < len(ticks); i++ {
		if gap := ticks[i].Sub(ticks[i-1]); gap < 10*time.Millisecond || gap > time.Second {
			t.Errorf("tick gap %d = %v, want about 20ms", i, gap)
		}
	}
}
