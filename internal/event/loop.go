// Package event merges the refresh timer and terminal input into one ordered
// stream of events for the dashboard.
//
// A single producer goroutine waits on whichever of {ticker, input} fires
// first and appends exactly one Event per firing to an unbounded FIFO queue.
// The consumer drains it one event at a time with Next. The producer never
// touches application state.
package event

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/fwtui/internal/logging"
)

// ErrClosed is returned by Next once the producer has terminated and every
// queued event has been delivered.
var ErrClosed = errors.New("event loop closed")

// Kind identifies what produced an Event.
type Kind int

const (
	// KindTick is a refresh timer firing.
	KindTick Kind = iota
	// KindInput is a key press.
	KindInput
)

func (k Kind) String() string {
	switch k {
	case KindTick:
		return "tick"
	case KindInput:
		return "input"
	default:
		return "unknown"
	}
}

// Event is one item of the merged stream.
type Event struct {
	Kind Kind
	Key  tea.KeyMsg // set for KindInput
	At   time.Time
}

// Ticker is the subset of *time.Ticker the loop needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop() { t.t.Stop() }

// NewTimeTicker is the default TickerFunc, backed by time.NewTicker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// inputBuffer absorbs bursts of pasted keys while the producer is busy
// appending to the queue.
const inputBuffer = 64

// Loop is the event producer plus its queue.
type Loop struct {
	period    time.Duration
	newTicker TickerFunc
	now       func() time.Time

	input     chan tea.KeyMsg
	inputDone chan struct{}
	closeOnce sync.Once
	// interval is the single-slot cell holding the latest requested period.
	interval chan time.Duration
	stopped  chan struct{}
	started  bool

	mu     sync.Mutex
	queue  []Event
	done   bool
	notify chan struct{}
}

// Option configures a Loop.
type Option func(*Loop)

// WithTicker replaces NewTimeTicker.
func WithTicker(f TickerFunc) Option {
	return func(l *Loop) { l.newTicker = f }
}

// WithClock replaces time.Now for input event timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Loop) { l.now = now }
}

// New creates a Loop that ticks every period once Run is called.
func New(period time.Duration, opts ...Option) *Loop {
	l := &Loop{
		period:    period,
		newTicker: NewTimeTicker,
		now:       time.Now,
		input:     make(chan tea.KeyMsg, inputBuffer),
		inputDone: make(chan struct{}),
		interval:  make(chan time.Duration, 1),
		stopped:   make(chan struct{}),
		notify:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run starts the producer goroutine. It returns immediately. The producer
// stops when ctx is cancelled or the input stream is closed; Next then
// reports ErrClosed after the queue drains. Run must be called once.
func (l *Loop) Run(ctx context.Context) {
	if l.started {
		panic("event: Loop.Run called twice")
	}
	l.started = true
	go l.produce(ctx)
}

func (l *Loop) produce(ctx context.Context) {
	defer l.finish()

	ticker := l.newTicker(l.period)
	defer func() { ticker.Stop() }()

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.inputDone:
			l.drainInput()
			return
		case t := <-ticker.C():
			l.push(Event{Kind: KindTick, At: t})
		case k := <-l.input:
			l.push(Event{Kind: KindInput, Key: k, At: l.now()})
		case d := <-l.interval:
			// The next tick is scheduled a full period from now.
			ticker.Stop()
			ticker = l.newTicker(d)
			logging.Debug("Ticker recreated", zap.Duration("period", d))
		}
	}
}

// drainInput queues keys that were fed before the input stream closed.
func (l *Loop) drainInput() {
	for {
		select {
		case k := <-l.input:
			l.push(Event{Kind: KindInput, Key: k, At: l.now()})
		default:
			return
		}
	}
}

func (l *Loop) push(ev Event) {
	l.mu.Lock()
	l.queue = append(l.queue, ev)
	l.mu.Unlock()
	l.signal()
}

func (l *Loop) finish() {
	l.mu.Lock()
	l.done = true
	l.mu.Unlock()
	close(l.stopped)
	l.signal()
}

func (l *Loop) signal() {
	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// Next blocks until one event is available and returns it. It returns
// ErrClosed once the producer has terminated and the queue is empty, or
// ctx.Err() if ctx is done first. Next must only be called from a single
// goroutine.
func (l *Loop) Next(ctx context.Context) (Event, error) {
	for {
		l.mu.Lock()
		if len(l.queue) > 0 {
			ev := l.queue[0]
			l.queue[0] = Event{}
			l.queue = l.queue[1:]
			l.mu.Unlock()
			return ev, nil
		}
		done := l.done
		l.mu.Unlock()

		if done {
			return Event{}, ErrClosed
		}

		select {
		case <-l.notify:
		case <-ctx.Done():
			return Event{}, ctx.Err()
		}
	}
}

// Pending returns the number of queued events.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// SetTickInterval replaces the refresh period. Only the latest value is
// kept if several arrive before the producer observes them.
func (l *Loop) SetTickInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	for {
		select {
		case l.interval <- d:
			return
		default:
		}
		select {
		case <-l.interval:
		default:
		}
	}
}

// Feed hands one key press to the producer. It never blocks once the
// producer has stopped.
func (l *Loop) Feed(k tea.KeyMsg) {
	select {
	case l.input <- k:
	case <-l.stopped:
	case <-l.inputDone:
	}
}

// CloseInput ends the input stream, which stops the producer.
func (l *Loop) CloseInput() {
	l.closeOnce.Do(func() { close(l.inputDone) })
}

// Filter is a tea.WithFilter hook that diverts key presses from the
// bubbletea input reader into the loop, so they reach the model in order
// with ticks.
func (l *Loop) Filter(_ tea.Model, msg tea.Msg) tea.Msg {
	if k, ok := msg.(tea.KeyMsg); ok {
		l.Feed(k)
		return nil
	}
	return msg
}
