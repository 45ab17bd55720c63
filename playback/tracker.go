// Package playback turns raw media time updates into throttled progress
// reports. It has no knowledge of persistence; reports go to a Sink.
package playback

import (
	"math"
	"sync"
	"time"
)

type Update struct {
	Percent   float64   `json:"percent"`
	Position  float64   `json:"position"`
	TimeSpent int       `json:"time_spent"`
	Ended     bool      `json:"ended"`
	At        time.Time `json:"at"`
}

// Sink receives every emitted update. It must not call back into the Tracker.
type Sink func(Update)

type Config struct {
	// MinDelta is the percentage-point increase that is reported immediately.
	MinDelta float64
	// MinInterval is the quiet gap after an emit before a smaller change may
	// be reported through the debounce.
	MinInterval time.Duration
	Debounce    time.Duration
	// MaxStep bounds the forward position delta counted as watched time.
	// Larger jumps are seeks.
	MaxStep float64
}

func DefaultConfig() Config {
	return Config{
		MinDelta:    5,
		MinInterval: 3 * time.Second,
		Debounce:    500 * time.Millisecond,
		MaxStep:     2,
	}
}

type Option func(*Tracker)

func WithClock(clock Clock) Option {
	return func(t *Tracker) { t.clock = clock }
}

func WithConfig(cfg Config) Option {
	return func(t *Tracker) { t.cfg = cfg }
}

// WithInitialProgress seeds the tracker from a stored progress record so a
// resumed lecture never reports below what the server already has.
func WithInitialProgress(percent float64, timeSpent int) Option {
	return func(t *Tracker) {
		percent = clamp(percent)
		t.highWater = percent
		t.lastEmitted = percent
		t.timeSpent = float64(timeSpent)
		t.lastEmittedSpent = timeSpent
		t.reachedEnd = percent >= 100
	}
}

// Tracker is safe for concurrent use. Time updates and debounce timers may
// arrive from different goroutines; sink calls are serialized in emit order.
type Tracker struct {
	mu     sync.Mutex
	emitMu sync.Mutex

	cfg   Config
	clock Clock
	sink  Sink

	highWater        float64
	lastEmitted      float64
	lastEmittedSpent int
	lastEmitAt       time.Time
	hasEmitted       bool
	reachedEnd       bool

	position    float64
	hasPosition bool
	timeSpent   float64

	pending  *Update
	timer    Timer
	timerGen uint64
	closed   bool
}

func New(sink Sink, opts ...Option) *Tracker {
	t := &Tracker{
		cfg:   DefaultConfig(),
		clock: SystemClock{},
		sink:  sink,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// OnTimeUpdate feeds the current playback position. A duration that is not
// a positive finite number means metadata is not loaded yet and the update
// is ignored.
func (t *Tracker) OnTimeUpdate(currentTime, duration float64) {
	if !validDuration(duration) || math.IsNaN(currentTime) || math.IsInf(currentTime, 0) {
		return
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}

	t.advancePosition(currentTime)

	pct := clamp(currentTime / duration * 100)
	if pct > t.highWater {
		t.highWater = pct
	}

	if t.reachedEnd {
		t.mu.Unlock()
		return
	}

	if t.highWater >= 100 {
		t.reachedEnd = true
		t.stopTimerLocked()
		t.emitLocked(t.updateLocked(false))
		return
	}

	spent := int(t.timeSpent)
	if t.highWater <= t.lastEmitted && spent == t.lastEmittedSpent {
		t.mu.Unlock()
		return
	}

	u := t.updateLocked(false)
	if t.highWater-t.lastEmitted >= t.cfg.MinDelta {
		t.stopTimerLocked()
		t.emitLocked(u)
		return
	}

	t.pending = &u
	if t.timer == nil {
		t.armLocked()
	}
	t.mu.Unlock()
}

// armLocked starts the trailing emit: Debounce after the update that armed
// it, but never earlier than MinInterval after the previous emit. Updates
// arriving while armed only replace the pending value.
func (t *Tracker) armLocked() {
	delay := t.cfg.Debounce
	if t.hasEmitted {
		if wait := t.cfg.MinInterval - t.clock.Now().Sub(t.lastEmitAt); wait > 0 {
			delay += wait
		}
	}

	t.timerGen++
	gen := t.timerGen
	t.timer = t.clock.AfterFunc(delay, func() { t.fire(gen) })
}

// OnEnded always reports 100, even when 100 was already reported.
func (t *Tracker) OnEnded() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.highWater = 100
	t.reachedEnd = true
	t.stopTimerLocked()
	t.emitLocked(t.updateLocked(true))
}

// Flush reports the pending update, if any, without waiting for the timer.
func (t *Tracker) Flush() {
	t.mu.Lock()
	if t.closed || t.pending == nil {
		t.mu.Unlock()
		return
	}
	u := *t.pending
	t.stopTimerLocked()
	t.emitLocked(u)
}

// Close flushes and stops the tracker. Later updates are ignored.
func (t *Tracker) Close() {
	t.Flush()

	t.mu.Lock()
	t.closed = true
	t.stopTimerLocked()
	t.mu.Unlock()
}

func (t *Tracker) Progress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.highWater
}

func (t *Tracker) TimeSpent() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int(t.timeSpent)
}

func (t *Tracker) fire(gen uint64) {
	t.mu.Lock()
	if gen != t.timerGen {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	if t.closed || t.pending == nil {
		t.mu.Unlock()
		return
	}
	t.emitLocked(*t.pending)
}

func (t *Tracker) advancePosition(currentTime float64) {
	if t.hasPosition {
		delta := currentTime - t.position
		if delta > 0 && delta <= t.cfg.MaxStep {
			t.timeSpent += delta
		}
	}
	t.position = currentTime
	t.hasPosition = true
}

func (t *Tracker) updateLocked(ended bool) Update {
	return Update{
		Percent:   t.highWater,
		Position:  t.position,
		TimeSpent: int(t.timeSpent),
		Ended:     ended,
		At:        t.clock.Now(),
	}
}

// emitLocked must be called with mu held; it releases mu before invoking
// the sink.
func (t *Tracker) emitLocked(u Update) {
	t.pending = nil
	t.lastEmitted = u.Percent
	t.lastEmittedSpent = u.TimeSpent
	t.lastEmitAt = t.clock.Now()
	t.hasEmitted = true

	t.emitMu.Lock()
	t.mu.Unlock()
	defer t.emitMu.Unlock()

	if t.sink != nil {
		t.sink(u)
	}
}

func (t *Tracker) stopTimerLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.timerGen++
}

func validDuration(d float64) bool {
	return d > 0 && !math.IsNaN(d) && !math.IsInf(d, 0)
}

func clamp(pct float64) float64 {
	if pct < 0 || math.IsNaN(pct) {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
