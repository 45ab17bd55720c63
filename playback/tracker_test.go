package playback

import (
	"math"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	clock   *fakeClock
	due     time.Time
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, due: c.now.Add(d), fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward and runs every timer that became due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.due.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].due.Before(due[j].due) })
	for _, t := range due {
		t.fn()
	}
}

type recorder struct {
	mu      sync.Mutex
	updates []Update
}

func (r *recorder) sink(u Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, u)
}

func (r *recorder) all() []Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Update(nil), r.updates...)
}

func newTestTracker(opts ...Option) (*Tracker, *fakeClock, *recorder) {
	clock := newFakeClock()
	rec := &recorder{}
	tracker := New(rec.sink, append([]Option{WithClock(clock)}, opts...)...)
	return tracker, clock, rec
}

func TestTracker_UnknownDurationNeverEmits(t *testing.T) {
	tracker, clock, rec := newTestTracker()

	tracker.OnTimeUpdate(5, 0)
	tracker.OnTimeUpdate(10, -1)
	tracker.OnTimeUpdate(10, math.NaN())
	tracker.OnTimeUpdate(10, math.Inf(1))
	clock.Advance(10 * time.Second)
	tracker.Close()

	assert.Empty(t, rec.all())
	assert.Equal(t, 0.0, tracker.Progress())
}

func TestTracker_ReachingEndReportsHundredOnceThenEnded(t *testing.T) {
	tracker, clock, rec := newTestTracker()

	tracker.OnTimeUpdate(120, 120)
	tracker.OnTimeUpdate(120, 120)
	clock.Advance(5 * time.Second)
	tracker.OnTimeUpdate(121, 120)
	tracker.OnEnded()

	updates := rec.all()
	require.Len(t, updates, 2)
	assert.Equal(t, 100.0, updates[0].Percent)
	assert.False(t, updates[0].Ended)
	assert.Equal(t, 100.0, updates[1].Percent)
	assert.True(t, updates[1].Ended)
}

func TestTracker_EndedForcesHundred(t *testing.T) {
	tracker, _, rec := newTestTracker()

	tracker.OnTimeUpdate(30, 100)
	tracker.OnEnded()

	updates := rec.all()
	require.NotEmpty(t, updates)
	last := updates[len(updates)-1]
	assert.Equal(t, 100.0, last.Percent)
	assert.True(t, last.Ended)
}

func TestTracker_LargeStepEmitsImmediately(t *testing.T) {
	tracker, _, rec := newTestTracker()

	tracker.OnTimeUpdate(1, 100)
	assert.Empty(t, rec.all())

	tracker.OnTimeUpdate(5, 100)
	updates := rec.all()
	require.Len(t, updates, 1)
	assert.Equal(t, 5.0, updates[0].Percent)

	tracker.OnTimeUpdate(12, 100)
	require.Len(t, rec.all(), 2)
	assert.Equal(t, 12.0, rec.all()[1].Percent)
}

func TestTracker_SmallChangeIsDebounced(t *testing.T) {
	tracker, clock, rec := newTestTracker()

	tracker.OnTimeUpdate(1, 100)
	clock.Advance(499 * time.Millisecond)
	assert.Empty(t, rec.all())

	clock.Advance(time.Millisecond)
	updates := rec.all()
	require.Len(t, updates, 1)
	assert.Equal(t, 1.0, updates[0].Percent)
}

func TestTracker_TrailingEmitWaitsForMinimumGap(t *testing.T) {
	tracker, clock, rec := newTestTracker()

	tracker.OnTimeUpdate(1, 100)
	clock.Advance(500 * time.Millisecond)
	require.Len(t, rec.all(), 1)

	clock.Advance(500 * time.Millisecond)
	tracker.OnTimeUpdate(2, 100)
	clock.Advance(time.Second)
	tracker.OnTimeUpdate(3, 100)

	clock.Advance(1900 * time.Millisecond)
	assert.Len(t, rec.all(), 1)

	clock.Advance(100 * time.Millisecond)
	updates := rec.all()
	require.Len(t, updates, 2)
	assert.Equal(t, 3.0, updates[1].Percent, "latest pending value wins")
}

func TestTracker_SmallChangeAfterQuietGapStillWaitsDebounce(t *testing.T) {
	tracker, clock, rec := newTestTracker()

	tracker.OnTimeUpdate(10, 100)
	require.Len(t, rec.all(), 1)

	clock.Advance(4 * time.Second)
	tracker.OnTimeUpdate(11, 100)
	assert.Len(t, rec.all(), 1)

	clock.Advance(499 * time.Millisecond)
	tracker.OnTimeUpdate(11.5, 100)
	assert.Len(t, rec.all(), 1, "a later update does not push the armed emit back")

	clock.Advance(time.Millisecond)
	updates := rec.all()
	require.Len(t, updates, 2)
	assert.InDelta(t, 11.5, updates[1].Percent, 1e-9)
}

func TestTracker_SteadyPlaybackCadence(t *testing.T) {
	clock := newFakeClock()
	start := clock.Now()
	var emittedAt []time.Duration
	tracker := New(func(Update) {
		emittedAt = append(emittedAt, clock.Now().Sub(start))
	}, WithClock(clock))

	// 1000 s video, a time update every 250 ms.
	for i := 0; i <= 44; i++ {
		tracker.OnTimeUpdate(float64(i)*0.25, 1000)
		clock.Advance(250 * time.Millisecond)
	}

	// Position 0 is not progress, so the first report is armed at 250 ms.
	assert.Equal(t, []time.Duration{
		750 * time.Millisecond,
		4250 * time.Millisecond,
		7750 * time.Millisecond,
		11250 * time.Millisecond,
	}, emittedAt)
}

func TestTracker_SeekBackwardDoesNotRegress(t *testing.T) {
	tracker, clock, rec := newTestTracker()

	tracker.OnTimeUpdate(50, 100)
	tracker.OnTimeUpdate(20, 100)
	clock.Advance(10 * time.Second)
	tracker.Close()

	for _, u := range rec.all() {
		assert.Equal(t, 50.0, u.Percent)
	}
	assert.Equal(t, 50.0, tracker.Progress())
}

func TestTracker_CloseFlushesPendingAndStops(t *testing.T) {
	tracker, clock, rec := newTestTracker()

	tracker.OnTimeUpdate(1, 100)
	tracker.Close()

	updates := rec.all()
	require.Len(t, updates, 1)
	assert.Equal(t, 1.0, updates[0].Percent)

	tracker.OnTimeUpdate(60, 100)
	tracker.OnEnded()
	clock.Advance(time.Minute)
	assert.Len(t, rec.all(), 1)
}

func TestTracker_TimeSpentCountsForwardPlaybackOnly(t *testing.T) {
	tracker, _, _ := newTestTracker()

	for _, pos := range []float64{0, 1, 2, 3} {
		tracker.OnTimeUpdate(pos, 100)
	}
	tracker.OnTimeUpdate(50, 100)
	tracker.OnTimeUpdate(51, 100)
	tracker.OnTimeUpdate(40, 100)

	assert.Equal(t, 4, tracker.TimeSpent())
}

func TestTracker_InitialProgressIsFloor(t *testing.T) {
	tracker, clock, rec := newTestTracker(WithInitialProgress(40, 100))

	tracker.OnTimeUpdate(10, 100)
	clock.Advance(5 * time.Second)
	assert.Empty(t, rec.all())
	assert.Equal(t, 40.0, tracker.Progress())

	tracker.OnTimeUpdate(11, 100)
	clock.Advance(5 * time.Second)
	updates := rec.all()
	require.Len(t, updates, 1)
	assert.Equal(t, 40.0, updates[0].Percent)
	assert.Equal(t, 101, updates[0].TimeSpent)
}

func TestTracker_CompletedLectureOnlyReportsEnded(t *testing.T) {
	tracker, clock, rec := newTestTracker(WithInitialProgress(100, 300))

	tracker.OnTimeUpdate(100, 100)
	clock.Advance(5 * time.Second)
	assert.Empty(t, rec.all())

	tracker.OnEnded()
	require.Len(t, rec.all(), 1)
	assert.True(t, rec.all()[0].Ended)
}
