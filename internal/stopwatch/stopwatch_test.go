package stopwatch

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newManual(clock *fakeClock, opts ...Option) *Stopwatch {
	opts = append([]Option{WithClock(clock.Now), WithSampleInterval(0)}, opts...)
	return New(opts...)
}

func TestInitialState(t *testing.T) {
	sw := newManual(newFakeClock())

	st := sw.Snapshot()
	assert.False(t, st.Running)
	assert.False(t, st.HasStarted)
	assert.Zero(t, st.Duration)
	assert.Equal(t, "00:00", st.DurationLabel)
	assert.True(t, st.Start.IsZero())
}

func TestSampleBeforeStartIsGuarded(t *testing.T) {
	clock := newFakeClock()
	var calls int
	sw := newManual(clock, WithOnSample(func() { calls++ }))

	clock.Advance(time.Minute)
	sw.Sample()

	assert.Zero(t, sw.Duration())
	assert.Zero(t, calls)
}

func TestAccumulatesAcrossSegments(t *testing.T) {
	clock := newFakeClock()
	sw := newManual(clock)

	sw.StartRunning()
	clock.Advance(3 * time.Second)
	sw.Sample()
	assert.Equal(t, 3*time.Second, sw.Duration())
	sw.StopRunning()

	// Time passing while stopped does not count.
	clock.Advance(time.Hour)

	sw.StartRunning()
	clock.Advance(1500 * time.Millisecond)
	sw.StopRunning()

	st := sw.Snapshot()
	assert.Equal(t, 4500*time.Millisecond, st.Duration)
	assert.Equal(t, 4500*time.Millisecond, st.LastDuration)
	assert.Zero(t, st.CurrentDuration)
	assert.False(t, st.Running)
	assert.True(t, st.HasStarted)

	sw.Reset()
	assert.Zero(t, sw.Duration())
	assert.False(t, sw.HasStarted())
}

func TestStopIsIdempotent(t *testing.T) {
	clock := newFakeClock()
	sw := newManual(clock)

	sw.StopRunning()
	assert.Zero(t, sw.Duration())

	sw.StartRunning()
	clock.Advance(time.Second)
	sw.StopRunning()
	clock.Advance(time.Second)
	sw.StopRunning()

	assert.Equal(t, time.Second, sw.Duration())
}

func TestStartWhileRunningKeepsSegment(t *testing.T) {
	clock := newFakeClock()
	sw := newManual(clock)

	sw.StartRunning()
	clock.Advance(2 * time.Second)
	sw.StartRunning()
	clock.Advance(time.Second)
	sw.StopRunning()

	assert.Equal(t, 3*time.Second, sw.Duration())
}

func TestToggleRunning(t *testing.T) {
	clock := newFakeClock()
	sw := newManual(clock)

	sw.ToggleRunning()
	assert.True(t, sw.Running())

	clock.Advance(125 * time.Second)
	sw.ToggleRunning()
	assert.False(t, sw.Running())
	assert.Equal(t, "02:05", sw.DurationLabel())
}

func TestResetWhileRunning(t *testing.T) {
	clock := newFakeClock()
	sw := newManual(clock)

	sw.StartRunning()
	clock.Advance(5 * time.Second)
	sw.Sample()

	sw.Reset()
	assert.Zero(t, sw.Duration())
	assert.True(t, sw.Running())

	// The running segment is still measured from its origin.
	sw.Sample()
	assert.Equal(t, 5*time.Second, sw.Duration())

	sw.StopRunning()
	sw.Reset()
	sw.Sample()
	assert.Zero(t, sw.Duration())
}

func TestSnapshotParts(t *testing.T) {
	clock := newFakeClock()
	sw := newManual(clock)

	sw.StartRunning()
	clock.Advance(61*time.Second + 250*time.Millisecond)
	sw.Sample()

	st := sw.Snapshot()
	assert.Equal(t, int64(1), st.Parts.Minutes)
	assert.Equal(t, int64(1), st.Parts.Seconds)
	assert.Equal(t, int64(250), st.Parts.Milliseconds)
	assert.Equal(t, "01:01", st.DurationLabel)
	assert.Equal(t, clock.Now().Add(-61*time.Second-250*time.Millisecond), st.Start)
}

func TestOnSampleHook(t *testing.T) {
	clock := newFakeClock()
	var seen []time.Duration
	var sw *Stopwatch
	sw = newManual(clock, WithOnSample(func() {
		// The hook runs without the lock held, so reading back is safe.
		seen = append(seen, sw.Duration())
	}))

	sw.StartRunning()
	clock.Advance(time.Second)
	sw.Sample()
	clock.Advance(time.Second)
	sw.Sample()
	sw.StopRunning()
	sw.Sample()

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, seen)
}

func TestSamplerLifecycle(t *testing.T) {
	var samples atomic.Int64
	sw := New(WithSampleInterval(time.Millisecond), WithOnSample(func() { samples.Add(1) }))

	sw.StartRunning()
	require.Eventually(t, func() bool { return samples.Load() >= 3 }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return sw.Duration() > 0 }, time.Second, time.Millisecond)

	sw.Close()
	sw.Close()

	after := samples.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, samples.Load(), "sampler kept ticking after Close")
}
