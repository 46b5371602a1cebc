// Package stopwatch implements a resumable elapsed-time counter.
//
// A Stopwatch accumulates time over any number of run segments. While
// running, an owned sampler goroutine recomputes the current segment from
// the segment's origin on every tick, so a throttled ticker only lags and
// never drifts. The sampler starts on the first StartRunning and stops on
// Close.
package stopwatch

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/ottobrew/internal/duration"
)

// DefaultSampleInterval is how often a running stopwatch refreshes itself.
const DefaultSampleInterval = 10 * time.Millisecond

// Option configures the stopwatch.
type Option func(*Stopwatch)

// WithClock replaces time.Now as the stopwatch's time source.
func WithClock(now func() time.Time) Option {
	return func(s *Stopwatch) {
		s.now = now
	}
}

// WithSampleInterval sets the sampler period. A non-positive interval
// disables the sampler; callers then drive Sample themselves.
func WithSampleInterval(d time.Duration) Option {
	return func(s *Stopwatch) {
		s.interval = d
	}
}

// WithOnSample registers a hook run after every sample that changed the
// running segment. The hook is called without the stopwatch lock held.
func WithOnSample(fn func()) Option {
	return func(s *Stopwatch) {
		s.onSample = fn
	}
}

// State is a point-in-time view of the stopwatch.
type State struct {
	LastDuration    time.Duration // sum of finished segments
	CurrentDuration time.Duration // running segment, 0 when stopped
	Running         bool
	Start           time.Time // origin of the running segment
	Duration        time.Duration
	HasStarted      bool
	Parts           duration.Parts
	DurationLabel   string
}

// Stopwatch is a start/stop/reset counter. All methods are safe for
// concurrent use.
type Stopwatch struct {
	now      func() time.Time
	interval time.Duration
	onSample func()

	mu      sync.Mutex
	last    time.Duration
	current time.Duration
	running bool
	origin  time.Time

	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

// New creates a stopped stopwatch at zero.
func New(opts ...Option) *Stopwatch {
	s := &Stopwatch{
		now:      time.Now,
		interval: DefaultSampleInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartRunning begins a new segment at the current instant. No-op when
// already running.
func (s *Stopwatch) StartRunning() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.origin = s.now()
	s.current = 0
	s.running = true
	s.startSamplerLocked()
}

// StopRunning ends the current segment and folds it into the accumulated
// total. No-op when already stopped.
func (s *Stopwatch) StopRunning() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.sampleLocked()
	s.last += s.current
	s.current = 0
	s.running = false
}

// ToggleRunning stops a running stopwatch and starts a stopped one.
func (s *Stopwatch) ToggleRunning() {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()

	if running {
		s.StopRunning()
	} else {
		s.StartRunning()
	}
}

// Reset zeroes the accumulated and current durations. It does not stop a
// running segment: the next sample recomputes the segment from its origin.
// Call StopRunning first for a clean zero.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.last = 0
	s.current = 0
}

// Sample recomputes the running segment from the clock. Skipped when the
// stopwatch is stopped or has no segment origin.
func (s *Stopwatch) Sample() {
	s.mu.Lock()
	if !s.running || s.origin.IsZero() {
		s.mu.Unlock()
		return
	}
	s.sampleLocked()
	hook := s.onSample
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
}

func (s *Stopwatch) sampleLocked() {
	if s.origin.IsZero() {
		return
	}
	elapsed := s.now().Sub(s.origin)
	if elapsed < 0 {
		elapsed = 0
	}
	s.current = elapsed
}

// Duration returns accumulated plus current segment time as of the last
// sample.
func (s *Stopwatch) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last + s.current
}

// HasStarted reports whether any time has been counted. A paused stopwatch
// with accumulated time has started.
func (s *Stopwatch) HasStarted() bool {
	return s.Duration() > 0
}

// Running reports whether a segment is in progress.
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// DurationLabel returns the total formatted as MM:SS.
func (s *Stopwatch) DurationLabel() string {
	return duration.Format(s.Duration())
}

// Snapshot returns the full state in one consistent read.
func (s *Stopwatch) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := s.last + s.current
	return State{
		LastDuration:    s.last,
		CurrentDuration: s.current,
		Running:         s.running,
		Start:           s.origin,
		Duration:        total,
		HasStarted:      total > 0,
		Parts:           duration.ToParts(total),
		DurationLabel:   duration.Format(total),
	}
}

// startSamplerLocked launches the sampler goroutine once.
func (s *Stopwatch) startSamplerLocked() {
	if s.interval <= 0 || s.cancel != nil || s.closed {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)
}

// loop is the sampler tick loop.
func (s *Stopwatch) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sample()
		}
	}
}

// Close stops the sampler and waits for it to exit. The stopwatch keeps
// its state and remains readable; it will not sample again.
func (s *Stopwatch) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}
