// Package timer implements the background announcer that follows a brew
// and notifies the user when the active step changes and when the brew
// completes.
package timer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/ottobrew/internal/brewer"
	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/duration"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// BrewSource is the read side of a brewer.
type BrewSource interface {
	Snapshot() brewer.State
}

// Option configures the supervisor.
type Option func(*Supervisor)

// WithTickInterval sets how often the supervisor polls the brewer.
func WithTickInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.tickInterval = d
	}
}

// WithAlmostDoneThreshold sets how close to a step's end the "almost
// done" cue fires. Steps shorter than twice the threshold get no cue.
func WithAlmostDoneThreshold(d time.Duration) Option {
	return func(s *Supervisor) {
		s.almostDoneThreshold = d
	}
}

// Supervisor runs in the background and turns brew progress into cues.
type Supervisor struct {
	brew                BrewSource
	notifier            domain.Notifier
	log                 *logger.Logger
	tickInterval        time.Duration
	almostDoneThreshold time.Duration

	// tracking, touched only from the loop goroutine (or Tick in tests)
	recipe    *domain.Recipe
	lastStep  int
	warned    int // step index already warned about, -1 for none
	completed bool

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a supervisor with the given dependencies and options.
func New(brew BrewSource, notifier domain.Notifier, log *logger.Logger, opts ...Option) *Supervisor {
	s := &Supervisor{
		brew:                brew,
		notifier:            notifier,
		log:                 log,
		tickInterval:        250 * time.Millisecond,
		almostDoneThreshold: 5 * time.Second,
		lastStep:            -1,
		warned:              -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the background supervisor loop. Non-blocking.
func (s *Supervisor) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn("brew announcer already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.loop(childCtx, s.done)

	s.log.Info("brew announcer started (tick=%s)", s.tickInterval)
}

// Stop shuts down the supervisor and waits for the loop to exit.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.running = false
	done := s.done
	s.mu.Unlock()

	<-done
	s.log.Info("brew announcer stopped")
}

// loop is the main tick loop.
func (s *Supervisor) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs one cycle: compare the brewer's state to what was last
// announced and send whatever cues are due.
func (s *Supervisor) Tick(ctx context.Context) {
	st := s.brew.Snapshot()

	// A new recipe or a reset starts tracking from scratch.
	changed := recipeID(st.Recipe) != recipeID(s.recipe)
	if changed || !st.HasStarted {
		if changed {
			s.log.Debug("announcer: tracking recipe %v", recipeName(st.Recipe))
		}
		s.recipe = st.Recipe
		s.lastStep = -1
		s.warned = -1
		s.completed = false
	}
	if st.Recipe == nil || !st.HasStarted {
		return
	}

	if st.HasCompleted {
		if !s.completed {
			s.completed = true
			s.notifyUrgent(ctx, fmt.Sprintf("[Brew] %s complete at %s. Enjoy!", st.Recipe.Name, st.DurationLabel))
		}
		return
	}

	if st.ActiveStep != s.lastStep && st.ActiveStep >= 0 {
		s.lastStep = st.ActiveStep
		step := st.Recipe.Steps[st.ActiveStep]
		s.notify(ctx, stepLine(st.ActiveStep, len(st.Recipe.Steps), step))
		return
	}

	if st.Running && s.warned != st.ActiveStep && st.ActiveStep >= 0 {
		step := st.Recipe.Steps[st.ActiveStep]
		if step.Length() > 2*s.almostDoneThreshold && st.StepLeft > 0 && st.StepLeft <= s.almostDoneThreshold {
			s.warned = st.ActiveStep
			s.notify(ctx, fmt.Sprintf("[Brew] %s: %s left.", step.Summary, formatRemaining(st.StepLeft)))
		}
	}
}

func (s *Supervisor) notify(ctx context.Context, msg string) {
	if err := s.notifier.Notify(ctx, msg); err != nil {
		s.log.Error("announcer: notify: %v", err)
	}
}

func (s *Supervisor) notifyUrgent(ctx context.Context, msg string) {
	if err := s.notifier.NotifyUrgent(ctx, msg); err != nil {
		s.log.Error("announcer: urgent notify: %v", err)
	}
}

// stepLine returns the cue for entering a step, e.g.
// "[Step 2/7] Pour 200 grams of water (00:15)".
func stepLine(i, total int, step domain.TimedStep) string {
	if step.Length() == 0 {
		return fmt.Sprintf("[Step %d/%d] %s", i+1, total, step.Summary)
	}
	return fmt.Sprintf("[Step %d/%d] %s (%s)", i+1, total, step.Summary, duration.Format(step.Length()))
}

// formatRemaining returns a human-friendly remaining time for cues.
func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	totalSec := int(d.Seconds())
	if totalSec == 1 {
		return "1 second"
	}
	if totalSec < 60 {
		return fmt.Sprintf("%d seconds", totalSec)
	}
	return duration.Format(d)
}

// recipeID identifies a recipe across param edits, which rebind a copy.
func recipeID(r *domain.Recipe) string {
	if r == nil {
		return ""
	}
	return r.ID
}

func recipeName(r *domain.Recipe) string {
	if r == nil {
		return "<none>"
	}
	return r.Name
}
