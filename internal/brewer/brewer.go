// Package brewer binds a recipe timeline to a stopwatch and tracks a brew
// session's progress.
package brewer

import (
	"sync"
	"time"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
	"github.com/hammamikhairi/ottobrew/internal/stopwatch"
	"github.com/hammamikhairi/ottobrew/internal/timeline"
)

// DefaultCompletionGrace is how long past the nominal end a brew keeps
// running before it counts as complete.
const DefaultCompletionGrace = 10 * time.Second

// Option configures the brewer.
type Option func(*Brewer)

// WithCompletionGrace sets the grace added to the recipe duration.
func WithCompletionGrace(d time.Duration) Option {
	return func(b *Brewer) {
		b.grace = d
	}
}

// WithStopwatchOptions passes options through to the owned stopwatch.
func WithStopwatchOptions(opts ...stopwatch.Option) Option {
	return func(b *Brewer) {
		b.swOpts = append(b.swOpts, opts...)
	}
}

// WithLogger sets the brewer's logger.
func WithLogger(log *logger.Logger) Option {
	return func(b *Brewer) {
		b.log = log
	}
}

// State is a point-in-time view of a brew session.
type State struct {
	stopwatch.State
	Recipe       *domain.Recipe
	HasCompleted bool
	InProcess    bool
	ActiveStep   int // index into Recipe.Steps, -1 without steps
	StepLeft     time.Duration
}

// Brewer owns one stopwatch and references one recipe. Recipes are shared
// read-only; the stopwatch is never shared.
type Brewer struct {
	log    *logger.Logger
	grace  time.Duration
	swOpts []stopwatch.Option
	sw     *stopwatch.Stopwatch

	mu        sync.Mutex
	recipe    *domain.Recipe
	completed bool // completion as of the last Recompute
}

// New creates a brewer for recipe. recipe may be nil until LoadRecipe.
func New(recipe *domain.Recipe, opts ...Option) *Brewer {
	b := &Brewer{
		log:    logger.New(logger.LevelOff, nil),
		grace:  DefaultCompletionGrace,
		recipe: recipe,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.sw = stopwatch.New(append(b.swOpts, stopwatch.WithOnSample(b.Recompute))...)
	return b
}

// Recipe returns the bound recipe.
func (b *Brewer) Recipe() *domain.Recipe {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.recipe
}

// Grace returns the completion grace.
func (b *Brewer) Grace() time.Duration { return b.grace }

// LoadRecipe stops and zeroes the stopwatch, then binds r. A nil r is
// ignored. Afterwards the brewer is stopped at 00:00.
func (b *Brewer) LoadRecipe(r *domain.Recipe) {
	if r == nil {
		b.log.Debug("brewer: ignoring nil recipe")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.sw.StopRunning()
	b.sw.Reset()
	b.recipe = r
	b.completed = false
	b.log.Info("brewer: loaded recipe %q (%s)", r.Name, r.BrewID)
}

// SetParams rebinds a copy of the current recipe carrying p. Timing is
// untouched. Reports false when no recipe is bound.
func (b *Brewer) SetParams(p domain.BrewParams) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.recipe == nil {
		return false
	}
	cp := *b.recipe
	cp.Params = p
	b.recipe = &cp
	return true
}

// StartRunning starts or resumes timing. A completed brew stays stopped
// until Reset or LoadRecipe.
func (b *Brewer) StartRunning() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.hasCompletedLocked() {
		b.log.Debug("brewer: start ignored, brew already complete")
		return
	}
	b.sw.StartRunning()
}

// StopRunning pauses timing.
func (b *Brewer) StopRunning() {
	b.sw.StopRunning()
	b.Recompute()
}

// ToggleRunning pauses a running brew or resumes a paused one.
func (b *Brewer) ToggleRunning() {
	if b.sw.Running() {
		b.StopRunning()
		return
	}
	b.StartRunning()
}

// Reset stops the stopwatch and returns it to zero.
func (b *Brewer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sw.StopRunning()
	b.sw.Reset()
	b.completed = false
}

// Recompute re-derives completion from the stopwatch and the recipe. On the
// edge into completion it stops the stopwatch. Runs after every sample.
func (b *Brewer) Recompute() {
	b.mu.Lock()
	defer b.mu.Unlock()

	done := b.hasCompletedLocked()
	if done && !b.completed {
		b.sw.StopRunning()
		if b.recipe != nil {
			b.log.Info("brewer: %q complete at %s", b.recipe.Name, b.sw.DurationLabel())
		}
	}
	b.completed = done
}

// Sample recomputes the stopwatch from its clock and then the derived
// fields. Useful when the sampler is disabled.
func (b *Brewer) Sample() {
	b.sw.Sample()
	b.Recompute()
}

// Duration returns elapsed brew time.
func (b *Brewer) Duration() time.Duration { return b.sw.Duration() }

// DurationLabel returns elapsed brew time as MM:SS.
func (b *Brewer) DurationLabel() string { return b.sw.DurationLabel() }

// Running reports whether the stopwatch is running.
func (b *Brewer) Running() bool { return b.sw.Running() }

// HasStarted reports whether any time has been counted.
func (b *Brewer) HasStarted() bool { return b.sw.HasStarted() }

// HasCompleted reports whether elapsed time reached the recipe duration
// plus grace.
func (b *Brewer) HasCompleted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hasCompletedLocked()
}

func (b *Brewer) hasCompletedLocked() bool {
	if b.recipe == nil {
		return false
	}
	return b.sw.Duration() >= b.recipe.Duration+b.grace
}

// InProcess reports whether a brew has started and not yet completed.
func (b *Brewer) InProcess() bool {
	return b.HasStarted() && !b.HasCompleted()
}

// ActiveStep returns the index of the step at the current elapsed time.
func (b *Brewer) ActiveStep() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.recipe == nil {
		return -1
	}
	return timeline.ActiveStep(b.recipe.Steps, b.sw.Duration())
}

// Device returns the brewing device the recipe is written for.
func (b *Brewer) Device() (domain.BrewDevice, bool) {
	r := b.Recipe()
	if r == nil {
		return domain.BrewDevice{}, false
	}
	return domain.DeviceByID(r.BrewID)
}

// Snapshot returns every presentation field in one consistent read.
func (b *Brewer) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	sw := b.sw.Snapshot()
	st := State{
		State:      sw,
		Recipe:     b.recipe,
		ActiveStep: -1,
	}
	if b.recipe == nil {
		return st
	}
	st.HasCompleted = sw.Duration >= b.recipe.Duration+b.grace
	st.InProcess = sw.HasStarted && !st.HasCompleted
	st.ActiveStep = timeline.ActiveStep(b.recipe.Steps, sw.Duration)
	st.StepLeft = timeline.Remaining(b.recipe.Steps, st.ActiveStep, sw.Duration)
	return st
}

// Close stops the stopwatch's sampler. The brewer stays readable.
func (b *Brewer) Close() {
	b.sw.StopRunning()
	b.sw.Close()
}
