// Package domain defines the core types and interfaces for the brew timer.
// All other packages depend on domain; domain depends on nothing outside
// the standard library and internal/duration.
package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hammamikhairi/ottobrew/internal/duration"
)

// StepKind is the semantic tag of a recipe step.
type StepKind string

const (
	StepSetup    StepKind = "setup"
	StepPour     StepKind = "pour"
	StepWait     StepKind = "wait"
	StepSwirl    StepKind = "swirl"
	StepStir     StepKind = "stir"
	StepOther    StepKind = "other"
	StepComplete StepKind = "complete"
)

// ParseStepKind converts a tag name to a StepKind.
// Returns StepOther for unrecognized names.
func ParseStepKind(name string) StepKind {
	switch k := StepKind(strings.ToLower(strings.TrimSpace(name))); k {
	case StepSetup, StepPour, StepWait, StepSwirl, StepStir, StepComplete:
		return k
	default:
		return StepOther
	}
}

// StepDuration is how long a step lasts. Both parts are optional and count
// as zero when nil.
type StepDuration struct {
	Minutes *int64
	Seconds *int64
}

// Seconds returns a StepDuration of n seconds.
func Seconds(n int64) *StepDuration { return &StepDuration{Seconds: &n} }

// Minutes returns a StepDuration of n minutes.
func Minutes(n int64) *StepDuration { return &StepDuration{Minutes: &n} }

// Normalized returns the duration as a time.Duration. Negative totals clamp
// to zero so a timeline never runs backwards.
func (d *StepDuration) Normalized() time.Duration {
	if d == nil {
		return 0
	}
	var p duration.Parts
	if d.Minutes != nil {
		p.Minutes = *d.Minutes
	}
	if d.Seconds != nil {
		p.Seconds = *d.Seconds
	}
	n := duration.FromParts(p)
	if n < 0 {
		return 0
	}
	return n
}

// Valid reports whether no part is negative.
func (d *StepDuration) Valid() bool {
	if d == nil {
		return true
	}
	if d.Minutes != nil && *d.Minutes < 0 {
		return false
	}
	return d.Seconds == nil || *d.Seconds >= 0
}

// StepDefinition is an author-supplied recipe step.
type StepDefinition struct {
	Summary     string
	Kind        StepKind
	Description string // may hold placeholders; opaque to the timer
	MediaURL    string
	Duration    *StepDuration // nil for instantaneous markers
}

// TimedStep is a step placed on the recipe timeline.
type TimedStep struct {
	StepDefinition
	Start time.Duration
	End   time.Duration
}

// Length returns End - Start.
func (s TimedStep) Length() time.Duration { return s.End - s.Start }

// Contains reports whether d falls in [Start, End).
func (s TimedStep) Contains(d time.Duration) bool {
	return d >= s.Start && d < s.End
}

// BrewParams are the user-editable brew parameters of a recipe. They are
// free-form; nothing cross-checks them.
type BrewParams struct {
	WaterAmount  string `yaml:"water_amount,omitempty"`
	WaterTemp    string `yaml:"water_temp,omitempty"`
	CoffeeAmount string `yaml:"coffee_amount,omitempty"`
	Grind        string `yaml:"grind,omitempty"`
	Ratio        string `yaml:"ratio,omitempty"`
	Roast        string `yaml:"roast,omitempty"`
}

// RatioValue parses a "16:1" style ratio and rounds it to a tenth.
// Returns false when the ratio is not of the form "a:b" with b != 0.
func (p BrewParams) RatioValue() (float64, bool) {
	water, coffee, ok := strings.Cut(p.Ratio, ":")
	if !ok {
		return 0, false
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(water), 64)
	if err != nil {
		return 0, false
	}
	c, err := strconv.ParseFloat(strings.TrimSpace(coffee), 64)
	if err != nil || c == 0 {
		return 0, false
	}
	return math.Round(10*w/c) / 10, true
}

// RecipeDefinition is an authored recipe record.
type RecipeDefinition struct {
	ID        string
	BrewID    string
	Name      string
	Author    string
	Notes     string
	SourceURL string
	Params    BrewParams
	Steps     []StepDefinition
}

// Recipe is a runtime recipe: authored fields plus the derived timeline.
// Build one with timeline.NewRecipe.
type Recipe struct {
	ID        string
	BrewID    string
	Name      string
	Author    string
	Notes     string
	SourceURL string
	Params    BrewParams
	Steps     []TimedStep
	Duration  time.Duration
}

// RecipeSummary is a lightweight view of a recipe for listing.
type RecipeSummary struct {
	ID       string
	BrewID   string
	Name     string
	Author   string
	Duration time.Duration
}

// Summary returns the listing view of r.
func (r *Recipe) Summary() RecipeSummary {
	return RecipeSummary{
		ID:       r.ID,
		BrewID:   r.BrewID,
		Name:     r.Name,
		Author:   r.Author,
		Duration: r.Duration,
	}
}

// BrewDevice is a piece of brewing equipment a recipe is written for.
type BrewDevice struct {
	ID       string
	Name     string
	Category string // "immersion", "percolation"
	Capacity int    // millilitres
}
