// Package timeline places recipe steps on an absolute timeline.
package timeline

import (
	"time"

	"github.com/hammamikhairi/ottobrew/internal/domain"
)

// Build walks defs in order with a running cursor starting at zero. Each
// step starts at the cursor and ends after its normalized duration. The
// returned total is the final cursor, 0 for an empty list.
func Build(defs []domain.StepDefinition) ([]domain.TimedStep, time.Duration) {
	steps := make([]domain.TimedStep, 0, len(defs))
	var cursor time.Duration
	for _, def := range defs {
		start := cursor
		cursor += def.Duration.Normalized()
		steps = append(steps, domain.TimedStep{
			StepDefinition: def,
			Start:          start,
			End:            cursor,
		})
	}
	return steps, cursor
}

// NewRecipe builds a runtime recipe from its definition. Authored fields
// are copied; Steps and Duration are derived.
func NewRecipe(def domain.RecipeDefinition) *domain.Recipe {
	steps, total := Build(def.Steps)
	return &domain.Recipe{
		ID:        def.ID,
		BrewID:    def.BrewID,
		Name:      def.Name,
		Author:    def.Author,
		Notes:     def.Notes,
		SourceURL: def.SourceURL,
		Params:    def.Params,
		Steps:     steps,
		Duration:  total,
	}
}

// ActiveStep returns the index of the step running at elapsed time d: the
// first step whose End lies after d. Once d passes every End the last step
// (normally the "complete" marker) stays active. Returns -1 when steps is
// empty.
func ActiveStep(steps []domain.TimedStep, d time.Duration) int {
	if len(steps) == 0 {
		return -1
	}
	for i, s := range steps {
		if d < s.End {
			return i
		}
	}
	return len(steps) - 1
}

// Remaining returns how long step i still has to run at elapsed time d.
// Zero for out-of-range indexes and finished steps.
func Remaining(steps []domain.TimedStep, i int, d time.Duration) time.Duration {
	if i < 0 || i >= len(steps) {
		return 0
	}
	left := steps[i].End - max(d, steps[i].Start)
	if left < 0 {
		return 0
	}
	return left
}
