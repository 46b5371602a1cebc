package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottobrew/internal/domain"
)

func aeropressSteps() []domain.StepDefinition {
	return []domain.StepDefinition{
		{Summary: "Prepare Brew", Kind: domain.StepSetup},
		{Summary: "Pour 200 grams of water", Kind: domain.StepPour, Duration: domain.Seconds(15)},
		{Summary: "Wait for 2 minutes", Kind: domain.StepWait, Duration: domain.Minutes(2)},
		{Summary: "Gentle swirl", Kind: domain.StepSwirl, Duration: domain.Seconds(10)},
		{Summary: "Wait for 30 seconds", Kind: domain.StepWait, Duration: domain.Seconds(30)},
		{Summary: "Press the plunger", Kind: domain.StepOther, Duration: domain.Seconds(20)},
		{Summary: "Drink it up!", Kind: domain.StepComplete},
	}
}

func TestBuild(t *testing.T) {
	steps, total := Build(aeropressSteps())
	require.Len(t, steps, 7)

	want := []struct{ start, end time.Duration }{
		{0, 0},
		{0, 15 * time.Second},
		{15 * time.Second, 135 * time.Second},
		{135 * time.Second, 145 * time.Second},
		{145 * time.Second, 175 * time.Second},
		{175 * time.Second, 195 * time.Second},
		{195 * time.Second, 195 * time.Second},
	}
	for i, w := range want {
		assert.Equal(t, w.start, steps[i].Start, "step %d start", i)
		assert.Equal(t, w.end, steps[i].End, "step %d end", i)
	}
	assert.Equal(t, 195*time.Second, total)
	assert.Equal(t, "Gentle swirl", steps[3].Summary)
	assert.Equal(t, domain.StepSwirl, steps[3].Kind)
}

func TestBuildMonotonic(t *testing.T) {
	inputs := [][]domain.StepDefinition{
		nil,
		aeropressSteps(),
		{{Duration: domain.Seconds(-5)}, {Duration: domain.Seconds(3)}, {}},
		{{}, {}, {}},
		{{Duration: &domain.StepDuration{}}, {Duration: domain.Minutes(10)}},
	}

	for _, defs := range inputs {
		steps, total := Build(defs)
		if len(steps) == 0 {
			assert.Zero(t, total)
			continue
		}
		assert.Zero(t, steps[0].Start)
		for i, s := range steps {
			assert.GreaterOrEqual(t, s.Start, time.Duration(0))
			assert.LessOrEqual(t, s.Start, s.End)
			if i+1 < len(steps) {
				assert.LessOrEqual(t, s.End, steps[i+1].Start)
			}
		}
		assert.Equal(t, steps[len(steps)-1].End, total)
	}
}

func TestBuildIdempotent(t *testing.T) {
	defs := aeropressSteps()
	a, ta := Build(defs)
	b, tb := Build(defs)
	assert.Equal(t, a, b)
	assert.Equal(t, ta, tb)
}

func TestNewRecipe(t *testing.T) {
	def := domain.RecipeDefinition{
		ID:     "2",
		BrewID: "aeropress",
		Name:   "AeroPress",
		Params: domain.BrewParams{Ratio: "16:1", Grind: "Fine"},
		Steps:  aeropressSteps(),
	}
	r := NewRecipe(def)
	assert.Equal(t, "2", r.ID)
	assert.Equal(t, "aeropress", r.BrewID)
	assert.Equal(t, "Fine", r.Params.Grind)
	assert.Equal(t, 195*time.Second, r.Duration)
	assert.Equal(t, r.Steps[len(r.Steps)-1].End, r.Duration)

	empty := NewRecipe(domain.RecipeDefinition{ID: "empty"})
	assert.Zero(t, empty.Duration)
	assert.Empty(t, empty.Steps)
}

func TestActiveStep(t *testing.T) {
	steps, _ := Build(aeropressSteps())

	tests := []struct {
		at   time.Duration
		want int
	}{
		{0, 1},
		{14999 * time.Millisecond, 1},
		{15 * time.Second, 2},
		{140 * time.Second, 3},
		{194 * time.Second, 5},
		{195 * time.Second, 6},
		{time.Hour, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ActiveStep(steps, tt.at), "at %s", tt.at)
	}

	assert.Equal(t, -1, ActiveStep(nil, time.Second))
}

func TestRemaining(t *testing.T) {
	steps, _ := Build(aeropressSteps())

	assert.Equal(t, 15*time.Second, Remaining(steps, 1, 0))
	assert.Equal(t, 5*time.Second, Remaining(steps, 1, 10*time.Second))
	assert.Equal(t, 2*time.Minute, Remaining(steps, 2, 5*time.Second))
	assert.Zero(t, Remaining(steps, 1, time.Minute))
	assert.Zero(t, Remaining(steps, 99, 0))
	assert.Zero(t, Remaining(steps, -1, 0))
}
