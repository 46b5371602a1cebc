package timer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottobrew/internal/brewer"
	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
	"github.com/hammamikhairi/ottobrew/internal/stopwatch"
	"github.com/hammamikhairi/ottobrew/internal/timeline"
)

// mockNotifier collects notifications for testing.
type mockNotifier struct {
	mu       sync.Mutex
	messages []string
	urgent   []string
}

func (m *mockNotifier) Notify(_ context.Context, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockNotifier) NotifyUrgent(_ context.Context, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urgent = append(m.urgent, msg)
	return nil
}

func (m *mockNotifier) snapshot() ([]string, []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...), append([]string(nil), m.urgent...)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
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

func testRecipe() *domain.Recipe {
	return timeline.NewRecipe(domain.RecipeDefinition{
		ID:   "t",
		Name: "Test Brew",
		Steps: []domain.StepDefinition{
			{Summary: "Prepare", Kind: domain.StepSetup},
			{Summary: "Pour", Kind: domain.StepPour, Duration: domain.Seconds(20)},
			{Summary: "Wait", Kind: domain.StepWait, Duration: domain.Seconds(40)},
			{Summary: "Done", Kind: domain.StepComplete},
		},
	})
}

func setup(t *testing.T) (*brewer.Brewer, *fakeClock, *mockNotifier, *Supervisor) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
	b := brewer.New(testRecipe(),
		brewer.WithStopwatchOptions(stopwatch.WithClock(clock.Now), stopwatch.WithSampleInterval(0)),
	)
	t.Cleanup(b.Close)
	notifier := &mockNotifier{}
	sup := New(b, notifier, logger.New(logger.LevelOff, nil))
	return b, clock, notifier, sup
}

func step(b *brewer.Brewer, clock *fakeClock, sup *Supervisor, d time.Duration) {
	clock.Advance(d)
	b.Sample()
	sup.Tick(context.Background())
}

func TestSupervisorAnnouncesSteps(t *testing.T) {
	b, clock, notifier, sup := setup(t)
	ctx := context.Background()

	sup.Tick(ctx)
	msgs, _ := notifier.snapshot()
	assert.Empty(t, msgs, "nothing to announce before the brew starts")

	b.StartRunning()
	step(b, clock, sup, 100*time.Millisecond)
	step(b, clock, sup, time.Second)
	step(b, clock, sup, 19*time.Second)
	step(b, clock, sup, 40*time.Second)

	msgs, urgent := notifier.snapshot()
	require.Len(t, msgs, 3)
	assert.Equal(t, "[Step 2/4] Pour (00:20)", msgs[0])
	assert.Equal(t, "[Step 3/4] Wait (00:40)", msgs[1])
	assert.Equal(t, "[Step 4/4] Done", msgs[2])
	assert.Empty(t, urgent)
}

func TestSupervisorAlmostDone(t *testing.T) {
	b, clock, notifier, sup := setup(t)

	b.StartRunning()
	step(b, clock, sup, 21*time.Second) // enters Wait
	step(b, clock, sup, 34*time.Second) // 5s left
	step(b, clock, sup, time.Second)    // warned once only

	msgs, _ := notifier.snapshot()
	require.Len(t, msgs, 2)
	assert.Equal(t, "[Brew] Wait: 5 seconds left.", msgs[1])
}

func TestSupervisorAnnouncesCompletionOnce(t *testing.T) {
	b, clock, notifier, sup := setup(t)

	b.StartRunning()
	step(b, clock, sup, 71*time.Second)
	step(b, clock, sup, time.Second)

	_, urgent := notifier.snapshot()
	require.Len(t, urgent, 1)
	assert.Contains(t, urgent[0], "Test Brew complete at 01:11")
	assert.False(t, b.Running())
}

func TestSupervisorResetsOnReload(t *testing.T) {
	b, clock, notifier, sup := setup(t)

	b.StartRunning()
	step(b, clock, sup, time.Second)

	b.LoadRecipe(testRecipe())
	sup.Tick(context.Background())
	b.StartRunning()
	step(b, clock, sup, time.Second)

	msgs, _ := notifier.snapshot()
	require.Len(t, msgs, 2)
	assert.Equal(t, msgs[0], msgs[1], "first step announced again after reload")
}

func TestSupervisorStartStop(t *testing.T) {
	b, _, notifier, _ := setup(t)
	sup := New(b, notifier, logger.New(logger.LevelOff, nil), WithTickInterval(time.Millisecond))

	sup.Start(context.Background())
	sup.Start(context.Background())
	time.Sleep(5 * time.Millisecond)
	sup.Stop()
	sup.Stop()
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "1 second", formatRemaining(time.Second))
	assert.Equal(t, "5 seconds", formatRemaining(4600*time.Millisecond))
	assert.Equal(t, "02:05", formatRemaining(125*time.Second))
}

func TestSupervisorIgnoresParamEdits(t *testing.T) {
	b, clock, notifier, sup := setup(t)

	b.StartRunning()
	step(b, clock, sup, time.Second)
	b.SetParams(domain.BrewParams{Grind: "Coarse"})
	step(b, clock, sup, time.Second)

	msgs, _ := notifier.snapshot()
	assert.Len(t, msgs, 1)
}
