package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottobrew/internal/brewer"
	"github.com/hammamikhairi/ottobrew/internal/conversation"
	"github.com/hammamikhairi/ottobrew/internal/engine"
	"github.com/hammamikhairi/ottobrew/internal/logger"
	"github.com/hammamikhairi/ottobrew/internal/recipe"
	"github.com/hammamikhairi/ottobrew/internal/stopwatch"
	"github.com/hammamikhairi/ottobrew/internal/storage"
)

type recordingOutput struct{ lines []string }

func (r *recordingOutput) Printf(format string, a ...interface{}) {
	r.lines = append(r.lines, fmt.Sprintf(format, a...))
}
func (r *recordingOutput) PrintHint(text string)   { r.lines = append(r.lines, text) }
func (r *recordingOutput) PrintUrgent(text string) { r.lines = append(r.lines, "!"+text) }

func (r *recordingOutput) last() string {
	if len(r.lines) == 0 {
		return ""
	}
	return r.lines[len(r.lines)-1]
}

func newTestApp(t *testing.T) (*cliApp, *recordingOutput) {
	log := logger.New(logger.LevelOff, nil)
	eng := engine.New(recipe.NewMemorySource(log), storage.NewMemoryStore(log), log,
		brewer.WithStopwatchOptions(stopwatch.WithSampleInterval(0)))
	t.Cleanup(eng.Close)

	out := &recordingOutput{}
	return &cliApp{
		engine: eng,
		parser: conversation.NewKeywordParser(log),
		out:    out,
		log:    log,
	}, out
}

func (a *cliApp) exec(line string) {
	a.handle(context.Background(), a.parser.Parse(line))
}

func TestLoadCommand(t *testing.T) {
	app, out := newTestApp(t)

	app.exec("load aeropress")
	assert.Equal(t, "Loaded AeroPress (03:15, 7 steps).", out.last())

	app.exec("load nope")
	assert.Equal(t, `!No recipe "nope".`, out.last())
	assert.Equal(t, "aeropress", app.engine.Brewer().Recipe().BrewID)
}

func TestStartWithoutRecipe(t *testing.T) {
	app, out := newTestApp(t)
	app.exec("start")
	assert.True(t, strings.HasPrefix(out.last(), "!No recipe loaded"))
	assert.False(t, app.engine.Brewer().Running())
}

func TestToggleCommand(t *testing.T) {
	app, out := newTestApp(t)
	app.exec("load aeropress")

	app.exec("t")
	assert.True(t, app.engine.Brewer().Running())
	assert.Contains(t, out.last(), "Brewing from")

	app.exec("t")
	assert.False(t, app.engine.Brewer().Running())
	assert.Contains(t, out.last(), "Paused at")
}

func TestNextPrevWrap(t *testing.T) {
	app, _ := newTestApp(t)

	app.exec("next")
	assert.Equal(t, "1", app.engine.Brewer().Recipe().ID)

	app.exec("prev")
	assert.Equal(t, "3", app.engine.Brewer().Recipe().ID)

	app.exec("next")
	assert.Equal(t, "1", app.engine.Brewer().Recipe().ID)
}

func TestSetCommand(t *testing.T) {
	app, out := newTestApp(t)
	app.exec("load aeropress")

	app.exec("set grind Coarse")
	assert.Equal(t, "grind set to Coarse.", out.last())
	assert.Equal(t, "Coarse", app.engine.Brewer().Recipe().Params.Grind)

	app.exec("set grind")
	assert.Contains(t, out.last(), "Usage")

	app.exec("set flavour fruity")
	assert.Contains(t, out.last(), "unknown brew param")

	app.exec("set defaults")
	assert.Equal(t, "Brew params restored.", out.last())
	assert.NotEqual(t, "Coarse", app.engine.Brewer().Recipe().Params.Grind)
}

func TestStatusAndSteps(t *testing.T) {
	app, out := newTestApp(t)

	app.exec("status")
	assert.Equal(t, "No recipe loaded.", out.last())

	app.exec("load aeropress")
	app.exec("status")
	assert.Equal(t, "AeroPress: ready, 03:15 total.", out.last())

	app.exec("steps")
	assert.Contains(t, out.last(), "00:00-")
}

func TestRunStopsOnQuit(t *testing.T) {
	app, out := newTestApp(t)
	ch := make(chan string, 3)
	ch <- "load 2"
	ch <- "quit"
	ch <- "load 3"

	app.run(context.Background(), ch)

	assert.Equal(t, "Bye.", out.last())
	assert.Equal(t, "2", app.engine.Brewer().Recipe().ID)
}

func TestRunStopsWhenInputCloses(t *testing.T) {
	app, _ := newTestApp(t)
	lines := scanLines(context.Background(), strings.NewReader("load v60\n"))

	app.run(context.Background(), lines)
	require.NotNil(t, app.engine.Brewer().Recipe())
	assert.Equal(t, "v60", app.engine.Brewer().Recipe().BrewID)
}

func TestPrintLibrary(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	var buf bytes.Buffer
	require.NoError(t, printLibrary(context.Background(), &buf, recipe.NewMemorySource(log)))

	out := buf.String()
	assert.Contains(t, out, "[1]")
	assert.Contains(t, out, "aeropress")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}
