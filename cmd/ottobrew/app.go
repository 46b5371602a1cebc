package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hammamikhairi/ottobrew/internal/conversation"
	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/duration"
	"github.com/hammamikhairi/ottobrew/internal/engine"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// output is where the app writes. *display.UI satisfies it.
type output interface {
	Printf(format string, a ...interface{})
	PrintHint(text string)
	PrintUrgent(text string)
}

// plainOutput writes straight to a stream for line mode.
type plainOutput struct{ w io.Writer }

func (p plainOutput) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.w, format+"\n", a...)
}

func (p plainOutput) PrintHint(text string)   { fmt.Fprintln(p.w, "  "+text) }
func (p plainOutput) PrintUrgent(text string) { fmt.Fprintln(p.w, "  ! "+text) }

// scanLines feeds stdin lines into a channel, closed at EOF.
func scanLines(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

type cliApp struct {
	engine *engine.Engine
	parser *conversation.KeywordParser
	out    output
	log    *logger.Logger
}

func (a *cliApp) run(ctx context.Context, input <-chan string) {
	for {
		var line string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case line, ok = <-input:
			if !ok {
				return
			}
		}

		cmd := a.parser.Parse(line)
		a.log.Debug("command: %s (payload=%q)", cmd.Type, cmd.Payload)
		if cmd.Type == conversation.CommandQuit {
			a.out.PrintHint("Bye.")
			return
		}
		a.handle(ctx, cmd)
	}
}

func (a *cliApp) handle(ctx context.Context, cmd conversation.Command) {
	b := a.engine.Brewer()

	switch cmd.Type {
	case conversation.CommandHelp:
		a.showHelp()
	case conversation.CommandList:
		a.showRecipes(ctx)
	case conversation.CommandLoad:
		a.selectRecipe(ctx, cmd.Payload)
	case conversation.CommandNext:
		a.stepRecipe(ctx, 1)
	case conversation.CommandPrev:
		a.stepRecipe(ctx, -1)
	case conversation.CommandStart:
		if !a.requireRecipe() {
			return
		}
		b.StartRunning()
		a.afterRunChange()
	case conversation.CommandStop:
		b.StopRunning()
		a.out.PrintHint("Paused at " + b.DurationLabel() + ".")
	case conversation.CommandToggle:
		if !a.requireRecipe() {
			return
		}
		b.ToggleRunning()
		a.afterRunChange()
	case conversation.CommandReset:
		b.Reset()
		a.out.PrintHint("Timer reset.")
	case conversation.CommandStatus:
		a.showStatus()
	case conversation.CommandSteps:
		a.showSteps()
	case conversation.CommandParams:
		a.showParams()
	case conversation.CommandSet:
		a.setParam(ctx, cmd.Payload)
	default:
		a.out.PrintHint(fmt.Sprintf("Didn't catch %q. Type 'help' for commands.", cmd.Payload))
	}
}

func (a *cliApp) requireRecipe() bool {
	if a.engine.Brewer().Recipe() == nil {
		a.out.PrintUrgent("No recipe loaded. Type 'list' and 'load <id>'.")
		return false
	}
	return true
}

func (a *cliApp) afterRunChange() {
	b := a.engine.Brewer()
	switch {
	case b.HasCompleted():
		a.out.PrintHint("This brew is complete. Type 'reset' to brew it again.")
	case b.Running():
		a.out.PrintHint("Brewing from " + b.DurationLabel() + ".")
	default:
		a.out.PrintHint("Paused at " + b.DurationLabel() + ".")
	}
}

func (a *cliApp) selectRecipe(ctx context.Context, key string) {
	if strings.TrimSpace(key) == "" {
		a.out.PrintHint("Which recipe? Type 'list' to see them.")
		return
	}
	r, err := a.engine.Select(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.out.PrintUrgent(fmt.Sprintf("No recipe %q.", key))
		} else {
			a.out.PrintUrgent(err.Error())
		}
		return
	}
	a.out.Printf("Loaded %s (%s, %d steps).", r.Name, duration.Format(r.Duration), len(r.Steps))
}

// stepRecipe loads the recipe delta places away in library order, wrapping.
func (a *cliApp) stepRecipe(ctx context.Context, delta int) {
	list, err := a.engine.ListRecipes(ctx)
	if err != nil {
		a.out.PrintUrgent(err.Error())
		return
	}
	if len(list) == 0 {
		return
	}
	idx := -1
	if cur := a.engine.Brewer().Recipe(); cur != nil {
		for i, s := range list {
			if s.ID == cur.ID {
				idx = i
				break
			}
		}
	}
	next := (idx + delta + len(list)) % len(list)
	if idx < 0 && delta < 0 {
		next = len(list) - 1
	}
	a.selectRecipe(ctx, list[next].ID)
}

func (a *cliApp) showRecipes(ctx context.Context) {
	list, err := a.engine.ListRecipes(ctx)
	if err != nil {
		a.out.PrintUrgent(err.Error())
		return
	}
	var b strings.Builder
	writeLibrary(&b, list)
	a.out.Printf("%s", strings.TrimRight(b.String(), "\n"))
}

func (a *cliApp) showStatus() {
	st := a.engine.Brewer().Snapshot()
	if st.Recipe == nil {
		a.out.PrintHint("No recipe loaded.")
		return
	}
	switch {
	case st.HasCompleted:
		a.out.Printf("%s: complete at %s.", st.Recipe.Name, st.DurationLabel)
	case !st.HasStarted:
		a.out.Printf("%s: ready, %s total.", st.Recipe.Name, duration.Format(st.Recipe.Duration))
	case st.ActiveStep < 0:
		a.out.Printf("%s: %s.", st.Recipe.Name, st.DurationLabel)
	default:
		state := "paused"
		if st.Running {
			state = "brewing"
		}
		step := st.Recipe.Steps[st.ActiveStep]
		a.out.Printf("%s: %s at %s. Step %d/%d %s, %s left.",
			st.Recipe.Name, state, st.DurationLabel,
			st.ActiveStep+1, len(st.Recipe.Steps), step.Summary, duration.Format(st.StepLeft))
	}
}

func (a *cliApp) showSteps() {
	r := a.engine.Brewer().Recipe()
	if r == nil {
		a.out.PrintHint("No recipe loaded.")
		return
	}
	var b strings.Builder
	for i, s := range r.Steps {
		fmt.Fprintf(&b, "  %2d. %s-%s  %-8s %s\n", i+1,
			duration.Format(s.Start), duration.Format(s.End), s.Kind, s.Summary)
	}
	a.out.Printf("%s", strings.TrimRight(b.String(), "\n"))
}

func (a *cliApp) showParams() {
	r := a.engine.Brewer().Recipe()
	if r == nil {
		a.out.PrintHint("No recipe loaded.")
		return
	}
	p := r.Params
	rows := []struct{ field, value string }{
		{"coffee", p.CoffeeAmount},
		{"water", p.WaterAmount},
		{"temp", p.WaterTemp},
		{"ratio", p.Ratio},
		{"grind", p.Grind},
		{"roast", p.Roast},
	}
	var b strings.Builder
	for _, row := range rows {
		v := row.value
		if v == "" {
			v = "-"
		}
		fmt.Fprintf(&b, "  %-7s %s\n", row.field, v)
	}
	if ratio, ok := p.RatioValue(); ok {
		fmt.Fprintf(&b, "  (%.1f g water per g coffee)\n", ratio)
	}
	a.out.Printf("%s", strings.TrimRight(b.String(), "\n"))
	a.out.PrintHint("Change with 'set <field> <value>', restore with 'set defaults'.")
}

func (a *cliApp) setParam(ctx context.Context, payload string) {
	if strings.EqualFold(strings.TrimSpace(payload), "defaults") {
		if err := a.engine.ResetParams(ctx); err != nil {
			a.out.PrintUrgent(err.Error())
			return
		}
		a.out.PrintHint("Brew params restored.")
		return
	}

	field, value, ok := strings.Cut(strings.TrimSpace(payload), " ")
	if !ok || strings.TrimSpace(value) == "" {
		a.out.PrintHint("Usage: set <coffee|water|temp|ratio|grind|roast> <value>")
		return
	}
	if err := a.engine.SetParam(ctx, field, strings.TrimSpace(value)); err != nil {
		a.out.PrintUrgent(err.Error())
		return
	}
	a.out.PrintHint(fmt.Sprintf("%s set to %s.", field, strings.TrimSpace(value)))
}

func (a *cliApp) showHelp() {
	a.out.Printf("%s", strings.Join([]string{
		"  list                  show recipes",
		"  load <id|brew id>     load a recipe (or just type its number)",
		"  next / prev           cycle through recipes",
		"  start / stop / t      run, pause or toggle the timer",
		"  reset                 zero the timer",
		"  status / steps        where you are / the full timeline",
		"  params                brew params of the loaded recipe",
		"  set <field> <value>   change a brew param ('set defaults' to restore)",
		"  quit",
	}, "\n"))
}

// printLibrary writes the recipe library for --list.
func printLibrary(ctx context.Context, w io.Writer, src domain.RecipeSource) error {
	list, err := src.List(ctx)
	if err != nil {
		return fmt.Errorf("listing recipes: %w", err)
	}
	writeLibrary(w, list)
	return nil
}

func writeLibrary(w io.Writer, list []domain.RecipeSummary) {
	for _, s := range list {
		line := fmt.Sprintf("  [%s] %-28s %-12s %s", s.ID, s.Name, s.BrewID, duration.Format(s.Duration))
		if s.Author != "" {
			line += "  by " + s.Author
		}
		fmt.Fprintln(w, line)
	}
}
