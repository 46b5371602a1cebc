// Package display provides the terminal brewer UI using Bubble Tea.
//
// The [UI] type renders the loaded recipe's timeline, the running clock
// and a progress bar above an input prompt. Typed lines and hotkeys are
// delivered as command strings on [UI.InputChan]; all application output
// is printed above the rendered area via Program.Println / Printf, so
// concurrent writes never garble the display.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/ottobrew/internal/brewer"
	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/duration"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#fde68a"))

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#bae6fd")).
			Background(lipgloss.Color("#27272a")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	activeStepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	pastStepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	// Dimmed zinc for descriptions and params.
	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Italic(true)

	urgentOutputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	userInputEchoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#e4e4e7"))

	// BannerStyle is muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))
)

// ── Key map ──────────────────────────────────────────────────────

// Hotkeys act only while the prompt is empty, so typing is never hijacked.
type keyMap struct {
	Toggle key.Binding
	Reset  key.Binding
	Next   key.Binding
	Prev   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Prev, k.Next, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
	Reset:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
	Next:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next recipe")),
	Prev:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev recipe")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// hotkeyCommands maps hotkeys to the command strings they send.
var hotkeyCommands = []struct {
	binding key.Binding
	command string
}{
	{keys.Toggle, "toggle"},
	{keys.Reset, "reset"},
	{keys.Next, "next"},
	{keys.Prev, "prev"},
}

// ── UI ───────────────────────────────────────────────────────────

// BrewSource is what the UI renders from.
type BrewSource interface {
	Snapshot() brewer.State
}

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may safely call
// [UI.Println] and [UI.Printf] at any time.
type UI struct {
	brew    BrewSource
	program *tea.Program
	inputCh chan string
	readyCh chan struct{}
	quitCh  chan struct{}
	done    atomic.Bool
}

// NewUI creates the display. Call Run() to start.
func NewUI(brew BrewSource) *UI {
	return &UI{
		brew:    brew,
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
}

// Println prints a line above the brewer view. Thread-safe. Falls back
// to fmt.Println when the program is not running.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the brewer view on its own line.
// Thread-safe.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format+"\n", a...)
	}
}

// InputChan delivers submitted lines and hotkey commands.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// PrintHint prints dimmed italic help text.
func (u *UI) PrintHint(text string) {
	u.Println(hintStyle.Render("  " + text))
}

// PrintUrgent prints an error line.
func (u *UI) PrintUrgent(text string) {
	u.Println(urgentOutputStyle.Render("  " + text))
}

// PrintUserInput echoes what the user typed into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render("brew> ") + userInputEchoStyle.Render(text))
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	m := newModel(u.brew, u.inputCh)
	m.readyCh = u.readyCh
	m.echoFn = u.PrintUserInput

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	brew     BrewSource
	state    brewer.State
	input    textinput.Model
	progress progress.Model
	help     help.Model
	inputCh  chan<- string
	readyCh  chan struct{}
	echoFn   func(string)
	width    int
}

// Messages.
type tickMsg time.Time

const refreshInterval = 100 * time.Millisecond

// Plain-text prompt so the textinput width math stays correct.
const prompt = "brew> "

func newModel(brew BrewSource, inputCh chan<- string) model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.PromptStyle = promptStyle
	ti.TextStyle = userInputEchoStyle
	ti.Placeholder = "type a command, or 'help'"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	return model{
		brew:     brew,
		state:    brew.Snapshot(),
		input:    ti,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		help:     help.New(),
		inputCh:  inputCh,
		echoFn:   func(string) {},
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
		signalReady(m.readyCh),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		if m.input.Value() == "" {
			for _, hk := range hotkeyCommands {
				if key.Matches(msg, hk.binding) {
					m.send(hk.command)
					return m, nil
				}
			}
		}
		if msg.Type == tea.KeyEnter {
			v := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(v) == "" {
				return m, nil
			}
			m.send(v)
			// Echo from a Cmd so Println never runs inside Update.
			echoFn := m.echoFn
			return m, func() tea.Msg {
				echoFn(v)
				return nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		if msg.Width > len(prompt) {
			m.input.Width = msg.Width - len(prompt)
		}
		if w := msg.Width - 4; w > 10 {
			m.progress.Width = min(w, 60)
		}
		return m, nil

	case tickMsg:
		m.state = m.brew.Snapshot()
		return m, tea.Batch(tickCmd(), tea.SetWindowTitle(m.titleStr()))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send queues a command without blocking the event loop; a full queue
// drops the command.
func (m model) send(cmd string) {
	select {
	case m.inputCh <- cmd:
	default:
	}
}

func (m model) titleStr() string {
	if m.state.Recipe == nil {
		return "OttoBrew"
	}
	return fmt.Sprintf("OttoBrew: %s %s", m.state.Recipe.Name, m.state.DurationLabel)
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.renderBrew())
	b.WriteString("\n  " + m.help.View(keys) + "\n")
	b.WriteString(m.input.View())
	return b.String()
}

func (m model) renderBrew() string {
	var b strings.Builder

	r := m.state.Recipe
	if r == nil {
		b.WriteString(statusStyle.Render("  No recipe loaded. Type 'list' to see recipes."))
		b.WriteByte('\n')
		return b.String()
	}

	b.WriteString("  " + titleStyle.Render(r.Name))
	if r.Author != "" {
		b.WriteString(secondaryStyle.Render("  by " + r.Author))
	}
	b.WriteByte('\n')
	if pl := paramsLine(r.Params); pl != "" {
		b.WriteString("  " + secondaryStyle.Render(pl) + "\n")
	}
	b.WriteByte('\n')

	b.WriteString("  " + clockStyle.Render(m.state.DurationLabel))
	b.WriteString(" " + m.statusLabel() + "\n")
	b.WriteString("  " + m.progress.ViewAs(progressRatio(m.state)) + "\n\n")

	for i, s := range r.Steps {
		b.WriteString(m.renderStep(i, s))
		b.WriteByte('\n')
	}

	if m.state.InProcess && m.state.ActiveStep >= 0 {
		if desc := r.Steps[m.state.ActiveStep].Description; desc != "" {
			b.WriteString("\n  " + secondaryStyle.Render(desc) + "\n")
		}
	}
	return b.String()
}

func (m model) statusLabel() string {
	switch {
	case m.state.HasCompleted:
		return doneStyle.Render("complete")
	case m.state.Running:
		return statusStyle.Render(fmt.Sprintf("brewing, %s left in step", duration.Format(m.state.StepLeft)))
	case m.state.HasStarted:
		return statusStyle.Render("paused")
	default:
		return statusStyle.Render(fmt.Sprintf("ready, %s total", duration.Format(m.state.Recipe.Duration)))
	}
}

func (m model) renderStep(i int, s domain.TimedStep) string {
	line := fmt.Sprintf("%s  %-8s %s", duration.Format(s.Start), s.Kind, s.Summary)
	switch {
	case !m.state.HasStarted:
		return "    " + stepStyle.Render(line)
	case m.state.HasCompleted || i < m.state.ActiveStep:
		return "    " + pastStepStyle.Render(line)
	case i == m.state.ActiveStep:
		return "  ▸ " + activeStepStyle.Render(line)
	default:
		return "    " + stepStyle.Render(line)
	}
}

// ── Helpers ──────────────────────────────────────────────────────

// progressRatio returns elapsed over recipe duration, clamped to [0, 1].
func progressRatio(st brewer.State) float64 {
	if st.Recipe == nil || st.Recipe.Duration <= 0 {
		if st.HasStarted {
			return 1
		}
		return 0
	}
	p := float64(st.Duration) / float64(st.Recipe.Duration)
	return max(0, min(1, p))
}

// paramsLine renders the brew params that are set, e.g.
// "16g coffee · 350g water · 16:1 · Boil · Fine grind · Light roast".
func paramsLine(p domain.BrewParams) string {
	var parts []string
	add := func(v, suffix string) {
		if v != "" {
			parts = append(parts, v+suffix)
		}
	}
	add(p.CoffeeAmount, " coffee")
	add(p.WaterAmount, " water")
	add(p.Ratio, "")
	add(p.WaterTemp, "")
	add(p.Grind, " grind")
	add(p.Roast, " roast")
	return strings.Join(parts, " · ")
}
