package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/pupplay/engine"
)

// origin says where a transcript line came from.
type origin int

const (
	fromGame origin = iota
	fromPlayer
	fromSystem
)

// rawLine is an unstyled transcript line. Lines are re-wrapped and
// re-styled from these on every resize.
type rawLine struct {
	text   string
	origin origin
	kind   lineKind
}

// Model is the Bubble Tea model for the PupPlay TUI.
type Model struct {
	ctx      context.Context
	engine   *engine.Engine
	interval time.Duration // 0 disables the world clock

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine

	width    int
	height   int
	ready    bool
	quitting bool
	lastCmd  string
}

// gameOutputMsg carries engine output into the Update loop.
type gameOutputMsg struct {
	input  string // echoed player input, empty for the intro and ticks
	lines  []string
	origin origin
}

// tickMsg fires when the world clock advances.
type tickMsg time.Time

// New creates a TUI model wired to the given engine.
func New(ctx context.Context, eng *engine.Engine, interval time.Duration) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.Placeholder = "type help for commands"
	ti.CharLimit = 256
	ti.Focus()

	return Model{
		ctx:      ctx,
		engine:   eng,
		interval: interval,
		input:    ti,
		history:  NewHistory(100),
	}
}

// Run starts the Bubble Tea program. Ticks arrive as messages, so they
// never interleave with a player command.
func Run(ctx context.Context, eng *engine.Engine, interval time.Duration) error {
	p := tea.NewProgram(New(ctx, eng, interval),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}

// Init shows the intro and starts the world clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.intro(), m.scheduleTick())
}

func (m Model) intro() tea.Cmd {
	game := m.engine.Content().Game
	lines := []string{fmt.Sprintf("%s v%s", game.Title, game.Version), ""}
	if game.Intro != "" {
		lines = append(lines, game.Intro, "")
	}
	lines = append(lines, "Type 'new <name>' to start, 'load <name>' to continue, or /help.")
	return func() tea.Msg { return gameOutputMsg{lines: lines} }
}

func (m Model) scheduleTick() tea.Cmd {
	if m.interval <= 0 {
		return nil
	}
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles key presses, resizes, engine output and clock ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}

	case tickMsg:
		if lines := m.engine.Tick(); len(lines) > 0 {
			m = m.appendOutput(gameOutputMsg{lines: lines})
		}
		return m, m.scheduleTick()

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height

	// One row each for the status bar and the input line.
	vpHeight := max(height-2, 1)
	if m.ready {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	} else {
		m.viewport = viewport.New(width, vpHeight)
		m.viewport.KeyMap = viewportKeyMap()
		m.ready = true
	}
	m.refreshViewport()
}

// handleKey reacts to the keys the model owns. Everything else falls
// through to the text input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit, true

	case "enter":
		next, cmd := m.submit()
		return next, cmd, true

	case "up":
		if cmd, ok := m.history.Prev(); ok {
			m.input.SetValue(cmd)
			m.input.CursorEnd()
		}
		return m, nil, true

	case "down":
		cmd, ok := m.history.Next()
		if !ok {
			m.history.ResetCursor()
		}
		m.input.SetValue(cmd)
		m.input.CursorEnd()
		return m, nil, true

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd, true
	}
	return m, nil, false
}

// submit runs the line in the input box.
func (m Model) submit() (Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	if lower := strings.ToLower(input); lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			return m.appendOutput(gameOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, origin: fromSystem,
			}), nil
		}
		input = m.lastCmd
	}

	if strings.HasPrefix(input, "/") {
		out, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: out, origin: fromSystem})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	m.lastCmd = input
	return m.appendOutput(gameOutputMsg{input: input, lines: m.engine.Step(m.ctx, input)}), nil
}

// appendOutput adds a turn to the transcript, followed by a blank
// separator line.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{text: "> " + msg.input, origin: fromPlayer})
	}
	for _, line := range msg.lines {
		rl := rawLine{text: line, origin: msg.origin}
		if msg.origin == fromGame {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()
	return m
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	width := max(m.width, 10)

	styled := make([]string, len(m.rawLines))
	for i, rl := range m.rawLines {
		styled[i] = renderLine(rl, width)
	}
	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

func renderLine(rl rawLine, width int) string {
	if rl.text == "" {
		return ""
	}
	text := wordWrap(rl.text, width)
	switch rl.origin {
	case fromPlayer:
		return stylePlayerInput.Render(text)
	case fromSystem:
		return styledSystemMsg(text)
	default:
		return renderLineKind(text, rl.kind)
	}
}

// wordWrap breaks text at spaces so no line is wider than width. The
// leading indentation of text stays on the first line.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	indent := text[:strings.Index(text, words[0])]

	var lines []string
	cur := indent + words[0]
	for _, w := range words[1:] {
		if len(cur)+1+len(w) > width {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	lines = append(lines, cur)
	return strings.Join(lines, "\n")
}

// View renders the transcript, the status bar and the input line.
func (m Model) View() string {
	switch {
	case m.quitting:
		return ""
	case !m.ready:
		return "Loading..."
	}
	return strings.Join([]string{m.viewport.View(), m.renderStatusBar(), m.input.View()}, "\n")
}

// handleMeta runs a slash command and reports whether the program
// should exit.
func (m *Model) handleMeta(input string) ([]string, bool) {
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/quit", "/exit":
		var out []string
		if m.engine.HasPlayer() {
			out = m.engine.Step(m.ctx, "save")
		}
		return append(out, "Goodbye."), true
	case "/save":
		return m.engine.Step(m.ctx, "save"), false
	case "/load":
		if arg == "" {
			return []string{"Usage: /load <name>"}, false
		}
		return m.engine.Step(m.ctx, "load "+arg), false
	case "/saves":
		return m.engine.Step(m.ctx, "saves"), false
	case "/status":
		return m.engine.Step(m.ctx, "status"), false
	case "/tick":
		return m.engine.Step(m.ctx, "wait"), false
	case "/help":
		return m.helpLines(), false
	}
	return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", name)}, false
}

func (m *Model) helpLines() []string {
	help := []string{
		"System:",
		"  /save          Save the current game",
		"  /load <name>   Load a saved game",
		"  /saves         List saved games",
		"  /status        Show your status",
		"  /tick          Let time pass now",
		"  /quit          Save and exit",
		"",
		"Game commands:",
	}
	help = append(help, m.engine.Step(m.ctx, "commands")...)
	return append(help,
		"  again (g)  Repeat your last command",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	)
}

// viewportKeyMap leaves Up and Down to the command history.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
