package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/achievecore/engine"
	"github.com/nathoo/achievecore/engine/progression"
	"github.com/nathoo/achievecore/engine/save"
	"github.com/nathoo/achievecore/engine/state"
	"github.com/nathoo/achievecore/types"
)

// outLine is one unstyled line of the transcript. Lines are kept raw so
// they can be re-wrapped when the terminal is resized.
type outLine struct {
	text string
	kind lineKind
}

// Model is the Bubble Tea model for the achievecore TUI.
type Model struct {
	engine *engine.Engine
	defs   *state.Defs

	viewport viewport.Model
	input    textinput.Model
	history  *History

	lines  []outLine
	banner string // latest unlock, shown until the next command

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	lastCmd  string
	saveDir  string
}

// outputMsg carries a block of transcript into the Update loop.
type outputMsg struct {
	input string // echoed command, empty for the intro
	lines []string
	meta  bool // lines come from a slash command
}

// New creates a TUI model wired to the given engine. Crusade saves go to
// saveDir.
func New(eng *engine.Engine, defs *state.Defs, saveDir string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		engine:  eng,
		defs:    defs,
		input:   ti,
		history: NewHistory(100),
		saveDir: saveDir,
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, defs *state.Defs, saveDir string) error {
	p := tea.NewProgram(New(eng, defs, saveDir), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init shows the title and starts a crusade on the default scenario.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		g := m.defs.Game
		lines := []string{fmt.Sprintf("%s v%s by %s", g.Title, g.Version, g.Author), ""}
		if g.Intro != "" {
			lines = append(lines, g.Intro, "")
		}

		result, err := m.engine.NewCrusade("", "")
		if err != nil {
			lines = append(lines, fmt.Sprintf("[Could not start a crusade: %v]", err))
		}
		return outputMsg{lines: append(lines, result.Output...)}
	}
}

// Update handles key presses, mouse scrolling, resizes and transcript output.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.MouseMsg:
		if !m.ready {
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			return m.handleEnter()
		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil
		case "down":
			next, _ := m.history.Next()
			m.input.SetValue(next)
			m.input.CursorEnd()
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case outputMsg:
		m = m.appendOutput(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// resize fits the transcript between the top of the screen and the status
// bar and input line.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	vpHeight := max(height-2, 1)
	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.viewport.KeyMap = viewportKeyMap()
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.refreshViewport()
}

// handleEnter runs the submitted line as a slash command or a game command.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()
	m.banner = ""

	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			return m.appendOutput(outputMsg{input: input, lines: []string{"Nothing to repeat."}, meta: true}), nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(outputMsg{input: input, lines: output, meta: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	result := m.engine.Step(input)
	for _, ev := range result.Events {
		if ev.Type == progression.EventUnlocked {
			m.banner = fmt.Sprintf("Unlocked: %v", ev.Data["name"])
		}
	}
	output := result.Output
	if m.trace {
		output = append(output, formatTrace(result)...)
	}
	return m.appendOutput(outputMsg{input: input, lines: output}), nil
}

// appendOutput classifies a block of output, adds it to the transcript
// followed by a blank separator, and refreshes the viewport.
func (m Model) appendOutput(msg outputMsg) Model {
	if msg.input != "" {
		m.lines = append(m.lines, outLine{text: "> " + msg.input, kind: kindInput})
	}
	for _, text := range msg.lines {
		kind := kindMeta
		if !msg.meta {
			kind = classifyLine(text)
		}
		m.lines = append(m.lines, outLine{text: text, kind: kind})
	}
	m.lines = append(m.lines, outLine{})
	m.refreshViewport()
	return m
}

// refreshViewport re-wraps and re-styles the transcript at the current
// width.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	width := max(m.width, 10)
	styled := make([]string, len(m.lines))
	for i, l := range m.lines {
		if l.text != "" {
			styled[i] = renderLineKind(wordWrap(l.text, width), l.kind)
		}
	}
	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		switch {
		case i == 0:
			lineLen = len(word)
		case lineLen+1+len(word) > width:
			b.WriteString("\n")
			lineLen = len(word)
		default:
			b.WriteString(" ")
			lineLen += 1 + len(word)
		}
		b.WriteString(word)
	}
	return b.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/save":
		return m.cmdSave(arg), false

	case "/load":
		return m.cmdLoad(arg), false

	case "/achievements":
		if arg != "" {
			return m.engine.AchievementDetail(strings.Join(parts[1:], " ")), false
		}
		return m.engine.AchievementLines(), false

	case "/reset":
		return m.engine.Reset().Output, false

	case "/help":
		return cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdSave(name string) []string {
	if m.engine.Session == nil {
		return []string{"Nothing to save: no crusade in progress."}
	}
	if name == "" {
		name = save.DefaultSlot
	}

	data, err := save.Save(m.engine.Session, m.defs, m.engine.RNG.Seed(), m.engine.RNG.Position())
	if err == nil {
		err = save.WriteSlot(m.saveDir, name, data)
	}
	if err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}
	return []string{fmt.Sprintf("Crusade saved to %s.", name)}
}

func (m *Model) cmdLoad(name string) []string {
	if name == "" {
		name = save.DefaultSlot
	}
	sd, err := save.ReadSlot(m.saveDir, name)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	result := m.engine.Resume(sd)
	output := []string{fmt.Sprintf("Crusade loaded from %s (turn %d).", name, sd.Session.Turn+1)}
	output = append(output, result.Output...)
	return append(output, m.engine.StatusLines()...)
}

func cmdHelp() []string {
	return []string{
		"System:",
		"  /save [name]     Save crusade (default: quicksave)",
		"  /load [name]     Load crusade (default: quicksave)",
		"  /achievements [id]  List achievements, or show one",
		"  /reset           Re-lock every achievement",
		"  /quit            Exit game",
		"  /help            Show this help",
		"  /state           Debug: dump current session",
		"  /trace           Toggle debug trace output",
		"",
		"Game commands:",
		"  new [scenario] [with <oath>]   Start a new crusade",
		"  acquire/get <card> [into <zone>]",
		"  draw [n], discard <card>, throw <card>",
		"  end turn, swear <oath>, time <day|night ...>",
		"  win / lose                     Finish the scenario",
		"  hand (h), look (l)             Show your hand or status",
		"  again (g)                      Repeat your last command",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

func (m *Model) cmdState() []string {
	var output []string
	if s := m.engine.Session; s == nil {
		output = append(output, "No crusade in progress.")
	} else {
		output = append(output,
			fmt.Sprintf("Session: %s", s.ID),
			fmt.Sprintf("Scenario: %s (%s)", s.Config.Scenario.ID, s.Scenario.Status),
			fmt.Sprintf("Oath: %s", s.Player.Oath),
			fmt.Sprintf("Time of day: %v", s.Config.TimeOfDays),
			fmt.Sprintf("Turn: %d", s.Turn),
		)
		for _, z := range state.Zones {
			output = append(output, fmt.Sprintf("%s: %d card(s)", z, len(state.ZoneCards(s, z))))
		}
	}
	output = append(output,
		fmt.Sprintf("Environment: %s", m.engine.Progress.Env),
		fmt.Sprintf("Unlocked: %v", m.engine.Progress.Unlocked()),
	)
	return output
}

func formatTrace(result types.Result) []string {
	var lines []string
	if len(result.Effects) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Effects: %d", len(result.Effects)))
		for _, e := range result.Effects {
			lines = append(lines, fmt.Sprintf("[trace]   %s %v", e.Type, e.Params))
		}
	}
	if len(result.Events) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			lines = append(lines, fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
	return lines
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
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
