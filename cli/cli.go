// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the achievecore engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/achievecore/engine"
	"github.com/nathoo/achievecore/engine/save"
	"github.com/nathoo/achievecore/engine/state"
	"github.com/nathoo/achievecore/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	Defs      *state.Defs
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine. Crusade saves go to saveDir.
func New(eng *engine.Engine, defs *state.Defs, saveDir string) *CLI {
	return &CLI{
		Engine:  eng,
		Defs:    defs,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: saveDir,
	}
}

// Run starts the game loop. It shows the intro, starts a crusade on the
// default scenario, then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	if c.Defs.Game.Intro != "" {
		c.printLine(c.Defs.Game.Intro)
		c.printLine("")
	}

	result, err := c.Engine.NewCrusade("", "")
	if err != nil {
		c.printSystem(fmt.Sprintf("Could not start a crusade: %v", err))
	}
	c.printResult(result)

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/achievements":
		lines := c.Engine.AchievementLines()
		if arg != "" {
			lines = c.Engine.AchievementDetail(strings.Join(parts[1:], " "))
		}
		for _, line := range lines {
			c.printLine(line)
		}

	case "/reset":
		result := c.Engine.Reset()
		for _, line := range result.Output {
			c.printSystem(line)
		}

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(name string) {
	if c.Engine.Session == nil {
		c.printSystem("Nothing to save: no crusade in progress.")
		return
	}
	if name == "" {
		name = save.DefaultSlot
	}

	data, err := save.Save(c.Engine.Session, c.Defs, c.Engine.RNG.Seed(), c.Engine.RNG.Position())
	if err == nil {
		err = save.WriteSlot(c.SaveDir, name, data)
	}
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Crusade saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = save.DefaultSlot
	}
	sd, err := save.ReadSlot(c.SaveDir, name)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	result := c.Engine.Resume(sd)
	c.printSystem(fmt.Sprintf("Crusade loaded from %s (turn %d).", name, sd.Session.Turn+1))
	c.printResult(result)
	for _, line := range c.Engine.StatusLines() {
		c.printLine(line)
	}
}

func (c *CLI) cmdHelp() {
	help := []string{
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
		"  draw [n]                       Draw from your draw pile",
		"  discard/drop <card>            Discard a card from hand",
		"  throw/burn <card>              Throw a card away for good",
		"  end turn                       Discard your hand and draw",
		"  swear <oath>                   Change your oath",
		"  time <day|night ...>           Set the crusade's times of day",
		"  win / lose                     Finish the scenario",
		"  hand (h), look (l)             Show your hand or status",
		"  achievements [id]              List achievements, or show one",
		"  again (g)                      Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	s := c.Engine.Session
	if s == nil {
		c.printSystem("No crusade in progress.")
	} else {
		c.printSystem(fmt.Sprintf("Session: %s", s.ID))
		c.printSystem(fmt.Sprintf("Scenario: %s (%s, tutorial=%v)", s.Config.Scenario.ID, s.Scenario.Status, s.Config.Scenario.Tutorial))
		c.printSystem(fmt.Sprintf("Oath: %s", s.Player.Oath))
		c.printSystem(fmt.Sprintf("Time of day: %v", s.Config.TimeOfDays))
		c.printSystem(fmt.Sprintf("Turn: %d", s.Turn))
		for _, z := range state.Zones {
			cards := state.ZoneCards(s, z)
			if len(cards) == 0 {
				continue
			}
			ids := make([]string, len(cards))
			for i, pc := range cards {
				ids[i] = pc.Card.ID + "@" + pc.GUID
			}
			c.printSystem(fmt.Sprintf("%s: %s", z, strings.Join(ids, " ")))
		}
	}
	c.printSystem(fmt.Sprintf("Environment: %s", c.Engine.Progress.Env))
	c.printSystem(fmt.Sprintf("Unlocked: %v", c.Engine.Progress.Unlocked()))
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Effects) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Effects: %d", len(result.Effects)))
		for _, e := range result.Effects {
			c.printSystem(fmt.Sprintf("[trace]   %s %v", e.Type, e.Params))
		}
	}
	if len(result.Events) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			c.printSystem(fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
