package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nathoo/achievecore/engine"
	"github.com/nathoo/achievecore/engine/progression"
	"github.com/nathoo/achievecore/engine/state"
	"github.com/nathoo/achievecore/types"
)

// testDefs returns minimal game definitions for CLI testing.
func testDefs() *state.Defs {
	return &state.Defs{
		Game: types.GameDef{
			Title:         "Test Game",
			Author:        "Test",
			Version:       "1.0",
			StartScenario: "siege",
			StartingDeck:  []string{"longsword", "longsword", "longsword"},
			HandSize:      2,
			Intro:         "Welcome to the test.",
		},
		Cards: map[string]types.CardDef{
			"holy_grail": {ID: "holy_grail", Name: "Holy Grail", Type: "relic"},
			"longsword":  {ID: "longsword", Name: "Longsword", Type: "sword"},
		},
		Scenarios: map[string]types.ScenarioDef{
			"siege": {ID: "siege", Name: "Siege of Acre", TimeOfDays: []string{"Day", "Night"}},
		},
		Achievements: []types.AchievementDef{
			{
				ID:         "relic_hunter",
				Kind:       types.KindAcquiredCard,
				PlatformID: "ACH_RELIC",
				Name:       "Relic Hunter",
				CardTypes:  []types.CardType{"relic"},
			},
		},
	}
}

func newTestEngine(t *testing.T, defs *state.Defs) *engine.Engine {
	t.Helper()
	pm, err := progression.New(defs, "release", nil)
	if err != nil {
		t.Fatalf("progression.New: %v", err)
	}
	return engine.New(defs, pm, 7)
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	defs := testDefs()
	var out bytes.Buffer
	c := &CLI{
		Engine:  newTestEngine(t, defs),
		Defs:    defs,
		In:      strings.NewReader(input),
		Out:     &out,
		SaveDir: t.TempDir(),
	}
	return c, &out
}

func TestCLI_IntroAndCrusadeStart(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Welcome to the test.") {
		t.Error("expected intro text in output")
	}
	if !strings.Contains(output, "A new crusade begins: Siege of Acre.") {
		t.Error("expected crusade start in output")
	}
	if strings.Count(output, "Drew Longsword.") != 2 {
		t.Errorf("expected opening hand of two, got:\n%s", output)
	}
}

func TestCLI_UnlockLine(t *testing.T) {
	c, out := newTestCLI(t, "acquire grail\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "*** Achievement unlocked: Relic Hunter ***") {
		t.Errorf("expected unlock line, got:\n%s", out.String())
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"/save", "/load", "/achievements", "/reset", "/quit"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in help output", want)
		}
	}
}

func TestCLI_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	defs := testDefs()

	// Acquire a relic into the draw pile, re-lock it, and save.
	var out bytes.Buffer
	c := &CLI{
		Engine:  newTestEngine(t, defs),
		Defs:    defs,
		In:      strings.NewReader("acquire grail into draw\n/reset\n/save test\n/quit\n"),
		Out:     &out,
		SaveDir: dir,
	}
	c.Run()

	if !strings.Contains(out.String(), "[Crusade saved to test.]") {
		t.Errorf("expected save confirmation, got:\n%s", out.String())
	}

	// Load with fresh progress: the saved relic is part of the baseline.
	var out2 bytes.Buffer
	c2 := &CLI{
		Engine:  newTestEngine(t, defs),
		Defs:    defs,
		In:      strings.NewReader("/load test\nacquire grail\n/quit\n"),
		Out:     &out2,
		SaveDir: dir,
	}
	c2.Run()

	loadOutput := out2.String()
	if !strings.Contains(loadOutput, "[Crusade loaded from test (turn 1).]") {
		t.Errorf("expected load confirmation, got:\n%s", loadOutput)
	}
	if !strings.Contains(loadOutput, "Hand 2, discard 0, draw pile 2, thrown 0.") {
		t.Errorf("expected saved zones after loading, got:\n%s", loadOutput)
	}
	if n := strings.Count(loadOutput, "Achievement unlocked"); n != 1 {
		t.Errorf("expected one unlock after loading, got %d:\n%s", n, loadOutput)
	}
	if c2.Engine.Session.ID != c.Engine.Session.ID {
		t.Errorf("session ID = %q, want %q", c2.Engine.Session.ID, c.Engine.Session.ID)
	}
}

func TestCLI_AchievementsAndReset(t *testing.T) {
	c, out := newTestCLI(t, "/achievements\nacquire grail\n/achievements\n/reset\n/reset\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{
		"Achievements (0/1):",
		"Achievements (1/1):",
		"  [x] Relic Hunter",
		"[Achievement reset: Relic Hunter]",
		"[No achievements to reset.]",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestCLI_AchievementDetail(t *testing.T) {
	c, out := newTestCLI(t, "/achievements Relic Hunter\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"Relic Hunter (relic_hunter, acquired_card)", "Locked, tracking this crusade."} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/bogus\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Unknown command") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "/trace\ndraw\n/trace\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Trace output enabled") {
		t.Error("expected trace enabled message")
	}
	if !strings.Contains(output, "[trace]   card_drawn") {
		t.Errorf("expected traced event, got:\n%s", output)
	}
	if !strings.Contains(output, "Trace output disabled") {
		t.Error("expected trace disabled message")
	}
}

func TestCLI_StateCommand(t *testing.T) {
	c, out := newTestCLI(t, "/state\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"Scenario: siege (in_progress", "Turn: 0", "hand: longsword@", "Environment: release"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in state output:\n%s", want, output)
		}
	}
}

func TestCLI_NoCrusade(t *testing.T) {
	defs := testDefs()
	defs.Game.StartScenario = "missing"
	var out bytes.Buffer
	c := &CLI{
		Engine:  newTestEngine(t, defs),
		Defs:    defs,
		In:      strings.NewReader("/save\n/state\nhand\n/quit\n"),
		Out:     &out,
		SaveDir: t.TempDir(),
	}
	c.Run()

	output := out.String()
	for _, want := range []string{
		"Could not start a crusade",
		"Nothing to save: no crusade in progress.",
		"[No crusade in progress.]",
		"No crusade in progress. Type 'new <scenario>' to begin.",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestCLI_EmptyInput(t *testing.T) {
	c, out := newTestCLI(t, "\n\n/quit\n")
	c.Run()

	// Empty lines are skipped without reaching the engine.
	if strings.Contains(out.String(), "What do you want to do?") {
		t.Error("empty lines should be silently skipped by CLI")
	}
}

func TestCLI_LoadNonexistent(t *testing.T) {
	c, out := newTestCLI(t, "/load nonexistent\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Load failed") {
		t.Error("expected load failure message")
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"again", "draw\nagain\n/quit\n"},
		{"g", "draw\ng\n/quit\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := newTestCLI(t, tt.input)
			c.Run()

			output := out.String()
			// Opening hand of two, then the third card.
			if n := strings.Count(output, "Drew Longsword."); n != 3 {
				t.Errorf("expected 3 draws, got %d", n)
			}
			if !strings.Contains(output, "Your draw pile is empty.") {
				t.Error("expected the repeat to hit the empty draw pile")
			}
		})
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	c, out := newTestCLI(t, "again\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Nothing to repeat") {
		t.Error("expected 'Nothing to repeat' when no prior command")
	}
}

func TestCLI_ScriptEcho(t *testing.T) {
	c, out := newTestCLI(t, "# comment\nhand\n/quit\n")
	c.EchoInput = true
	c.Run()

	output := out.String()
	if strings.Contains(output, "# comment") {
		t.Error("comment lines should be skipped")
	}
	if !strings.Contains(output, "> hand\n") {
		t.Errorf("expected echoed command, got:\n%s", output)
	}
}

func TestCLI_SaveRejectsPathNames(t *testing.T) {
	c, out := newTestCLI(t, "/save ../escape\n/load ../escape\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, `Save failed: invalid save name "../escape"`) {
		t.Errorf("expected save rejection, got:\n%s", output)
	}
	if !strings.Contains(output, `Load failed: invalid save name "../escape"`) {
		t.Errorf("expected load rejection, got:\n%s", output)
	}
}
