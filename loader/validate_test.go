package loader

import (
	"strings"
	"testing"

	"github.com/nathoo/achievecore/engine/state"
	"github.com/nathoo/achievecore/types"
)

// validDefs returns a minimal valid Defs for testing.
func validDefs() *state.Defs {
	return &state.Defs{
		Game: types.GameDef{
			Title:         "Test",
			StartScenario: "field",
			StartingDeck:  []string{"sword"},
		},
		Cards: map[string]types.CardDef{
			"sword": {ID: "sword", Type: "sword"},
			"grail": {ID: "grail", Type: "relic"},
		},
		Scenarios: map[string]types.ScenarioDef{
			"field":    {ID: "field"},
			"training": {ID: "training", Tutorial: true},
		},
		Oaths: map[string]types.OathDef{
			"valor": {ID: "valor"},
		},
		Achievements: []types.AchievementDef{
			{ID: "relic", Kind: types.KindAcquiredCard, PlatformID: "ACH_RELIC", CardTypes: []types.CardType{"relic"}},
			{ID: "win", Kind: types.KindWinScenario, PlatformID: "ACH_WIN", Scenario: "field", Oaths: []string{"valor"}},
		},
	}
}

func assertContains(t *testing.T, msgs []string, substr string) {
	t.Helper()
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return
		}
	}
	t.Errorf("expected a message containing %q, got %v", substr, msgs)
}

func TestValidate_ValidDefs(t *testing.T) {
	ve := validate(validDefs())
	if len(ve.Errors) != 0 || len(ve.Warnings) != 0 {
		t.Fatalf("expected no errors or warnings, got %+v", ve)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*state.Defs)
		want   string
	}{
		{"empty title", func(d *state.Defs) { d.Game.Title = "" }, "title"},
		{"no start scenario", func(d *state.Defs) { d.Game.StartScenario = "" }, "start_scenario"},
		{"unknown start scenario", func(d *state.Defs) { d.Game.StartScenario = "moon" }, `start scenario "moon"`},
		{"unknown start oath", func(d *state.Defs) { d.Game.StartOath = "greed" }, `start oath "greed"`},
		{"unknown deck card", func(d *state.Defs) { d.Game.StartingDeck = []string{"axe"} }, `starting deck card "axe"`},
		{"negative hand size", func(d *state.Defs) { d.Game.HandSize = -1 }, "hand_size"},
		{"duplicate achievement", func(d *state.Defs) {
			d.Achievements = append(d.Achievements, types.AchievementDef{
				ID: "relic", Kind: types.KindAcquiredCard, PlatformID: "ACH_OTHER", CardIDs: []string{"grail"},
			})
		}, `duplicate achievement ID "relic"`},
		{"shared platform id", func(d *state.Defs) { d.Achievements[1].PlatformID = "ACH_RELIC" }, "share platform_id"},
		{"unknown kind", func(d *state.Defs) { d.Achievements[0].Kind = "collect_gold" }, `unknown kind "collect_gold"`},
		{"empty id", func(d *state.Defs) { d.Achievements[0].ID = "" }, "empty ID"},
		{"unknown card", func(d *state.Defs) { d.Achievements[0].CardIDs = []string{"axe"} }, `undefined card "axe"`},
		{"win without scenario", func(d *state.Defs) { d.Achievements[1].Scenario = "" }, "requires a scenario"},
		{"win unknown scenario", func(d *state.Defs) { d.Achievements[1].Scenario = "moon" }, `undefined scenario "moon"`},
		{"win unknown oath", func(d *state.Defs) { d.Achievements[1].Oaths = []string{"greed"} }, `undefined oath "greed"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs := validDefs()
			tt.mutate(defs)
			ve := validate(defs)
			assertContains(t, ve.Errors, tt.want)
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*state.Defs)
		want   string
	}{
		{"no constraints", func(d *state.Defs) { d.Achievements[0].CardTypes = nil }, "can never unlock"},
		{"unmatched card type", func(d *state.Defs) {
			d.Achievements[0].CardTypes = []types.CardType{"mount"}
		}, `card type "mount"`},
		{"no platform id", func(d *state.Defs) { d.Achievements[0].PlatformID = "" }, "no platform_id"},
		{"untyped card", func(d *state.Defs) { d.Cards["rock"] = types.CardDef{ID: "rock"} }, `card "rock" has no type`},
		{"tutorial target", func(d *state.Defs) { d.Achievements[1].Scenario = "training" }, "tutorial scenario"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs := validDefs()
			tt.mutate(defs)
			ve := validate(defs)
			if len(ve.Errors) != 0 {
				t.Errorf("unexpected errors: %v", ve.Errors)
			}
			assertContains(t, ve.Warnings, tt.want)
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	ve := &ValidationError{Errors: []string{"a", "b"}}
	if got := ve.Error(); !strings.Contains(got, "2 error(s)") || !strings.Contains(got, "\n  b") {
		t.Errorf("Error() = %q", got)
	}
}
