// Package loader loads Lua and YAML content into Go structs at startup.
// The Lua VM is discarded after loading; nothing scripted runs in play.
package loader

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/achievecore/engine/state"
	"github.com/nathoo/achievecore/types"
)

// rawDef holds a card, scenario or oath table before compilation.
type rawDef struct {
	id    string
	table *lua.LTable
}

// rawAchievement holds an achievement table and the constructor's kind.
type rawAchievement struct {
	id    string
	kind  string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	if b, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getInt returns a numeric field from a Lua table as an int, or 0.
func getInt(tbl *lua.LTable, key string) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getStrings returns the string elements of an array field. A bare string
// is treated as a one-element list.
func getStrings(tbl *lua.LTable, key string) []string {
	switch v := tbl.RawGetString(key).(type) {
	case lua.LString:
		return []string{string(v)}
	case *lua.LTable:
		var out []string
		for i := 1; i <= v.MaxN(); i++ {
			if s, ok := v.RawGetInt(i).(lua.LString); ok {
				out = append(out, string(s))
			}
		}
		return out
	}
	return nil
}

// compile converts the collected Lua tables and YAML documents into Defs.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{
		Cards:     map[string]types.CardDef{},
		Scenarios: map[string]types.ScenarioDef{},
		Oaths:     map[string]types.OathDef{},
	}
	haveGame := false

	if coll.game != nil {
		defs.Game = compileGame(coll.game)
		haveGame = true
	}
	for _, raw := range coll.cards {
		if err := addCard(defs, compileCard(raw)); err != nil {
			return nil, err
		}
	}
	for _, raw := range coll.scenarios {
		if err := addScenario(defs, compileScenario(raw)); err != nil {
			return nil, err
		}
	}
	for _, raw := range coll.oaths {
		if err := addOath(defs, types.OathDef{ID: raw.id, Name: getString(raw.table, "name")}); err != nil {
			return nil, err
		}
	}
	for _, raw := range coll.achievements {
		defs.Achievements = append(defs.Achievements, compileAchievement(raw))
	}

	for _, doc := range coll.docs {
		if doc.Game != nil {
			if haveGame {
				return nil, fmt.Errorf("%s: game is already defined", doc.name)
			}
			defs.Game = doc.Game.def()
			haveGame = true
		}
		for _, c := range doc.Cards {
			def := types.CardDef{ID: c.ID, Name: c.Name, Type: types.CardType(c.Type)}
			if err := addCard(defs, def); err != nil {
				return nil, fmt.Errorf("%s: %w", doc.name, err)
			}
		}
		for _, sc := range doc.Scenarios {
			def := types.ScenarioDef{ID: sc.ID, Name: sc.Name, Tutorial: sc.Tutorial, TimeOfDays: sc.TimeOfDays}
			if err := addScenario(defs, def); err != nil {
				return nil, fmt.Errorf("%s: %w", doc.name, err)
			}
		}
		for _, o := range doc.Oaths {
			if err := addOath(defs, types.OathDef{ID: o.ID, Name: o.Name}); err != nil {
				return nil, fmt.Errorf("%s: %w", doc.name, err)
			}
		}
		for _, a := range doc.Achievements {
			defs.Achievements = append(defs.Achievements, a.def())
		}
	}

	if !haveGame {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	return defs, nil
}

func addCard(defs *state.Defs, def types.CardDef) error {
	if def.ID == "" {
		return fmt.Errorf("card with empty ID")
	}
	if _, dup := defs.Cards[def.ID]; dup {
		return fmt.Errorf("duplicate card %q", def.ID)
	}
	defs.Cards[def.ID] = def
	return nil
}

func addScenario(defs *state.Defs, def types.ScenarioDef) error {
	if def.ID == "" {
		return fmt.Errorf("scenario with empty ID")
	}
	if _, dup := defs.Scenarios[def.ID]; dup {
		return fmt.Errorf("duplicate scenario %q", def.ID)
	}
	defs.Scenarios[def.ID] = def
	return nil
}

func addOath(defs *state.Defs, def types.OathDef) error {
	if def.ID == "" {
		return fmt.Errorf("oath with empty ID")
	}
	if _, dup := defs.Oaths[def.ID]; dup {
		return fmt.Errorf("duplicate oath %q", def.ID)
	}
	defs.Oaths[def.ID] = def
	return nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	return types.GameDef{
		Title:         getString(tbl, "title"),
		Author:        getString(tbl, "author"),
		Version:       getString(tbl, "version"),
		StartScenario: getString(tbl, "start_scenario"),
		StartOath:     getString(tbl, "start_oath"),
		StartingDeck:  getStrings(tbl, "starting_deck"),
		HandSize:      getInt(tbl, "hand_size"),
		Intro:         getString(tbl, "intro"),
	}
}

func compileCard(raw rawDef) types.CardDef {
	return types.CardDef{
		ID:   raw.id,
		Name: getString(raw.table, "name"),
		Type: types.CardType(getString(raw.table, "type")),
	}
}

func compileScenario(raw rawDef) types.ScenarioDef {
	return types.ScenarioDef{
		ID:         raw.id,
		Name:       getString(raw.table, "name"),
		Tutorial:   getBool(raw.table, "tutorial", false),
		TimeOfDays: getStrings(raw.table, "time_of_days"),
	}
}

func compileAchievement(raw rawAchievement) types.AchievementDef {
	tbl := raw.table
	def := types.AchievementDef{
		ID:                    raw.id,
		Kind:                  raw.kind,
		PlatformID:            getString(tbl, "platform_id"),
		Name:                  getString(tbl, "name"),
		Description:           getString(tbl, "description"),
		Environments:          getStrings(tbl, "environments"),
		TriggerDuringTutorial: getBool(tbl, "trigger_during_tutorial", false),
		CardIDs:               getStrings(tbl, "cards"),
		Scenario:              getString(tbl, "scenario"),
		Oaths:                 getStrings(tbl, "oaths"),
		TimeOfDay:             getString(tbl, "time_of_day"),
	}
	for _, t := range getStrings(tbl, "card_types") {
		def.CardTypes = append(def.CardTypes, types.CardType(t))
	}
	return def
}
