// Package engine provides the Step() orchestrator that wires together
// parsing, resolution, effects, and achievement evaluation into a single
// player action.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/nathoo/achievecore/engine/achievement"
	"github.com/nathoo/achievecore/engine/effects"
	"github.com/nathoo/achievecore/engine/events"
	"github.com/nathoo/achievecore/engine/parser"
	"github.com/nathoo/achievecore/engine/progression"
	"github.com/nathoo/achievecore/engine/resolve"
	"github.com/nathoo/achievecore/engine/save"
	"github.com/nathoo/achievecore/engine/state"
	"github.com/nathoo/achievecore/types"
)

// Engine holds the game definitions, the active session and the
// progression manager that watches it.
type Engine struct {
	Defs     *state.Defs
	Session  *types.Session // nil until a crusade starts
	Progress *progression.Manager
	RNG      *RNG

	// NewID mints save-file identifiers for new crusades.
	NewID func() string

	handlers []events.Handler
}

// New creates an engine. The progression manager should already be restored.
func New(defs *state.Defs, progress *progression.Manager, seed int64) *Engine {
	return &Engine{
		Defs:     defs,
		Progress: progress,
		RNG:      NewRNG(seed),
		NewID:    uuid.NewString,
	}
}

// On registers a listener for events of the given type ("" for all).
func (e *Engine) On(eventType string, fn func(types.Event)) {
	e.handlers = append(e.handlers, events.Handler{EventType: eventType, Func: fn})
}

// NewCrusade starts a new session on the given scenario and oath. Empty
// arguments fall back to the game's defaults.
func (e *Engine) NewCrusade(scenarioID, oath string) (types.Result, error) {
	var result types.Result
	if scenarioID == "" {
		scenarioID = e.Defs.Game.StartScenario
	}
	if oath == "" {
		oath = e.Defs.Game.StartOath
	}

	deck := append([]string(nil), e.Defs.Game.StartingDeck...)
	e.RNG.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	s, err := state.NewSession(e.Defs, e.NewID(), scenarioID, oath, deck)
	if err != nil {
		return result, err
	}
	e.Session = s

	sc := s.Config.Scenario
	line := fmt.Sprintf("A new crusade begins: %s.", displayName(sc.Name, sc.ID))
	if oath != "" {
		line = fmt.Sprintf("A new crusade begins: %s, sworn to %s.", displayName(sc.Name, sc.ID), e.oathName(oath))
	}
	result.Output = append(result.Output, line)
	if len(s.Config.TimeOfDays) > 0 {
		result.Output = append(result.Output, "Time of day: "+strings.Join(s.Config.TimeOfDays, ", ")+".")
	}

	var effs []types.Effect
	if e.Defs.Game.HandSize > 0 {
		effs = append(effs, types.Effect{Type: "draw", Params: map[string]any{"count": e.Defs.Game.HandSize}})
	}
	e.apply(&result, effs)
	return result, nil
}

// Resume replaces the active session with a loaded save. The session keeps
// its save-file ID, so achievements continue rather than restart it.
func (e *Engine) Resume(sd *save.SaveData) types.Result {
	var result types.Result
	s := &types.Session{}
	save.ApplySave(s, sd)
	e.Session = s
	e.RNG = RestoreRNG(sd.RNGSeed, sd.RNGPos)
	e.apply(&result, nil)
	return result
}

// Reset re-arms every achievement, as when the player wipes their progress.
func (e *Engine) Reset() types.Result {
	var result types.Result
	evts := e.Progress.Clear()
	for _, ev := range evts {
		result.Output = append(result.Output, fmt.Sprintf("Achievement reset: %s", ev.Data["name"]))
	}
	if len(evts) == 0 {
		result.Output = append(result.Output, "No achievements to reset.")
	}
	result.Events = evts
	events.Dispatch(evts, e.handlers)
	return result
}

// Step processes one player command and returns the result.
func (e *Engine) Step(input string) types.Result {
	var result types.Result

	// 1. Parse input.
	intent := parser.Parse(input)
	if intent.Verb == "" {
		result.Output = append(result.Output, "What do you want to do?")
		return result
	}

	// 2. Commands that work without a crusade.
	switch intent.Verb {
	case "new":
		return e.stepNew(intent)
	case "achievements":
		if intent.Object != "" {
			result.Output = e.AchievementDetail(intent.Object)
		} else {
			result.Output = e.AchievementLines()
		}
		return result
	}

	if e.Session == nil {
		result.Output = append(result.Output, "No crusade in progress. Type 'new <scenario>' to begin.")
		return result
	}

	// 3. Read-only commands.
	switch intent.Verb {
	case "look":
		result.Output = e.StatusLines()
		return result
	case "hand":
		result.Output = e.HandLines()
		return result
	}

	// 4. A finished crusade accepts no more actions.
	if e.Session.Scenario.Status != types.ScenarioInProgress {
		result.Output = append(result.Output, "The crusade is over. Type 'new' to begin another.")
		return result
	}

	// 5. Build effects for the action.
	effs, err := e.actionEffects(intent)
	if err != nil {
		result.Output = append(result.Output, sentence(err))
		return result
	}

	// 6. Apply effects, then evaluate achievements once for the action.
	e.apply(&result, effs)
	return result
}

func (e *Engine) stepNew(intent types.Intent) types.Result {
	var result types.Result
	scenarioID, oath := "", ""
	if intent.Object != "" {
		id, err := resolve.Scenario(e.Defs, intent.Object)
		if err != nil {
			result.Output = append(result.Output, sentence(err))
			return result
		}
		scenarioID = id
	}
	if intent.Target != "" {
		id, err := resolve.Oath(e.Defs, intent.Target)
		if err != nil {
			result.Output = append(result.Output, sentence(err))
			return result
		}
		oath = id
	}
	result, err := e.NewCrusade(scenarioID, oath)
	if err != nil {
		result.Output = append(result.Output, sentence(err))
	}
	return result
}

// actionEffects maps a gameplay intent to the effects it applies.
func (e *Engine) actionEffects(intent types.Intent) ([]types.Effect, error) {
	switch intent.Verb {
	case "acquire":
		if intent.Object == "" {
			return nil, fmt.Errorf("acquire what?")
		}
		id, err := resolve.Card(e.Defs, intent.Object)
		if err != nil {
			return nil, err
		}
		zone := state.ZoneHand
		if intent.Target != "" {
			z, ok := state.ParseZone(intent.Target)
			if !ok {
				return nil, fmt.Errorf("unknown zone %q", intent.Target)
			}
			zone = z
		}
		return []types.Effect{{Type: "acquire", Params: map[string]any{"card": id, "zone": string(zone)}}}, nil

	case "draw":
		count := 1
		if intent.Object != "" {
			n, err := strconv.Atoi(intent.Object)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("draw how many?")
			}
			count = n
		}
		return []types.Effect{{Type: "draw", Params: map[string]any{"count": count}}}, nil

	case "discard":
		if intent.Object == "" {
			return nil, fmt.Errorf("discard what?")
		}
		ref := intent.Object
		if state.FindCard(e.Session, state.ZoneHand, ref) < 0 {
			id, err := resolve.Card(e.Defs, ref)
			if err != nil {
				return nil, err
			}
			ref = id
		}
		return []types.Effect{{Type: "discard", Params: map[string]any{"card": ref}}}, nil

	case "throw":
		if intent.Object == "" {
			return nil, fmt.Errorf("throw what?")
		}
		guid, err := resolve.OwnedCard(e.Session, e.Defs, intent.Object)
		if err != nil {
			return nil, err
		}
		return []types.Effect{{Type: "throw", Params: map[string]any{"card": guid}}}, nil

	case "end_turn":
		effs := []types.Effect{{Type: "end_turn"}}
		if e.Defs.Game.HandSize > 0 {
			effs = append(effs, types.Effect{Type: "draw", Params: map[string]any{"count": e.Defs.Game.HandSize}})
		}
		return effs, nil

	case "complete":
		return []types.Effect{{Type: "complete_scenario"}}, nil

	case "fail":
		return []types.Effect{{Type: "fail_scenario"}}, nil

	case "oath":
		if intent.Object == "" {
			return nil, fmt.Errorf("swear which oath?")
		}
		id, err := resolve.Oath(e.Defs, intent.Object)
		if err != nil {
			return nil, err
		}
		return []types.Effect{{Type: "set_oath", Params: map[string]any{"oath": id}}}, nil

	case "time":
		words := strings.Fields(intent.Object)
		if len(words) == 0 {
			return nil, fmt.Errorf("which times of day?")
		}
		times := make([]string, len(words))
		for i, w := range words {
			times[i] = resolve.TimeOfDay(e.Defs, w)
		}
		return []types.Effect{
			{Type: "set_time_of_day", Params: map[string]any{"times": times}},
			{Type: "say", Params: map[string]any{"text": "Time of day: " + strings.Join(times, ", ") + "."}},
		}, nil

	default:
		return nil, fmt.Errorf("I don't know how to %q", intent.Verb)
	}
}

// apply runs effects against the session, evaluates achievements once,
// and dispatches every resulting event to listeners.
func (e *Engine) apply(result *types.Result, effs []types.Effect) {
	evts, output := effects.Apply(e.Session, e.Defs, effs)
	result.Effects = append(result.Effects, effs...)
	result.Events = append(result.Events, evts...)
	result.Output = append(result.Output, output...)

	unlocked := e.Progress.Evaluate(e.Session)
	for _, ev := range unlocked {
		result.Output = append(result.Output, fmt.Sprintf("*** Achievement unlocked: %s ***", ev.Data["name"]))
	}
	result.Events = append(result.Events, unlocked...)

	events.Dispatch(result.Events, e.handlers)
}

// AchievementLines renders every achievement with its unlock state.
func (e *Engine) AchievementLines() []string {
	all := e.Progress.Achievements()
	if len(all) == 0 {
		return []string{"No achievements are available."}
	}
	lines := make([]string, 0, len(all)+1)
	lines = append(lines, fmt.Sprintf("Achievements (%d/%d):", len(e.Progress.Unlocked()), len(all)))
	for _, a := range all {
		mark := " "
		if a.IsUnlocked() {
			mark = "x"
		}
		def := a.Def()
		line := fmt.Sprintf("  [%s] %s", mark, displayName(def.Name, def.ID))
		if def.Description != "" {
			line += ": " + def.Description
		}
		lines = append(lines, line)
	}
	return lines
}

// AchievementDetail describes one achievement, found by ID or name, and
// whether it is tracking the active crusade.
func (e *Engine) AchievementDetail(name string) []string {
	a, ok := e.Progress.Get(name)
	if !ok {
		for _, c := range e.Progress.Achievements() {
			if strings.EqualFold(c.Def().Name, name) {
				a, ok = c, true
				break
			}
		}
	}
	if !ok {
		return []string{fmt.Sprintf("There is no achievement called %q.", name)}
	}

	def := a.Def()
	lines := []string{fmt.Sprintf("%s (%s, %s)", displayName(def.Name, def.ID), def.ID, def.Kind)}
	if def.Description != "" {
		lines = append(lines, def.Description)
	}
	if def.PlatformID != "" {
		lines = append(lines, "Platform ID: "+def.PlatformID)
	}
	switch {
	case a.IsUnlocked():
		lines = append(lines, "Unlocked.")
	case a.Tracking(e.Session):
		lines = append(lines, "Locked, tracking this crusade.")
		if r, ok := a.Rule().(*achievement.AcquiredCard); ok && r.HasBaseline() {
			lines = append(lines, "Cards owned when tracking began do not count.")
		}
	default:
		lines = append(lines, "Locked, not yet tracking this crusade.")
	}
	return lines
}

// StatusLines describes the active crusade.
func (e *Engine) StatusLines() []string {
	s := e.Session
	sc := s.Config.Scenario
	lines := []string{
		fmt.Sprintf("Crusade %s: %s (%s), turn %d.", shortID(s.ID), displayName(sc.Name, sc.ID), s.Scenario.Status, s.Turn+1),
	}
	if s.Player.Oath != "" {
		lines = append(lines, "Oath: "+e.oathName(s.Player.Oath)+".")
	}
	if len(s.Config.TimeOfDays) > 0 {
		lines = append(lines, "Time of day: "+strings.Join(s.Config.TimeOfDays, ", ")+".")
	}
	lines = append(lines, fmt.Sprintf("Hand %d, discard %d, draw pile %d, thrown %d.",
		len(s.Player.Hand), len(s.Player.DiscardPile), len(s.Player.DrawPile), len(s.Player.ThrownCards)))
	return lines
}

// HandLines lists the cards in hand.
func (e *Engine) HandLines() []string {
	hand := e.Session.Player.Hand
	if len(hand) == 0 {
		return []string{"Your hand is empty."}
	}
	names := make([]string, len(hand))
	for i, pc := range hand {
		names[i] = fmt.Sprintf("%s (%s)", displayName(pc.Card.Name, pc.Card.ID), pc.Card.Type)
	}
	return []string{"Hand: " + strings.Join(names, ", ") + "."}
}

func (e *Engine) oathName(id string) string {
	if o, ok := e.Defs.Oaths[id]; ok {
		return displayName(o.Name, o.ID)
	}
	return id
}

func displayName(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// sentence renders an error as a capitalized line ending in punctuation.
func sentence(err error) string {
	s := err.Error()
	if s == "" {
		return s
	}
	s = strings.ToUpper(s[:1]) + s[1:]
	if !strings.HasSuffix(s, "?") && !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}
