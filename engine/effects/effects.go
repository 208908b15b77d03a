// Package effects implements centralized session mutation via the Apply function.
// Every effect type is one atomic operation. No logic in effects.
package effects

import (
	"fmt"

	"github.com/nathoo/achievecore/engine/state"
	"github.com/nathoo/achievecore/types"
)

// Apply applies a list of effects to the session, mutating it.
// Returns events emitted and output text collected.
func Apply(s *types.Session, defs *state.Defs, effects []types.Effect) ([]types.Event, []string) {
	var events []types.Event
	var output []string

	for _, eff := range effects {
		switch eff.Type {
		case "say":
			text, _ := eff.Params["text"].(string)
			output = append(output, text)

		case "acquire":
			cardID, _ := eff.Params["card"].(string)
			zone := zoneParam(eff, state.ZoneHand)
			def, ok := defs.Cards[cardID]
			if !ok {
				output = append(output, fmt.Sprintf("There is no card called %q.", cardID))
				continue
			}
			pc := state.NewCard(s, def)
			state.SetZoneCards(s, zone, append(state.ZoneCards(s, zone), pc))
			output = append(output, fmt.Sprintf("Acquired %s (%s) into %s.", cardName(def), def.Type, zone))
			events = append(events, types.Event{
				Type: "card_acquired",
				Data: map[string]any{"card": def.ID, "guid": pc.GUID, "zone": string(zone)},
			})

		case "draw":
			count := toInt(eff.Params["count"])
			if count <= 0 {
				count = 1
			}
			for i := 0; i < count; i++ {
				if len(s.Player.DrawPile) == 0 {
					output = append(output, "Your draw pile is empty.")
					break
				}
				pc := s.Player.DrawPile[0]
				s.Player.DrawPile = s.Player.DrawPile[1:]
				s.Player.Hand = append(s.Player.Hand, pc)
				output = append(output, fmt.Sprintf("Drew %s.", cardName(pc.Card)))
				events = append(events, types.Event{
					Type: "card_drawn",
					Data: map[string]any{"card": pc.Card.ID, "guid": pc.GUID},
				})
			}

		case "discard":
			ref, _ := eff.Params["card"].(string)
			pc, ok := take(s, state.ZoneHand, ref)
			if !ok {
				output = append(output, fmt.Sprintf("You don't have %q in hand.", ref))
				continue
			}
			s.Player.DiscardPile = append(s.Player.DiscardPile, pc)
			output = append(output, fmt.Sprintf("Discarded %s.", cardName(pc.Card)))
			events = append(events, types.Event{
				Type: "card_discarded",
				Data: map[string]any{"card": pc.Card.ID, "guid": pc.GUID},
			})

		case "throw":
			ref, _ := eff.Params["card"].(string)
			var (
				pc    types.PlayerCard
				found bool
				from  state.Zone
			)
			for _, z := range []state.Zone{state.ZoneHand, state.ZoneDiscard, state.ZoneDraw} {
				if pc, found = take(s, z, ref); found {
					from = z
					break
				}
			}
			if !found {
				output = append(output, fmt.Sprintf("You don't have %q.", ref))
				continue
			}
			s.Player.ThrownCards = append(s.Player.ThrownCards, pc)
			output = append(output, fmt.Sprintf("Threw away %s.", cardName(pc.Card)))
			events = append(events, types.Event{
				Type: "card_thrown",
				Data: map[string]any{"card": pc.Card.ID, "guid": pc.GUID, "zone": string(from)},
			})

		case "end_turn":
			s.Player.DiscardPile = append(s.Player.DiscardPile, s.Player.Hand...)
			s.Player.Hand = []types.PlayerCard{}
			s.Turn++
			output = append(output, fmt.Sprintf("Turn %d begins.", s.Turn+1))
			events = append(events, types.Event{
				Type: "turn_ended",
				Data: map[string]any{"turn": s.Turn},
			})

		case "complete_scenario":
			s.Scenario.Status = types.ScenarioCompleted
			output = append(output, fmt.Sprintf("%s completed!", scenarioName(s.Config.Scenario)))
			events = append(events, types.Event{
				Type: "scenario_completed",
				Data: map[string]any{"scenario": s.Config.Scenario.ID},
			})

		case "fail_scenario":
			s.Scenario.Status = types.ScenarioFailed
			output = append(output, fmt.Sprintf("%s lost.", scenarioName(s.Config.Scenario)))
			events = append(events, types.Event{
				Type: "scenario_failed",
				Data: map[string]any{"scenario": s.Config.Scenario.ID},
			})

		case "set_oath":
			oath, _ := eff.Params["oath"].(string)
			s.Player.Oath = oath
			output = append(output, fmt.Sprintf("You swear the oath of %s.", oath))

		case "set_time_of_day":
			times, _ := eff.Params["times"].([]string)
			s.Config.TimeOfDays = append([]string(nil), times...)
		}
	}

	return events, output
}

// take removes the first card matching ref from zone z.
func take(s *types.Session, z state.Zone, ref string) (types.PlayerCard, bool) {
	i := state.FindCard(s, z, ref)
	if i < 0 {
		return types.PlayerCard{}, false
	}
	cards := state.ZoneCards(s, z)
	pc := cards[i]
	rest := make([]types.PlayerCard, 0, len(cards)-1)
	rest = append(rest, cards[:i]...)
	rest = append(rest, cards[i+1:]...)
	state.SetZoneCards(s, z, rest)
	return pc, true
}

func zoneParam(eff types.Effect, def state.Zone) state.Zone {
	raw, _ := eff.Params["zone"].(string)
	if z, ok := state.ParseZone(raw); ok {
		return z
	}
	return def
}

func cardName(def types.CardDef) string {
	if def.Name != "" {
		return def.Name
	}
	return def.ID
}

func scenarioName(def types.ScenarioDef) string {
	if def.Name != "" {
		return def.Name
	}
	return def.ID
}

// toInt converts an any value to int, handling float64 from JSON/Lua.
func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case int64:
		return int(n)
	default:
		return 0
	}
}
