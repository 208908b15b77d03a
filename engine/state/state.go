// Package state holds the immutable content definitions and the read-only
// lookups the engine performs on a session snapshot.
package state

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/nathoo/achievecore/types"
)

// Defs holds the immutable game definitions loaded from content files.
type Defs struct {
	Game         types.GameDef
	Cards        map[string]types.CardDef
	Scenarios    map[string]types.ScenarioDef
	Oaths        map[string]types.OathDef
	Achievements []types.AchievementDef // definition order
}

// Zone names a player card container.
type Zone string

const (
	ZoneHand    Zone = "hand"
	ZoneDiscard Zone = "discard"
	ZoneDraw    Zone = "draw"
	ZoneThrown  Zone = "thrown"
)

// Zones lists every zone in scan order.
var Zones = []Zone{ZoneHand, ZoneDiscard, ZoneDraw, ZoneThrown}

// ParseZone maps user input to a zone.
func ParseZone(s string) (Zone, bool) {
	switch s {
	case "hand", "h":
		return ZoneHand, true
	case "discard", "discards", "d":
		return ZoneDiscard, true
	case "draw", "deck", "pile":
		return ZoneDraw, true
	case "thrown", "throw", "t":
		return ZoneThrown, true
	}
	return "", false
}

// NewSession creates a fresh session for the given scenario and oath. The
// starting deck is placed in the draw pile in the given order; GUIDs are
// derived from the session ID so they stay unique across sessions.
func NewSession(defs *Defs, id, scenarioID, oath string, deck []string) (*types.Session, error) {
	sc, ok := defs.Scenarios[scenarioID]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q", scenarioID)
	}
	s := &types.Session{
		ID: id,
		Config: types.CrusadeConfig{
			Scenario:   sc,
			TimeOfDays: append([]string(nil), sc.TimeOfDays...),
		},
		Scenario: types.ScenarioState{Status: types.ScenarioInProgress},
		Player: types.PlayerState{
			Oath:        oath,
			Hand:        []types.PlayerCard{},
			DiscardPile: []types.PlayerCard{},
			DrawPile:    []types.PlayerCard{},
			ThrownCards: []types.PlayerCard{},
		},
	}
	for _, cardID := range deck {
		def, ok := defs.Cards[cardID]
		if !ok {
			return nil, fmt.Errorf("unknown card %q in starting deck", cardID)
		}
		s.Player.DrawPile = append(s.Player.DrawPile, NewCard(s, def))
	}
	return s, nil
}

// NewCard mints a new owned copy of def. GUIDs are random so that a card
// acquired after reloading an older save never reuses one already seen.
func NewCard(s *types.Session, def types.CardDef) types.PlayerCard {
	return types.PlayerCard{
		GUID: s.ID + "#" + uuid.NewString(),
		Card: def,
	}
}

// ZoneCards returns the cards in a zone. Unknown zones return nil.
func ZoneCards(s *types.Session, z Zone) []types.PlayerCard {
	switch z {
	case ZoneHand:
		return s.Player.Hand
	case ZoneDiscard:
		return s.Player.DiscardPile
	case ZoneDraw:
		return s.Player.DrawPile
	case ZoneThrown:
		return s.Player.ThrownCards
	default:
		return nil
	}
}

// SetZoneCards replaces the cards in a zone.
func SetZoneCards(s *types.Session, z Zone, cards []types.PlayerCard) {
	switch z {
	case ZoneHand:
		s.Player.Hand = cards
	case ZoneDiscard:
		s.Player.DiscardPile = cards
	case ZoneDraw:
		s.Player.DrawPile = cards
	case ZoneThrown:
		s.Player.ThrownCards = cards
	}
}

// AllCards returns every card the player owns or has thrown, in zone order.
func AllCards(s *types.Session) []types.PlayerCard {
	var out []types.PlayerCard
	for _, z := range Zones {
		out = append(out, ZoneCards(s, z)...)
	}
	return out
}

// FindCard locates the first card in zone z whose GUID or definition ID
// matches ref. Returns its index, or -1.
func FindCard(s *types.Session, z Zone, ref string) int {
	for i, c := range ZoneCards(s, z) {
		if c.GUID == ref || c.Card.ID == ref {
			return i
		}
	}
	return -1
}

// IsTutorial reports whether the session plays a tutorial scenario.
func IsTutorial(s *types.Session) bool {
	return s.Config.Scenario.Tutorial
}

// IsCompleted reports whether the session's scenario has been won.
func IsCompleted(s *types.Session) bool {
	return s.Scenario.Status == types.ScenarioCompleted
}

// ScenarioID returns the ID of the session's scenario.
func ScenarioID(s *types.Session) string {
	return s.Config.Scenario.ID
}
