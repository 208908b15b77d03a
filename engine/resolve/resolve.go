// Package resolve maps names typed by the player to definition IDs and
// owned card GUIDs.
package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/achievecore/engine/state"
	"github.com/nathoo/achievecore/types"
)

// AmbiguityError indicates multiple definitions matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates nothing matched a name.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("there is no %s called %q", e.Kind, e.Name)
}

// Card resolves a card name to a card definition ID.
func Card(defs *state.Defs, name string) (string, error) {
	candidates := make(map[string]string, len(defs.Cards))
	for id, def := range defs.Cards {
		candidates[id] = def.Name
	}
	return resolveName("card", candidates, name)
}

// Scenario resolves a scenario name to a scenario ID.
func Scenario(defs *state.Defs, name string) (string, error) {
	candidates := make(map[string]string, len(defs.Scenarios))
	for id, def := range defs.Scenarios {
		candidates[id] = def.Name
	}
	return resolveName("scenario", candidates, name)
}

// Oath resolves an oath name to an oath ID.
func Oath(defs *state.Defs, name string) (string, error) {
	candidates := make(map[string]string, len(defs.Oaths))
	for id, def := range defs.Oaths {
		candidates[id] = def.Name
	}
	return resolveName("oath", candidates, name)
}

// OwnedCard resolves a name to the GUID of the first matching card the
// player holds in hand, discard or draw pile.
func OwnedCard(s *types.Session, defs *state.Defs, name string) (string, error) {
	for _, z := range []state.Zone{state.ZoneHand, state.ZoneDiscard, state.ZoneDraw} {
		if i := state.FindCard(s, z, name); i >= 0 {
			return state.ZoneCards(s, z)[i].GUID, nil
		}
	}
	id, err := Card(defs, name)
	if err != nil {
		return "", err
	}
	for _, z := range []state.Zone{state.ZoneHand, state.ZoneDiscard, state.ZoneDraw} {
		if i := state.FindCard(s, z, id); i >= 0 {
			return state.ZoneCards(s, z)[i].GUID, nil
		}
	}
	return "", fmt.Errorf("you don't have %q", name)
}

// TimeOfDay maps a case-insensitive time-of-day to the spelling used in
// the content, or returns it unchanged if no content uses it.
func TimeOfDay(defs *state.Defs, name string) string {
	for _, sc := range defs.Scenarios {
		for _, tod := range sc.TimeOfDays {
			if strings.EqualFold(tod, name) {
				return tod
			}
		}
	}
	for _, a := range defs.Achievements {
		if a.TimeOfDay != "" && strings.EqualFold(a.TimeOfDay, name) {
			return a.TimeOfDay
		}
	}
	return name
}

// resolveName matches name against candidate IDs and display names.
func resolveName(kind string, candidates map[string]string, name string) (string, error) {
	// 1. Exact ID match.
	if _, ok := candidates[name]; ok {
		return name, nil
	}

	// 2. Search by display name and normalized ID.
	nameLower := strings.ToLower(name)
	var matches []string
	for id, display := range candidates {
		if matchesName(id, display, nameLower) {
			matches = append(matches, id)
		}
	}
	sort.Strings(matches)

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Kind: kind, Name: name}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguityError{Name: name, Candidates: matches}
	}
}

// matchesName checks if an ID or display name matches the query (case-insensitive).
// Supports exact match, word-based partial match, and underscore normalization.
func matchesName(id, display, nameLower string) bool {
	if display != "" {
		displayLower := strings.ToLower(display)
		if displayLower == nameLower {
			return true
		}
		// "grail" matches "Holy Grail".
		for _, word := range strings.Fields(displayLower) {
			if word == nameLower {
				return true
			}
		}
	}
	idLower := strings.ToLower(id)
	if idLower == nameLower {
		return true
	}
	// "holy grail" matches ID "holy_grail".
	return strings.ReplaceAll(nameLower, " ", "_") == idLower
}
