package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/achievecore/engine/state"
	"github.com/nathoo/achievecore/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// validate checks the compiled defs for referential integrity. The result
// is never nil; callers check Errors.
func validate(defs *state.Defs) *ValidationError {
	ve := &ValidationError{}

	if defs.Game.Title == "" {
		ve.errorf("Game.title is required")
	}

	if defs.Game.StartScenario == "" {
		ve.errorf("Game.start_scenario is required")
	} else if _, ok := defs.Scenarios[defs.Game.StartScenario]; !ok {
		ve.errorf("start scenario %q not found in defined scenarios", defs.Game.StartScenario)
	}
	if o := defs.Game.StartOath; o != "" {
		if _, ok := defs.Oaths[o]; !ok {
			ve.errorf("start oath %q not found in defined oaths", o)
		}
	}
	for _, id := range defs.Game.StartingDeck {
		if _, ok := defs.Cards[id]; !ok {
			ve.errorf("starting deck card %q not found in defined cards", id)
		}
	}
	if defs.Game.HandSize < 0 {
		ve.errorf("Game.hand_size must not be negative, got %d", defs.Game.HandSize)
	}

	for id, card := range defs.Cards {
		if card.Type == "" {
			ve.warnf("card %q has no type", id)
		}
	}

	seen := map[string]bool{}
	platformIDs := map[string]string{}
	for _, a := range defs.Achievements {
		if a.ID == "" {
			ve.errorf("achievement with empty ID")
			continue
		}
		if seen[a.ID] {
			ve.errorf("duplicate achievement ID %q", a.ID)
		}
		seen[a.ID] = true

		if a.PlatformID == "" {
			ve.warnf("achievement %q has no platform_id", a.ID)
		} else if other, dup := platformIDs[a.PlatformID]; dup {
			ve.errorf("achievements %q and %q share platform_id %q", other, a.ID, a.PlatformID)
		} else {
			platformIDs[a.PlatformID] = a.ID
		}

		switch a.Kind {
		case types.KindAcquiredCard:
			validateAcquiredCard(a, defs, ve)
		case types.KindWinScenario:
			validateWinScenario(a, defs, ve)
		default:
			ve.errorf("achievement %q has unknown kind %q", a.ID, a.Kind)
		}
	}

	return ve
}

func validateAcquiredCard(a types.AchievementDef, defs *state.Defs, ve *ValidationError) {
	if len(a.CardTypes) == 0 && len(a.CardIDs) == 0 {
		ve.warnf("achievement %q has no card_types or cards and can never unlock", a.ID)
	}
	for _, id := range a.CardIDs {
		if _, ok := defs.Cards[id]; !ok {
			ve.errorf("achievement %q references undefined card %q", a.ID, id)
		}
	}
	for _, t := range a.CardTypes {
		if !hasCardType(defs, t) {
			ve.warnf("achievement %q card type %q matches no defined card", a.ID, t)
		}
	}
}

func validateWinScenario(a types.AchievementDef, defs *state.Defs, ve *ValidationError) {
	if a.Scenario == "" {
		ve.errorf("achievement %q requires a scenario", a.ID)
	} else if sc, ok := defs.Scenarios[a.Scenario]; !ok {
		ve.errorf("achievement %q references undefined scenario %q", a.ID, a.Scenario)
	} else if sc.Tutorial && !a.TriggerDuringTutorial {
		ve.warnf("achievement %q targets tutorial scenario %q and can never unlock", a.ID, a.Scenario)
	}
	for _, o := range a.Oaths {
		if _, ok := defs.Oaths[o]; !ok {
			ve.errorf("achievement %q references undefined oath %q", a.ID, o)
		}
	}
}

func hasCardType(defs *state.Defs, t types.CardType) bool {
	for _, c := range defs.Cards {
		if c.Type == t {
			return true
		}
	}
	return false
}
