// Package achievement implements the shared unlock lifecycle and the
// concrete unlock rules evaluated against a session snapshot.
//
// An Achievement is driven by its owner with Initialize once, Evaluate after
// every state-changing action, and Clear when the save is reset. Evaluate
// never unlocks on the call that first observes a session: that call only
// lets the rule capture its baseline.
package achievement

import (
	"fmt"
	"slices"

	"github.com/nathoo/achievecore/engine/state"
	"github.com/nathoo/achievecore/types"
)

// Transition is the state change produced by Evaluate or Clear.
type Transition int

const (
	None Transition = iota
	Unlocked
	Cleared
)

func (t Transition) String() string {
	switch t {
	case Unlocked:
		return "unlocked"
	case Cleared:
		return "cleared"
	default:
		return "none"
	}
}

// Rule is the per-kind part of an achievement.
type Rule interface {
	// Kind returns the achievement kind this rule implements.
	Kind() string
	// OnNewSession is always called before ShouldUnlock when a new session
	// is detected, so the rule can reset or capture its baseline.
	OnNewSession(s *types.Session)
	// ShouldUnlock reports whether the unlock conditions are met.
	ShouldUnlock(s *types.Session) bool
	// ClearState drops any rule runtime state.
	ClearState()
}

// Achievement couples an immutable definition with its unlock state.
type Achievement struct {
	def  types.AchievementDef
	rule Rule

	unlocked      bool
	lastSessionID string
	seenSession   bool // lastSessionID is set
	onUnlocked    func()
	onCleared     func()
}

// New creates an achievement from its definition.
func New(def types.AchievementDef) (*Achievement, error) {
	rule, err := NewRule(def)
	if err != nil {
		return nil, err
	}
	return &Achievement{def: def, rule: rule}, nil
}

// NewRule builds the rule for def's kind.
func NewRule(def types.AchievementDef) (Rule, error) {
	switch def.Kind {
	case types.KindAcquiredCard:
		return NewAcquiredCard(def.CardTypes, def.CardIDs), nil
	case types.KindWinScenario:
		return NewWinScenario(def.Scenario, def.Oaths, def.TimeOfDay), nil
	default:
		return nil, fmt.Errorf("achievement %q: unknown kind %q", def.ID, def.Kind)
	}
}

// Def returns the achievement's definition.
func (a *Achievement) Def() types.AchievementDef { return a.def }

// ID returns the achievement's content ID.
func (a *Achievement) ID() string { return a.def.ID }

// PlatformID returns the identifier on the external achievement service.
func (a *Achievement) PlatformID() string { return a.def.PlatformID }

// Rule returns the achievement's unlock rule.
func (a *Achievement) Rule() Rule { return a.rule }

// Tracking reports whether s is the session the achievement last observed.
func (a *Achievement) Tracking(s *types.Session) bool {
	return s != nil && a.seenSession && a.lastSessionID == s.ID
}

// IsUnlocked reports whether the achievement is unlocked.
func (a *Achievement) IsUnlocked() bool { return a.unlocked }

// IsAvailable reports whether the achievement exists in the given build
// environment. An empty environment list means everywhere.
func (a *Achievement) IsAvailable(env string) bool {
	return len(a.def.Environments) == 0 || slices.Contains(a.def.Environments, env)
}

// Initialize stores the notification callbacks and seeds the unlocked flag,
// typically from persisted state. Either callback may be nil.
func (a *Achievement) Initialize(unlocked bool, onUnlocked, onCleared func()) {
	a.onUnlocked = onUnlocked
	a.onCleared = onCleared
	a.unlocked = unlocked
}

// Evaluate runs the lifecycle against s and returns the resulting transition.
func (a *Achievement) Evaluate(s *types.Session) Transition {
	if a.unlocked {
		return None
	}
	if !a.def.TriggerDuringTutorial && state.IsTutorial(s) {
		return None
	}
	if !a.seenSession || a.lastSessionID != s.ID {
		a.lastSessionID = s.ID
		a.seenSession = true
		a.rule.OnNewSession(s)
		return None // the player hasn't done anything yet
	}
	if !a.rule.ShouldUnlock(s) {
		return None
	}
	a.unlocked = true
	if a.onUnlocked != nil {
		a.onUnlocked()
	}
	return Unlocked
}

// Clear re-arms an unlocked achievement. It is a no-op when locked.
func (a *Achievement) Clear() Transition {
	if !a.unlocked {
		return None
	}
	a.unlocked = false
	a.lastSessionID = ""
	a.seenSession = false
	a.rule.ClearState()
	if a.onCleared != nil {
		a.onCleared()
	}
	return Cleared
}

func (a *Achievement) String() string {
	return "Achievement> " + a.def.PlatformID
}
