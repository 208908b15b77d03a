// Package types defines the shared data structures for the achievecore engine.
// This package contains only type definitions: no logic, no methods.
package types

// Intent is the parsed representation of a player command.
type Intent struct {
	Verb   string
	Object string // optional
	Target string // optional
}

// Effect is a single atomic session mutation instruction.
type Effect struct {
	Type   string
	Params map[string]any
}

// Event is emitted after a session mutation or an achievement transition.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single game step.
type Result struct {
	Effects []Effect
	Events  []Event
	Output  []string
}

// CardType classifies a card definition ("relic", "sword", "spell", ...).
type CardType string

// CardDef is the immutable definition of a card.
type CardDef struct {
	ID   string
	Name string
	Type CardType
}

// PlayerCard is one owned copy of a card. GUID identifies the copy;
// Card.ID identifies the definition it was created from.
type PlayerCard struct {
	GUID string  `json:"guid"`
	Card CardDef `json:"card"`
}

// PlayerState holds the player's card zones and chosen oath.
type PlayerState struct {
	Oath        string       `json:"oath"`
	Hand        []PlayerCard `json:"hand"`
	DiscardPile []PlayerCard `json:"discard_pile"`
	DrawPile    []PlayerCard `json:"draw_pile"`
	ThrownCards []PlayerCard `json:"thrown_cards"`
}

// ScenarioStatus is the completion state of the active scenario.
type ScenarioStatus string

const (
	ScenarioInProgress ScenarioStatus = "in_progress"
	ScenarioCompleted  ScenarioStatus = "completed"
	ScenarioFailed     ScenarioStatus = "failed"
)

// ScenarioState holds the runtime progress of the active scenario.
type ScenarioState struct {
	Status ScenarioStatus `json:"status"`
}

// ScenarioDef is the immutable definition of a scenario.
type ScenarioDef struct {
	ID         string
	Name       string
	Tutorial   bool
	TimeOfDays []string // default time-of-day sequence for crusades on this scenario
}

// CrusadeConfig is the configuration a session was started with.
type CrusadeConfig struct {
	Scenario   ScenarioDef `json:"scenario"`
	TimeOfDays []string    `json:"time_of_days"`
}

// Session is a read-only snapshot of one playthrough, keyed by its
// save-file identifier.
type Session struct {
	ID       string        `json:"id"`
	Config   CrusadeConfig `json:"config"`
	Scenario ScenarioState `json:"scenario"`
	Player   PlayerState   `json:"player"`
	Turn     int           `json:"turn"`
}

// OathDef is the immutable definition of a selectable oath.
type OathDef struct {
	ID   string
	Name string
}

// Achievement kinds.
const (
	KindAcquiredCard = "acquired_card"
	KindWinScenario  = "win_scenario"
)

// AchievementDef is the loaded configuration of one achievement.
type AchievementDef struct {
	ID                    string
	Kind                  string
	PlatformID            string   // identifier on the external achievement service
	Name                  string
	Description           string
	Environments          []string // empty = available everywhere
	TriggerDuringTutorial bool

	// acquired_card
	CardTypes []CardType
	CardIDs   []string

	// win_scenario
	Scenario  string
	Oaths     []string
	TimeOfDay string
}

// GameDef holds game metadata.
type GameDef struct {
	Title         string
	Author        string
	Version       string
	StartScenario string
	StartOath     string
	StartingDeck  []string // card definition IDs
	HandSize      int      // cards drawn when a crusade starts
	Intro         string
}
