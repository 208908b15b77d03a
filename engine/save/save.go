// Package save implements JSON serialization of sessions and persistence
// of achievement unlock flags.
package save

import (
	"encoding/json"

	"github.com/nathoo/achievecore/engine/state"
	"github.com/nathoo/achievecore/types"
)

// SaveData is the JSON-serializable session save format.
type SaveData struct {
	Version string        `json:"version"`
	Game    string        `json:"game"`
	Session types.Session `json:"session"`
	RNGSeed int64         `json:"rng_seed"`
	RNGPos  int64         `json:"rng_pos"`
}

// Save serializes a session to JSON bytes.
func Save(s *types.Session, defs *state.Defs, seed, pos int64) ([]byte, error) {
	data := SaveData{
		Version: defs.Game.Version,
		Game:    defs.Game.Title,
		Session: *s,
		RNGSeed: seed,
		RNGPos:  pos,
	}
	return json.MarshalIndent(data, "", "  ")
}

// Load deserializes JSON bytes into SaveData.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, err
	}
	// Ensure zones are never nil after load.
	p := &sd.Session.Player
	if p.Hand == nil {
		p.Hand = []types.PlayerCard{}
	}
	if p.DiscardPile == nil {
		p.DiscardPile = []types.PlayerCard{}
	}
	if p.DrawPile == nil {
		p.DrawPile = []types.PlayerCard{}
	}
	if p.ThrownCards == nil {
		p.ThrownCards = []types.PlayerCard{}
	}
	if sd.Session.Scenario.Status == "" {
		sd.Session.Scenario.Status = types.ScenarioInProgress
	}
	return &sd, nil
}

// ApplySave copies loaded save data onto a session. The session ID is
// restored too, so achievements see a resumed save as the same session.
func ApplySave(s *types.Session, sd *SaveData) {
	*s = sd.Session
}
