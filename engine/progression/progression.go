// Package progression owns the set of achievements for a running game,
// drives their lifecycle, and persists unlock transitions.
package progression

import (
	"fmt"
	"log"

	"github.com/nathoo/achievecore/engine/achievement"
	"github.com/nathoo/achievecore/engine/save"
	"github.com/nathoo/achievecore/engine/state"
	"github.com/nathoo/achievecore/types"
)

// Event types emitted by the manager.
const (
	EventUnlocked = "achievement_unlocked"
	EventCleared  = "achievement_cleared"
)

// Manager evaluates every achievement available in the current build
// environment. Calls must be serialized by the caller.
type Manager struct {
	Env    string
	Store  save.Store
	Logger *log.Logger

	achievements []*achievement.Achievement
	byID         map[string]*achievement.Achievement
	pending      []types.Event
}

// New builds one achievement per definition available in env. Achievements
// start locked until Restore is called.
func New(defs *state.Defs, env string, store save.Store) (*Manager, error) {
	if store == nil {
		store = &save.MemoryStore{}
	}
	m := &Manager{
		Env:    env,
		Store:  store,
		Logger: log.Default(),
		byID:   map[string]*achievement.Achievement{},
	}
	for _, def := range defs.Achievements {
		a, err := achievement.New(def)
		if err != nil {
			return nil, err
		}
		if !a.IsAvailable(env) {
			continue
		}
		if _, dup := m.byID[def.ID]; dup {
			return nil, fmt.Errorf("duplicate achievement %q", def.ID)
		}
		m.init(a, false)
		m.achievements = append(m.achievements, a)
		m.byID[def.ID] = a
	}
	return m, nil
}

// Restore seeds each achievement's unlocked flag from the store.
func (m *Manager) Restore() error {
	flags, err := m.Store.LoadUnlocked()
	if err != nil {
		return fmt.Errorf("restoring achievements: %w", err)
	}
	for _, a := range m.achievements {
		m.init(a, flags[a.ID()])
	}
	return nil
}

func (m *Manager) init(a *achievement.Achievement, unlocked bool) {
	a.Initialize(unlocked,
		func() { m.record(a, true, EventUnlocked) },
		func() { m.record(a, false, EventCleared) },
	)
}

// record persists a transition and queues its event. Store failures are
// logged; the in-memory state stays authoritative for this run.
func (m *Manager) record(a *achievement.Achievement, unlocked bool, eventType string) {
	if err := m.Store.SetUnlocked(a.ID(), unlocked); err != nil {
		m.Logger.Printf("progression: persisting %s: %v", a, err)
	}
	def := a.Def()
	name := def.Name
	if name == "" {
		name = def.ID
	}
	m.pending = append(m.pending, types.Event{
		Type: eventType,
		Data: map[string]any{
			"id":          def.ID,
			"platform_id": def.PlatformID,
			"name":        name,
		},
	})
}

// Evaluate runs every achievement against s, in definition order, and
// returns the unlock events produced.
func (m *Manager) Evaluate(s *types.Session) []types.Event {
	for _, a := range m.achievements {
		a.Evaluate(s)
	}
	return m.drain()
}

// Clear re-arms every unlocked achievement, as on a save reset.
func (m *Manager) Clear() []types.Event {
	for _, a := range m.achievements {
		a.Clear()
	}
	return m.drain()
}

func (m *Manager) drain() []types.Event {
	events := m.pending
	m.pending = nil
	return events
}

// Achievements returns the managed achievements in definition order.
func (m *Manager) Achievements() []*achievement.Achievement {
	out := make([]*achievement.Achievement, len(m.achievements))
	copy(out, m.achievements)
	return out
}

// Get returns the achievement with the given ID.
func (m *Manager) Get(id string) (*achievement.Achievement, bool) {
	a, ok := m.byID[id]
	return a, ok
}

// Unlocked returns the IDs of unlocked achievements in definition order.
func (m *Manager) Unlocked() []string {
	var ids []string
	for _, a := range m.achievements {
		if a.IsUnlocked() {
			ids = append(ids, a.ID())
		}
	}
	return ids
}
