package achievement

import (
	"slices"

	"github.com/nathoo/achievecore/engine/cardset"
	"github.com/nathoo/achievecore/engine/state"
	"github.com/nathoo/achievecore/types"
)

// AcquiredCard unlocks once the player obtains, during the session, a card
// of one of CardTypes or created from one of CardIDs. Either list may be
// empty, meaning no constraint of that kind.
type AcquiredCard struct {
	CardTypes []types.CardType
	CardIDs   []string

	// startingCards holds the GUIDs owned when the session was first seen.
	// nil until captured.
	startingCards cardset.Set
}

// NewAcquiredCard creates an acquired-card rule.
func NewAcquiredCard(cardTypes []types.CardType, cardIDs []string) *AcquiredCard {
	return &AcquiredCard{CardTypes: cardTypes, CardIDs: cardIDs}
}

func (r *AcquiredCard) Kind() string { return types.KindAcquiredCard }

// OnNewSession captures the hand, discard and draw pile as the baseline.
// Cards thrown before this point are not part of it. Players resuming a save
// made before the achievement existed have their current cards excluded.
func (r *AcquiredCard) OnNewSession(s *types.Session) {
	scratch := cardset.Get()
	defer cardset.Put(scratch)

	cardset.CollectIDs(s.Player.Hand, scratch)
	cardset.CollectIDs(s.Player.DiscardPile, scratch)
	cardset.CollectIDs(s.Player.DrawPile, scratch)
	r.startingCards = cardset.Clone(scratch)
}

// ShouldUnlock scans hand, discard, draw and thrown zones for a card that is
// not part of the baseline and matches the configured types or cards. The
// thrown zone catches cards acquired and thrown away in the same window.
func (r *AcquiredCard) ShouldUnlock(s *types.Session) bool {
	if r.startingCards == nil {
		return false
	}
	validIDs := cardset.Get()
	defer cardset.Put(validIDs)
	cardset.CollectDefIDs(r.CardIDs, validIDs)

	for _, z := range state.Zones {
		if r.scan(state.ZoneCards(s, z), validIDs) {
			return true
		}
	}
	return false
}

func (r *AcquiredCard) scan(cards []types.PlayerCard, validIDs cardset.Set) bool {
	for _, c := range cards {
		if r.startingCards.Contains(c.GUID) {
			continue // owned at session start, not acquired
		}
		if len(r.CardTypes) > 0 && slices.Contains(r.CardTypes, c.Card.Type) {
			return true
		}
		if len(validIDs) > 0 && validIDs.Contains(c.Card.ID) {
			return true
		}
	}
	return false
}

// ClearState drops the baseline.
func (r *AcquiredCard) ClearState() {
	r.startingCards = nil
}

// HasBaseline reports whether a baseline has been captured.
func (r *AcquiredCard) HasBaseline() bool {
	return r.startingCards != nil
}
