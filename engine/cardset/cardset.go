// Package cardset collects unique card identifiers into reusable sets.
package cardset

import (
	"sync"

	"github.com/nathoo/achievecore/types"
)

// Set is a set of card identifiers.
type Set map[string]struct{}

// Contains reports whether id is in the set.
func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// CollectIDs adds the GUID of every card to dst.
func CollectIDs(cards []types.PlayerCard, dst Set) {
	for _, c := range cards {
		dst[c.GUID] = struct{}{}
	}
}

// CollectDefIDs adds the ID of every card definition to dst.
func CollectDefIDs(defs []string, dst Set) {
	for _, id := range defs {
		dst[id] = struct{}{}
	}
}

var pool = sync.Pool{
	New: func() any { return Set{} },
}

// Get borrows an empty scratch set. Pair every Get with a deferred Put.
func Get() Set {
	return pool.Get().(Set)
}

// Put clears s and returns it to the pool.
func Put(s Set) {
	if s == nil {
		return
	}
	clear(s)
	pool.Put(s)
}

// Clone returns an owned copy of s that is safe to keep after s is returned.
func Clone(s Set) Set {
	out := make(Set, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}
