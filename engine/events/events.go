// Package events implements single-pass dispatch of emitted events to
// registered listeners. Listeners observe; they cannot emit further events.
package events

import "github.com/nathoo/achievecore/types"

// Handler is a listener for one event type. An empty EventType matches
// every event.
type Handler struct {
	EventType string
	Func      func(types.Event)
}

// Dispatch calls every matching handler for each event, in event order
// then registration order. Single pass, no recursion. Returns the number
// of handler invocations.
func Dispatch(evts []types.Event, handlers []Handler) int {
	calls := 0
	for _, event := range evts {
		for _, h := range handlers {
			if h.EventType != "" && h.EventType != event.Type {
				continue
			}
			if h.Func == nil {
				continue
			}
			h.Func(event)
			calls++
		}
	}
	return calls
}
