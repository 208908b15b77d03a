// Package tui provides a Bubble Tea terminal UI for the achievecore engine.
package tui

// History keeps the most recent commands for Up/Down recall. The offset
// counts back from the newest entry; 0 means the player is typing fresh
// input.
type History struct {
	entries []string
	limit   int
	offset  int
}

// NewHistory creates a history that keeps at most limit commands.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Push records a command. Repeating the newest command is a no-op.
func (h *History) Push(cmd string) {
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		return
	}
	h.entries = append(h.entries, cmd)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append(h.entries[:0], h.entries[over:]...)
	}
}

// Prev steps back to an older command, stopping at the oldest.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.offset < len(h.entries) {
		h.offset++
	}
	return h.entries[len(h.entries)-h.offset], true
}

// Next steps forward to a newer command. It reports false once the
// player is back at fresh input.
func (h *History) Next() (string, bool) {
	if h.offset <= 1 {
		h.offset = 0
		return "", false
	}
	h.offset--
	return h.entries[len(h.entries)-h.offset], true
}

// ResetCursor returns to fresh input.
func (h *History) ResetCursor() {
	h.offset = 0
}
