// Package tui provides the Bubble Tea terminal front end for PupPlay.
package tui

// History keeps the most recent commands in a fixed-size ring and lets
// the player walk back and forth through them.
type History struct {
	ring  []string
	start int // index of the oldest entry
	n     int // number of stored entries
	pos   int // -1 when not navigating, else 0 (oldest) .. n-1 (newest)
}

// NewHistory creates a history holding up to size commands.
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{ring: make([]string, size), pos: -1}
}

// Len returns the number of stored commands.
func (h *History) Len() int { return h.n }

func (h *History) at(i int) string {
	return h.ring[(h.start+i)%len(h.ring)]
}

// Push records cmd. Repeating the newest entry is a no-op; a full ring
// drops its oldest entry.
func (h *History) Push(cmd string) {
	if h.n > 0 && h.at(h.n-1) == cmd {
		return
	}
	if h.n < len(h.ring) {
		h.ring[(h.start+h.n)%len(h.ring)] = cmd
		h.n++
		return
	}
	h.ring[h.start] = cmd
	h.start = (h.start + 1) % len(h.ring)
}

// Prev steps to an older command. It stops at the oldest one and reports
// false only when there is nothing stored.
func (h *History) Prev() (string, bool) {
	if h.n == 0 {
		return "", false
	}
	switch {
	case h.pos == -1:
		h.pos = h.n - 1
	case h.pos > 0:
		h.pos--
	}
	return h.at(h.pos), true
}

// Next steps to a newer command. Moving past the newest leaves navigation
// and reports false, meaning the input should be cleared.
func (h *History) Next() (string, bool) {
	if h.pos == -1 {
		return "", false
	}
	h.pos++
	if h.pos >= h.n {
		h.pos = -1
		return "", false
	}
	return h.at(h.pos), true
}

// ResetCursor leaves navigation mode.
func (h *History) ResetCursor() {
	h.pos = -1
}
