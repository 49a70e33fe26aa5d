// Package history implements the shell's linear navigation history: one
// ordered list of visited folder identifiers with a single current pointer.
// Navigation while positioned before the end discards the forward branch.
//
// History is owned by the shell and mutated only under its lock; it carries
// no locking of its own.
package history

import (
	"github.com/Pirrikos/claritydesk/internal/debug"
	"github.com/Pirrikos/claritydesk/internal/vpath"
)

// DefaultLimit bounds history growth when no limit is configured.
const DefaultLimit = 100

// History tracks visited folder identifiers and the current position.
// The index is -1 exactly when the history is empty.
type History struct {
	entries   []string
	index     int
	limit     int
	replaying bool
}

// New returns an empty history. A limit <= 0 selects DefaultLimit.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{index: -1, limit: limit}
}

// Navigate records a new navigation target. It is a no-op while the
// replaying guard is set, and when path is already the current entry.
// Otherwise the forward branch is discarded and path becomes the new end.
func (h *History) Navigate(path string) {
	if h.replaying {
		debug.Log(debug.SHELL, "history: replaying, not recording %q", path)
		return
	}
	if h.index >= 0 && vpath.Equal(h.entries[h.index], path) {
		return
	}

	// Truncate forward history if we're not at the end
	if h.index >= 0 && h.index < len(h.entries)-1 {
		h.entries = h.entries[:h.index+1]
	}
	h.entries = append(h.entries, path)
	h.index = len(h.entries) - 1

	h.trim()
}

// trim drops the oldest entries once the limit is exceeded, shifting the
// index along.
func (h *History) trim() {
	if len(h.entries) <= h.limit {
		return
	}
	excess := len(h.entries) - h.limit
	h.entries = h.entries[excess:]
	h.index -= excess
	if h.index < 0 {
		h.index = 0
	}
}

// CanGoBack reports whether a back move is possible.
func (h *History) CanGoBack() bool {
	return h.index > 0
}

// CanGoForward reports whether a forward move is possible.
func (h *History) CanGoForward() bool {
	return h.index >= 0 && h.index < len(h.entries)-1
}

// PeekBack returns the entry a back move would land on without moving.
func (h *History) PeekBack() (string, bool) {
	if !h.CanGoBack() {
		return "", false
	}
	return h.entries[h.index-1], true
}

// PeekForward returns the entry a forward move would land on without moving.
func (h *History) PeekForward() (string, bool) {
	if !h.CanGoForward() {
		return "", false
	}
	return h.entries[h.index+1], true
}

// Back moves the pointer one entry back and returns the new current entry.
// At the start it moves nothing and reports false.
func (h *History) Back() (string, bool) {
	if !h.CanGoBack() {
		return "", false
	}
	h.index--
	return h.entries[h.index], true
}

// Forward moves the pointer one entry forward and returns the new current
// entry. At the end it moves nothing and reports false.
func (h *History) Forward() (string, bool) {
	if !h.CanGoForward() {
		return "", false
	}
	h.index++
	return h.entries[h.index], true
}

// Current returns the entry under the pointer.
func (h *History) Current() (string, bool) {
	if h.index < 0 {
		return "", false
	}
	return h.entries[h.index], true
}

// Restore bulk-replaces the history with a persisted list and a clamped
// index. The replaying guard is held for the duration so the restoration is
// never re-recorded as a navigation.
func (h *History) Restore(entries []string, index int) {
	h.replaying = true
	defer func() { h.replaying = false }()

	h.entries = make([]string, len(entries))
	copy(h.entries, entries)

	switch {
	case len(h.entries) == 0:
		h.index = -1
	case index < 0:
		h.index = 0
	case index > len(h.entries)-1:
		h.index = len(h.entries) - 1
	default:
		h.index = index
	}

	h.trim()
}

// SetReplaying sets the manual reentrancy guard. Callers pair it with defer
// so the guard is released on every exit path.
func (h *History) SetReplaying(v bool) {
	h.replaying = v
}

// Replaying reports whether the reentrancy guard is set.
func (h *History) Replaying() bool {
	return h.replaying
}

// Entries returns a copy of the history list.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Index returns the current pointer, -1 when empty.
func (h *History) Index() int {
	return h.index
}
