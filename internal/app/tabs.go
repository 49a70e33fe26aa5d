package app

import (
	"sort"

	"github.com/Pirrikos/claritydesk/internal/debug"
	"github.com/Pirrikos/claritydesk/internal/events"
	"github.com/Pirrikos/claritydesk/internal/fs"
	"github.com/Pirrikos/claritydesk/internal/vpath"
)

// findTabLocked returns the index of the tab matching path under
// normalized comparison, or -1.
func (s *Shell) findTabLocked(path string) int {
	for i, tab := range s.tabs {
		if vpath.Equal(tab, path) {
			return i
		}
	}
	return -1
}

// tabValid reports whether path can back a tab: one of the recognized
// virtual focuses, or an existing directory. Filesystem errors count as
// invalid.
func tabValid(path string) bool {
	if vpath.IsVirtualFocus(path) {
		return true
	}
	return fs.DirExists(path)
}

// AddTab opens path as a new tab and makes it active. Context ids are
// rejected outright; they name views, not folders. If the path is already
// open under normalized comparison the call collapses to selecting that
// tab. The caller's spelling is preserved for display. Returns whether
// the shell now shows the requested folder.
func (s *Shell) AddTab(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if path == "" || vpath.IsStateContext(path) {
		debug.Log(debug.SHELL, "AddTab rejected %q", path)
		return false
	}
	if !tabValid(path) {
		debug.Log(debug.SHELL, "AddTab: %s is not an openable folder", path)
		return false
	}

	if idx := s.findTabLocked(path); idx >= 0 {
		return s.selectTabLocked(idx)
	}

	s.tabs = append(s.tabs, path)
	s.active = len(s.tabs) - 1
	s.stateContext = ""
	s.history.Navigate(path)
	s.rebindLocked(path)
	s.recordVisit(path)
	s.persistLocked()

	debug.Log(debug.SHELL, "Opened tab %d: %s", s.active, path)
	s.publishTabsLocked()
	s.publishActiveLocked()
	return true
}

// SelectTab makes the tab at index active. Selecting the already-active
// tab is a successful no-op, unless a context is entered: then the folder
// must win the view back, so the full rebind and notification cycle runs
// regardless.
func (s *Shell) SelectTab(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectTabLocked(index)
}

func (s *Shell) selectTabLocked(index int) bool {
	if index < 0 || index >= len(s.tabs) {
		return false
	}
	if index == s.active && s.stateContext == "" {
		return true
	}

	path := s.tabs[index]
	s.active = index
	s.stateContext = ""
	s.history.Navigate(path)
	s.rebindLocked(path)
	s.recordVisit(path)
	s.persistLocked()

	debug.Log(debug.SHELL, "Selected tab %d: %s", index, path)
	s.publishActiveLocked()
	return true
}

// RemoveTab closes the tab at index. Out-of-range indices fail without
// side effects.
func (s *Shell) RemoveTab(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.tabs) {
		return false
	}
	return s.removeIndicesLocked([]int{index})
}

// RemoveTabByPath closes the tab matching path, plus any tab living under
// it: closing a folder closes the views into its subtree too.
func (s *Shell) RemoveTabByPath(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var indices []int
	for i, tab := range s.tabs {
		if vpath.Equal(tab, path) || vpath.Contains(path, tab) {
			indices = append(indices, i)
		}
	}
	if len(indices) == 0 {
		return false
	}
	return s.removeIndicesLocked(indices)
}

// removeIndicesLocked removes the given tab indices and re-homes the
// active selection. Per removed index: an empty list clears the
// selection, an out-of-range active index clamps to the last tab, an
// active index past the removed one shifts down, anything else stays.
func (s *Shell) removeIndicesLocked(indices []int) bool {
	prevActive := s.active
	activeRemoved := false
	for _, idx := range indices {
		if idx == s.active {
			activeRemoved = true
		}
	}

	// Descending order so earlier indices stay valid.
	sort.Sort(sort.Reverse(sort.IntSlice(indices)))
	for _, idx := range indices {
		debug.Log(debug.SHELL, "Closing tab %d: %s", idx, s.tabs[idx])
		s.tabs = append(s.tabs[:idx], s.tabs[idx+1:]...)
		switch {
		case len(s.tabs) == 0:
			s.active = -1
		case s.active >= len(s.tabs):
			s.active = len(s.tabs) - 1
		case s.active > idx:
			s.active--
		}
	}

	if len(s.tabs) == 0 {
		s.stateContext = ""
		s.watcher.Stop()
		s.persistLocked()
		s.publishTabsLocked()
		s.publishActiveLocked()
		s.events.Publish(events.Event{Type: events.FocusCleared})
		return true
	}

	if activeRemoved {
		// The successor tab takes the view. Becoming active through a
		// removal is not a navigation, so history is left alone.
		s.stateContext = ""
		s.rebindLocked(s.tabs[s.active])
		s.persistLocked()
		s.publishTabsLocked()
		s.publishActiveLocked()
		return true
	}

	s.persistLocked()
	s.publishTabsLocked()
	if s.active != prevActive {
		s.publishActiveLocked()
	}
	return true
}
