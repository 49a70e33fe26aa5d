// Package state persists and restores the shell session: open tabs, the
// active tab, navigation history, and auxiliary tree state. A missing,
// unreadable, or corrupt file yields an empty session rather than an
// error, and saving is best-effort.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Pirrikos/claritydesk/internal/debug"
	"github.com/Pirrikos/claritydesk/internal/fs"
	"github.com/Pirrikos/claritydesk/internal/vpath"
)

// AppState is the persisted session document. The legacy keys mirror the
// current ones on every save so readers of the old schema keep working;
// on load they fill in whatever the current keys do not provide.
type AppState struct {
	OpenTabs         []string `json:"open_tabs"`
	ActiveTab        *string  `json:"active_tab"`
	History          []string `json:"history"`
	HistoryIndex     int      `json:"history_index"`
	FocusTreePaths   []string `json:"focus_tree_paths,omitempty"`
	ExpandedNodes    []string `json:"expanded_nodes,omitempty"`
	RootFoldersOrder []string `json:"root_folders_order,omitempty"`

	LegacyTabs        []string `json:"tabs,omitempty"`
	LegacyActiveIndex *int     `json:"active_index,omitempty"`
}

// Empty returns the state of a fresh session.
func Empty() *AppState {
	return &AppState{HistoryIndex: -1}
}

// Load reads the session document at path. Any read or parse failure is
// treated as "no saved state" so startup never fails on a bad file.
func Load(path string) *AppState {
	data, err := os.ReadFile(path)
	if err != nil {
		debug.Log(debug.STATE, "No saved state at %s: %v", path, err)
		return Empty()
	}

	var st AppState
	if err := json.Unmarshal(data, &st); err != nil {
		debug.Log(debug.STATE, "Corrupt state file %s: %v", path, err)
		return Empty()
	}

	st.mergeLegacy()
	debug.Log(debug.STATE, "Loaded state: %d tabs, %d history entries", len(st.OpenTabs), len(st.History))
	return &st
}

// mergeLegacy fills current-schema fields from the legacy keys when the
// current ones are missing. The legacy active index is only honored when
// it lands inside the tab list.
func (s *AppState) mergeLegacy() {
	if len(s.OpenTabs) == 0 && len(s.LegacyTabs) > 0 {
		s.OpenTabs = s.LegacyTabs
	}
	if s.ActiveTab == nil && s.LegacyActiveIndex != nil {
		idx := *s.LegacyActiveIndex
		if idx >= 0 && idx < len(s.OpenTabs) {
			tab := s.OpenTabs[idx]
			s.ActiveTab = &tab
			debug.Log(debug.STATE, "Derived active tab from legacy index %d: %s", idx, tab)
		}
	}
	if len(s.History) == 0 && s.HistoryIndex == 0 {
		// Zero-valued index with no history means the field was absent.
		s.HistoryIndex = -1
	}
}

// Sanitize drops entries that no longer resolve to an existing directory
// or a recognized virtual focus, keeping the survivors' original case.
// The active tab is recomputed by normalized lookup against the surviving
// tabs, falling back to the first tab or nil, and the history index is
// clamped into range.
func (s *AppState) Sanitize() {
	s.OpenTabs = filterResolvable(s.OpenTabs)
	s.History = filterResolvable(s.History)
	s.FocusTreePaths = filterResolvable(s.FocusTreePaths)
	s.ExpandedNodes = filterResolvable(s.ExpandedNodes)

	if s.ActiveTab != nil {
		if match, ok := findNormalized(s.OpenTabs, *s.ActiveTab); ok {
			s.ActiveTab = &match
		} else {
			s.ActiveTab = nil
		}
	}
	if s.ActiveTab == nil && len(s.OpenTabs) > 0 {
		first := s.OpenTabs[0]
		s.ActiveTab = &first
	}

	switch {
	case len(s.History) == 0:
		s.HistoryIndex = -1
	case s.HistoryIndex < 0:
		s.HistoryIndex = 0
	case s.HistoryIndex >= len(s.History):
		s.HistoryIndex = len(s.History) - 1
	}
}

func filterResolvable(paths []string) []string {
	if len(paths) == 0 {
		return paths
	}
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if vpath.IsVirtualFocus(p) || fs.DirExists(p) {
			kept = append(kept, p)
			continue
		}
		debug.Log(debug.STATE, "Dropping stale entry: %s", p)
	}
	return kept
}

func findNormalized(paths []string, target string) (string, bool) {
	want := vpath.Normalize(target)
	for _, p := range paths {
		if vpath.Normalize(p) == want {
			return p, true
		}
	}
	return "", false
}

// Save writes the full session document, current and legacy schemas in
// one file, via a temp file rename so readers never see a partial write.
func (s *AppState) Save(path string) error {
	s.LegacyTabs = s.OpenTabs
	legacyIdx := -1
	if s.ActiveTab != nil {
		for i, p := range s.OpenTabs {
			if vpath.Equal(p, *s.ActiveTab) {
				legacyIdx = i
				break
			}
		}
	}
	s.LegacyActiveIndex = &legacyIdx

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}
	debug.Log(debug.STATE, "Saved state to %s", path)
	return nil
}
