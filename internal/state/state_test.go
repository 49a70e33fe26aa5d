package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Pirrikos/claritydesk/internal/vpath"
)

func TestLoadMissingFileYieldsEmpty(t *testing.T) {
	st := Load(filepath.Join(t.TempDir(), "state.json"))
	if len(st.OpenTabs) != 0 || st.ActiveTab != nil {
		t.Errorf("missing file should load empty, got %+v", st)
	}
	if st.HistoryIndex != -1 {
		t.Errorf("HistoryIndex = %d, want -1", st.HistoryIndex)
	}
}

func TestLoadCorruptFileYieldsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	st := Load(path)
	if len(st.OpenTabs) != 0 || st.ActiveTab != nil || st.HistoryIndex != -1 {
		t.Errorf("corrupt file should load empty, got %+v", st)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	active := "/home/user/Docs"
	st := &AppState{
		OpenTabs:      []string{"/home/user/Docs", "/home/user/Pics"},
		ActiveTab:     &active,
		History:       []string{"/home/user/Docs", "/home/user/Pics"},
		HistoryIndex:  1,
		ExpandedNodes: []string{"/home/user"},
	}
	if err := st.Save(path); err != nil {
		t.Fatal(err)
	}

	got := Load(path)
	if len(got.OpenTabs) != 2 || got.OpenTabs[0] != "/home/user/Docs" {
		t.Errorf("OpenTabs = %v", got.OpenTabs)
	}
	if got.ActiveTab == nil || *got.ActiveTab != active {
		t.Errorf("ActiveTab = %v, want %q", got.ActiveTab, active)
	}
	if got.HistoryIndex != 1 {
		t.Errorf("HistoryIndex = %d, want 1", got.HistoryIndex)
	}
	if len(got.ExpandedNodes) != 1 {
		t.Errorf("ExpandedNodes = %v", got.ExpandedNodes)
	}

	// No leftover temp file after the rename.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestSaveWritesLegacySchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	active := "/b"
	st := &AppState{
		OpenTabs:  []string{"/a", "/b"},
		ActiveTab: &active,
	}
	if err := st.Save(path); err != nil {
		t.Fatal(err)
	}

	// A legacy reader sees tabs plus active_index in the same document.
	got := Load(path)
	if len(got.LegacyTabs) != 2 {
		t.Errorf("LegacyTabs = %v, want mirror of OpenTabs", got.LegacyTabs)
	}
	if got.LegacyActiveIndex == nil || *got.LegacyActiveIndex != 1 {
		t.Errorf("LegacyActiveIndex = %v, want 1", got.LegacyActiveIndex)
	}
}

func TestLoadLegacyOnlyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	doc := `{"tabs": ["/old/one", "/old/two"], "active_index": 1}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	st := Load(path)
	if len(st.OpenTabs) != 2 || st.OpenTabs[1] != "/old/two" {
		t.Errorf("OpenTabs = %v, want legacy tabs adopted", st.OpenTabs)
	}
	if st.ActiveTab == nil || *st.ActiveTab != "/old/two" {
		t.Errorf("ActiveTab = %v, want derived /old/two", st.ActiveTab)
	}
	if st.HistoryIndex != -1 {
		t.Errorf("HistoryIndex = %d, want -1 with no history", st.HistoryIndex)
	}
}

func TestLoadLegacyIndexOutOfRangeIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	doc := `{"tabs": ["/old/one"], "active_index": 7}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	st := Load(path)
	if st.ActiveTab != nil {
		t.Errorf("ActiveTab = %v, want nil for out-of-range legacy index", st.ActiveTab)
	}
}

func TestSanitizeDropsStaleEntries(t *testing.T) {
	real := t.TempDir()
	gone := filepath.Join(real, "vanished")

	active := gone
	st := &AppState{
		OpenTabs:     []string{real, gone, vpath.DesktopFocus},
		ActiveTab:    &active,
		History:      []string{gone, real},
		HistoryIndex: 1,
	}
	st.Sanitize()

	if len(st.OpenTabs) != 2 {
		t.Fatalf("OpenTabs = %v, want real dir and virtual focus kept", st.OpenTabs)
	}
	if st.OpenTabs[0] != real || st.OpenTabs[1] != vpath.DesktopFocus {
		t.Errorf("OpenTabs = %v", st.OpenTabs)
	}
	// Stale active tab falls back to the first surviving tab.
	if st.ActiveTab == nil || *st.ActiveTab != real {
		t.Errorf("ActiveTab = %v, want %q", st.ActiveTab, real)
	}
	if len(st.History) != 1 || st.History[0] != real {
		t.Errorf("History = %v", st.History)
	}
	if st.HistoryIndex != 0 {
		t.Errorf("HistoryIndex = %d, want clamped to 0", st.HistoryIndex)
	}
}

func TestSanitizeMatchesActiveTabCaseInsensitively(t *testing.T) {
	real := t.TempDir()

	// The active tab is spelled differently from the tab list entry.
	// Lookup is case-insensitive, and the surviving spelling is the tab
	// list's, not the active pointer's.
	shouted := strings.ToUpper(real)
	st := &AppState{
		OpenTabs:  []string{real},
		ActiveTab: &shouted,
	}
	st.Sanitize()
	if st.ActiveTab == nil || *st.ActiveTab != real {
		t.Errorf("ActiveTab = %v, want %q", st.ActiveTab, real)
	}
}

func TestSanitizeEmptyState(t *testing.T) {
	st := Empty()
	st.Sanitize()
	if st.ActiveTab != nil || len(st.OpenTabs) != 0 || st.HistoryIndex != -1 {
		t.Errorf("sanitized empty state mutated: %+v", st)
	}
}

func TestSanitizeClampsNegativeIndex(t *testing.T) {
	real := t.TempDir()
	st := &AppState{
		History:      []string{real},
		HistoryIndex: -5,
	}
	st.Sanitize()
	if st.HistoryIndex != 0 {
		t.Errorf("HistoryIndex = %d, want 0", st.HistoryIndex)
	}
}
