package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Pirrikos/claritydesk/internal/events"
	"github.com/Pirrikos/claritydesk/internal/state"
	"github.com/Pirrikos/claritydesk/internal/vpath"
)

func newTestShell(t *testing.T) *Shell {
	t.Helper()
	s, err := New(Options{Debounce: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func mkdir(t *testing.T, parent, name string) string {
	t.Helper()
	path := filepath.Join(parent, name)
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	return path
}

func expectEvent(t *testing.T, ch chan events.Event, want events.Type) events.Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		if !ok {
			t.Fatalf("event channel closed while waiting for %s", want)
		}
		if ev.Type != want {
			t.Fatalf("expected %s, got %s", want, ev.Type)
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", want)
	}
	return events.Event{}
}

func TestAddTabAppendsAndActivates(t *testing.T) {
	s := newTestShell(t)
	root := t.TempDir()
	a := mkdir(t, root, "a")
	b := mkdir(t, root, "b")

	if !s.AddTab(a) {
		t.Fatalf("AddTab(%s) failed", a)
	}
	if !s.AddTab(b) {
		t.Fatalf("AddTab(%s) failed", b)
	}

	tabs := s.Tabs()
	if len(tabs) != 2 || tabs[0] != a || tabs[1] != b {
		t.Errorf("unexpected tabs %v", tabs)
	}
	if s.ActiveIndex() != 1 {
		t.Errorf("expected active 1, got %d", s.ActiveIndex())
	}
	if s.ActiveFolder() != b {
		t.Errorf("expected active folder %s, got %s", b, s.ActiveFolder())
	}
	if s.WatchedFolder() != b {
		t.Errorf("watcher should follow active tab, got %s", s.WatchedFolder())
	}
}

func TestAddTabRejectsContextID(t *testing.T) {
	s := newTestShell(t)

	if s.AddTab(vpath.StateContext("recent")) {
		t.Error("context id must not become a tab")
	}
	if len(s.Tabs()) != 0 {
		t.Errorf("expected no tabs, got %v", s.Tabs())
	}
}

func TestAddTabRejectsMissingFolder(t *testing.T) {
	s := newTestShell(t)

	if s.AddTab(filepath.Join(t.TempDir(), "nope")) {
		t.Error("missing folder must not become a tab")
	}
	if s.ActiveIndex() != -1 {
		t.Errorf("expected active -1, got %d", s.ActiveIndex())
	}
}

func TestAddTabRejectsFiles(t *testing.T) {
	s := newTestShell(t)
	file := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if s.AddTab(file) {
		t.Error("a file must not become a tab")
	}
}

func TestAddTabDuplicateSelectsExisting(t *testing.T) {
	s := newTestShell(t)
	root := t.TempDir()
	a := mkdir(t, root, "a")
	b := mkdir(t, root, "b")
	s.AddTab(a)
	s.AddTab(b)

	// Same folder under a different spelling collapses to a selection.
	if !s.AddTab(a + string(filepath.Separator)) {
		t.Fatal("duplicate add should succeed as a selection")
	}

	tabs := s.Tabs()
	if len(tabs) != 2 {
		t.Fatalf("expected 2 tabs, got %v", tabs)
	}
	if tabs[0] != a {
		t.Errorf("original spelling should be preserved, got %q", tabs[0])
	}
	if s.ActiveIndex() != 0 {
		t.Errorf("expected active 0, got %d", s.ActiveIndex())
	}
}

func TestAddTabVirtualFocus(t *testing.T) {
	s := newTestShell(t)

	if !s.AddTab(vpath.DesktopFocus) {
		t.Fatal("desktop focus should be openable")
	}
	if s.ActiveFolder() != vpath.DesktopFocus {
		t.Errorf("expected active %s, got %s", vpath.DesktopFocus, s.ActiveFolder())
	}
	if s.WatchedFolder() != vpath.DesktopFocus {
		t.Errorf("expected virtual binding, got %q", s.WatchedFolder())
	}
}

func TestAddTabPublishesInOrder(t *testing.T) {
	s := newTestShell(t)
	dir := t.TempDir()

	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	s.AddTab(dir)

	ev := expectEvent(t, ch, events.TabsChanged)
	if len(ev.Tabs) != 1 || ev.Tabs[0] != dir {
		t.Errorf("unexpected tabs payload %v", ev.Tabs)
	}
	ev = expectEvent(t, ch, events.ActiveTabChanged)
	if ev.Index != 0 || ev.Path != dir {
		t.Errorf("unexpected active payload %d %q", ev.Index, ev.Path)
	}
}

func TestSelectTabOutOfRange(t *testing.T) {
	s := newTestShell(t)
	s.AddTab(t.TempDir())

	if s.SelectTab(-1) || s.SelectTab(1) {
		t.Error("out-of-range select must fail")
	}
	if s.ActiveIndex() != 0 {
		t.Errorf("active index moved to %d", s.ActiveIndex())
	}
}

func TestSelectTabFastPathSkipsNotification(t *testing.T) {
	s := newTestShell(t)
	root := t.TempDir()
	a := mkdir(t, root, "a")
	b := mkdir(t, root, "b")
	s.AddTab(a)
	s.AddTab(b)

	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	if !s.SelectTab(1) {
		t.Fatal("selecting the active tab should succeed")
	}

	// The next shell event must come from the removal below, proving the
	// fast path emitted nothing.
	s.RemoveTab(0)
	expectEvent(t, ch, events.TabsChanged)
}

func TestRemoveTabReindexes(t *testing.T) {
	s := newTestShell(t)
	root := t.TempDir()
	a := mkdir(t, root, "a")
	b := mkdir(t, root, "b")
	c := mkdir(t, root, "c")
	s.AddTab(a)
	s.AddTab(b)
	s.AddTab(c)

	if !s.RemoveTab(0) {
		t.Fatal("RemoveTab(0) failed")
	}

	tabs := s.Tabs()
	if len(tabs) != 2 || tabs[0] != b || tabs[1] != c {
		t.Fatalf("unexpected tabs %v", tabs)
	}
	if s.ActiveIndex() != 1 {
		t.Errorf("active should shift to 1, got %d", s.ActiveIndex())
	}
	if s.ActiveFolder() != c {
		t.Errorf("active folder should still be %s, got %s", c, s.ActiveFolder())
	}
}

func TestRemoveActiveTabRebinds(t *testing.T) {
	s := newTestShell(t)
	root := t.TempDir()
	a := mkdir(t, root, "a")
	b := mkdir(t, root, "b")
	s.AddTab(a)
	s.AddTab(b)

	if !s.RemoveTab(1) {
		t.Fatal("RemoveTab(1) failed")
	}
	if s.ActiveIndex() != 0 {
		t.Errorf("expected active 0, got %d", s.ActiveIndex())
	}
	if s.WatchedFolder() != a {
		t.Errorf("watcher should rebind to %s, got %s", a, s.WatchedFolder())
	}
}

func TestRemoveLastTabClearsFocus(t *testing.T) {
	s := newTestShell(t)
	s.AddTab(t.TempDir())

	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	if !s.RemoveTab(0) {
		t.Fatal("RemoveTab failed")
	}

	if ev := expectEvent(t, ch, events.TabsChanged); len(ev.Tabs) != 0 {
		t.Errorf("expected empty tabs payload, got %v", ev.Tabs)
	}
	if ev := expectEvent(t, ch, events.ActiveTabChanged); ev.Index != -1 {
		t.Errorf("expected index -1, got %d", ev.Index)
	}
	expectEvent(t, ch, events.FocusCleared)

	if s.ActiveIndex() != -1 {
		t.Errorf("expected active -1, got %d", s.ActiveIndex())
	}
	if s.WatchedFolder() != "" {
		t.Errorf("watcher should be released, still on %q", s.WatchedFolder())
	}
}

func TestRemoveTabOutOfRange(t *testing.T) {
	s := newTestShell(t)
	s.AddTab(t.TempDir())

	if s.RemoveTab(-1) || s.RemoveTab(1) {
		t.Error("out-of-range removal must fail")
	}
	if len(s.Tabs()) != 1 {
		t.Errorf("tabs changed: %v", s.Tabs())
	}
}

func TestRemoveTabByPathCascades(t *testing.T) {
	s := newTestShell(t)
	root := t.TempDir()
	parent := mkdir(t, root, "parent")
	child := mkdir(t, parent, "sub")
	other := mkdir(t, root, "other")
	s.AddTab(parent)
	s.AddTab(child)
	s.AddTab(other)

	if !s.RemoveTabByPath(parent) {
		t.Fatal("RemoveTabByPath failed")
	}

	tabs := s.Tabs()
	if len(tabs) != 1 || tabs[0] != other {
		t.Fatalf("expected only %s to survive, got %v", other, tabs)
	}
	if s.ActiveIndex() != 0 {
		t.Errorf("expected active 0, got %d", s.ActiveIndex())
	}
}

func TestRemoveTabByPathUnknown(t *testing.T) {
	s := newTestShell(t)
	s.AddTab(t.TempDir())

	if s.RemoveTabByPath("/no/such/tab") {
		t.Error("removal of an unopened path must fail")
	}
	if len(s.Tabs()) != 1 {
		t.Errorf("tabs changed: %v", s.Tabs())
	}
}

func TestExternalRenameRewritesTabs(t *testing.T) {
	s := newTestShell(t)
	root := t.TempDir()
	parent := mkdir(t, root, "parent")
	child := mkdir(t, parent, "old")
	s.AddTab(parent)
	s.AddTab(child)
	s.SelectTab(0) // watch the parent so the child rename is observed

	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	renamed := filepath.Join(parent, "new")
	if err := os.Rename(child, renamed); err != nil {
		t.Fatal(err)
	}

	expectEvent(t, ch, events.TabsChanged)
	ev := expectEvent(t, ch, events.FolderRenamed)
	if ev.OldPath != child || ev.NewPath != renamed {
		t.Errorf("unexpected rename payload %q -> %q", ev.OldPath, ev.NewPath)
	}

	tabs := s.Tabs()
	if tabs[1] != renamed {
		t.Errorf("tab should follow the rename, got %q", tabs[1])
	}
}

func TestRestoreStateDropsStale(t *testing.T) {
	s := newTestShell(t)
	root := t.TempDir()
	real := mkdir(t, root, "real")
	gone := filepath.Join(root, "gone")

	st := &state.AppState{
		OpenTabs:     []string{real, gone},
		ActiveTab:    &gone,
		History:      []string{gone, real},
		HistoryIndex: 1,
	}
	s.RestoreState(st)

	tabs := s.Tabs()
	if len(tabs) != 1 || tabs[0] != real {
		t.Fatalf("expected only %s, got %v", real, tabs)
	}
	if s.ActiveIndex() != 0 {
		t.Errorf("expected active 0, got %d", s.ActiveIndex())
	}
	if hist := s.History(); len(hist) != 1 || hist[0] != real {
		t.Errorf("expected history [%s], got %v", real, hist)
	}
	if s.WatchedFolder() != real {
		t.Errorf("watcher should bind to restored active, got %q", s.WatchedFolder())
	}
}

func TestCloseWritesSession(t *testing.T) {
	root := t.TempDir()
	statePath := filepath.Join(root, "state.json")
	a := mkdir(t, root, "a")
	b := mkdir(t, root, "b")

	s, err := New(Options{StatePath: statePath, Debounce: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.AddTab(a)
	s.AddTab(b)
	s.Close()

	st := state.Load(statePath)
	if len(st.OpenTabs) != 2 || st.OpenTabs[0] != a || st.OpenTabs[1] != b {
		t.Fatalf("unexpected saved tabs %v", st.OpenTabs)
	}
	if st.ActiveTab == nil || *st.ActiveTab != b {
		t.Errorf("unexpected saved active tab %v", st.ActiveTab)
	}
	if st.HistoryIndex != 1 {
		t.Errorf("expected history index 1, got %d", st.HistoryIndex)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	root := t.TempDir()
	statePath := filepath.Join(root, "state.json")
	a := mkdir(t, root, "a")
	b := mkdir(t, root, "b")

	s1, err := New(Options{StatePath: statePath, Debounce: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s1.AddTab(a)
	s1.AddTab(b)
	s1.SelectTab(0)
	s1.Close()

	s2 := newTestShell(t)
	s2.RestoreState(state.Load(statePath))

	if tabs := s2.Tabs(); len(tabs) != 2 || tabs[0] != a || tabs[1] != b {
		t.Fatalf("unexpected restored tabs %v", tabs)
	}
	if s2.ActiveIndex() != 0 {
		t.Errorf("expected restored active 0, got %d", s2.ActiveIndex())
	}
	// Selecting a recorded a navigation, so the saved trail is a, b, a.
	if hist := s2.History(); len(hist) != 3 || hist[2] != a {
		t.Errorf("unexpected restored history %v", hist)
	}
	if s2.HistoryIndex() != 2 {
		t.Errorf("expected restored history index 2, got %d", s2.HistoryIndex())
	}
}

func TestTreeStateRoundTrip(t *testing.T) {
	root := t.TempDir()
	statePath := filepath.Join(root, "state.json")
	a := mkdir(t, root, "a")
	b := mkdir(t, root, "b")

	s1, err := New(Options{StatePath: statePath, Debounce: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s1.AddTab(a)
	s1.SetTreeState(TreeState{
		FocusPaths: []string{a},
		Expanded:   []string{a, b},
		RootOrder:  []string{"home", "desktop", "downloads"},
	})
	s1.Close()

	st := state.Load(statePath)
	if len(st.FocusTreePaths) != 1 || st.FocusTreePaths[0] != a {
		t.Errorf("unexpected saved focus paths %v", st.FocusTreePaths)
	}
	if len(st.ExpandedNodes) != 2 || st.ExpandedNodes[1] != b {
		t.Errorf("unexpected saved expanded nodes %v", st.ExpandedNodes)
	}
	if len(st.RootFoldersOrder) != 3 || st.RootFoldersOrder[0] != "home" {
		t.Errorf("unexpected saved root order %v", st.RootFoldersOrder)
	}

	s2 := newTestShell(t)
	s2.RestoreState(st)
	ts := s2.TreeState()
	if len(ts.FocusPaths) != 1 || len(ts.Expanded) != 2 || len(ts.RootOrder) != 3 {
		t.Errorf("unexpected restored tree state %+v", ts)
	}
}

type fakeVisits struct {
	paths []string
}

func (f *fakeVisits) RecordVisit(path string) error {
	f.paths = append(f.paths, path)
	return nil
}

func TestVisitRecorderSkipsVirtual(t *testing.T) {
	visits := &fakeVisits{}
	s, err := New(Options{Debounce: 50 * time.Millisecond, Visits: visits})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Close)

	dir := t.TempDir()
	s.AddTab(dir)
	s.AddTab(vpath.DesktopFocus)

	if len(visits.paths) != 1 || visits.paths[0] != dir {
		t.Errorf("expected one recorded visit for %s, got %v", dir, visits.paths)
	}
}

func TestCloseIdempotent(t *testing.T) {
	s, err := New(Options{Debounce: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.AddTab(t.TempDir())
	s.Close()
	s.Close()
}

func TestActiveIndexInvariant(t *testing.T) {
	s := newTestShell(t)
	root := t.TempDir()
	check := func(step string) {
		t.Helper()
		n, active := len(s.Tabs()), s.ActiveIndex()
		if n == 0 && active != -1 {
			t.Fatalf("%s: empty tabs but active %d", step, active)
		}
		if n > 0 && (active < 0 || active >= n) {
			t.Fatalf("%s: active %d out of range for %d tabs", step, active, n)
		}
	}

	check("empty")
	a := mkdir(t, root, "a")
	b := mkdir(t, root, "b")
	c := mkdir(t, root, "c")
	s.AddTab(a)
	check("one tab")
	s.AddTab(b)
	s.AddTab(c)
	check("three tabs")
	s.RemoveTab(1)
	check("middle removed")
	s.RemoveTabByPath(a)
	check("first removed")
	s.RemoveTab(0)
	check("all removed")
	s.AddTab(a)
	check("reopened")
}
