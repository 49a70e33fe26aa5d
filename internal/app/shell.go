// Package app wires the shell core together: the tab registry, navigation
// history, the single-folder watcher, session persistence, and the event
// stream the UI collaborator subscribes to.
package app

import (
	"sync"
	"time"

	"github.com/Pirrikos/claritydesk/internal/debug"
	"github.com/Pirrikos/claritydesk/internal/events"
	"github.com/Pirrikos/claritydesk/internal/history"
	"github.com/Pirrikos/claritydesk/internal/state"
	"github.com/Pirrikos/claritydesk/internal/vpath"
	"github.com/Pirrikos/claritydesk/internal/watch"
)

// VisitRecorder receives folder visits for the recents list. The shell
// works without one.
type VisitRecorder interface {
	RecordVisit(path string) error
}

// ContextResolver maps a state-context name to its query string. The
// shell falls back to the builtin contexts without one.
type ContextResolver interface {
	ContextQuery(name string) (string, bool)
}

// Options configures a Shell.
type Options struct {
	StatePath    string        // "" disables persistence
	Debounce     time.Duration // watcher settle delay
	HistoryLimit int
	Visits       VisitRecorder   // optional
	Contexts     ContextResolver // optional
}

// Shell owns the tab list, the active selection, and everything that hangs
// off it. All exported operations are safe for concurrent use; state only
// mutates under the shell lock, and failed operations mutate nothing.
type Shell struct {
	mu           sync.Mutex
	tabs         []string // caller-supplied spellings, compared normalized
	active       int      // -1 when no tab is active
	stateContext string   // active context id, "" when the view is a folder

	history   *history.History
	watcher   *watch.Watcher
	events    *events.Broadcaster
	statePath string

	// Auxiliary tree state: carried through persistence for the UI layer,
	// opaque to the shell itself.
	focusTreePaths []string
	expandedNodes  []string
	rootOrder      []string

	visits   VisitRecorder
	contexts ContextResolver

	closed bool
	wg     sync.WaitGroup
}

// New creates a shell and starts its watcher event pump.
func New(opts Options) (*Shell, error) {
	w, err := watch.New(opts.Debounce)
	if err != nil {
		return nil, err
	}

	s := &Shell{
		active:    -1,
		history:   history.New(opts.HistoryLimit),
		watcher:   w,
		events:    events.NewBroadcaster(),
		statePath: opts.StatePath,
		visits:    opts.Visits,
		contexts:  opts.Contexts,
	}

	s.wg.Add(1)
	go s.pump()
	return s, nil
}

// pump forwards classified watcher events to subscribers, folding tab
// rewrites in when a watched child folder is renamed externally.
func (s *Shell) pump() {
	defer s.wg.Done()
	for ev := range s.watcher.Events() {
		s.handleWatchEvent(ev)
	}
}

func (s *Shell) handleWatchEvent(ev watch.Event) {
	debug.Log(debug.SHELL, "Watch event: %s (%s)", ev.Type, ev.Folder)

	switch ev.Type {
	case watch.FolderChanged:
		s.events.Publish(events.Event{Type: events.FilesChanged, Path: ev.Folder})

	case watch.FolderRenamed:
		s.mu.Lock()
		if s.rewriteTabsLocked(ev.OldPath, ev.NewPath) {
			s.persistLocked()
			s.publishTabsLocked()
		}
		s.mu.Unlock()
		s.events.Publish(events.Event{Type: events.FolderRenamed, OldPath: ev.OldPath, NewPath: ev.NewPath})

	case watch.FolderCreated:
		s.events.Publish(events.Event{Type: events.FolderCreated, Path: ev.Path})

	case watch.FolderDeleted:
		s.events.Publish(events.Event{Type: events.FolderDeleted, Path: ev.Path})

	case watch.FolderDisappeared:
		s.events.Publish(events.Event{Type: events.FolderDisappeared, Path: ev.Path})

	case watch.StructuralChange:
		s.events.Publish(events.Event{Type: events.StructuralChange, Path: ev.Folder})
	}
}

// rewriteTabsLocked repoints tabs at a renamed folder: exact matches take
// the new path, descendants get their prefix swapped. Tabs are rewritten
// in place so indices, the active selection, and history stay put; stale
// history entries are deliberately left alone, goBack simply fails to find
// them. Returns whether anything changed.
func (s *Shell) rewriteTabsLocked(oldPath, newPath string) bool {
	changed := false
	for i, tab := range s.tabs {
		switch {
		case vpath.Equal(tab, oldPath):
			s.tabs[i] = newPath
			changed = true
		case vpath.Contains(oldPath, tab):
			s.tabs[i] = newPath + tab[len(oldPath):]
			changed = true
		}
	}
	if changed {
		debug.Log(debug.SHELL, "Rewrote tabs for rename %s -> %s", oldPath, newPath)
	}
	return changed
}

// rebindLocked points the watcher at path. Watch releases the previous
// binding first, so a caller observing the active change can rely on the
// watcher already being current. A registration failure (folder vanished
// between validation and here) keeps the tab but leaves it unwatched.
func (s *Shell) rebindLocked(path string) {
	if err := s.watcher.Watch(path); err != nil {
		debug.Log(debug.SHELL, "Watch %s failed: %v", path, err)
	}
}

// persistLocked writes the session best-effort; failures are logged and
// swallowed so persistence can never break an interactive operation.
func (s *Shell) persistLocked() {
	if s.statePath == "" {
		return
	}

	st := &state.AppState{
		OpenTabs:         append([]string(nil), s.tabs...),
		History:          s.history.Entries(),
		HistoryIndex:     s.history.Index(),
		FocusTreePaths:   s.focusTreePaths,
		ExpandedNodes:    s.expandedNodes,
		RootFoldersOrder: s.rootOrder,
	}
	if s.active >= 0 && s.active < len(s.tabs) {
		tab := s.tabs[s.active]
		st.ActiveTab = &tab
	}

	if err := st.Save(s.statePath); err != nil {
		debug.Log(debug.SHELL, "Persist failed: %v", err)
	}
}

func (s *Shell) publishTabsLocked() {
	s.events.Publish(events.Event{Type: events.TabsChanged, Tabs: append([]string(nil), s.tabs...)})
}

func (s *Shell) publishActiveLocked() {
	path := ""
	switch {
	case s.stateContext != "":
		path = s.stateContext
	case s.active >= 0 && s.active < len(s.tabs):
		path = s.tabs[s.active]
	}
	s.events.Publish(events.Event{Type: events.ActiveTabChanged, Index: s.active, Path: path})
}

func (s *Shell) recordVisit(path string) {
	if s.visits == nil || vpath.IsVirtual(path) {
		return
	}
	if err := s.visits.RecordVisit(path); err != nil {
		debug.Log(debug.SHELL, "Visit record failed for %s: %v", path, err)
	}
}

// RestoreState replaces the session with a sanitized saved one: stale
// folders are dropped, the active tab is resolved by normalized lookup,
// and the history index is clamped.
func (s *Shell) RestoreState(st *state.AppState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st.Sanitize()

	s.tabs = append([]string(nil), st.OpenTabs...)
	s.active = -1
	s.stateContext = ""
	if st.ActiveTab != nil {
		if idx := s.findTabLocked(*st.ActiveTab); idx >= 0 {
			s.active = idx
		}
	}
	s.history.Restore(st.History, st.HistoryIndex)
	s.focusTreePaths = st.FocusTreePaths
	s.expandedNodes = st.ExpandedNodes
	s.rootOrder = st.RootFoldersOrder

	if s.active >= 0 {
		s.rebindLocked(s.tabs[s.active])
	} else {
		s.watcher.Stop()
	}

	debug.Log(debug.SHELL, "Restored session: %d tabs, active %d", len(s.tabs), s.active)
	s.publishTabsLocked()
	s.publishActiveLocked()
}

// TreeState is the sidebar state the shell persists for the UI layer:
// shown tree roots, expanded nodes, and the root folder ordering. The
// shell never interprets it.
type TreeState struct {
	FocusPaths []string
	Expanded   []string
	RootOrder  []string
}

// SetTreeState replaces the persisted tree state.
func (s *Shell) SetTreeState(ts TreeState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focusTreePaths = append([]string(nil), ts.FocusPaths...)
	s.expandedNodes = append([]string(nil), ts.Expanded...)
	s.rootOrder = append([]string(nil), ts.RootOrder...)
	s.persistLocked()
}

// TreeState returns the current tree state.
func (s *Shell) TreeState() TreeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TreeState{
		FocusPaths: append([]string(nil), s.focusTreePaths...),
		Expanded:   append([]string(nil), s.expandedNodes...),
		RootOrder:  append([]string(nil), s.rootOrder...),
	}
}

// SetIgnoreEvents suppresses watcher reactions around a self-initiated
// filesystem mutation.
func (s *Shell) SetIgnoreEvents(ignore bool) {
	s.watcher.SetIgnoreEvents(ignore)
}

// Subscribe returns a channel of shell events. Callers must Unsubscribe
// when done.
func (s *Shell) Subscribe() chan events.Event {
	return s.events.Subscribe()
}

// Unsubscribe releases a subscription.
func (s *Shell) Unsubscribe(ch chan events.Event) {
	s.events.Unsubscribe(ch)
}

// ActiveFolder returns the current view source: the active context id if
// one is entered, otherwise the active tab's folder, otherwise "".
func (s *Shell) ActiveFolder() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stateContext != "" {
		return s.stateContext
	}
	if s.active >= 0 && s.active < len(s.tabs) {
		return s.tabs[s.active]
	}
	return ""
}

// Tabs returns a copy of the open tab list.
func (s *Shell) Tabs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tabs...)
}

// ActiveIndex returns the active tab index, -1 when none.
func (s *Shell) ActiveIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// History returns a copy of the navigation history.
func (s *Shell) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Entries()
}

// HistoryIndex returns the current history position, -1 when empty.
func (s *Shell) HistoryIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Index()
}

// ActiveContext returns the active context id, "" when none.
func (s *Shell) ActiveContext() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateContext
}

// WatchedFolder returns the watcher's current binding, for diagnostics.
func (s *Shell) WatchedFolder() string {
	return s.watcher.Folder()
}

// Close persists the session, stops the watcher, and closes the event
// stream. Safe to call more than once.
func (s *Shell) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.persistLocked()
	s.mu.Unlock()

	s.watcher.Close()
	s.wg.Wait()
	s.events.Close()
}
