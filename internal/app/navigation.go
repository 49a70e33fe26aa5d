package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Pirrikos/claritydesk/internal/debug"
	"github.com/Pirrikos/claritydesk/internal/query"
	"github.com/Pirrikos/claritydesk/internal/vpath"
)

// builtinContexts are always available; a ContextResolver can shadow them.
var builtinContexts = map[string]string{
	"recent": "modified:>week depth:2",
	"stale":  "modified:<month",
}

// GoBack steps the history pointer back and selects the tab showing that
// folder. History never creates tabs: if the target is no longer open the
// call fails silently and the pointer stays put.
func (s *Shell) GoBack() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.history.PeekBack()
	if !ok {
		return false
	}
	idx := s.findTabLocked(target)
	if idx < 0 {
		debug.Log(debug.SHELL, "GoBack: %s is not an open tab", target)
		return false
	}

	// The selection below records navigations; guard so replaying history
	// does not rewrite it.
	s.history.SetReplaying(true)
	defer s.history.SetReplaying(false)

	s.history.Back()
	return s.selectTabLocked(idx)
}

// GoForward is the mirror of GoBack.
func (s *Shell) GoForward() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.history.PeekForward()
	if !ok {
		return false
	}
	idx := s.findTabLocked(target)
	if idx < 0 {
		debug.Log(debug.SHELL, "GoForward: %s is not an open tab", target)
		return false
	}

	s.history.SetReplaying(true)
	defer s.history.SetReplaying(false)

	s.history.Forward()
	return s.selectTabLocked(idx)
}

// EnterStateContext switches the view source to the named context. Both
// the bare name and the full marker form are accepted. Tabs and the
// active index are untouched; the context overlays them until a folder
// is selected again. Unknown names fail.
func (s *Shell) EnterStateContext(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if vpath.IsStateContext(name) {
		name = vpath.StateContextName(name)
	}
	if name == "" {
		return false
	}
	if _, ok := s.contextQueryLocked(name); !ok {
		debug.Log(debug.SHELL, "Unknown context %q", name)
		return false
	}

	id := vpath.StateContext(name)
	s.stateContext = id
	s.rebindLocked(id)

	debug.Log(debug.SHELL, "Entered context %s", id)
	s.publishActiveLocked()
	return true
}

// LeaveStateContext returns the view to the active tab, if any.
func (s *Shell) LeaveStateContext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stateContext == "" {
		return false
	}
	if s.active >= 0 && s.active < len(s.tabs) {
		return s.selectTabLocked(s.active)
	}

	s.stateContext = ""
	s.watcher.Stop()
	s.publishActiveLocked()
	return true
}

func (s *Shell) contextQueryLocked(name string) (string, bool) {
	if s.contexts != nil {
		if q, ok := s.contexts.ContextQuery(name); ok {
			return q, true
		}
	}
	q, ok := builtinContexts[name]
	return q, ok
}

// ContextDefinition returns the query behind a context name, stored or
// builtin.
func (s *Shell) ContextDefinition(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contextQueryLocked(name)
}

// MaterializeContext gathers the folders the active context selects,
// walking from root. limit <= 0 means no limit.
func (s *Shell) MaterializeContext(root string, limit int) ([]query.Result, error) {
	s.mu.Lock()
	id := s.stateContext
	s.mu.Unlock()

	if id == "" {
		return nil, fmt.Errorf("no context entered")
	}
	return s.ResolveContext(vpath.StateContextName(id), root, limit)
}

// ResolveContext gathers the folders a named context selects without
// entering it.
func (s *Shell) ResolveContext(name, root string, limit int) ([]query.Result, error) {
	s.mu.Lock()
	qs, ok := s.contextQueryLocked(name)
	s.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("unknown context %q", name)
	}
	q := query.Parse(qs)
	if q.IsEmpty() {
		return nil, fmt.Errorf("context %q has an empty query", name)
	}
	return query.Run(root, q, limit)
}

// ExpandPath resolves shell-style input into an absolute path: "~" and
// "~/x" expand against the home directory, relative input joins base, and
// virtual ids pass through untouched.
func ExpandPath(input, base string) string {
	input = strings.TrimSpace(input)
	if input == "" || vpath.IsVirtual(input) {
		return input
	}

	if input == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return input
	}
	if strings.HasPrefix(input, "~/") || strings.HasPrefix(input, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, input[2:])
		}
		return input
	}

	if isAbsolutePath(input) {
		return filepath.Clean(input)
	}
	if base == "" {
		if abs, err := filepath.Abs(input); err == nil {
			return abs
		}
		return input
	}
	return filepath.Join(base, input)
}

// isAbsolutePath recognizes unix roots, Windows drive letters, and UNC
// shares regardless of the host platform, so persisted paths from either
// style resolve.
func isAbsolutePath(p string) bool {
	if strings.HasPrefix(p, "/") {
		return true
	}
	if len(p) >= 3 && isLetter(p[0]) && p[1] == ':' && (p[2] == '\\' || p[2] == '/') {
		return true
	}
	return strings.HasPrefix(p, `\\`)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
