// Package watch binds to a single folder at a time and turns raw OS change
// notifications into a small classified event stream. Raw notifications
// restart a debounce timer; when the timer fires the folder is re-listed
// and the diff against the baseline snapshot decides what actually
// happened. Rename detection never relies on platform rename events.
package watch

import (
	"sync"
	"time"

	"github.com/Pirrikos/claritydesk/internal/debug"
	"github.com/Pirrikos/claritydesk/internal/vpath"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the settle delay used when no delay is configured.
const DefaultDebounce = 300 * time.Millisecond

// EventType classifies a change in the watched folder.
type EventType int

const (
	// FolderChanged is the generic "contents changed" signal, emitted
	// after every settled diff.
	FolderChanged EventType = iota
	FolderRenamed
	FolderCreated
	FolderDeleted
	FolderDisappeared
	StructuralChange
)

func (t EventType) String() string {
	switch t {
	case FolderChanged:
		return "folder-changed"
	case FolderRenamed:
		return "folder-renamed"
	case FolderCreated:
		return "folder-created"
	case FolderDeleted:
		return "folder-deleted"
	case FolderDisappeared:
		return "folder-disappeared"
	case StructuralChange:
		return "structural-change"
	default:
		return "unknown"
	}
}

// Event is one classified change in the watched folder.
type Event struct {
	Type    EventType
	Folder  string // the watched folder
	Path    string // subject path for created/deleted/disappeared
	OldPath string // rename only
	NewPath string // rename only
}

// Watcher maintains a binding to at most one folder. Watch always releases
// the previous binding first, so stale events from an earlier folder can
// never be attributed to the current one.
type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	folder   string // bound folder, "" when unbound
	real     bool   // registered with the OS (false for virtual bindings)
	baseline snapshot
	timer    *time.Timer
	delay    time.Duration
	ignore   bool
	closed   bool
	events   chan Event
	done     chan struct{}
}

// New creates a watcher with the given debounce delay and starts its
// event pump.
func New(delay time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if delay <= 0 {
		delay = DefaultDebounce
	}
	w := &Watcher{
		fsw:    fsw,
		delay:  delay,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// run pumps raw fsnotify traffic into debounce-timer restarts.
func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			debug.Log(debug.WATCH_RAW, "FSNotify event: %s on %s", event.Op, event.Name)
			w.bump()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			debug.Log(debug.WATCH, "FSNotify error: %v", err)
		}
	}
}

// bump restarts the debounce timer. A burst of raw events therefore
// yields a single settle, timed from the last event in the burst.
func (w *Watcher) bump() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.folder == "" || !w.real || w.ignore || w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.settle)
}

// settle runs when the debounce window closes: re-list the folder, diff
// against the baseline, emit the classified events, adopt the new listing
// as the baseline. An unchanged listing emits nothing, which absorbs
// notification noise that did not alter the folder.
func (w *Watcher) settle() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.folder == "" || !w.real || w.ignore || w.closed {
		return
	}

	current := takeSnapshot(w.folder)
	if current.equal(w.baseline) {
		debug.Log(debug.WATCH, "Settled with no visible change in %s", w.folder)
		return
	}

	evs := classify(w.folder, w.baseline, current)
	w.baseline = current
	for _, ev := range evs {
		w.emit(ev)
	}
}

// emit never blocks; the consumer drains on its own schedule.
func (w *Watcher) emit(ev Event) {
	select {
	case w.events <- ev:
	default:
		debug.Log(debug.WATCH, "Dropped %s event for %s (consumer behind)", ev.Type, ev.Folder)
	}
}

// Watch binds the watcher to folder, unconditionally releasing any
// previous binding first. Virtual identifiers are accepted: the binding
// succeeds but nothing is registered with the OS, so no events flow until
// a real folder is watched again.
func (w *Watcher) Watch(folder string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopLocked()

	if folder == "" {
		return nil
	}
	if vpath.IsVirtual(folder) {
		w.folder = folder
		w.real = false
		debug.Log(debug.WATCH, "Virtual binding: %s", folder)
		return nil
	}

	if err := w.fsw.Add(folder); err != nil {
		return err
	}
	w.folder = folder
	w.real = true
	w.baseline = takeSnapshot(folder)
	debug.Log(debug.WATCH, "Watching %s (%d entries)", folder, len(w.baseline))
	return nil
}

// Stop releases the current binding, cancels any pending settle and
// discards the baseline snapshot.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopLocked()
}

func (w *Watcher) stopLocked() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if w.folder != "" && w.real {
		if err := w.fsw.Remove(w.folder); err != nil {
			// Path may already be gone.
			debug.Log(debug.WATCH, "Unwatch %s: %v", w.folder, err)
		}
		debug.Log(debug.WATCH, "Stopped watching %s", w.folder)
	}
	w.folder = ""
	w.real = false
	w.baseline = nil
}

// SetIgnoreEvents controls suppression. Callers enable it before a
// filesystem mutation they perform themselves and disable it afterwards,
// so the watcher does not report self-inflicted changes. Enabling cancels
// any in-flight settle timer; disabling refreshes the baseline so the
// suppressed mutation is not re-reported by a later diff.
func (w *Watcher) SetIgnoreEvents(ignore bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.ignore = ignore
	if ignore {
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		debug.Log(debug.WATCH, "Event suppression on")
		return
	}
	if w.folder != "" && w.real {
		w.baseline = takeSnapshot(w.folder)
	}
	debug.Log(debug.WATCH, "Event suppression off")
}

// IgnoringEvents reports whether suppression is active.
func (w *Watcher) IgnoringEvents() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ignore
}

// Folder returns the currently bound folder, "" when unbound.
func (w *Watcher) Folder() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.folder
}

// Events returns the classified event stream.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Close shuts the watcher down and closes the event stream. Safe to call
// more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.stopLocked()
	w.mu.Unlock()

	close(w.done)
	err := w.fsw.Close()
	close(w.events)
	return err
}
