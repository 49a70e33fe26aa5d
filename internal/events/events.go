// Package events carries the shell core's notification surface. The UI
// collaborator subscribes to a channel of typed events; the core publishes
// without ever blocking on a slow consumer.
package events

import "sync"

// Type identifies what a notification is about.
type Type int

const (
	TabsChanged Type = iota
	ActiveTabChanged
	FilesChanged
	FocusCleared
	FolderRenamed
	FolderCreated
	FolderDeleted
	FolderDisappeared
	StructuralChange
)

// String returns a short label for logs and the CLI event stream.
func (t Type) String() string {
	switch t {
	case TabsChanged:
		return "tabs-changed"
	case ActiveTabChanged:
		return "active-tab-changed"
	case FilesChanged:
		return "files-changed"
	case FocusCleared:
		return "focus-cleared"
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

// Event is one notification from the core. Fields beyond Type are filled
// per kind: Tabs for TabsChanged; Index and Path for ActiveTabChanged; Path
// for the folder events and for FilesChanged/StructuralChange (the watched
// folder); OldPath/NewPath for FolderRenamed.
type Event struct {
	Type    Type
	Tabs    []string
	Index   int
	Path    string
	OldPath string
	NewPath string
}

// Broadcaster fans events out to subscriber channels.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe adds a subscriber and returns its event channel. The caller
// must call Unsubscribe when done.
func (b *Broadcaster) Subscribe() chan Event {
	ch := make(chan Event, 64)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	if _, ok := b.subscribers[ch]; ok {
		delete(b.subscribers, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers. Non-blocking: events are
// dropped for consumers whose buffer is full.
func (b *Broadcaster) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// Drop event for slow consumer
		}
	}
}

// Count returns the current number of subscribers.
func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close removes and closes every subscriber channel.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	for ch := range b.subscribers {
		delete(b.subscribers, ch)
		close(ch)
	}
	b.mu.Unlock()
}
