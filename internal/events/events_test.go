package events

import (
	"testing"
	"time"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroadcaster()

	if b.Count() != 0 {
		t.Errorf("Count() = %d, want 0", b.Count())
	}

	ch := b.Subscribe()
	if b.Count() != 1 {
		t.Errorf("Count() after Subscribe = %d, want 1", b.Count())
	}

	b.Unsubscribe(ch)
	if b.Count() != 0 {
		t.Errorf("Count() after Unsubscribe = %d, want 0", b.Count())
	}

	// Channel is closed after unsubscribe.
	if _, ok := <-ch; ok {
		t.Error("expected closed channel after Unsubscribe")
	}
}

func TestPublishDelivers(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Type: FolderRenamed, OldPath: "/tmp/a", NewPath: "/tmp/b"})

	select {
	case ev := <-ch:
		if ev.Type != FolderRenamed {
			t.Errorf("Type = %v, want %v", ev.Type, FolderRenamed)
		}
		if ev.OldPath != "/tmp/a" || ev.NewPath != "/tmp/b" {
			t.Errorf("paths = %q -> %q, want /tmp/a -> /tmp/b", ev.OldPath, ev.NewPath)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := NewBroadcaster()
	a := b.Subscribe()
	c := b.Subscribe()
	defer b.Unsubscribe(a)
	defer b.Unsubscribe(c)

	b.Publish(Event{Type: TabsChanged, Tabs: []string{"/tmp/x"}})

	for _, ch := range []chan Event{a, c} {
		select {
		case ev := <-ch:
			if ev.Type != TabsChanged {
				t.Errorf("Type = %v, want %v", ev.Type, TabsChanged)
			}
			if len(ev.Tabs) != 1 || ev.Tabs[0] != "/tmp/x" {
				t.Errorf("Tabs = %v, want [/tmp/x]", ev.Tabs)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// Fill the buffer without draining, then publish one more. Publish
	// must not block and the overflow event is dropped.
	for i := 0; i < 64; i++ {
		b.Publish(Event{Type: FilesChanged})
	}

	done := make(chan struct{})
	go func() {
		b.Publish(Event{Type: StructuralChange})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on full subscriber buffer")
	}

	if got := len(ch); got != 64 {
		t.Errorf("buffered events = %d, want 64", got)
	}
}

func TestCloseClosesAllChannels(t *testing.T) {
	b := NewBroadcaster()
	a := b.Subscribe()
	c := b.Subscribe()

	b.Close()

	if b.Count() != 0 {
		t.Errorf("Count() after Close = %d, want 0", b.Count())
	}
	for _, ch := range []chan Event{a, c} {
		if _, ok := <-ch; ok {
			t.Error("expected closed channel after Close")
		}
	}
}
