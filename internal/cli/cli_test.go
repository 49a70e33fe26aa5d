package cli

import (
	"testing"

	"github.com/Pirrikos/claritydesk/internal/vpath"
)

func TestResolveTargetKeywords(t *testing.T) {
	if got := resolveTarget("desktop"); got != vpath.DesktopFocus {
		t.Errorf("desktop resolved to %q", got)
	}
	if got := resolveTarget("trash"); got != vpath.TrashFocus {
		t.Errorf("trash resolved to %q", got)
	}
}

func TestDisplayPath(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{vpath.DesktopFocus, "Desktop"},
		{vpath.TrashFocus, "Trash"},
		{vpath.StateContext("recent"), "context:recent"},
		{"/home/user/docs", "/home/user/docs"},
	}
	for _, tc := range testCases {
		if got := displayPath(tc.input); got != tc.expected {
			t.Errorf("displayPath(%q): expected %q, got %q", tc.input, tc.expected, got)
		}
	}
}

func TestCommandTree(t *testing.T) {
	root := New()

	expected := []string{
		"open", "tabs", "close", "select", "back", "forward", "ls",
		"context", "mkdir", "mv", "rm", "pin", "recent", "roots",
		"trash", "watch", "state", "config",
	}
	for _, name := range expected {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}
