package vpath

import "testing"

func TestNormalize(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		// Virtual identifiers pass through untouched
		{DesktopFocus, DesktopFocus},
		{TrashFocus, TrashFocus},
		{"state-context:ext:png", "state-context:ext:png"},

		// Case folding
		{"/Home/User/Documents", "/home/user/documents"},
		{"/home/user/documents", "/home/user/documents"},

		// Separator canonicalization
		{`C:\Users\Pirri\Desktop`, "c:/users/pirri/desktop"},
		{"/home/user\\mixed/path", "/home/user/mixed/path"},

		// Trailing separators and dot segments
		{"/home/user/", "/home/user"},
		{"/home/user/./pics", "/home/user/pics"},
		{"/home/user/docs/../pics", "/home/user/pics"},
		{"/", "/"},

		{"", ""},
	}

	for _, tc := range testCases {
		if got := Normalize(tc.in); got != tc.expected {
			t.Errorf("Normalize(%q): expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}

func TestEqual(t *testing.T) {
	testCases := []struct {
		a, b     string
		expected bool
	}{
		{"/home/User/Pics", "/home/user/pics", true},
		{"/home/user/pics/", "/home/user/pics", true},
		{`C:\Users\Pirri`, "c:/users/pirri", true},
		{"/home/user/pics", "/home/user/docs", false},
		{DesktopFocus, DesktopFocus, true},
		{DesktopFocus, TrashFocus, false},
		{DesktopFocus, "/home/user/Desktop", false},
		{"state-context:recent", "state-context:recent", true},
		{"state-context:recent", "state-context:large", false},
	}

	for _, tc := range testCases {
		if got := Equal(tc.a, tc.b); got != tc.expected {
			t.Errorf("Equal(%q, %q): expected %v, got %v", tc.a, tc.b, tc.expected, got)
		}
	}
}

func TestContains(t *testing.T) {
	testCases := []struct {
		parent, child string
		expected      bool
	}{
		{"/home/user", "/home/user/pics", true},
		{"/home/user", "/home/user/pics/2024", true},
		{"/home/User", "/home/user/Pics", true},

		// Sibling with a common name prefix is not a descendant
		{"/home/user/pic", "/home/user/pics", false},

		// Equality is not containment
		{"/home/user", "/home/user", false},
		{"/home/user", "/home/user/", false},

		// Reversed relationship
		{"/home/user/pics", "/home/user", false},

		// Root contains everything absolute
		{"/", "/home", true},
		{"/", "/", false},

		// Virtual identifiers never participate
		{DesktopFocus, "/home/user/Desktop/folder", false},
		{"/home/user", TrashFocus, false},
		{"state-context:recent", "/home/user", false},
	}

	for _, tc := range testCases {
		if got := Contains(tc.parent, tc.child); got != tc.expected {
			t.Errorf("Contains(%q, %q): expected %v, got %v", tc.parent, tc.child, tc.expected, got)
		}
	}
}

func TestIsVirtual(t *testing.T) {
	testCases := []struct {
		id           string
		virtual      bool
		focus        bool
		stateContext bool
	}{
		{DesktopFocus, true, true, false},
		{TrashFocus, true, true, false},
		{"state-context:pending", true, false, true},
		{"state-context:", true, false, true},
		{"/home/user", false, false, false},
		{"desktop_focus", false, false, false}, // identifiers are case-sensitive
		{"", false, false, false},
	}

	for _, tc := range testCases {
		if got := IsVirtual(tc.id); got != tc.virtual {
			t.Errorf("IsVirtual(%q): expected %v, got %v", tc.id, tc.virtual, got)
		}
		if got := IsVirtualFocus(tc.id); got != tc.focus {
			t.Errorf("IsVirtualFocus(%q): expected %v, got %v", tc.id, tc.focus, got)
		}
		if got := IsStateContext(tc.id); got != tc.stateContext {
			t.Errorf("IsStateContext(%q): expected %v, got %v", tc.id, tc.stateContext, got)
		}
	}
}

func TestStateContextName(t *testing.T) {
	testCases := []struct {
		id       string
		expected string
	}{
		{StateContext("ext:png"), "ext:png"},
		{"state-context:size:>10MB", "size:>10MB"},
		{"/home/user", ""},
		{DesktopFocus, ""},
	}

	for _, tc := range testCases {
		if got := StateContextName(tc.id); got != tc.expected {
			t.Errorf("StateContextName(%q): expected %q, got %q", tc.id, tc.expected, got)
		}
	}
}
