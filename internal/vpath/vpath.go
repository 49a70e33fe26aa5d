// Package vpath canonicalizes folder identifiers for comparison and lookup.
//
// A ClarityDesk tab is identified either by a filesystem path or by one of a
// small closed set of virtual identifiers: the desktop focus, the trash
// focus, and state-context markers. Display and persistence always keep the
// caller's original string; the normalized form produced here is a
// comparison key only and must never be handed to OS path APIs.
//
// Everything in this package is a pure string function. In particular the
// virtual-identifier checks must not call into the filesystem or into any
// folder-resolution helper.
package vpath

import (
	"path"
	"strings"
)

const (
	// DesktopFocus is the virtual identifier for the desktop view.
	DesktopFocus = "DESKTOP_FOCUS"

	// TrashFocus is the virtual identifier for the trash view.
	TrashFocus = "TRASH_FOCUS"

	// stateContextPrefix marks logical views backed by a query instead of a
	// folder, e.g. "state-context:ext:png".
	stateContextPrefix = "state-context:"
)

// IsVirtualFocus reports whether id is one of the two virtual focus
// identifiers.
func IsVirtualFocus(id string) bool {
	return id == DesktopFocus || id == TrashFocus
}

// IsStateContext reports whether id is a state-context marker.
func IsStateContext(id string) bool {
	return strings.HasPrefix(id, stateContextPrefix)
}

// IsVirtual reports whether id is any virtual identifier. Prefix/equality
// checks only.
func IsVirtual(id string) bool {
	return IsVirtualFocus(id) || IsStateContext(id)
}

// StateContext builds a state-context marker for the given name.
func StateContext(name string) string {
	return stateContextPrefix + name
}

// StateContextName returns the name carried by a state-context marker, or ""
// if id is not one.
func StateContextName(id string) string {
	if !IsStateContext(id) {
		return ""
	}
	return strings.TrimPrefix(id, stateContextPrefix)
}

// Normalize returns the comparison key for a folder identifier. Virtual
// identifiers come back unchanged. Real paths are case-folded, separator-
// canonicalized to forward slashes and cleaned; the result is suitable only
// for equality and prefix checks.
func Normalize(p string) string {
	if p == "" || IsVirtual(p) {
		return p
	}

	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(p)
	return strings.ToLower(p)
}

// Equal reports whether two folder identifiers refer to the same folder
// under normalized comparison.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Contains reports whether child is a strict descendant of parent. Virtual
// identifiers have no descendants and are never descendants themselves.
func Contains(parent, child string) bool {
	if IsVirtual(parent) || IsVirtual(child) {
		return false
	}

	p := Normalize(parent)
	c := Normalize(child)
	if p == "" || c == "" || p == c {
		return false
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return strings.HasPrefix(c, p)
}
