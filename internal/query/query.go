// Package query parses and evaluates the small directive language behind
// state contexts: named logical views that gather folders by criteria
// instead of by location.
package query

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Directive types
type DirectiveType int

const (
	DirName DirectiveType = iota
	DirContains
	DirExt
	DirSize
	DirEntries
	DirModified
	DirDepth
)

// Comparison operators for counts/dates
type Operator int

const (
	OpNone Operator = iota
	OpGreater
	OpLess
	OpGreaterEq
	OpLessEq
	OpEquals
)

// Directive represents a single query directive
type Directive struct {
	Type     DirectiveType
	Value    string
	Operator Operator
	NumValue int64     // Parsed count or depth
	TimeVal  time.Time // Parsed date
}

// Query holds parsed directives
type Query struct {
	Directives []Directive
	Raw        string
}

// Parse parses a context query string into directives
// Examples:
//   - "proj" -> folders whose name contains "proj"
//   - "name:photo*" -> folder names matching a glob
//   - "contains:*.psd" -> folders with an immediate child matching the glob
//   - "ext:png" -> folders holding a file with that extension
//   - "size:>10MB" -> folders whose immediate files total more than 10MB
//   - "entries:>20" -> folders with more than 20 children
//   - "modified:>week" -> folders touched within the last week
//   - "depth:2" -> descend two levels when gathering
func Parse(input string) *Query {
	q := &Query{Raw: input}
	input = strings.TrimSpace(input)
	if input == "" {
		return q
	}

	// Split by spaces, but respect quotes
	for _, part := range splitQuoted(input) {
		q.Directives = append(q.Directives, parseDirective(part))
	}

	return q
}

func splitQuoted(s string) []string {
	var parts []string
	var current strings.Builder
	inQuotes := false
	quoteChar := rune(0)

	for _, r := range s {
		switch {
		case (r == '"' || r == '\'') && !inQuotes:
			inQuotes = true
			quoteChar = r
		case r == quoteChar && inQuotes:
			inQuotes = false
			quoteChar = 0
		case r == ' ' && !inQuotes:
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

func parseDirective(s string) Directive {
	// Check for directive:value pattern
	if idx := strings.Index(s, ":"); idx > 0 {
		directive := strings.ToLower(s[:idx])
		value := s[idx+1:]
		value = strings.Trim(value, "\"'")

		switch directive {
		case "name", "folder":
			return Directive{Type: DirName, Value: value}

		case "contains", "has":
			return Directive{Type: DirContains, Value: value}

		case "ext", "extension":
			if !strings.HasPrefix(value, ".") {
				value = "." + value
			}
			return Directive{Type: DirExt, Value: strings.ToLower(value)}

		case "size":
			op, numStr := parseOperator(value)
			bytes, _ := humanize.ParseBytes(strings.TrimSpace(numStr))
			return Directive{Type: DirSize, Value: value, Operator: op, NumValue: int64(bytes)}

		case "entries", "count":
			op, numStr := parseOperator(value)
			n, _ := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
			return Directive{Type: DirEntries, Value: value, Operator: op, NumValue: n}

		case "modified", "date", "mtime":
			op, dateStr := parseOperator(value)
			t := parseDate(dateStr)
			return Directive{Type: DirModified, Value: value, Operator: op, TimeVal: t}

		case "depth":
			n, _ := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
			return Directive{Type: DirDepth, Value: value, NumValue: n}
		}
	}

	// Default to a name search
	return Directive{Type: DirName, Value: s}
}

func parseOperator(s string) (Operator, string) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, ">="):
		return OpGreaterEq, strings.TrimSpace(s[2:])
	case strings.HasPrefix(s, "<="):
		return OpLessEq, strings.TrimSpace(s[2:])
	case strings.HasPrefix(s, ">"):
		return OpGreater, strings.TrimSpace(s[1:])
	case strings.HasPrefix(s, "<"):
		return OpLess, strings.TrimSpace(s[1:])
	case strings.HasPrefix(s, "="):
		return OpEquals, strings.TrimSpace(s[1:])
	default:
		return OpEquals, s
	}
}

// parseDate parses date strings like "2024-01-01", "2024-01", "today", "week"
func parseDate(s string) time.Time {
	s = strings.ToLower(strings.TrimSpace(s))
	now := time.Now()

	switch s {
	case "today":
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case "yesterday":
		y, m, d := now.AddDate(0, 0, -1).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case "week":
		return now.AddDate(0, 0, -7)
	case "month":
		return now.AddDate(0, -1, 0)
	case "year":
		return now.AddDate(-1, 0, 0)
	}

	formats := []string{
		"2006-01-02",
		"2006-01",
		"2006/01/02",
		"01/02/2006",
		"Jan 2, 2006",
	}
	for _, fmt := range formats {
		if t, err := time.Parse(fmt, s); err == nil {
			return t
		}
	}

	return time.Time{}
}

// MaxDepth returns how deep gathering should descend, defaulting to one
// level when the query has no depth directive.
func (q *Query) MaxDepth() int {
	for _, d := range q.Directives {
		if d.Type == DirDepth && d.NumValue > 0 {
			return int(d.NumValue)
		}
	}
	return 1
}

// IsEmpty returns true if query has no directives
func (q *Query) IsEmpty() bool {
	return len(q.Directives) == 0
}

// Matcher evaluates folders against a query
type Matcher struct {
	query    *Query
	listFunc func(path string) ([]os.DirEntry, error)
}

// NewMatcher creates a new Matcher for the given query
func NewMatcher(q *Query) *Matcher {
	return &Matcher{
		query:    q,
		listFunc: os.ReadDir,
	}
}

// Match checks if a folder matches all directives in the query (AND logic)
func (m *Matcher) Match(path string, info os.FileInfo) bool {
	if !info.IsDir() {
		return false
	}

	// All directives must match (implicit AND)
	for _, d := range m.query.Directives {
		if !m.matchDirective(d, path, info) {
			return false
		}
	}

	return true
}

func (m *Matcher) matchDirective(d Directive, path string, info os.FileInfo) bool {
	switch d.Type {
	case DirName:
		return matchGlob(strings.ToLower(info.Name()), strings.ToLower(d.Value))

	case DirContains:
		children, err := m.listFunc(path)
		if err != nil {
			return false
		}
		want := strings.ToLower(d.Value)
		for _, child := range children {
			if matchGlob(strings.ToLower(child.Name()), want) {
				return true
			}
		}
		return false

	case DirExt:
		children, err := m.listFunc(path)
		if err != nil {
			return false
		}
		for _, child := range children {
			if child.IsDir() {
				continue
			}
			if strings.ToLower(filepath.Ext(child.Name())) == d.Value {
				return true
			}
		}
		return false

	case DirSize:
		children, err := m.listFunc(path)
		if err != nil {
			return false
		}
		var total int64
		for _, child := range children {
			if child.IsDir() {
				continue
			}
			if fi, err := child.Info(); err == nil {
				total += fi.Size()
			}
		}
		return compareInt(total, d.NumValue, d.Operator)

	case DirEntries:
		children, err := m.listFunc(path)
		if err != nil {
			return false
		}
		return compareInt(int64(len(children)), d.NumValue, d.Operator)

	case DirModified:
		if d.TimeVal.IsZero() {
			return true
		}
		return compareTime(info.ModTime(), d.TimeVal, d.Operator)

	case DirDepth:
		// Depth shapes the walk, not the match.
		return true
	}

	return true
}

// matchGlob does simple glob matching with * wildcards
func matchGlob(name, pattern string) bool {
	// If pattern has no wildcards, do substring match
	if !strings.Contains(pattern, "*") {
		return strings.Contains(name, pattern)
	}

	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return name == pattern
	}

	// Check prefix
	if parts[0] != "" && !strings.HasPrefix(name, parts[0]) {
		return false
	}

	// Check suffix
	last := parts[len(parts)-1]
	if last != "" && !strings.HasSuffix(name, last) {
		return false
	}

	// Check middle parts exist in order
	pos := len(parts[0])
	for _, part := range parts[1 : len(parts)-1] {
		if part == "" {
			continue
		}
		idx := strings.Index(name[pos:], part)
		if idx < 0 {
			return false
		}
		pos += idx + len(part)
	}

	return true
}

func compareInt(val, target int64, op Operator) bool {
	switch op {
	case OpGreater:
		return val > target
	case OpLess:
		return val < target
	case OpGreaterEq:
		return val >= target
	case OpLessEq:
		return val <= target
	default:
		return val == target
	}
}

func compareTime(val, target time.Time, op Operator) bool {
	switch op {
	case OpGreater:
		return val.After(target)
	case OpLess:
		return val.Before(target)
	case OpGreaterEq:
		return val.After(target) || val.Equal(target)
	case OpLessEq:
		return val.Before(target) || val.Equal(target)
	default:
		// For equals, compare just the date part
		vy, vm, vd := val.Date()
		ty, tm, td := target.Date()
		return vy == ty && vm == tm && vd == td
	}
}
