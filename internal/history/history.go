// Package history is an in-memory stand-in for a browser history: a stack of
// locations with a cursor, push/replace writes and back/forward navigation.
package history

import (
	"strings"
)

// Location is one history entry: a path plus its query string (without "?").
type Location struct {
	Path  string
	Query string
}

// ParseLocation splits "path?query" into a Location. A bare "?query" keeps
// fallbackPath.
func ParseLocation(raw, fallbackPath string) Location {
	path, query, _ := strings.Cut(raw, "?")
	if path == "" {
		path = fallbackPath
	}
	return Location{Path: path, Query: query}
}

// String renders the location the way an address bar shows it.
func (l Location) String() string {
	if l.Query == "" {
		return l.Path
	}
	return l.Path + "?" + l.Query
}

// Memory is a history stack. It is not safe for concurrent use.
type Memory struct {
	entries []Location
	index   int
}

// NewMemory creates a history holding a single initial entry.
func NewMemory(initial Location) *Memory {
	return &Memory{entries: []Location{initial}}
}

// Location returns the current entry.
func (m *Memory) Location() Location {
	return m.entries[m.index]
}

// Query returns the query string of the current entry.
func (m *Memory) Query() string {
	return m.Location().Query
}

// Push adds loc after the current entry, dropping any forward entries.
func (m *Memory) Push(loc Location) {
	m.entries = append(m.entries[:m.index+1], loc)
	m.index++
}

// ReplaceIfChanged overwrites the current entry with path and query unless it
// already holds exactly that location. It reports whether it wrote.
func (m *Memory) ReplaceIfChanged(path, query string) bool {
	next := Location{Path: path, Query: query}
	if m.entries[m.index] == next {
		return false
	}
	m.entries[m.index] = next
	return true
}

// Back moves to the previous entry. It returns false at the start of history.
func (m *Memory) Back() (Location, bool) {
	if m.index == 0 {
		return m.Location(), false
	}
	m.index--
	return m.Location(), true
}

// Forward moves to the next entry. It returns false at the end of history.
func (m *Memory) Forward() (Location, bool) {
	if m.index == len(m.entries)-1 {
		return m.Location(), false
	}
	m.index++
	return m.Location(), true
}

// Len returns the number of entries.
func (m *Memory) Len() int {
	return len(m.entries)
}

// Index returns the position of the current entry.
func (m *Memory) Index() int {
	return m.index
}
