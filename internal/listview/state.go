package listview

import (
	"maps"
	"slices"
)

// Identifiable is the only thing the list needs to know about a record: its
// selection key.
type Identifiable interface {
	GetID() int
}

// Page is one page of a remote collection.
type Page[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

// Selection is a set of record ids.
type Selection map[int]struct{}

// NewSelection builds a selection from ids.
func NewSelection(ids ...int) Selection {
	s := make(Selection, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is selected.
func (s Selection) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of selected ids.
func (s Selection) Len() int {
	return len(s)
}

// IDs returns the selected ids in ascending order.
func (s Selection) IDs() []int {
	return slices.Sorted(maps.Keys(s))
}

// Toggle returns a copy of s with id added if absent or removed if present.
func (s Selection) Toggle(id int) Selection {
	next := maps.Clone(s)
	if next == nil {
		next = Selection{}
	}
	if next.Has(id) {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	return next
}

// ViewState is everything the presentation layer renders.
type ViewState[T any] struct {
	Page            int
	PageSize        int
	SortedColumnKey string
	SortOrder       SortOrder
	// Count is nil until the first successful fetch.
	Count     *int
	PageCount int
	Loading   bool
	Error     bool
	Results   []T
	Selected  Selection
}

// clone copies the slice and map fields so a snapshot cannot be mutated
// through a later Apply.
func (s ViewState[T]) clone() ViewState[T] {
	s.Results = slices.Clone(s.Results)
	s.Selected = maps.Clone(s.Selected)
	if s.Selected == nil {
		s.Selected = Selection{}
	}
	if s.Count != nil {
		count := *s.Count
		s.Count = &count
	}
	return s
}

// Store is the single source of truth for a list view.
type Store[T any] struct {
	state ViewState[T]
}

// NewStore creates a store holding initial.
func NewStore[T any](initial ViewState[T]) *Store[T] {
	return &Store[T]{state: initial.clone()}
}

// InitialState is the state a list starts in before its first fetch.
func InitialState[T any](params QueryParams) ViewState[T] {
	key, order := ParseOrderBy(params.OrderBy)
	return ViewState[T]{
		Page:            params.Page,
		PageSize:        params.PageSize,
		SortedColumnKey: key,
		SortOrder:       order,
		Loading:         true,
		Selected:        Selection{},
	}
}

// State returns a snapshot of the current state.
func (s *Store[T]) State() ViewState[T] {
	return s.state.clone()
}

// Apply merges a partial update into the state. Updates are applied in call
// order; the last write to a field wins.
func (s *Store[T]) Apply(update func(*ViewState[T])) {
	update(&s.state)
}
