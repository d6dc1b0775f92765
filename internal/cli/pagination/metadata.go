package pagination

import (
	"github.com/rshade/orglist/internal/listview"
)

// Meta describes where a printed page sits in the collection.
type Meta struct {
	CurrentPage int    `json:"current_page" yaml:"current_page"`
	PageSize    int    `json:"page_size"    yaml:"page_size"`
	TotalPages  int    `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int    `json:"total_items"  yaml:"total_items"`
	HasPrevious bool   `json:"has_previous" yaml:"has_previous"`
	HasNext     bool   `json:"has_next"     yaml:"has_next"`
	OrderBy     string `json:"order_by"     yaml:"order_by"`
}

// NewMeta builds page metadata from a loaded list state. The page count is
// the one the store computed when the page loaded.
func NewMeta[T any](state listview.ViewState[T]) Meta {
	total := 0
	if state.Count != nil {
		total = *state.Count
	}

	return Meta{
		CurrentPage: state.Page,
		PageSize:    state.PageSize,
		TotalPages:  state.PageCount,
		TotalItems:  total,
		HasPrevious: state.Page > 1,
		HasNext:     state.Page < state.PageCount,
		OrderBy:     listview.FormatOrderBy(state.SortedColumnKey, state.SortOrder),
	}
}
