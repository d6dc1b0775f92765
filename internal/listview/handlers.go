package listview

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/rshade/orglist/internal/querycodec"
)

// Handlers translate user gestures into new fetches or selection changes.
// Methods that fetch return the started Request; the caller runs Do and
// hands the Result back to Orchestrator.Complete.
type Handlers[T Identifiable] struct {
	orchestrator *Orchestrator[T]
	store        *Store[T]
	history      History
	options      Options
	logger       zerolog.Logger
}

// NewHandlers creates the interaction handlers for one list view.
func NewHandlers[T Identifiable](
	orchestrator *Orchestrator[T],
	store *Store[T],
	history History,
	options Options,
) *Handlers[T] {
	return &Handlers[T]{
		orchestrator: orchestrator,
		store:        store,
		history:      history,
		options:      options,
		logger:       orchestrator.logger,
	}
}

// NewView wires a store, an orchestrator and handlers for one list view. The
// initial state is resolved from the current location.
func NewView[T Identifiable](
	fetcher Fetcher[T],
	history History,
	options Options,
	opts ...OrchestratorOption[T],
) *Handlers[T] {
	store := NewStore(ViewState[T]{})
	orchestrator := NewOrchestrator(store, fetcher, history, options.Path, opts...)
	h := NewHandlers(orchestrator, store, history, options)
	initial := InitialState[T](h.QueryParams())
	store.Apply(func(s *ViewState[T]) { *s = initial })
	return h
}

// QueryParams resolves the current location against the list defaults and
// applies overrides. An undecodable location resolves to the defaults.
func (h *Handlers[T]) QueryParams(overrides ...Override) QueryParams {
	location, err := querycodec.Parse(h.history.Query())
	if err != nil {
		h.logger.Debug().Err(err).Msg("location not decodable, using defaults")
		location = nil
	}
	return h.options.Resolve(location, overrides...)
}

// Mount starts the fetch for the current location. It is used when the view
// first appears and after history navigation.
func (h *Handlers[T]) Mount() *Request[T] {
	return h.orchestrator.Begin(h.QueryParams())
}

// Complete hands a finished request back to the orchestrator. It reports
// whether the result was applied.
func (h *Handlers[T]) Complete(res Result[T]) bool {
	return h.orchestrator.Complete(res)
}

// OnSort toggles the sort of columnKey given its current order: ascending
// becomes descending ("-key") and descending becomes ascending ("key"). The
// page size is kept and the page resets to 1.
func (h *Handlers[T]) OnSort(columnKey string, currentOrder SortOrder) (*Request[T], error) {
	if !h.options.IsSortable(columnKey) {
		return nil, fmt.Errorf("sort by %q: %w", columnKey, ErrUnknownColumn)
	}

	state := h.store.State()
	orderBy := FormatOrderBy(columnKey, currentOrder.Toggle())

	params := h.QueryParams(
		WithOrderBy(orderBy),
		WithPageSize(state.PageSize),
		WithPage(DefaultPage),
	)
	return h.orchestrator.Begin(params), nil
}

// OnSetPage moves to pageNumber with pageSize, keeping the current sort.
func (h *Handlers[T]) OnSetPage(pageNumber, pageSize string) (*Request[T], error) {
	page, err := strconv.Atoi(pageNumber)
	if err != nil || page < 1 {
		return nil, fmt.Errorf("page %q: %w", pageNumber, ErrInvalidPage)
	}
	size, err := strconv.Atoi(pageSize)
	if err != nil || !h.options.IsAllowedPageSize(size) {
		return nil, fmt.Errorf("page size %q: %w", pageSize, ErrInvalidPageSize)
	}

	state := h.store.State()
	params := h.QueryParams(
		WithPage(page),
		WithPageSize(size),
		WithOrderBy(FormatOrderBy(state.SortedColumnKey, state.SortOrder)),
	)
	return h.orchestrator.Begin(params), nil
}

// OnSearch re-runs the current view unchanged.
func (h *Handlers[T]) OnSearch() *Request[T] {
	state := h.store.State()
	params := h.QueryParams(
		WithPage(state.Page),
		WithPageSize(state.PageSize),
		WithOrderBy(FormatOrderBy(state.SortedColumnKey, state.SortOrder)),
	)
	return h.orchestrator.Begin(params)
}

// OnSelectAll selects every loaded record, or none.
func (h *Handlers[T]) OnSelectAll(isSelected bool) {
	h.store.Apply(func(s *ViewState[T]) {
		if !isSelected {
			s.Selected = Selection{}
			return
		}
		selected := make(Selection, len(s.Results))
		for _, r := range s.Results {
			selected[r.GetID()] = struct{}{}
		}
		s.Selected = selected
	})
}

// OnSelect toggles id in the selection.
func (h *Handlers[T]) OnSelect(id int) {
	h.store.Apply(func(s *ViewState[T]) {
		s.Selected = s.Selected.Toggle(id)
	})
}

// Props is the render-time snapshot handed to the presentation layer.
type Props[T any] struct {
	ViewState[T]

	IsAllSelected   bool
	Columns         []Column
	PageSizeOptions []int
	Location        string
}

// Props snapshots the current state for rendering.
func (h *Handlers[T]) Props() Props[T] {
	state := h.store.State()
	return Props[T]{
		ViewState:       state,
		IsAllSelected:   state.Selected.Len() == len(state.Results),
		Columns:         h.options.Columns,
		PageSizeOptions: h.options.PageSizeOptions,
		Location:        h.history.Query(),
	}
}

// Options returns the list configuration.
func (h *Handlers[T]) Options() Options {
	return h.options
}
