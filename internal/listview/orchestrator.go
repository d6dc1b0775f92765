package listview

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rshade/orglist/internal/logging"
	"github.com/rshade/orglist/internal/querycodec"
)

// Fetcher reads one page of a remote collection.
type Fetcher[T any] interface {
	Fetch(ctx context.Context, params QueryParams) (Page[T], error)
}

// History is the location boundary: it exposes the current query string and
// replaces the current entry. ReplaceIfChanged must be a no-op when path and
// query already match, and reports whether it wrote anything.
type History interface {
	Query() string
	ReplaceIfChanged(path, query string) bool
}

// Request is one initiated fetch. Do is the only method that may run off the
// event loop.
type Request[T any] struct {
	Token     uint64
	RequestID string
	Params    QueryParams

	sortedColumnKey string
	sortOrder       SortOrder
	fetcher         Fetcher[T]
}

// Result is the outcome of Request.Do.
type Result[T any] struct {
	Request *Request[T]
	Page    Page[T]
	Err     error
}

// Do calls the collection endpoint. It does not touch the store.
func (r *Request[T]) Do(ctx context.Context) Result[T] {
	ctx = logging.ContextWithRequestID(ctx, r.RequestID)
	page, err := r.fetcher.Fetch(ctx, r.Params)
	return Result[T]{Request: r, Page: page, Err: err}
}

// Orchestrator runs the fetch lifecycle for one list view.
type Orchestrator[T any] struct {
	store   *Store[T]
	fetcher Fetcher[T]
	history History
	path    string
	logger  zerolog.Logger

	// latest is the token of the most recently initiated request.
	latest uint64
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption[T any] func(*Orchestrator[T])

// WithLogger sets the orchestrator logger.
func WithLogger[T any](l zerolog.Logger) OrchestratorOption[T] {
	return func(o *Orchestrator[T]) {
		o.logger = logging.ComponentLogger(l, "listview")
	}
}

// NewOrchestrator wires a store, a fetcher and the history adapter. path is
// the location path written on every successful fetch.
func NewOrchestrator[T any](
	store *Store[T],
	fetcher Fetcher[T],
	history History,
	path string,
	opts ...OrchestratorOption[T],
) *Orchestrator[T] {
	o := &Orchestrator[T]{
		store:   store,
		fetcher: fetcher,
		history: history,
		path:    path,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Begin starts a fetch cycle for params: it marks the view as loading without
// clearing the current results and issues a new request token, superseding
// every request still in flight.
func (o *Orchestrator[T]) Begin(params QueryParams) *Request[T] {
	key, order := ParseOrderBy(params.OrderBy)

	o.latest++
	req := &Request[T]{
		Token:           o.latest,
		RequestID:       logging.NewRequestID(),
		Params:          params,
		sortedColumnKey: key,
		sortOrder:       order,
		fetcher:         o.fetcher,
	}

	o.store.Apply(func(s *ViewState[T]) {
		s.Loading = true
		s.Error = false
	})

	o.logger.Debug().
		Uint64("token", req.Token).
		Str("request_id", req.RequestID).
		Int("page", params.Page).
		Int("page_size", params.PageSize).
		Str("order_by", params.OrderBy).
		Msg("fetch started")

	return req
}

// Complete applies a result to the store. Results of superseded requests are
// dropped and Complete returns false; otherwise it returns true.
func (o *Orchestrator[T]) Complete(res Result[T]) bool {
	req := res.Request
	if req == nil || req.Token != o.latest {
		if req != nil {
			o.logger.Debug().
				Uint64("token", req.Token).
				Uint64("latest", o.latest).
				Str("request_id", req.RequestID).
				Msg("discarding stale response")
		}
		return false
	}

	defer o.store.Apply(func(s *ViewState[T]) {
		s.Loading = false
	})

	if res.Err != nil {
		o.logger.Warn().
			Err(res.Err).
			Str("request_id", req.RequestID).
			Msg("fetch failed")
		o.store.Apply(func(s *ViewState[T]) {
			s.Error = true
		})
		return true
	}

	params := req.Params
	count := res.Page.Count
	o.store.Apply(func(s *ViewState[T]) {
		s.Count = &count
		s.Page = params.Page
		s.PageCount = PageCount(count, params.PageSize)
		s.PageSize = params.PageSize
		s.SortOrder = req.sortOrder
		s.SortedColumnKey = req.sortedColumnKey
		s.Results = res.Page.Results
		s.Selected = Selection{}
	})

	o.syncLocation(params)

	o.logger.Debug().
		Str("request_id", req.RequestID).
		Int("count", count).
		Int("results", len(res.Page.Results)).
		Msg("fetch applied")
	return true
}

// Load runs a full fetch cycle synchronously and returns the fetch error.
func (o *Orchestrator[T]) Load(ctx context.Context, params QueryParams) error {
	res := o.Begin(params).Do(ctx)
	o.Complete(res)
	return res.Err
}

// syncLocation writes params to the current history entry when they differ.
func (o *Orchestrator[T]) syncLocation(params QueryParams) {
	query := querycodec.Encode(params.Values())
	if o.history.ReplaceIfChanged(o.path, query) {
		o.logger.Debug().Str("path", o.path).Str("query", query).Msg("location replaced")
	}
}

// PageCount returns ceil(count / pageSize), or 0 for an empty page size.
func PageCount(count, pageSize int) int {
	if pageSize <= 0 || count <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}
