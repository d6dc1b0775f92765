package listview

import (
	"context"
	"errors"
	"fmt"

	"github.com/rshade/orglist/internal/history"
)

// org is a minimal record used by the listview tests.
type org struct {
	ID   int
	Name string
}

func (o org) GetID() int { return o.ID }

var errUnavailable = errors.New("service unavailable")

// fakeFetcher serves pages of a fixed total, or fails when err is set.
type fakeFetcher struct {
	total int
	err   error
	calls []QueryParams
}

func (f *fakeFetcher) Fetch(_ context.Context, params QueryParams) (Page[org], error) {
	f.calls = append(f.calls, params)
	if f.err != nil {
		return Page[org]{}, f.err
	}

	var results []org
	start := (params.Page - 1) * params.PageSize
	for i := start; i < start+params.PageSize && i < f.total; i++ {
		results = append(results, org{ID: i + 1, Name: fmt.Sprintf("org-%02d", i+1)})
	}
	return Page[org]{Count: f.total, Results: results}, nil
}

// countingHistory records how many writes reach the underlying history.
type countingHistory struct {
	*history.Memory
	writes int
}

func (h *countingHistory) ReplaceIfChanged(path, query string) bool {
	changed := h.Memory.ReplaceIfChanged(path, query)
	if changed {
		h.writes++
	}
	return changed
}

type fixture struct {
	store    *Store[org]
	fetcher  *fakeFetcher
	history  *countingHistory
	orch     *Orchestrator[org]
	handlers *Handlers[org]
}

func newFixture(query string) *fixture {
	opts := DefaultOptions()
	f := &fixture{
		fetcher: &fakeFetcher{total: 47},
		history: &countingHistory{Memory: history.NewMemory(history.Location{Path: opts.Path, Query: query})},
	}
	f.store = NewStore(InitialState[org](opts.Defaults))
	f.orch = NewOrchestrator[org](f.store, f.fetcher, f.history, opts.Path)
	f.handlers = NewHandlers(f.orch, f.store, f.history, opts)
	return f
}

// run executes req synchronously the way the event loop would.
func (f *fixture) run(req *Request[org]) bool {
	return f.orch.Complete(req.Do(context.Background()))
}
