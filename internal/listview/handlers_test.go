package listview

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/orglist/internal/history"
)

func TestHandlers_QueryParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  QueryParams
	}{
		{
			name:  "empty location uses defaults",
			query: "",
			want:  QueryParams{Page: 1, PageSize: 5, OrderBy: "name"},
		},
		{
			name:  "location values",
			query: "page=3&page_size=10&order_by=-created",
			want:  QueryParams{Page: 3, PageSize: 10, OrderBy: "-created"},
		},
		{
			name:  "undecodable location uses defaults",
			query: "page=%zz&order_by=-name",
			want:  QueryParams{Page: 1, PageSize: 5, OrderBy: "name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.query)
			assert.Equal(t, tt.want, f.handlers.QueryParams())
		})
	}
}

func TestHandlers_Mount(t *testing.T) {
	f := newFixture("page=2&order_by=-name")

	require.True(t, f.run(f.handlers.Mount()))

	state := f.store.State()
	assert.Equal(t, 2, state.Page)
	assert.Equal(t, "name", state.SortedColumnKey)
	assert.Equal(t, Descending, state.SortOrder)
	assert.Equal(t, "order_by=-name&page=2&page_size=5", f.history.Query())
}

func TestHandlers_OnSortToggles(t *testing.T) {
	tests := []struct {
		name        string
		current     SortOrder
		wantOrderBy string
		wantOrder   SortOrder
	}{
		{name: "ascending becomes descending", current: Ascending, wantOrderBy: "-name", wantOrder: Descending},
		{name: "descending becomes ascending", current: Descending, wantOrderBy: "name", wantOrder: Ascending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture("")
			require.True(t, f.run(f.handlers.Mount()))

			req, err := f.handlers.OnSort("name", tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOrderBy, req.Params.OrderBy)

			require.True(t, f.run(req))
			state := f.store.State()
			assert.Equal(t, "name", state.SortedColumnKey)
			assert.Equal(t, tt.wantOrder, state.SortOrder)
		})
	}
}

func TestHandlers_OnSortResetsPageKeepsPageSize(t *testing.T) {
	f := newFixture("page=5&page_size=10&team=ops")
	require.True(t, f.run(f.handlers.Mount()))

	req, err := f.handlers.OnSort("created", Descending)
	require.NoError(t, err)

	assert.Equal(t, QueryParams{
		Page:     1,
		PageSize: 10,
		OrderBy:  "created",
		Extra:    map[string]string{"team": "ops"},
	}, req.Params)
}

func TestHandlers_OnSortUnknownColumn(t *testing.T) {
	f := newFixture("")

	req, err := f.handlers.OnSort("users", Ascending)
	require.ErrorIs(t, err, ErrUnknownColumn)
	assert.Nil(t, req)
	assert.Empty(t, f.fetcher.calls)
}

func TestHandlers_OnSetPage(t *testing.T) {
	f := newFixture("order_by=-modified")
	require.True(t, f.run(f.handlers.Mount()))

	req, err := f.handlers.OnSetPage("3", "10")
	require.NoError(t, err)
	assert.Equal(t, 3, req.Params.Page)
	assert.Equal(t, 10, req.Params.PageSize)
	assert.Equal(t, "-modified", req.Params.OrderBy)

	require.True(t, f.run(req))
	state := f.store.State()
	assert.Equal(t, 3, state.Page)
	assert.Equal(t, 10, state.PageSize)
	assert.Equal(t, 5, state.PageCount)
	assert.Equal(t, "modified", state.SortedColumnKey)
	assert.Equal(t, Descending, state.SortOrder)
}

func TestHandlers_OnSetPageInvalid(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		pageSize string
		wantErr  error
	}{
		{name: "non numeric page", page: "two", pageSize: "5", wantErr: ErrInvalidPage},
		{name: "zero page", page: "0", pageSize: "5", wantErr: ErrInvalidPage},
		{name: "non numeric size", page: "1", pageSize: "many", wantErr: ErrInvalidPageSize},
		{name: "size not allowed", page: "1", pageSize: "7", wantErr: ErrInvalidPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture("")
			req, err := f.handlers.OnSetPage(tt.page, tt.pageSize)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, req)
		})
	}
}

func TestHandlers_OnSearchKeepsView(t *testing.T) {
	f := newFixture("page=4&page_size=5&order_by=-created")
	require.True(t, f.run(f.handlers.Mount()))

	req := f.handlers.OnSearch()
	assert.Equal(t, QueryParams{Page: 4, PageSize: 5, OrderBy: "-created"}, req.Params)

	require.True(t, f.run(req))
	state := f.store.State()
	assert.Equal(t, 4, state.Page)
	assert.Equal(t, Descending, state.SortOrder)
	assert.Len(t, f.fetcher.calls, 2)
}

func TestHandlers_OnSelectAll(t *testing.T) {
	f := newFixture("")
	require.True(t, f.run(f.handlers.Mount()))

	f.handlers.OnSelectAll(true)
	var ids []int
	for _, r := range f.store.State().Results {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, ids, f.store.State().Selected.IDs())
	assert.True(t, f.handlers.Props().IsAllSelected)

	f.handlers.OnSelectAll(false)
	assert.Empty(t, f.store.State().Selected)
	assert.False(t, f.handlers.Props().IsAllSelected)
}

func TestHandlers_OnSelectTwiceRestores(t *testing.T) {
	f := newFixture("")
	require.True(t, f.run(f.handlers.Mount()))

	f.handlers.OnSelect(1)
	before := f.store.State().Selected

	f.handlers.OnSelect(4)
	assert.Equal(t, []int{1, 4}, f.store.State().Selected.IDs())

	f.handlers.OnSelect(4)
	assert.Equal(t, before, f.store.State().Selected)
	assert.Len(t, f.fetcher.calls, 1, "selection never fetches")
}

func TestHandlers_Props(t *testing.T) {
	f := newFixture("")
	require.NoError(t, f.orch.Load(context.Background(), f.handlers.QueryParams(WithPageSize(10))))

	f.handlers.OnSelect(2)
	props := f.handlers.Props()

	assert.Equal(t, 10, props.PageSize)
	assert.Len(t, props.Results, 10)
	assert.False(t, props.IsAllSelected)
	assert.Equal(t, []int{5, 10, 25, 50}, props.PageSizeOptions)
	assert.Len(t, props.Columns, 3)
	assert.Equal(t, "order_by=name&page=1&page_size=10", props.Location)
}

func TestNewView_InitialStateFromLocation(t *testing.T) {
	opts := DefaultOptions()
	hist := &countingHistory{Memory: history.NewMemory(history.Location{Path: opts.Path, Query: "page=4&order_by=-created"})}
	fetcher := &fakeFetcher{total: 47}

	h := NewView[org](fetcher, hist, opts)

	props := h.Props()
	assert.Equal(t, 4, props.Page)
	assert.Equal(t, DefaultPageSize, props.PageSize)
	assert.Equal(t, "created", props.SortedColumnKey)
	assert.Equal(t, Descending, props.SortOrder)
	assert.True(t, props.Loading)
	assert.Nil(t, props.Count)

	req := h.Mount()
	require.True(t, h.Complete(req.Do(context.Background())))
	props = h.Props()
	require.NotNil(t, props.Count)
	assert.Equal(t, 47, *props.Count)
	assert.Equal(t, 10, props.PageCount)
	assert.False(t, props.Loading)
}
