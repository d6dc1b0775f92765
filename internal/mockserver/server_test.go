package mockserver_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/orglist/internal/collection"
	"github.com/rshade/orglist/internal/mockserver"
)

type listBody struct {
	Count    int                       `json:"count"`
	Next     *string                   `json:"next"`
	Previous *string                   `json:"previous"`
	Results  []collection.Organization `json:"results"`
	Detail   string                    `json:"detail"`
}

func newServer(t *testing.T, count int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(mockserver.New(mockserver.Config{Count: count}, zerolog.Nop()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, query string) (int, listBody) {
	t.Helper()
	resp, err := http.Get(srv.URL + collection.OrganizationsPath + "?" + query)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body listBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func ids(orgs []collection.Organization) []int {
	out := make([]int, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, o.ID)
	}
	return out
}

func TestListOrganizations_Paging(t *testing.T) {
	srv := newServer(t, 12)

	status, body := get(t, srv, "page=1&page_size=5&order_by=id")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 12, body.Count)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(body.Results))
	require.NotNil(t, body.Next)
	assert.Contains(t, *body.Next, "page=2")
	assert.Nil(t, body.Previous)

	status, body = get(t, srv, "page=3&page_size=5&order_by=id")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []int{11, 12}, ids(body.Results))
	assert.Nil(t, body.Next)
	require.NotNil(t, body.Previous)
}

func TestListOrganizations_Sorting(t *testing.T) {
	srv := newServer(t, 30)

	_, asc := get(t, srv, "page=1&page_size=30&order_by=name")
	_, desc := get(t, srv, "page=1&page_size=30&order_by=-name")
	require.Len(t, asc.Results, 30)
	require.Len(t, desc.Results, 30)

	for i := 1; i < len(asc.Results); i++ {
		assert.LessOrEqual(t, asc.Results[i-1].Name, asc.Results[i].Name)
		assert.GreaterOrEqual(t, desc.Results[i-1].Name, desc.Results[i].Name)
	}

	_, created := get(t, srv, "page=1&page_size=30&order_by=-created")
	for i := 1; i < len(created.Results); i++ {
		assert.False(t, created.Results[i].Created.After(created.Results[i-1].Created))
	}
}

func TestListOrganizations_NameFilter(t *testing.T) {
	srv := newServer(t, 48)

	status, body := get(t, srv, "name__icontains=acme&page_size=50")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, body.Count)
	for _, o := range body.Results {
		assert.Contains(t, strings.ToLower(o.Name), "acme")
	}
}

func TestListOrganizations_EmptyResultsEncodeAsArray(t *testing.T) {
	tests := []struct {
		name  string
		count int
		query string
	}{
		{"no name matches", 12, "name__icontains=zzz"},
		{"empty collection", 0, "page=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.count)
			resp, err := http.Get(srv.URL + collection.OrganizationsPath + "?" + tt.query)
			require.NoError(t, err)
			defer resp.Body.Close()
			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, string(raw), `"results":[]`)
			assert.Contains(t, string(raw), `"count":0`)
		})
	}
}

func TestListOrganizations_Errors(t *testing.T) {
	srv := newServer(t, 12)

	tests := []struct {
		name   string
		query  string
		status int
		detail string
	}{
		{"page past end", "page=4&page_size=5", http.StatusNotFound, "Invalid page."},
		{"page zero", "page=0", http.StatusNotFound, "Invalid page."},
		{"page not a number", "page=abc", http.StatusNotFound, "Invalid page."},
		{"unknown order field", "order_by=color", http.StatusBadRequest, `Cannot order by field "color".`},
		{"bad page size", "page_size=-1", http.StatusBadRequest, "Invalid page size."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, srv, tt.query)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.detail, body.Detail)
		})
	}
}

func TestListOrganizations_EmptyCollection(t *testing.T) {
	srv := newServer(t, 0)

	status, body := get(t, srv, "page=1")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, body.Count)
	assert.Empty(t, body.Results)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newServer(t, 30)
	get(t, srv, "page=1")
	get(t, srv, "page=2&order_by=-name")
	for _, path := range []string{"/nope", "/api/v2/teams/"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var series []string
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.HasPrefix(line, "orglist_mock_http_requests_total{") {
			series = append(series, line)
		}
	}
	// Queries and unknown paths never become labels of their own.
	assert.ElementsMatch(t, []string{
		`orglist_mock_http_requests_total{method="GET",route="/api/v2/organizations",status="200"} 2`,
		`orglist_mock_http_requests_total{method="GET",route="unmatched",status="404"} 2`,
	}, series)
}

func TestGenerateOrganizations_Deterministic(t *testing.T) {
	epoch := mockserver.Config{}.Epoch
	a := mockserver.GenerateOrganizations(30, epoch)
	b := mockserver.GenerateOrganizations(30, epoch)
	assert.Equal(t, a, b)
	assert.Equal(t, "Acme 2", a[24].Name)
}
