package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Location
	}{
		{name: "path and query", raw: "/organizations?page=2", want: Location{Path: "/organizations", Query: "page=2"}},
		{name: "query only", raw: "?order_by=-name", want: Location{Path: "/fallback", Query: "order_by=-name"}},
		{name: "path only", raw: "/teams", want: Location{Path: "/teams"}},
		{name: "empty", raw: "", want: Location{Path: "/fallback"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLocation(tt.raw, "/fallback"))
		})
	}
}

func TestLocation_String(t *testing.T) {
	assert.Equal(t, "/organizations?page=1", Location{Path: "/organizations", Query: "page=1"}.String())
	assert.Equal(t, "/organizations", Location{Path: "/organizations"}.String())
}

func TestMemory_ReplaceIfChanged(t *testing.T) {
	h := NewMemory(Location{Path: "/organizations"})

	assert.True(t, h.ReplaceIfChanged("/organizations", "page=1"))
	assert.False(t, h.ReplaceIfChanged("/organizations", "page=1"))
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, "page=1", h.Query())

	assert.True(t, h.ReplaceIfChanged("/organizations", "page=2"))
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, "page=2", h.Query())
}

func TestMemory_BackForward(t *testing.T) {
	h := NewMemory(Location{Path: "/organizations", Query: "page=1"})
	h.Push(Location{Path: "/organizations", Query: "page=2"})
	h.Push(Location{Path: "/organizations", Query: "page=3"})
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Index())

	loc, ok := h.Back()
	assert.True(t, ok)
	assert.Equal(t, "page=2", loc.Query)

	loc, ok = h.Back()
	assert.True(t, ok)
	assert.Equal(t, "page=1", loc.Query)

	_, ok = h.Back()
	assert.False(t, ok)

	loc, ok = h.Forward()
	assert.True(t, ok)
	assert.Equal(t, "page=2", loc.Query)

	// Pushing from the middle drops forward entries.
	h.Push(Location{Path: "/organizations", Query: "page=9"})
	assert.Equal(t, 3, h.Len())
	_, ok = h.Forward()
	assert.False(t, ok)
	assert.Equal(t, "page=9", h.Query())
}

func TestMemory_ReplaceKeepsNeighbours(t *testing.T) {
	h := NewMemory(Location{Path: "/organizations", Query: "page=1"})
	h.Push(Location{Path: "/organizations", Query: "page=2"})

	h.ReplaceIfChanged("/organizations", "page=2&page_size=10")
	loc, _ := h.Back()
	assert.Equal(t, "page=1", loc.Query)
	loc, _ = h.Forward()
	assert.Equal(t, "page=2&page_size=10", loc.Query)
}
