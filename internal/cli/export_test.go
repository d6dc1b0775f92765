package cli_test

import (
	"bufio"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/orglist/internal/cli"
	"github.com/rshade/orglist/internal/collection"
)

func readJSONLines(t *testing.T, out string) []collection.Organization {
	t.Helper()
	var orgs []collection.Organization
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var org collection.Organization
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &org))
		orgs = append(orgs, org)
	}
	require.NoError(t, scanner.Err())
	return orgs
}

func TestExport_AllPagesInOrder(t *testing.T) {
	baseURL := newMockEndpoint(t, 23)

	stdout, _, err := execute(t, nil,
		"export", "--base-url", baseURL, "--page-size", "5", "--concurrency", "3", "--sort", "name")
	require.NoError(t, err)

	orgs := readJSONLines(t, stdout)
	require.Len(t, orgs, 23)

	seen := make(map[int]bool, len(orgs))
	for i, org := range orgs {
		assert.False(t, seen[org.ID], "organization %d exported twice", org.ID)
		seen[org.ID] = true
		if i > 0 {
			assert.LessOrEqual(t, orgs[i-1].Name, org.Name)
		}
	}
}

func TestExport_DefaultPageSizeAndFilter(t *testing.T) {
	baseURL := newMockEndpoint(t, 60)

	stdout, _, err := execute(t, nil, "export", "--base-url", baseURL, "--name", "summit")
	require.NoError(t, err)

	orgs := readJSONLines(t, stdout)
	require.Len(t, orgs, 2)
	for _, org := range orgs {
		assert.Contains(t, strings.ToLower(org.Name), "summit")
	}
}

func TestExport_EmptyCollection(t *testing.T) {
	baseURL := newMockEndpoint(t, 0)

	stdout, _, err := execute(t, nil, "export", "--base-url", baseURL)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestExport_InvalidConcurrency(t *testing.T) {
	baseURL := newMockEndpoint(t, 3)

	_, _, err := execute(t, nil, "export", "--base-url", baseURL, "--concurrency", "0")
	require.ErrorIs(t, err, cli.ErrInvalidConcurrency)
}
