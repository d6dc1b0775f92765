package cli_test

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rshade/orglist/internal/cli"
	"github.com/rshade/orglist/internal/mockserver"
)

// newMockEndpoint serves count generated organizations for the test.
func newMockEndpoint(t *testing.T, count int) string {
	t.Helper()
	srv := httptest.NewServer(mockserver.New(mockserver.Config{Count: count}, zerolog.Nop()).Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

// execute runs the root command with an isolated HOME and env, returning
// stdout and stderr.
func execute(t *testing.T, env map[string]string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	lookupEnv := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmdWithEnv("test", lookupEnv)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
