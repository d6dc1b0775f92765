// Command orglist browses a paginated organizations collection.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rshade/orglist/internal/cli"
	"github.com/rshade/orglist/internal/cli/pagination"
	"github.com/rshade/orglist/internal/listview"
	"github.com/rshade/orglist/internal/querycodec"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev" //nolint:gochecknoglobals // Set by the linker.

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}

func run() error {
	return cli.NewRootCmd(version).ExecuteContext(context.Background())
}

// exitCode maps invalid user input to exitUsage and every other failure to
// exitError.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, listview.ErrInvalidPage),
		errors.Is(err, listview.ErrInvalidPageSize),
		errors.Is(err, listview.ErrUnknownColumn),
		errors.Is(err, pagination.ErrInvalidSortFormat),
		errors.Is(err, pagination.ErrInvalidSortOrder),
		errors.Is(err, pagination.ErrEmptySortField),
		errors.Is(err, querycodec.ErrDecode),
		errors.Is(err, cli.ErrUnknownOutput),
		errors.Is(err, cli.ErrInvalidConcurrency),
		errors.Is(err, cli.ErrInvalidMockCount),
		errors.Is(err, cli.ErrNotTerminal):
		return exitUsage
	default:
		return exitError
	}
}
