package cli

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/orglist/internal/mockserver"
)

// Mock endpoint defaults.
const (
	defaultMockAddr  = "127.0.0.1:8052"
	defaultMockCount = 120
)

// ErrInvalidMockCount is returned for a negative --count.
var ErrInvalidMockCount = errors.New("count must be >= 0")

// newServeMockCmd creates the command that serves a local collection.
func newServeMockCmd(a *app) *cobra.Command {
	var (
		addr    string
		count   int
		latency time.Duration
		jitter  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve-mock",
		Short: "Serve a local organizations collection for demos and tests",
		Long: `Serves generated organizations at /api/v2/organizations/ with the same
paging, ordering and error responses as the real endpoint. --latency and
--jitter slow responses down so rapid navigation produces out-of-order
completions. Prometheus metrics are served at /metrics.`,
		Example: `  orglist serve-mock
  orglist serve-mock --addr :9000 --count 500 --latency 100ms --jitter 900ms`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 0 {
				return fmt.Errorf("%w, got %d", ErrInvalidMockCount, count)
			}

			srv := mockserver.New(mockserver.Config{
				Count:   count,
				Latency: latency,
				Jitter:  jitter,
			}, a.logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cmd.Printf("Serving %d organizations at http://%s/api/v2/organizations/\n", count, addr)
			if err := srv.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serving mock endpoint: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultMockAddr, "listen address")
	cmd.Flags().IntVar(&count, "count", defaultMockCount, "number of generated organizations")
	cmd.Flags().DurationVar(&latency, "latency", 0, "fixed delay added to every list response")
	cmd.Flags().DurationVar(&jitter, "jitter", 0, "random extra delay in [0, jitter)")
	return cmd
}
