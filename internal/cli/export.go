package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/orglist/internal/cli/pagination"
	"github.com/rshade/orglist/internal/collection"
	"github.com/rshade/orglist/internal/listview"
)

// defaultExportConcurrency bounds parallel page fetches.
const defaultExportConcurrency = 4

// ErrInvalidConcurrency is returned for --concurrency below 1.
var ErrInvalidConcurrency = errors.New("concurrency must be >= 1")

type exportOptions struct {
	pageSize    int
	sort        string
	name        string
	concurrency int
}

// newExportCmd creates the command that streams the whole collection.
func newExportCmd(a *app) *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every organization as JSON lines",
		Long: `Fetches the first page to learn the total count, then the remaining pages
concurrently, and writes one JSON object per organization in collection order.`,
		Example: `  orglist export > organizations.jsonl
  orglist export --sort created:desc --concurrency 8
  orglist export --name acme --page-size 25`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runExport(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.pageSize, pagination.FlagPageSize, 0, "results per request (default: largest allowed page size)")
	cmd.Flags().StringVar(&opts.sort, pagination.FlagSort, "", "sort column as field or field:asc|desc")
	cmd.Flags().StringVar(&opts.name, "name", "", "only organizations whose name contains this text")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", defaultExportConcurrency, "parallel page requests")
	return cmd
}

func (a *app) runExport(cmd *cobra.Command, opts exportOptions) error {
	if opts.concurrency < 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidConcurrency, opts.concurrency)
	}

	options := a.cfg.ListOptions()
	params := options.Resolve(nil, listview.WithPageSize(slices.Max(options.PageSizeOptions)))
	if opts.pageSize != 0 {
		if !options.IsAllowedPageSize(opts.pageSize) {
			return fmt.Errorf("--page-size %d (allowed %v): %w",
				opts.pageSize, options.PageSizeOptions, listview.ErrInvalidPageSize)
		}
		params.PageSize = opts.pageSize
	}
	if opts.sort != "" {
		orderBy, err := pagination.OrderBy(opts.sort, options)
		if err != nil {
			return err
		}
		params.OrderBy = orderBy
	}
	if opts.name != "" {
		listview.WithExtra(nameFilterKey, opts.name)(&params)
	}

	pages, progress, err := a.fetchAllPages(cmd, a.newClient(), params, opts.concurrency)
	if err != nil {
		return err
	}

	written, err := writeJSONLines(cmd.OutOrStdout(), pages)
	a.logger.Info().
		Int("organizations", written).
		Int("pages", len(pages)).
		Str("order_by", params.OrderBy).
		Float64("items_per_second", progress.itemsPerSecond()).
		Msg("export finished")
	return err
}

// fetchAllPages reads page 1, then pages 2..N with at most concurrency
// requests in flight. Pages are returned in page order.
func (a *app) fetchAllPages(
	cmd *cobra.Command,
	fetcher listview.Fetcher[collection.Organization],
	params listview.QueryParams,
	concurrency int,
) ([][]collection.Organization, *exportProgress, error) {
	ctx := cmd.Context()

	params.Page = listview.DefaultPage
	first, err := fetcher.Fetch(ctx, params)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching page 1: %w", err)
	}

	pageCount := listview.PageCount(first.Count, params.PageSize)
	pages := make([][]collection.Organization, max(pageCount, 1))
	pages[0] = first.Results

	progress := newExportProgress(first.Count, pageCount)
	progress.addPage(len(first.Results))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for page := 2; page <= pageCount; page++ {
		p := params
		p.Page = page
		g.Go(func() error {
			res, fetchErr := fetcher.Fetch(gctx, p)
			if fetchErr != nil {
				return fmt.Errorf("fetching page %d: %w", p.Page, fetchErr)
			}
			pages[p.Page-1] = res.Results
			progress.addPage(len(res.Results))

			done, items := progress.snapshot()
			a.logger.Debug().
				Int("page", p.Page).
				Int("pages_done", done).
				Int("organizations_done", items).
				Float64("percent", progress.percentComplete()).
				Msg("export page fetched")
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, nil, err
	}
	return pages, progress, nil
}

func writeJSONLines(w io.Writer, pages [][]collection.Organization) (int, error) {
	enc := json.NewEncoder(w)
	written := 0
	for _, page := range pages {
		for _, org := range page {
			if err := enc.Encode(org); err != nil {
				return written, fmt.Errorf("writing organization %d: %w", org.ID, err)
			}
			written++
		}
	}
	return written, nil
}
