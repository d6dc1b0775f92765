package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/orglist/internal/listview"
)

// Sort orders accepted by --sort.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// Flag names.
const (
	FlagPage     = "page"
	FlagPageSize = "page-size"
	FlagSort     = "sort"
)

// Validation errors.
var (
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'created:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
)

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// Params holds the pagination flags of one command invocation.
type Params struct {
	Page     int
	PageSize int
	Sort     string

	cmd *cobra.Command
}

// AddFlags registers --page, --page-size and --sort on cmd.
func AddFlags(cmd *cobra.Command) *Params {
	p := &Params{cmd: cmd}
	cmd.Flags().IntVar(&p.Page, FlagPage, listview.DefaultPage, "page number (1-based)")
	cmd.Flags().IntVar(&p.PageSize, FlagPageSize, listview.DefaultPageSize, "results per page")
	cmd.Flags().StringVar(&p.Sort, FlagSort, "", "sort column as field or field:asc|desc (e.g. created:desc)")
	return p
}

// changed reports whether the user set the flag. Params built outside a
// command treat every non-zero field as set.
func (p *Params) changed(name string) bool {
	if p.cmd != nil {
		return p.cmd.Flags().Changed(name)
	}
	switch name {
	case FlagPage:
		return p.Page != 0
	case FlagPageSize:
		return p.PageSize != 0
	default:
		return p.Sort != ""
	}
}

// Overrides validates the set flags against options and converts them into
// listview overrides.
func (p *Params) Overrides(options listview.Options) ([]listview.Override, error) {
	var overrides []listview.Override

	if p.changed(FlagPage) {
		if p.Page < listview.DefaultPage {
			return nil, fmt.Errorf("--page %d: %w", p.Page, listview.ErrInvalidPage)
		}
		overrides = append(overrides, listview.WithPage(p.Page))
	}
	if p.changed(FlagPageSize) {
		if !options.IsAllowedPageSize(p.PageSize) {
			return nil, fmt.Errorf("--page-size %d (allowed %v): %w",
				p.PageSize, options.PageSizeOptions, listview.ErrInvalidPageSize)
		}
		overrides = append(overrides, listview.WithPageSize(p.PageSize))
	}
	if p.changed(FlagSort) {
		orderBy, err := OrderBy(p.Sort, options)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, listview.WithOrderBy(orderBy))
	}
	return overrides, nil
}

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "name", "created:desc", "modified:asc".
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = SortOrderAsc
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}

// OrderBy converts a sort string into an order_by value for a sortable
// column of options.
func OrderBy(sortStr string, options listview.Options) (string, error) {
	field, order, err := ParseSort(sortStr)
	if err != nil {
		return "", err
	}
	if !options.IsSortable(field) {
		return "", fmt.Errorf("--sort %q: %w", field, listview.ErrUnknownColumn)
	}
	if order == SortOrderDesc {
		return listview.FormatOrderBy(field, listview.Descending), nil
	}
	return listview.FormatOrderBy(field, listview.Ascending), nil
}
