package listview

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Location query keys.
const (
	KeyPage     = "page"
	KeyPageSize = "page_size"
	KeyOrderBy  = "order_by"
)

// descendingPrefix marks a descending order_by value.
const descendingPrefix = "-"

// Defaults for the organizations list.
const (
	DefaultPage     = 1
	DefaultPageSize = 5
	DefaultOrderBy  = "name"
)

// Validation errors.
var (
	ErrInvalidPage     = errors.New("page must be an integer >= 1")
	ErrInvalidPageSize = errors.New("page size must be one of the allowed page sizes")
	ErrUnknownColumn   = errors.New("unknown or non-sortable column")
)

// SortOrder is the direction of the active sort column.
type SortOrder string

// Sort orders.
const (
	Ascending  SortOrder = "ascending"
	Descending SortOrder = "descending"
)

// Toggle returns the opposite order.
func (o SortOrder) Toggle() SortOrder {
	if o == Descending {
		return Ascending
	}
	return Descending
}

// Column describes one list column.
type Column struct {
	Name       string
	Key        string
	IsSortable bool
	IsNumeric  bool
}

// QueryParams fully determines one fetch. Extra carries location keys the
// list does not interpret; they are sent to the endpoint and written back to
// the location untouched.
type QueryParams struct {
	Page     int
	PageSize int
	OrderBy  string
	Extra    map[string]string
}

// Values flattens the params into location key/value pairs.
func (p QueryParams) Values() map[string]string {
	values := make(map[string]string, len(p.Extra)+3) //nolint:mnd // page, page_size, order_by.
	for k, v := range p.Extra {
		values[k] = v
	}
	values[KeyPage] = strconv.Itoa(p.Page)
	values[KeyPageSize] = strconv.Itoa(p.PageSize)
	values[KeyOrderBy] = p.OrderBy
	return values
}

// ParseOrderBy splits an order_by value into its column key and direction.
// A leading "-" selects descending; no prefix means ascending.
//
//nolint:nonamedreturns // Named returns document the pair.
func ParseOrderBy(orderBy string) (columnKey string, order SortOrder) {
	if key, ok := strings.CutPrefix(orderBy, descendingPrefix); ok {
		return key, Descending
	}
	return orderBy, Ascending
}

// FormatOrderBy is the inverse of ParseOrderBy.
func FormatOrderBy(columnKey string, order SortOrder) string {
	if order == Descending {
		return descendingPrefix + columnKey
	}
	return columnKey
}

// Options configures a list: its columns, defaults and allowed page sizes.
type Options struct {
	Path            string
	Columns         []Column
	PageSizeOptions []int
	Defaults        QueryParams
}

// OrganizationColumns are the columns of the organizations list.
func OrganizationColumns() []Column {
	return []Column{
		{Name: "Name", Key: "name", IsSortable: true},
		{Name: "Modified", Key: "modified", IsSortable: true, IsNumeric: true},
		{Name: "Created", Key: "created", IsSortable: true, IsNumeric: true},
	}
}

// DefaultOptions returns the organizations list configuration.
func DefaultOptions() Options {
	return Options{
		Path:            "/organizations",
		Columns:         OrganizationColumns(),
		PageSizeOptions: []int{5, 10, 25, 50}, //nolint:mnd // Page size choices.
		Defaults: QueryParams{
			Page:     DefaultPage,
			PageSize: DefaultPageSize,
			OrderBy:  DefaultOrderBy,
		},
	}
}

// Validate checks that the defaults are consistent with the columns and page sizes.
func (o Options) Validate() error {
	if len(o.PageSizeOptions) == 0 {
		return errors.New("at least one page size option is required")
	}
	if o.Defaults.Page < 1 {
		return fmt.Errorf("default page: %w", ErrInvalidPage)
	}
	if !o.IsAllowedPageSize(o.Defaults.PageSize) {
		return fmt.Errorf("default page size %d: %w", o.Defaults.PageSize, ErrInvalidPageSize)
	}
	key, _ := ParseOrderBy(o.Defaults.OrderBy)
	if !o.IsSortable(key) {
		return fmt.Errorf("default order %q: %w", o.Defaults.OrderBy, ErrUnknownColumn)
	}
	return nil
}

// IsAllowedPageSize reports whether size is one of the page size options.
func (o Options) IsAllowedPageSize(size int) bool {
	return slices.Contains(o.PageSizeOptions, size)
}

// IsSortable reports whether key names a sortable column.
func (o Options) IsSortable(key string) bool {
	for _, c := range o.Columns {
		if c.Key == key {
			return c.IsSortable
		}
	}
	return false
}

// Override replaces individual fields of resolved QueryParams.
type Override func(*QueryParams)

// WithPage overrides the page.
func WithPage(page int) Override {
	return func(p *QueryParams) { p.Page = page }
}

// WithPageSize overrides the page size.
func WithPageSize(size int) Override {
	return func(p *QueryParams) { p.PageSize = size }
}

// WithOrderBy overrides the order_by value.
func WithOrderBy(orderBy string) Override {
	return func(p *QueryParams) { p.OrderBy = orderBy }
}

// WithExtra sets a pass-through key. An empty value removes it.
func WithExtra(key, value string) Override {
	return func(p *QueryParams) {
		p.Extra = maps.Clone(p.Extra)
		if value == "" {
			delete(p.Extra, key)
			return
		}
		if p.Extra == nil {
			p.Extra = make(map[string]string)
		}
		p.Extra[key] = value
	}
}

// Resolve layers defaults, location values and overrides, in that order.
// Location values that are not valid for this list fall back to the default
// for that key; keys the list does not know are kept in Extra.
func (o Options) Resolve(location map[string]string, overrides ...Override) QueryParams {
	params := o.Defaults
	params.Extra = nil

	for key, raw := range location {
		switch key {
		case KeyPage:
			if page, err := strconv.Atoi(raw); err == nil && page >= 1 {
				params.Page = page
			}
		case KeyPageSize:
			if size, err := strconv.Atoi(raw); err == nil && o.IsAllowedPageSize(size) {
				params.PageSize = size
			}
		case KeyOrderBy:
			if col, _ := ParseOrderBy(raw); o.IsSortable(col) {
				params.OrderBy = raw
			}
		default:
			if params.Extra == nil {
				params.Extra = make(map[string]string)
			}
			params.Extra[key] = raw
		}
	}

	for _, apply := range overrides {
		apply(&params)
	}
	return params
}
