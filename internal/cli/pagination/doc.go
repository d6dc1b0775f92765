// Package pagination provides the page, page-size and sort flags shared by the
// non-interactive list commands, and the metadata printed alongside a page.
//
// Flags map onto location keys: --page and --page-size onto page and
// page_size, and --sort "field[:asc|desc]" onto order_by ("field" or
// "-field"). Only flags the user set override the location; everything else
// resolves from the location and the list defaults.
package pagination
