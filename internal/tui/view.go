package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/orglist/internal/collection"
	"github.com/rshade/orglist/internal/listview"
)

const (
	timeLayout      = "2006-01-02 15:04"
	checkboxWidth   = 3
	countWidth      = 7
	timestampWidth  = 18
	minNameWidth    = 16
	sortAscending   = " ▲"
	sortDescending  = " ▼"
	checkboxOn      = "[x]"
	checkboxOff     = "[ ]"
	loadingLabel    = "Loading…"
	fetchFailedText = "Could not load organizations"
)

// View renders the list (Bubble Tea interface).
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	props := m.handlers.Props()

	sections := []string{
		TitleStyle.Render("Organizations"),
		m.renderAddressBar(),
		m.table.View(),
		m.renderFooter(props),
		m.renderStatus(props),
		SubtleStyle.Render(helpText),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderAddressBar() string {
	var content string
	if m.editing {
		content = m.location.View()
	} else {
		content = LabelStyle.Render("location: ") + ValueStyle.Render(m.history.Location().String())
	}
	return AddressStyle.Width(m.width - borderPadding).Render(content)
}

func (m *Model) renderFooter(props listview.Props[collection.Organization]) string {
	if props.Count == nil {
		return LabelStyle.Render(m.printer.Sprintf("Page %d", props.Page))
	}
	footer := m.printer.Sprintf("Page %d of %d · %d organizations · %d per page",
		props.Page, max(props.PageCount, 1), *props.Count, props.PageSize)
	if n := props.Selected.Len(); n > 0 {
		footer += m.printer.Sprintf(" · %d selected", n)
	}
	return LabelStyle.Render(footer)
}

func (m *Model) renderStatus(props listview.Props[collection.Organization]) string {
	switch {
	case props.Loading:
		return m.spinner.View() + " " + SubtleStyle.Render(loadingLabel)
	case props.Error:
		msg := fetchFailedText
		if m.lastErr != nil && IsFetchError(m.lastErr) {
			msg += ": " + m.lastErr.Error()
		}
		return ErrorStyle.Render(msg)
	case m.lastErr != nil:
		return ErrorStyle.Render(m.lastErr.Error())
	case len(props.Results) == 0:
		return SubtleStyle.Render("No organizations found.")
	default:
		return OKStyle.Render("Ready")
	}
}

// buildTable creates the table for the current props and window size.
func (m *Model) buildTable() table.Model {
	t := table.New(
		table.WithColumns(m.tableColumns(m.handlers.Props())),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	return t
}

// refreshTable re-renders rows from the store and keeps the cursor in range.
func (m *Model) refreshTable() {
	props := m.handlers.Props()
	cursor := m.table.Cursor()

	// Columns and rows must agree in length before the table re-renders, so
	// clear rows first.
	m.table.SetRows(nil)
	m.table.SetColumns(m.tableColumns(props))
	m.table.SetRows(organizationRows(props))
	m.table.SetHeight(m.tableHeight())

	// An empty table parks the cursor at -1, so only a populated one is
	// clamped.
	if n := len(props.Results); n > 0 {
		m.table.SetCursor(min(max(cursor, 0), n-1))
	}
}

func (m *Model) tableHeight() int {
	return max(m.height-chromeHeight, minTableRows)
}

func (m *Model) tableColumns(props listview.Props[collection.Organization]) []table.Column {
	fixed := checkboxWidth + 2*timestampWidth + 2*countWidth
	nameWidth := max(m.width-fixed-borderPadding*4, minNameWidth) //nolint:mnd // Cell padding.

	columns := []table.Column{{Title: checkboxFor(props.IsAllSelected && len(props.Results) > 0), Width: checkboxWidth}}
	for _, c := range props.Columns {
		width := timestampWidth
		if c.Key == "name" {
			width = nameWidth
		}
		columns = append(columns, table.Column{Title: columnTitle(c, props), Width: width})
	}
	columns = append(columns,
		table.Column{Title: "Users", Width: countWidth},
		table.Column{Title: "Teams", Width: countWidth},
	)
	return columns
}

func columnTitle(c listview.Column, props listview.Props[collection.Organization]) string {
	if c.Key != props.SortedColumnKey {
		return c.Name
	}
	if props.SortOrder == listview.Descending {
		return c.Name + sortDescending
	}
	return c.Name + sortAscending
}

func organizationRows(props listview.Props[collection.Organization]) []table.Row {
	rows := make([]table.Row, 0, len(props.Results))
	for _, org := range props.Results {
		row := table.Row{checkboxFor(props.Selected.Has(org.ID))}
		for _, c := range props.Columns {
			row = append(row, cell(org, c.Key))
		}
		row = append(row,
			strconv.Itoa(org.SummaryFields.RelatedFieldCounts.Users),
			strconv.Itoa(org.SummaryFields.RelatedFieldCounts.Teams),
		)
		rows = append(rows, row)
	}
	return rows
}

func cell(org collection.Organization, key string) string {
	switch key {
	case "name":
		return strings.TrimSpace(org.Name)
	case "modified":
		return org.Modified.Local().Format(timeLayout)
	case "created":
		return org.Created.Local().Format(timeLayout)
	default:
		return ""
	}
}

func checkboxFor(on bool) string {
	if on {
		return checkboxOn
	}
	return checkboxOff
}
