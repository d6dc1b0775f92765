// Package tui is the terminal presentation of the organizations list. The
// Bubble Tea update loop is the single writer of the list state: fetches run
// in commands and their results are applied back in Update.
package tui

import (
	"context"
	"errors"
	"slices"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/orglist/internal/collection"
	"github.com/rshade/orglist/internal/history"
	"github.com/rshade/orglist/internal/listview"
	"github.com/rshade/orglist/internal/logging"
)

// loadedMsg carries a finished fetch back to the update loop.
type loadedMsg struct {
	result listview.Result[collection.Organization]
}

// Model is the Bubble Tea model for the interactive organizations list.
type Model struct {
	ctx      context.Context
	handlers *listview.Handlers[collection.Organization]
	history  *history.Memory
	logger   zerolog.Logger
	printer  *message.Printer

	table    table.Model
	spinner  spinner.Model
	location textinput.Model
	editing  bool

	// lastErr is the most recent fetch or input error, shown in the status line.
	lastErr error

	width    int
	height   int
	quitting bool
}

// NewModel creates the list model. hist must be the same history the
// handlers were built with.
func NewModel(
	ctx context.Context,
	handlers *listview.Handlers[collection.Organization],
	hist *history.Memory,
	logger zerolog.Logger,
) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SubtleStyle

	ti := textinput.New()
	ti.Prompt = "location: "
	ti.CharLimit = 512

	m := &Model{
		ctx:      ctx,
		handlers: handlers,
		history:  hist,
		logger:   logging.ComponentLogger(logger, "tui"),
		printer:  message.NewPrinter(language.English),
		spinner:  sp,
		location: ti,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.table = m.buildTable()
	return m
}

// Init mounts the list (Bubble Tea interface).
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch(m.handlers.Mount()))
}

// Update handles messages (Bubble Tea interface).
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshTable()
		return m, nil
	case loadedMsg:
		m.handleLoaded(msg)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if m.editing {
			return m.handleLocationInput(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

// fetch runs req off the update loop.
func (m *Model) fetch(req *listview.Request[collection.Organization]) tea.Cmd {
	if req == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return loadedMsg{result: req.Do(ctx)}
	}
}

func (m *Model) handleLoaded(msg loadedMsg) {
	if !m.handlers.Complete(msg.result) {
		return
	}
	m.lastErr = msg.result.Err
	if msg.result.Err != nil {
		m.logger.Warn().Err(msg.result.Err).Msg("organizations fetch failed")
	}
	m.refreshTable()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	props := m.handlers.Props()

	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case keySelect:
		if org, ok := m.cursorOrganization(props); ok {
			m.handlers.OnSelect(org.ID)
			m.refreshTable()
		}
		return m, nil
	case keySelectAll:
		m.handlers.OnSelectAll(!props.IsAllSelected)
		m.refreshTable()
		return m, nil
	case keySortColumn:
		return m, m.sortNextColumn(props)
	case keySortOrder:
		req, err := m.handlers.OnSort(props.SortedColumnKey, props.SortOrder)
		return m, m.start(req, err)
	case keyNextPage, keyRight:
		if props.PageCount > 0 && props.Page >= props.PageCount {
			return m, nil
		}
		return m, m.setPage(props.Page+1, props.PageSize)
	case keyPrevPage, keyLeft:
		if props.Page <= 1 {
			return m, nil
		}
		return m, m.setPage(props.Page-1, props.PageSize)
	case keyBiggerPage:
		return m, m.stepPageSize(props, 1)
	case keySmallPage:
		return m, m.stepPageSize(props, -1)
	case keyRefresh:
		return m, m.fetch(m.handlers.OnSearch())
	case keyLocation:
		m.editing = true
		m.location.SetValue(m.history.Location().String())
		m.location.CursorEnd()
		return m, m.location.Focus()
	case keyBack:
		if _, ok := m.history.Back(); !ok {
			return m, nil
		}
		return m, m.fetch(m.handlers.Mount())
	case keyForward:
		if _, ok := m.history.Forward(); !ok {
			return m, nil
		}
		return m, m.fetch(m.handlers.Mount())
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleLocationInput edits the address bar. Enter pushes the typed location
// and mounts it; Esc cancels.
func (m *Model) handleLocationInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter:
		m.editing = false
		m.location.Blur()
		loc := history.ParseLocation(m.location.Value(), m.handlers.Options().Path)
		m.history.Push(loc)
		return m, m.fetch(m.handlers.Mount())
	case keyEsc:
		m.editing = false
		m.location.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.location, cmd = m.location.Update(msg)
	return m, cmd
}

func (m *Model) start(req *listview.Request[collection.Organization], err error) tea.Cmd {
	if err != nil {
		m.lastErr = err
		return nil
	}
	return m.fetch(req)
}

func (m *Model) setPage(page, pageSize int) tea.Cmd {
	req, err := m.handlers.OnSetPage(strconv.Itoa(page), strconv.Itoa(pageSize))
	return m.start(req, err)
}

// stepPageSize moves to the next or previous allowed page size and back to
// page 1.
func (m *Model) stepPageSize(props listview.Props[collection.Organization], step int) tea.Cmd {
	options := props.PageSizeOptions
	idx := slices.Index(options, props.PageSize)
	next := idx + step
	if idx < 0 || next < 0 || next >= len(options) {
		return nil
	}
	return m.setPage(listview.DefaultPage, options[next])
}

// sortNextColumn moves the sort to the next sortable column, ascending.
func (m *Model) sortNextColumn(props listview.Props[collection.Organization]) tea.Cmd {
	var sortable []string
	for _, c := range props.Columns {
		if c.IsSortable {
			sortable = append(sortable, c.Key)
		}
	}
	if len(sortable) == 0 {
		return nil
	}
	idx := slices.Index(sortable, props.SortedColumnKey)
	key := sortable[(idx+1)%len(sortable)]

	// OnSort toggles the order it is given, so passing descending yields an
	// ascending sort on the new column.
	req, err := m.handlers.OnSort(key, listview.Descending)
	return m.start(req, err)
}

func (m *Model) cursorOrganization(props listview.Props[collection.Organization]) (collection.Organization, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(props.Results) {
		return collection.Organization{}, false
	}
	return props.Results[i], true
}

// Err returns the last error shown in the status line.
func (m *Model) Err() error {
	return m.lastErr
}

// Selected returns the ids of the selected organizations.
func (m *Model) Selected() []int {
	return m.handlers.Props().Selected.IDs()
}

// IsFetchError reports whether err came from the collection endpoint rather
// than from local input.
func IsFetchError(err error) bool {
	var statusErr *collection.StatusError
	return errors.As(err, &statusErr) || errors.Is(err, collection.ErrMalformedResponse)
}
