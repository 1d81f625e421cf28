package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/pagetable/internal/browse"
	"github.com/rshade/pagetable/internal/pagination"
	"github.com/rshade/pagetable/internal/records"
	listview "github.com/rshade/pagetable/internal/tui/list"
)

const (
	defaultTableHeight = 12
	searchCharLimit    = 128
	// chromeHeight is the lines taken by everything around the table.
	chromeHeight = 8
)

// BrowserOptions configures a BrowserModel.
type BrowserOptions struct {
	Rows          int
	RowsOptions   []int
	Height        int
	DiscardStale  bool
	SendsRows     bool
	ToastDuration time.Duration
}

type toast struct {
	id   int
	text string
}

// BrowserModel is the interactive record table. All table state lives in a
// browse.State; the model only owns widgets and turns browse effects into
// commands.
//
//nolint:recvcheck // Bubble Tea models use value receivers for Update/View, pointer receivers only for helpers.
type BrowserModel struct {
	ctx    context.Context //nolint:containedctx // Fetch commands run after Update returns.
	runner *browse.Runner

	data  browse.State
	state ViewState

	table     table.Model
	search    textinput.Model
	pager     paginator.Model
	selection *listview.VirtualListModel[records.Record]
	loading   *LoadingState
	help      help.Model
	keys      keyMap

	detail        records.Record
	toast         toast
	toastDuration time.Duration
	rowsOptions   []int
	width         int
	height        int
	initCmd       tea.Cmd
}

// NewBrowserModel creates the table and issues the request for page 1. The
// returned model's Init starts that request.
func NewBrowserModel(ctx context.Context, runner *browse.Runner, opts BrowserOptions) BrowserModel {
	ti := textinput.New()
	ti.Placeholder = "name or email"
	ti.Prompt = "Search: "
	ti.CharLimit = searchCharLimit

	pg := paginator.New()
	pg.Type = paginator.Arabic

	height := opts.Height
	if height <= 0 {
		height = defaultTableHeight
	}

	rowsOptions := opts.RowsOptions
	if len(rowsOptions) == 0 {
		rowsOptions = []int{pagination.DefaultRows}
	}

	m := BrowserModel{
		ctx:    ctx,
		runner: runner,
		data: browse.NewState(browse.Options{
			Rows:         opts.Rows,
			DiscardStale: opts.DiscardStale,
			SendsRows:    opts.SendsRows,
		}),
		state:         ViewStateList,
		search:        ti,
		pager:         pg,
		loading:       NewLoadingState("Loading page..."),
		help:          help.New(),
		keys:          defaultKeyMap(),
		toastDuration: opts.ToastDuration,
		rowsOptions:   rowsOptions,
	}
	m.table = buildRecordTable(nil, height)

	m, m.initCmd = m.dispatch(browse.Mounted{})
	return m
}

// Init starts the initial page request (Bubble Tea interface).
func (m BrowserModel) Init() tea.Cmd {
	return m.initCmd
}

// State returns the browse state the model renders from.
func (m BrowserModel) State() browse.State {
	return m.data
}

// ViewState returns the current screen.
func (m BrowserModel) ViewState() ViewState {
	return m.state
}

// Update handles messages (Bubble Tea interface).
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if h := msg.Height - chromeHeight; h > 0 {
			m.table.SetHeight(h)
		}
		m.table.SetColumns(recordColumns(msg.Width, m.data))
		return m, nil

	case pageResultMsg:
		return m.dispatch(msg.event)

	case spinner.TickMsg:
		if !m.data.Loading() {
			return m, nil
		}
		return m, m.loading.Update(msg)

	case toastExpiredMsg:
		if msg.id == m.toast.id {
			m.toast.text = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m BrowserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keyCtrlC {
		return m.quit()
	}
	if m.data.OverlayOpen {
		return m.handleOverlayInput(msg)
	}

	switch m.state {
	case ViewStateList:
		return m.handleListKeypress(msg)
	case ViewStateDetail:
		return m.handleDetailKeypress(msg)
	case ViewStateSelection:
		return m.handleSelectionKeypress(msg)
	case ViewStateQuitting:
		return m, nil
	}
	return m, nil
}

const keyCtrlC = "ctrl+c"

func (m BrowserModel) quit() (tea.Model, tea.Cmd) {
	m.runner.CancelAll()
	m.state = ViewStateQuitting
	return m, tea.Quit
}

// handleOverlayInput routes keys to the search box while it is open.
func (m BrowserModel) handleOverlayInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type { //nolint:exhaustive // Every other key edits the query.
	case tea.KeyEnter:
		m.search.Blur()
		return m.dispatch(browse.SelectMatching{})
	case tea.KeyEsc:
		m.search.Blur()
		return m.dispatch(browse.OverlayDismissed{})
	}

	var inputCmd tea.Cmd
	m.search, inputCmd = m.search.Update(msg)
	if m.search.Value() == m.data.Query {
		return m, inputCmd
	}

	next, cmd := m.dispatch(browse.QueryChanged{Query: m.search.Value()})
	return next, tea.Batch(inputCmd, cmd)
}

//nolint:gocyclo,cyclop // One case per key binding.
func (m BrowserModel) handleListKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Toggle):
		if r, ok := m.cursorRecord(); ok {
			return m.dispatch(browse.RowToggled{ID: r.ID})
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleAll):
		return m.dispatch(browse.ToggleAllVisible{})

	case key.Matches(msg, m.keys.Clear):
		return m.dispatch(browse.ClearSelection{})

	case key.Matches(msg, m.keys.Prev):
		return m.dispatch(browse.PrevPage{})

	case key.Matches(msg, m.keys.Next):
		return m.dispatch(browse.NextPage{})

	case key.Matches(msg, m.keys.PagerPrev):
		return m.dispatch(m.data.PaginatorStep(-1))

	case key.Matches(msg, m.keys.PagerNext):
		return m.dispatch(m.data.PaginatorStep(1))

	case key.Matches(msg, m.keys.PagerFirst):
		return m.dispatch(m.data.PaginatorFirst())

	case key.Matches(msg, m.keys.PagerLast):
		return m.dispatch(m.data.PaginatorLast())

	case key.Matches(msg, m.keys.RowsMore):
		return m.dispatch(m.data.PaginatorRows(stepRows(m.rowsOptions, m.data.Rows, 1)))

	case key.Matches(msg, m.keys.RowsLess):
		return m.dispatch(m.data.PaginatorRows(stepRows(m.rowsOptions, m.data.Rows, -1)))

	case key.Matches(msg, m.keys.Search):
		m.search.SetValue(m.data.Query)
		m.search.CursorEnd()
		focus := m.search.Focus()
		next, cmd := m.dispatch(browse.OverlayToggled{})
		return next, tea.Batch(focus, cmd)

	case key.Matches(msg, m.keys.ClearSearch):
		if m.data.Query == "" {
			return m, nil
		}
		m.search.SetValue("")
		return m.dispatch(browse.QueryChanged{Query: ""})

	case key.Matches(msg, m.keys.Sort):
		return m.dispatch(browse.SortChanged{
			Field: pagination.NextSortField(m.data.SortField),
			Order: m.data.SortOrder,
		})

	case key.Matches(msg, m.keys.SortOrder):
		order := pagination.SortOrderDesc
		if m.data.SortOrder == pagination.SortOrderDesc {
			order = pagination.SortOrderAsc
		}
		return m.dispatch(browse.SortChanged{Field: m.data.SortField, Order: order})

	case key.Matches(msg, m.keys.Detail):
		if r, ok := m.cursorRecord(); ok {
			m.detail = r
			m.state = ViewStateDetail
		}
		return m, nil

	case key.Matches(msg, m.keys.Selection):
		m.selection = newSelectionList(m.data.Selection, m.width, m.table.Height())
		m.state = ViewStateSelection
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m BrowserModel) handleDetailKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "esc", "enter", "backspace":
		m.state = ViewStateList
	}
	return m, nil
}

func (m BrowserModel) handleSelectionKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "esc", "v", "backspace":
		m.state = ViewStateList
		return m, nil
	case "x", " ":
		item := m.selection.GetSelectedItem()
		if item == nil {
			return m, nil
		}
		cursor := m.selection.Selected()
		next, cmd := m.dispatch(browse.Deselected{ID: item.ID})
		next.selection = newSelectionList(next.data.Selection, next.width, next.table.Height())
		next.selection.SetSelected(cursor)
		return next, cmd
	}

	m.selection.Update(msg)
	return m, nil
}

// dispatch feeds ev through the reducer, logs what it asks to log, and turns
// the remaining effects into commands.
func (m BrowserModel) dispatch(ev browse.Event) (BrowserModel, tea.Cmd) {
	wasLoading := m.data.Loading()

	next, effects := browse.Reduce(m.data, ev)
	m.data = next

	var cmds []tea.Cmd
	for _, eff := range m.runner.Report(m.ctx, effects) {
		switch eff := eff.(type) {
		case browse.FetchPage:
			cmds = append(cmds, m.fetchCmd(eff))
		case browse.Notify:
			cmds = append(cmds, m.showToast(eff.Text))
		}
	}
	if !wasLoading && m.data.Loading() {
		cmds = append(cmds, m.loading.Tick)
	}

	m.syncWidgets()
	return m, tea.Batch(cmds...)
}

func (m BrowserModel) fetchCmd(req browse.FetchPage) tea.Cmd {
	ctx, runner := m.ctx, m.runner
	return func() tea.Msg {
		return pageResultMsg{event: runner.Fetch(ctx, req)}
	}
}

func (m *BrowserModel) showToast(text string) tea.Cmd {
	m.toast = toast{id: m.toast.id + 1, text: text}
	if m.toastDuration <= 0 {
		return nil
	}
	id := m.toast.id
	return tea.Tick(m.toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// syncWidgets copies browse state into the table and paginator widgets.
func (m *BrowserModel) syncWidgets() {
	cursor := m.table.Cursor()
	m.table.SetColumns(recordColumns(m.width, m.data))
	m.table.SetRows(recordRows(m.data))
	if n := len(m.table.Rows()); cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	m.table.SetCursor(cursor)

	m.pager.PerPage = m.data.Rows
	m.pager.SetTotalPages(m.data.Page.TotalRecords)
	page := m.data.PaginatorPage() - 1
	if page >= m.pager.TotalPages {
		page = m.pager.TotalPages - 1
	}
	if page < 0 {
		page = 0
	}
	m.pager.Page = page
}

func (m BrowserModel) cursorRecord() (records.Record, bool) {
	rows := m.data.VisibleRows()
	i := m.table.Cursor()
	if i < 0 || i >= len(rows) {
		return records.Record{}, false
	}
	return rows[i], true
}

// stepRows returns the rows option dir steps away from current.
func stepRows(options []int, current, dir int) int {
	idx := -1
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return options[0]
	}
	idx += dir
	if idx < 0 || idx >= len(options) {
		return current
	}
	return options[idx]
}

func newSelectionList(sel records.Selection, width, height int) *listview.VirtualListModel[records.Record] {
	items := make([]records.Record, len(sel))
	copy(items, sel)
	return listview.NewVirtualListModel(items, height, width, renderSelectionItem)
}
