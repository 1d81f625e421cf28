package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	ToggleAll   key.Binding
	Clear       key.Binding
	Prev        key.Binding
	Next        key.Binding
	PagerPrev   key.Binding
	PagerNext   key.Binding
	PagerFirst  key.Binding
	PagerLast   key.Binding
	RowsMore    key.Binding
	RowsLess    key.Binding
	Search      key.Binding
	Sort        key.Binding
	SortOrder   key.Binding
	Detail      key.Binding
	Selection   key.Binding
	ClearSearch key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		ToggleAll:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all visible")),
		Clear:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear selection")),
		Prev:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
		Next:        key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		PagerPrev:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "paginator back")),
		PagerNext:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "paginator forward")),
		PagerFirst:  key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first page")),
		PagerLast:   key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last page")),
		RowsMore:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more rows")),
		RowsLess:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer rows")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort field")),
		SortOrder:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sort order")),
		Detail:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Selection:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view selection")),
		ClearSearch: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Prev, k.Next, k.Search, k.Selection, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.ToggleAll, k.Clear},
		{k.Prev, k.Next, k.PagerPrev, k.PagerNext, k.PagerFirst, k.PagerLast},
		{k.RowsMore, k.RowsLess, k.Sort, k.SortOrder},
		{k.Search, k.ClearSearch, k.Detail, k.Selection, k.Help, k.Quit},
	}
}
