package tui

// ViewState is which screen the browser shows.
type ViewState int

const (
	// ViewStateList is the table.
	ViewStateList ViewState = iota
	// ViewStateDetail shows one record.
	ViewStateDetail
	// ViewStateSelection lists every selected record across pages.
	ViewStateSelection
	// ViewStateQuitting renders nothing while the program exits.
	ViewStateQuitting
)

func (v ViewState) String() string {
	switch v {
	case ViewStateList:
		return "list"
	case ViewStateDetail:
		return "detail"
	case ViewStateSelection:
		return "selection"
	case ViewStateQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}
