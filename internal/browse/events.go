package browse

import (
	"github.com/rshade/pagetable/internal/pagination"
	"github.com/rshade/pagetable/internal/records"
)

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// Mounted requests the initial page.
type Mounted struct{}

// ChangePage moves to a 1-based page. It is the only transition that changes
// Page.PageNumber on request.
type ChangePage struct {
	Page int
}

// PaginatorChanged reports the rich paginator's new offset and page size.
type PaginatorChanged struct {
	First int
	Rows  int
}

// NextPage is the Next button.
type NextPage struct{}

// PrevPage is the Previous button.
type PrevPage struct{}

// PageLoaded delivers a successful response for request Seq.
type PageLoaded struct {
	Seq    uint64
	Page   int
	Result records.Page
}

// PageFailed delivers a failed request. Canceled is set when the request was
// aborted because a newer one superseded it.
type PageFailed struct {
	Seq      uint64
	Page     int
	Err      error
	Canceled bool
}

// QueryChanged replaces the search string.
type QueryChanged struct {
	Query string
}

// RowToggled toggles the selection of a visible row.
type RowToggled struct {
	ID records.ID
}

// Deselected removes one record from the selection, whether or not it is
// on the loaded page.
type Deselected struct {
	ID records.ID
}

// ToggleAllVisible is the header checkbox: select every visible row, or
// deselect them all when they are already selected.
type ToggleAllVisible struct{}

// SelectMatching replaces the selection with every visible row matching the
// query and closes the overlay.
type SelectMatching struct{}

// ClearSelection empties the selection.
type ClearSelection struct{}

// OverlayToggled opens or closes the search overlay.
type OverlayToggled struct{}

// OverlayDismissed closes the search overlay, keeping the query.
type OverlayDismissed struct{}

// SortChanged sets the view ordering. An empty field restores server order.
type SortChanged struct {
	Field string
	Order string
}

func (Mounted) isEvent()          {}
func (ChangePage) isEvent()       {}
func (PaginatorChanged) isEvent() {}
func (NextPage) isEvent()         {}
func (PrevPage) isEvent()         {}
func (PageLoaded) isEvent()       {}
func (PageFailed) isEvent()       {}
func (QueryChanged) isEvent()     {}
func (RowToggled) isEvent()       {}
func (Deselected) isEvent()       {}
func (ToggleAllVisible) isEvent() {}
func (SelectMatching) isEvent()   {}
func (ClearSelection) isEvent()   {}
func (OverlayToggled) isEvent()   {}
func (OverlayDismissed) isEvent() {}
func (SortChanged) isEvent()      {}

// PaginatorStep moves the paginator delta pages from its current offset,
// staying within the paginator's own page range when it is known.
func (s State) PaginatorStep(delta int) PaginatorChanged {
	first := pagination.ClampOffset(s.First+delta*s.Rows, s.Rows, s.Page.TotalRecords)
	return PaginatorChanged{First: first, Rows: s.Rows}
}

// PaginatorFirst jumps the paginator to offset 0.
func (s State) PaginatorFirst() PaginatorChanged {
	return PaginatorChanged{First: 0, Rows: s.Rows}
}

// PaginatorLast jumps the paginator to its last page.
func (s State) PaginatorLast() PaginatorChanged {
	return PaginatorChanged{First: pagination.LastOffset(s.Page.TotalRecords, s.Rows), Rows: s.Rows}
}

// PaginatorRows changes the page size, keeping the current offset.
func (s State) PaginatorRows(rows int) PaginatorChanged {
	return PaginatorChanged{First: s.First, Rows: rows}
}
