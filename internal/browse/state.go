// Package browse is the table's state machine: an explicit, serializable State,
// the Events that change it, and a pure Reduce function that returns the next
// State together with the side effects the caller must perform.
//
// Page changes from the paginator and from the Previous/Next buttons funnel
// into one ChangePage transition. Every page fetch carries a sequence number so
// a response that arrives after a newer request can be recognized and dropped.
package browse

import (
	"github.com/rshade/pagetable/internal/pagination"
	"github.com/rshade/pagetable/internal/records"
)

// PageState is the most recently requested page and what is known about it.
type PageState struct {
	Records      []records.Record `json:"records"`
	PageNumber   int              `json:"pageNumber"`
	TotalRecords int              `json:"totalRecords"`
	TotalPages   int              `json:"totalPages"`
}

// State is everything the table renders from.
type State struct {
	Page      PageState         `json:"page"`
	Query     string            `json:"query"`
	Selection records.Selection `json:"selection"`

	// First and Rows are the rich paginator's offset and page size.
	First int `json:"first"`
	Rows  int `json:"rows"`

	// Seq is the sequence number of the last issued fetch; Pending is the
	// sequence number still awaited, or 0.
	Seq     uint64 `json:"seq"`
	Pending uint64 `json:"pending"`
	// LoadedPage is the page the current records were fetched for, 0 before
	// the first successful fetch.
	LoadedPage int `json:"loadedPage"`

	OverlayOpen bool   `json:"overlayOpen"`
	SortField   string `json:"sortField,omitempty"`
	SortOrder   string `json:"sortOrder,omitempty"`

	// DiscardStale drops responses older than Seq. SendsRows means the
	// request carries rows, so a rows change alone warrants a refetch.
	DiscardStale bool `json:"discardStale"`
	SendsRows    bool `json:"sendsRows"`
}

// Options seeds a new State.
type Options struct {
	Rows         int
	DiscardStale bool
	SendsRows    bool
}

// NewState returns the state before the first fetch: page 1, empty records.
func NewState(opts Options) State {
	rows := opts.Rows
	if rows <= 0 {
		rows = pagination.DefaultRows
	}
	return State{
		Page:         PageState{PageNumber: pagination.DefaultPage},
		Rows:         rows,
		SortOrder:    pagination.DefaultSortOrder,
		DiscardStale: opts.DiscardStale,
		SendsRows:    opts.SendsRows,
	}
}

// FilteredView is the loaded page narrowed by Query, in server order.
func (s State) FilteredView() []records.Record {
	return records.Filter(s.Page.Records, s.Query)
}

// VisibleRows is FilteredView ordered by the active sort, if any.
func (s State) VisibleRows() []records.Record {
	view := s.FilteredView()
	if s.SortField == "" {
		return view
	}
	return pagination.NewRecordSorter().Sort(view, s.SortField, s.SortOrder)
}

// Loading reports whether a fetch is outstanding.
func (s State) Loading() bool {
	return s.Pending != 0
}

// Buttons is the enabled state of Previous/Next.
func (s State) Buttons() pagination.Buttons {
	return pagination.ButtonState(s.Page.PageNumber, s.Page.TotalPages)
}

// Meta is the pagination metadata of the current page.
func (s State) Meta() pagination.Meta {
	return pagination.NewMeta(s.Page.PageNumber, s.Rows, s.Page.TotalRecords, s.Page.TotalPages)
}

// PaginatorPage is the 1-based page the rich paginator shows.
func (s State) PaginatorPage() int {
	return pagination.PageFromOffset(s.First, s.Rows)
}

// PaginatorPageCount is the page count the rich paginator derives from
// TotalRecords and Rows. It may differ from Page.TotalPages.
func (s State) PaginatorPageCount() int {
	return pagination.PageCount(s.Page.TotalRecords, s.Rows)
}
