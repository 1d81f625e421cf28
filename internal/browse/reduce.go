package browse

import (
	"fmt"

	"github.com/rshade/pagetable/internal/pagination"
	"github.com/rshade/pagetable/internal/records"
)

// Reduce applies ev to s. It never mutates s and performs no I/O; any work it
// needs done is returned as effects.
//
//nolint:gocyclo,cyclop // One case per event keeps the transition table in one place.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case Mounted:
		return s.fetchCurrent()

	case ChangePage:
		return s.changePage(ev.Page)

	case NextPage:
		if s.Page.PageNumber < s.Page.TotalPages {
			return s.changePage(s.Page.PageNumber + 1)
		}
		return s, nil

	case PrevPage:
		if s.Page.PageNumber > pagination.MinPage {
			return s.changePage(s.Page.PageNumber - 1)
		}
		return s, nil

	case PaginatorChanged:
		return s.paginatorChanged(ev)

	case PageLoaded:
		return s.pageLoaded(ev)

	case PageFailed:
		return s.pageFailed(ev)

	case QueryChanged:
		s.Query = ev.Query
		return s, nil

	case RowToggled:
		for _, r := range s.FilteredView() {
			if r.ID == ev.ID {
				s.Selection = s.Selection.Toggle(r)
				break
			}
		}
		return s, nil

	case Deselected:
		s.Selection = s.Selection.Remove(ev.ID)
		return s, nil

	case ToggleAllVisible:
		view := s.FilteredView()
		if s.Selection.ContainsAll(view) {
			ids := make([]records.ID, len(view))
			for i, r := range view {
				ids[i] = r.ID
			}
			s.Selection = s.Selection.Remove(ids...)
		} else {
			s.Selection = s.Selection.Add(view...)
		}
		return s, nil

	case SelectMatching:
		query := s.Query
		matches := records.Filter(s.FilteredView(), query)
		s.Selection = records.Replace(matches)
		s.OverlayOpen = false
		return s, []Effect{Notify{Text: selectedText(len(matches))}}

	case ClearSelection:
		if s.Selection.Len() == 0 {
			return s, nil
		}
		s.Selection = nil
		return s, []Effect{Notify{Text: "Selection cleared"}}

	case OverlayToggled:
		s.OverlayOpen = !s.OverlayOpen
		return s, nil

	case OverlayDismissed:
		s.OverlayOpen = false
		return s, nil

	case SortChanged:
		s.SortField = ev.Field
		s.SortOrder = ev.Order
		if s.SortOrder == "" {
			s.SortOrder = pagination.DefaultSortOrder
		}
		return s, nil
	}

	return s, nil
}

func (s State) changePage(page int) (State, []Effect) {
	if page < pagination.MinPage {
		return s, nil
	}
	s.First = pagination.OffsetForPage(page, s.Rows)
	if page == s.Page.PageNumber {
		return s, nil
	}
	s.Page.PageNumber = page
	return s.fetchCurrent()
}

func (s State) paginatorChanged(ev PaginatorChanged) (State, []Effect) {
	rows := ev.Rows
	if rows <= 0 {
		rows = s.Rows
	}
	rowsChanged := rows != s.Rows
	s.Rows = rows

	first := ev.First
	if first < 0 {
		first = 0
	}
	s.First = first

	page := pagination.PageFromOffset(first, rows)
	if page != s.Page.PageNumber {
		return s.changePage(page)
	}
	s.First = pagination.OffsetForPage(page, rows)
	if rowsChanged && s.SendsRows {
		return s.fetchCurrent()
	}
	return s, nil
}

func (s State) fetchCurrent() (State, []Effect) {
	s.Seq++
	s.Pending = s.Seq
	return s, []Effect{FetchPage{Seq: s.Seq, Page: s.Page.PageNumber, Rows: s.Rows}}
}

func (s State) pageLoaded(ev PageLoaded) (State, []Effect) {
	latest := ev.Seq == s.Seq
	if !latest && s.DiscardStale {
		return s, []Effect{DiscardResponse{Seq: ev.Seq, Latest: s.Seq, Page: ev.Page, Reason: DiscardStale}}
	}
	if latest {
		s.Pending = 0
	}

	s.Page.Records = ev.Result.Items
	s.Page.TotalRecords = ev.Result.Total
	s.Page.TotalPages = ev.Result.TotalPages
	s.LoadedPage = ev.Page
	return s, nil
}

func (s State) pageFailed(ev PageFailed) (State, []Effect) {
	latest := ev.Seq == s.Seq
	if latest {
		s.Pending = 0
	}
	if ev.Canceled {
		return s, []Effect{DiscardResponse{Seq: ev.Seq, Latest: s.Seq, Page: ev.Page, Reason: DiscardCanceled}}
	}

	effects := []Effect{ReportFailure{Seq: ev.Seq, Page: ev.Page, Err: ev.Err}}
	if latest && s.LoadedPage >= pagination.MinPage {
		s.Page.PageNumber = s.LoadedPage
		s.First = pagination.OffsetForPage(s.LoadedPage, s.Rows)
	}
	return s, effects
}

func selectedText(n int) string {
	if n == 1 {
		return "Selected 1 record"
	}
	return fmt.Sprintf("Selected %d records", n)
}
