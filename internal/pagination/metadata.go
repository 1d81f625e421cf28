package pagination

// Meta contains metadata about a fetched page.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewMeta builds metadata from the server's page envelope. totalPages is
// taken as reported, never recomputed from totalItems.
func NewMeta(currentPage, pageSize, totalItems, totalPages int) Meta {
	if currentPage < MinPage {
		currentPage = MinPage
	}
	return Meta{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasPrevious: currentPage > MinPage,
		HasNext:     currentPage < totalPages,
	}
}

// Buttons is the enabled state of the Previous/Next pair.
type Buttons struct {
	PrevDisabled bool
	NextDisabled bool
}

// ButtonState reports Previous disabled exactly on page 1 and Next disabled
// exactly when page equals totalPages.
//
// Before the first response totalPages is 0, so Next renders enabled; pressing
// it is still a no-op because Next only advances while page < totalPages.
func ButtonState(page, totalPages int) Buttons {
	return Buttons{
		PrevDisabled: page == MinPage,
		NextDisabled: page == totalPages,
	}
}
