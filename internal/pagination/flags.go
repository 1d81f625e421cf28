package pagination

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Pagination defaults and validation limits.
const (
	DefaultRows      = 10
	MinRows          = 1
	MaxRows          = 1000
	DefaultPage      = 1
	MinPage          = 1
	MaxPagesPerRun   = 100
	DefaultSortField = ""
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidRows       = errors.New("rows must be between 1 and 1000")
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidPageRange  = errors.New("invalid page range")
	ErrTooManyPages      = errors.New("too many pages requested")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// Params holds the headless page command's pagination flags.
type Params struct {
	// Pages are the 1-based page numbers to fetch, in output order.
	Pages []int

	// Rows is the client-side page size, used for metadata and the optional
	// page size query parameter.
	Rows int

	// SortField is the record field to sort by (id, name, email).
	SortField string

	// SortOrder is the sort direction: "asc" or "desc".
	SortOrder string
}

// NewParams creates Params with default values.
func NewParams() *Params {
	return &Params{
		Pages:     []int{DefaultPage},
		Rows:      DefaultRows,
		SortField: DefaultSortField,
		SortOrder: DefaultSortOrder,
	}
}

// Validate checks the parameters for consistency (value receiver).
func (p Params) Validate() error {
	if p.Rows < MinRows || p.Rows > MaxRows {
		return fmt.Errorf("%w: got %d", ErrInvalidRows, p.Rows)
	}
	if len(p.Pages) == 0 {
		return fmt.Errorf("%w: no pages", ErrInvalidPageRange)
	}
	if len(p.Pages) > MaxPagesPerRun {
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyPages, len(p.Pages), MaxPagesPerRun)
	}
	for _, page := range p.Pages {
		if page < MinPage {
			return fmt.Errorf("%w: got %d", ErrInvalidPage, page)
		}
	}
	if p.SortOrder != "" && p.SortOrder != SortOrderAsc && p.SortOrder != SortOrderDesc {
		return fmt.Errorf("%w: got %q", ErrInvalidSortOrder, p.SortOrder)
	}
	return nil
}

// IsSorted returns true if a sort field was requested.
func (p Params) IsSorted() bool {
	return p.SortField != ""
}

// rangeParts is the number of parts in a "from-to" page range.
const rangeParts = 2

// ParsePages parses page specs like "1", "2,4" and "3-5" into an ordered,
// deduplicated page list. Each element of specs may itself be comma separated.
func ParsePages(specs []string) ([]int, error) {
	seen := make(map[int]bool)
	var pages []int

	add := func(page int) error {
		if page < MinPage {
			return fmt.Errorf("%w: got %d", ErrInvalidPage, page)
		}
		if !seen[page] {
			seen[page] = true
			pages = append(pages, page)
		}
		if len(pages) > MaxPagesPerRun {
			return fmt.Errorf("%w: max %d", ErrTooManyPages, MaxPagesPerRun)
		}
		return nil
	}

	for _, spec := range specs {
		for _, part := range strings.Split(spec, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			bounds := strings.SplitN(part, "-", rangeParts)
			from, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidPageRange, part)
			}
			to := from
			if len(bounds) == rangeParts {
				if to, err = strconv.Atoi(strings.TrimSpace(bounds[1])); err != nil {
					return nil, fmt.Errorf("%w: %q", ErrInvalidPageRange, part)
				}
			}
			if to < from {
				return nil, fmt.Errorf("%w: %q ends before it starts", ErrInvalidPageRange, part)
			}
			for page := from; page <= to; page++ {
				if err := add(page); err != nil {
					return nil, err
				}
			}
		}
	}

	if len(pages) == 0 {
		return []int{DefaultPage}, nil
	}
	return pages, nil
}

// SortedPages returns a sorted copy of pages.
func SortedPages(pages []int) []int {
	out := append([]int(nil), pages...)
	sort.Ints(out)
	return out
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "name", "email:desc", "id:asc"
// Returns the field name and order, or an error if invalid.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if sortStr == "" {
		return DefaultSortField, DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}
