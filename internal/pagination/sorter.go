package pagination

import (
	"sort"
	"strings"

	"github.com/rshade/pagetable/internal/records"
)

// Sortable record fields.
const (
	SortFieldID    = "id"
	SortFieldName  = "name"
	SortFieldEmail = "email"
)

// Sorter defines the interface for sorting records.
type Sorter interface {
	// Sort sorts a slice of records by the specified field and order.
	Sort(items []records.Record, field, order string) []records.Record
	// IsValidField checks if the given field name is valid for sorting.
	IsValidField(field string) bool
	// GetValidFields returns a list of valid field names for sorting.
	GetValidFields() []string
}

// RecordSorter implements Sorter for records.Record.
type RecordSorter struct {
	validFields map[string]bool
}

// NewRecordSorter creates a new RecordSorter with valid sort fields.
func NewRecordSorter() *RecordSorter {
	return &RecordSorter{
		validFields: map[string]bool{
			SortFieldID:    true,
			SortFieldName:  true,
			SortFieldEmail: true,
		},
	}
}

// IsValidField checks if the field is valid for sorting.
func (s *RecordSorter) IsValidField(field string) bool {
	return s.validFields[field]
}

// GetValidFields returns all valid sort fields.
func (s *RecordSorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.validFields))
	for field := range s.validFields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Sort returns a new slice sorted by field and order; it does not modify items.
// If field is invalid, items is returned unchanged. Names and emails compare
// case-insensitively.
func (s *RecordSorter) Sort(items []records.Record, field, order string) []records.Record {
	if !s.IsValidField(field) {
		return items
	}

	sorted := make([]records.Record, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		// For descending order, swap i and j in comparisons to maintain stability
		if order == SortOrderDesc {
			i, j = j, i
		}

		switch field {
		case SortFieldID:
			return sorted[i].ID.Less(sorted[j].ID)
		case SortFieldName:
			return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
		case SortFieldEmail:
			return strings.ToLower(sorted[i].Email) < strings.ToLower(sorted[j].Email)
		default:
			return false
		}
	})

	return sorted
}

// NextSortField cycles through "", id, name, email for the interactive sort key.
func NextSortField(field string) string {
	switch field {
	case "":
		return SortFieldID
	case SortFieldID:
		return SortFieldName
	case SortFieldName:
		return SortFieldEmail
	default:
		return ""
	}
}
