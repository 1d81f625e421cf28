// Package pagination holds the page arithmetic shared by the interactive table
// and the headless page command.
//
// This package contains:
//   - Offset conversions between the rich paginator (first/rows) and 1-based page numbers
//   - Meta: pagination metadata with Previous/Next availability
//   - Params: headless page selection, rows and sort flags with validation
//   - Sorter: stable record sorting with field validation
//
// Both pagination surfaces of the table go through the same conversions here so
// they can never disagree about which page is shown.
package pagination
