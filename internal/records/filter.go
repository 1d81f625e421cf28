package records

import "strings"

// Matches reports whether the record's name or email contains query,
// ignoring case. An empty query matches everything.
func Matches(r Record, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Email), q)
}

// Filter returns the records matching query in their original order.
// An empty query returns items unchanged.
func Filter(items []Record, query string) []Record {
	if query == "" {
		return items
	}

	q := strings.ToLower(query)
	filtered := make([]Record, 0, len(items))
	for _, r := range items {
		if strings.Contains(strings.ToLower(r.Name), q) ||
			strings.Contains(strings.ToLower(r.Email), q) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
