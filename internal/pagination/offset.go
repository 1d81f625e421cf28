package pagination

// PageFromOffset converts a paginator offset into a 1-based page number,
// floor(first/rows)+1. A non-positive rows value yields MinPage.
func PageFromOffset(first, rows int) int {
	if rows <= 0 || first < 0 {
		return MinPage
	}
	return first/rows + 1
}

// OffsetForPage returns the paginator offset of the first row on page.
func OffsetForPage(page, rows int) int {
	if page < MinPage || rows <= 0 {
		return 0
	}
	return (page - 1) * rows
}

// PageCount returns ceil(totalRecords/rows), the page count the rich
// paginator derives on its own. It can disagree with the server's totalPages.
func PageCount(totalRecords, rows int) int {
	if totalRecords <= 0 || rows <= 0 {
		return 0
	}
	pages := totalRecords / rows
	if totalRecords%rows > 0 {
		pages++
	}
	return pages
}

// LastOffset returns the offset of the last paginator page, or 0 when there
// are no records.
func LastOffset(totalRecords, rows int) int {
	pages := PageCount(totalRecords, rows)
	if pages == 0 {
		return 0
	}
	return (pages - 1) * rows
}

// ClampOffset keeps first inside [0, LastOffset] and aligns it to a page start.
// When totalRecords is unknown (0) only the lower bound is enforced.
func ClampOffset(first, rows, totalRecords int) int {
	if rows <= 0 || first < 0 {
		return 0
	}
	first = (first / rows) * rows
	if totalRecords > 0 {
		if last := LastOffset(totalRecords, rows); first > last {
			return last
		}
	}
	return first
}
