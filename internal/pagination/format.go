package pagination

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats counts with thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatCount formats n with thousand separators: 18248 becomes "18,248".
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// CountNoun formats n followed by singular or plural: "1 record", "1,204 records".
func CountNoun(n int, singular, plural string) string {
	if n == 1 {
		return FormatCount(n) + " " + singular
	}
	return FormatCount(n) + " " + plural
}

// Summary is the one-line description of m used by the table footers, for
// example "Page 2 of 10 · 95 records".
func (m Meta) Summary() string {
	pages := m.TotalPages
	if pages < 1 {
		pages = 1
	}
	return printer.Sprintf("Page %d of %d · %s", m.CurrentPage, pages, CountNoun(m.TotalItems, "record", "records"))
}
