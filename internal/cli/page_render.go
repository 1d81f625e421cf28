package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rshade/pagetable/internal/pagination"
	"github.com/rshade/pagetable/internal/records"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

const selectedMark = "*"

var (
	pageHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
	headerCellStyle = cellStyle.Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#7C3AED"))
	subtleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func pageHeading(res PageResult) string {
	heading := res.Pagination.Summary()
	if res.Query != "" {
		heading += fmt.Sprintf(" · %s for %q", pagination.CountNoun(len(res.Records), "match", "matches"), res.Query)
	}
	if len(res.Selected) > 0 {
		heading += " · " + pagination.FormatCount(len(res.Selected)) + " selected"
	}
	return heading
}

func selectedSet(res PageResult) map[records.ID]bool {
	set := make(map[records.ID]bool, len(res.Selected))
	for _, id := range res.Selected {
		set[id] = true
	}
	return set
}

// renderPlainPages writes one tab-aligned block per page.
func renderPlainPages(w io.Writer, results []PageResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintln(tw, pageHeading(res))
		if res.Failed {
			fmt.Fprintln(tw, "(fetch failed, see log)")
			continue
		}
		selected := selectedSet(res)
		fmt.Fprintln(tw, "SEL\tID\tNAME\tEMAIL")
		for _, r := range res.Records {
			mark := ""
			if selected[r.ID] {
				mark = selectedMark
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, r.ID, r.Name, r.Email)
		}
	}
	return tw.Flush()
}

// renderStyledPages writes one bordered lipgloss table per page.
func renderStyledPages(w io.Writer, results []PageResult) error {
	for i, res := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, pageHeaderStyle.Render(pageHeading(res))); err != nil {
			return err
		}
		if res.Failed {
			if _, err := fmt.Fprintln(w, subtleStyle.Render("(fetch failed, see log)")); err != nil {
				return err
			}
			continue
		}

		selected := selectedSet(res)
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(subtleStyle).
			Headers("", "ID", "NAME", "EMAIL").
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerCellStyle
				}
				return cellStyle
			})
		for _, r := range res.Records {
			mark := ""
			if selected[r.ID] {
				mark = selectedMark
			}
			t.Row(mark, string(r.ID), r.Name, r.Email)
		}
		if _, err := fmt.Fprintln(w, t.Render()); err != nil {
			return err
		}
	}
	return nil
}
