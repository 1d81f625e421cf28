package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/pagetable/internal/browse"
	"github.com/rshade/pagetable/internal/pagination"
	"github.com/rshade/pagetable/internal/records"
)

const (
	markSelected   = "[x]"
	markUnselected = "[ ]"
	msgNoRecords   = "No records on this page."
	msgNoMatches   = "No records match the search."
	msgNoSelection = "Nothing selected yet. Press space on a row to select it."
)

// View renders the current view (Bubble Tea interface).
func (m BrowserModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		return RenderRecordDetail(m.detail, m.data.Selection.Contains(m.detail.ID), m.width)
	case ViewStateSelection:
		return m.renderSelectionView()
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m BrowserModel) renderListView() string {
	sections := []string{HeaderStyle.Render("RECORDS")}

	if m.data.OverlayOpen {
		sections = append(sections, m.renderOverlay())
	}

	sections = append(sections, m.table.View())
	if len(m.table.Rows()) == 0 && !m.data.Loading() {
		if m.data.Query != "" {
			sections = append(sections, SubtleStyle.Render(msgNoMatches))
		} else {
			sections = append(sections, SubtleStyle.Render(msgNoRecords))
		}
	}

	sections = append(sections, m.renderPageControls(), m.renderStatusBar())
	if m.toast.text != "" {
		sections = append(sections, ToastStyle.Render(m.toast.text))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderOverlay is the search box with the match count for the loaded page.
func (m BrowserModel) renderOverlay() string {
	matches := pagination.CountNoun(len(m.data.FilteredView()), "match", "matches")
	hint := SubtleStyle.Render(matches + " · enter selects matching · esc closes")
	return OverlayStyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.search.View(), hint))
}

// renderPageControls shows both pagination surfaces: the Previous/Next
// buttons with the server page, and the rich paginator with its own page.
func (m BrowserModel) renderPageControls() string {
	buttons := m.data.Buttons()

	prev := KeyStyle.Render("‹ Prev")
	if buttons.PrevDisabled {
		prev = DisabledStyle.Render("‹ Prev")
	}
	next := KeyStyle.Render("Next ›")
	if buttons.NextDisabled {
		next = DisabledStyle.Render("Next ›")
	}

	parts := []string{
		prev,
		ValueStyle.Render(m.data.Meta().Summary()),
		next,
		SubtleStyle.Render("│ paginator " + m.pager.View()),
		SubtleStyle.Render(fmt.Sprintf("rows %d", m.data.Rows)),
	}
	if m.data.Loading() {
		parts = append(parts, RenderLoading(m.loading))
	}
	return strings.Join(parts, "  ")
}

func (m BrowserModel) renderStatusBar() string {
	view := len(m.data.FilteredView())
	status := fmt.Sprintf("Showing %s of %s | %s selected | Sort: %s",
		pagination.FormatCount(view),
		pagination.FormatCount(len(m.data.Page.Records)),
		pagination.FormatCount(m.data.Selection.Len()),
		sortLabel(m.data.SortField, m.data.SortOrder))
	if m.data.Query != "" {
		status += fmt.Sprintf(" | Search: %q", m.data.Query)
	}
	return SubtleStyle.Render(status)
}

func sortLabel(field, order string) string {
	if field == "" {
		return "server order"
	}
	return field + " " + order
}

func (m BrowserModel) renderSelectionView() string {
	var content strings.Builder
	content.WriteString(HeaderStyle.Render(fmt.Sprintf("SELECTION (%s)",
		pagination.FormatCount(m.data.Selection.Len()))))
	content.WriteString("\n\n")

	if m.selection == nil || m.selection.ItemCount() == 0 {
		content.WriteString(SubtleStyle.Render(msgNoSelection))
	} else {
		content.WriteString(m.selection.View())
	}
	content.WriteString("\n\n")
	content.WriteString(SubtleStyle.Render("x/space: deselect | esc/v: back | q: quit"))
	return content.String()
}

func renderSelectionItem(r records.Record, selected bool) string {
	line := fmt.Sprintf("%-8s %-24s %s", r.ID, r.Name, r.Email)
	if selected {
		return TableSelectedStyle.Render("> " + line)
	}
	return "  " + line
}

// RenderRecordDetail renders one record and whether it is selected.
func RenderRecordDetail(r records.Record, selected bool, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("RECORD DETAIL"))
	content.WriteString("\n\n")
	content.WriteString(LabelStyle.Render("ID:") + ValueStyle.Render(string(r.ID)) + "\n")
	content.WriteString(LabelStyle.Render("Name:") + ValueStyle.Render(r.Name) + "\n")
	content.WriteString(LabelStyle.Render("Email:") + ValueStyle.Render(r.Email) + "\n")

	mark := SubtleStyle.Render("no")
	if selected {
		mark = SelectedMarkStyle.Render("yes")
	}
	content.WriteString(LabelStyle.Render("Selected:") + mark + "\n\n")
	content.WriteString(SubtleStyle.Render("esc: back | q: quit"))

	box := BoxStyle
	if width > borderPadding {
		box = box.Width(width - borderPadding)
	}
	return box.Render(content.String())
}

// buildRecordTable creates the table widget with the package styles.
func buildRecordTable(rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(recordColumns(0, browse.State{})),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return t
}

// recordColumns sizes the columns for width. The selection column title is
// the header checkbox: checked when every visible row is selected.
func recordColumns(width int, s browse.State) []table.Column {
	mark := markUnselected
	if s.Selection.ContainsAll(s.FilteredView()) {
		mark = markSelected
	}

	emailWidth := 32 //nolint:mnd // Column width.
	if rest := width - 48; rest > emailWidth { //nolint:mnd // Width of the fixed columns plus padding.
		emailWidth = rest
	}

	return []table.Column{
		{Title: mark, Width: 4},    //nolint:mnd // Column width.
		{Title: "ID", Width: 8},    //nolint:mnd // Column width.
		{Title: "Name", Width: 26}, //nolint:mnd // Column width.
		{Title: "Email", Width: emailWidth},
	}
}

// recordRows renders VisibleRows with a selection mark per row.
func recordRows(s browse.State) []table.Row {
	visible := s.VisibleRows()
	rows := make([]table.Row, len(visible))
	for i, r := range visible {
		mark := markUnselected
		if s.Selection.Contains(r.ID) {
			mark = markSelected
		}
		rows[i] = table.Row{mark, string(r.ID), r.Name, r.Email}
	}
	return rows
}
