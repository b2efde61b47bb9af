package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dsrosen/zendesk-ticket-board/internal/tickets"
)

// columnWidths for all but the last column, which takes the remaining width.
var columnWidths = []int{25, 8, 6, 20}

func renderColumns(cells []string, width int, style lipgloss.Style) string {
	var parts []string
	used := 0
	for i, c := range cells {
		w := width - used
		if i < len(columnWidths) {
			w = columnWidths[i]
		}
		w = max(w, 1)
		used += w
		parts = append(parts, style.Width(w).MaxWidth(w).MaxHeight(1).Render(c))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderHeader(width int) string {
	return renderColumns(tickets.Headers, width, headerStyle.PaddingLeft(1))
}

func renderRows(rows []tickets.Row, width int) string {
	var lines []string
	cell := lipgloss.NewStyle().PaddingLeft(1)
	for _, r := range rows {
		lines = append(lines, renderColumns(tickets.Cells(r), width, cell))
	}

	return strings.Join(lines, "\n")
}

// RenderTable renders a snapshot as a bordered table for non-interactive output.
func RenderTable(s tickets.Snapshot, search string) string {
	if text, ok := s.EmptyText(); ok {
		return text
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(faintStyle).
		Headers(tickets.Headers...)

	for _, r := range tickets.Filter(s.Rows, search) {
		t.Row(tickets.Cells(r)...)
	}

	return t.String()
}

// plainText renders rows as tab separated lines for the clipboard.
func plainText(rows []tickets.Row) string {
	var b strings.Builder
	b.WriteString(strings.Join(tickets.Headers, "\t"))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(strings.Join(tickets.Cells(r), "\t"))
		b.WriteString("\n")
	}

	return b.String()
}
