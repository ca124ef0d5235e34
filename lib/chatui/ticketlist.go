// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/coldfire-project/coldfire/helpdesk"
	"github.com/coldfire-project/coldfire/lib/tui"
)

// Column widths for the ticket list. The title column fills the
// remaining space.
const (
	columnWidthTicketID = 6 // "#NNNN "
	columnWidthTime     = 6 // " 15:04"

	// listLeftWidth is the fixed left portion before the ID column:
	// 1 (indent) + 1 (status icon) + 1 (space) + 1 (priority mark)
	// + 1 (space) = 5 columns.
	listLeftWidth = 5
)

// statusIcon returns a single-cell glyph for a ticket status so state
// is readable at a glance without color.
func statusIcon(status helpdesk.TicketStatus) string {
	switch status {
	case helpdesk.StatusOpen:
		return "○"
	case helpdesk.StatusInProgress:
		return "◐"
	case helpdesk.StatusClosed:
		return "●"
	default:
		return "·"
	}
}

// priorityMark returns a single-cell urgency marker. Low and medium
// render blank: most tickets sit there and marking them would only
// add noise.
func priorityMark(priority helpdesk.TicketPriority) string {
	switch priority {
	case helpdesk.PriorityHigh:
		return "!"
	case helpdesk.PriorityUrgent:
		return "‼"
	default:
		return " "
	}
}

// formatClock renders a server RFC 3339 timestamp as a short display
// time: clock time for today, month and day otherwise. Unparseable
// input renders blank rather than leaking the raw string into the
// fixed-width column.
func formatClock(timestamp string, now time.Time) string {
	if timestamp == "" {
		return ""
	}
	parsed, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return ""
	}
	parsed = parsed.Local()
	if parsed.Year() == now.Year() && parsed.YearDay() == now.YearDay() {
		return parsed.Format("15:04")
	}
	return parsed.Format("Jan 2")
}

// TicketListRenderer renders ticket rows for the left pane within a
// fixed width.
type TicketListRenderer struct {
	theme tui.Theme
	width int
}

// NewTicketListRenderer creates a renderer for the given width.
func NewTicketListRenderer(theme tui.Theme, width int) TicketListRenderer {
	return TicketListRenderer{theme: theme, width: width}
}

// RenderRow renders one ticket as a table row. heat > 0 tints the row
// background to mark a ticket that just arrived through polling.
//
// Row layout: " ○ ! #12  Broken pump at Exhibition   14:02"
func (renderer TicketListRenderer) RenderRow(ticket helpdesk.Ticket, selected bool, heat float64, now time.Time) string {
	titleWidth := renderer.width - listLeftWidth - columnWidthTicketID - columnWidthTime
	if titleWidth < 8 {
		titleWidth = 8
	}

	title := ticket.Title
	if lipgloss.Width(title) > titleWidth {
		title = truncateWidth(title, titleWidth-1) + "…"
	}

	clock := formatClock(ticket.LastMessageAt, now)
	if clock == "" {
		clock = formatClock(ticket.CreatedAt, now)
	}

	if selected {
		baseStyle := lipgloss.NewStyle().
			Background(renderer.theme.SelectedBackground).
			Foreground(renderer.theme.SelectedForeground)
		row := " " + statusIcon(ticket.Status) +
			" " + priorityMark(ticket.Priority) + " " +
			padRight(fmt.Sprintf("#%d", ticket.ID), columnWidthTicketID) +
			padRight(title, titleWidth) +
			padLeft(clock, columnWidthTime)
		return baseStyle.Width(renderer.width).MaxWidth(renderer.width).Render(row)
	}

	rowStyle := lipgloss.NewStyle()
	if heat > 0 {
		rowStyle = rowStyle.Background(renderer.theme.HotAccent)
	}

	statusStyle := rowStyle.Foreground(renderer.theme.StatusColor(ticket.Status))
	priorityStyle := rowStyle.
		Foreground(renderer.theme.PriorityColor(ticket.Priority)).
		Bold(ticket.Priority == helpdesk.PriorityUrgent)
	idStyle := rowStyle.Foreground(renderer.theme.FaintText)
	titleStyle := rowStyle.Foreground(renderer.theme.NormalText)
	timeStyle := rowStyle.Foreground(renderer.theme.FaintText)

	row := rowStyle.Render(" ") +
		statusStyle.Render(statusIcon(ticket.Status)) +
		rowStyle.Render(" ") +
		priorityStyle.Render(priorityMark(ticket.Priority)) +
		rowStyle.Render(" ") +
		idStyle.Render(padRight(fmt.Sprintf("#%d", ticket.ID), columnWidthTicketID)) +
		titleStyle.Render(padRight(title, titleWidth)) +
		timeStyle.Render(padLeft(clock, columnWidthTime))

	return lipgloss.NewStyle().Width(renderer.width).MaxWidth(renderer.width).Render(row)
}

// padRight pads a string with spaces to the given visible width.
func padRight(text string, width int) string {
	gap := width - lipgloss.Width(text)
	if gap <= 0 {
		return text
	}
	return text + spaces(gap)
}

// padLeft right-aligns a string within the given visible width.
func padLeft(text string, width int) string {
	gap := width - lipgloss.Width(text)
	if gap <= 0 {
		return text
	}
	return spaces(gap) + text
}

func spaces(count int) string {
	buffer := make([]byte, count)
	for index := range buffer {
		buffer[index] = ' '
	}
	return string(buffer)
}

// truncateWidth truncates a string to maxWidth visual columns,
// handling multi-byte characters via lipgloss width measurement.
func truncateWidth(text string, maxWidth int) string {
	if lipgloss.Width(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for length := len(runes) - 1; length >= 0; length-- {
		candidate := string(runes[:length])
		if lipgloss.Width(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}
