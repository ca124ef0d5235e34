// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/coldfire-project/coldfire/helpdesk"
	"github.com/coldfire-project/coldfire/lib/tui"
)

func TestStatusIcon(t *testing.T) {
	cases := []struct {
		status helpdesk.TicketStatus
		want   string
	}{
		{helpdesk.StatusOpen, "○"},
		{helpdesk.StatusInProgress, "◐"},
		{helpdesk.StatusClosed, "●"},
		{helpdesk.TicketStatus("weird"), "·"},
	}
	for _, testCase := range cases {
		if got := statusIcon(testCase.status); got != testCase.want {
			t.Errorf("statusIcon(%q) = %q, want %q", testCase.status, got, testCase.want)
		}
	}
}

func TestPriorityMark(t *testing.T) {
	if got := priorityMark(helpdesk.PriorityHigh); got != "!" {
		t.Errorf("priorityMark(high) = %q, want %q", got, "!")
	}
	if got := priorityMark(helpdesk.PriorityUrgent); got != "‼" {
		t.Errorf("priorityMark(urgent) = %q, want %q", got, "‼")
	}
	// Low and medium render blank so the column stays quiet.
	if got := priorityMark(helpdesk.PriorityLow); got != " " {
		t.Errorf("priorityMark(low) = %q, want blank", got)
	}
	if got := priorityMark(helpdesk.PriorityMedium); got != " " {
		t.Errorf("priorityMark(medium) = %q, want blank", got)
	}
}

func TestFormatClock(t *testing.T) {
	now := time.Now().Local()

	// Same instant as now: today, so clock time.
	today := formatClock(now.Format(time.RFC3339), now)
	if today != now.Format("15:04") {
		t.Errorf("formatClock(today) = %q, want %q", today, now.Format("15:04"))
	}

	// A timestamp from another year renders as a calendar date.
	past := "2024-03-10T12:00:00Z"
	parsed, err := time.Parse(time.RFC3339, past)
	if err != nil {
		t.Fatal(err)
	}
	got := formatClock(past, now)
	if got != parsed.Local().Format("Jan 2") {
		t.Errorf("formatClock(past) = %q, want %q", got, parsed.Local().Format("Jan 2"))
	}

	if got := formatClock("", now); got != "" {
		t.Errorf("formatClock(empty) = %q, want empty", got)
	}
	if got := formatClock("not-a-timestamp", now); got != "" {
		t.Errorf("formatClock(garbage) = %q, want empty", got)
	}
}

func TestRenderRowLayout(t *testing.T) {
	renderer := NewTicketListRenderer(tui.DefaultTheme, 48)
	now := time.Now().Local()
	ticket := helpdesk.Ticket{
		ID:            12,
		Title:         "Broken pump at Exhibition",
		Status:        helpdesk.StatusOpen,
		Priority:      helpdesk.PriorityHigh,
		LastMessageAt: now.Format(time.RFC3339),
	}

	row := ansi.Strip(renderer.RenderRow(ticket, false, 0, now))
	if !strings.Contains(row, "○") {
		t.Errorf("row missing status icon: %q", row)
	}
	if !strings.Contains(row, "!") {
		t.Errorf("row missing priority mark: %q", row)
	}
	if !strings.Contains(row, "#12") {
		t.Errorf("row missing ticket id: %q", row)
	}
	if !strings.Contains(row, "Broken pump at Exhibition") {
		t.Errorf("row missing title: %q", row)
	}
	if !strings.Contains(row, now.Format("15:04")) {
		t.Errorf("row missing clock: %q", row)
	}
}

func TestRenderRowTruncatesLongTitle(t *testing.T) {
	renderer := NewTicketListRenderer(tui.DefaultTheme, 36)
	ticket := helpdesk.Ticket{
		ID:       3,
		Title:    strings.Repeat("filters clogged ", 8),
		Status:   helpdesk.StatusOpen,
		Priority: helpdesk.PriorityMedium,
	}

	row := ansi.Strip(renderer.RenderRow(ticket, false, 0, time.Now()))
	if !strings.Contains(row, "…") {
		t.Errorf("expected truncated title to end with ellipsis, got %q", row)
	}
}

func TestRenderRowSelectedKeepsColumns(t *testing.T) {
	renderer := NewTicketListRenderer(tui.DefaultTheme, 48)
	ticket := helpdesk.Ticket{
		ID:       7,
		Title:    "Lights out on the southern line",
		Status:   helpdesk.StatusInProgress,
		Priority: helpdesk.PriorityUrgent,
	}

	plain := ansi.Strip(renderer.RenderRow(ticket, true, 0, time.Now()))
	if !strings.Contains(plain, "#7") || !strings.Contains(plain, "‼") {
		t.Errorf("selected row lost columns: %q", plain)
	}
}

func TestTruncateWidth(t *testing.T) {
	if got := truncateWidth("станция", 4); got != "стан" {
		t.Errorf("truncateWidth = %q, want %q", got, "стан")
	}
	if got := truncateWidth("short", 10); got != "short" {
		t.Errorf("truncateWidth should not touch short input, got %q", got)
	}
}
