// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/coldfire-project/coldfire/helpdesk"
	"github.com/coldfire-project/coldfire/lib/tui"
)

// ThreadPane is the right pane: the message history of the selected
// ticket inside a scrollable viewport. It keeps a message cursor so
// moderators can select a message to flag, and follows the tail while
// the user hasn't scrolled up.
type ThreadPane struct {
	theme    tui.Theme
	viewport viewport.Model

	ticket   *helpdesk.Ticket
	messages []helpdesk.Message

	// cursor is the selected message index, or -1 when nothing is
	// selected (fresh thread, or the thread is empty).
	cursor int

	// lineOffsets[i] is the first rendered line of message i, used to
	// keep the selected message visible and to rebuild scroll
	// position across refreshes.
	lineOffsets []int

	// followTail keeps the viewport pinned to the newest message
	// until the user scrolls up.
	followTail bool

	width  int
	height int
}

// NewThreadPane creates an empty thread pane.
func NewThreadPane(theme tui.Theme) ThreadPane {
	return ThreadPane{
		theme:      theme,
		cursor:     -1,
		followTail: true,
	}
}

// SetSize updates the pane dimensions and re-renders the content.
func (pane *ThreadPane) SetSize(width, height int) {
	pane.width = width
	pane.height = height
	pane.viewport.Width = width
	pane.viewport.Height = height
	pane.rebuild()
}

// SetTicket switches the pane to a different ticket. The message list
// arrives separately via SetMessages.
func (pane *ThreadPane) SetTicket(ticket *helpdesk.Ticket) {
	pane.ticket = ticket
	pane.messages = nil
	pane.cursor = -1
	pane.followTail = true
	pane.rebuild()
}

// SetTicketMeta refreshes the ticket header fields (status,
// priority) without resetting the message list, for poll refreshes of
// the already-open ticket.
func (pane *ThreadPane) SetTicketMeta(ticket *helpdesk.Ticket) {
	pane.ticket = ticket
}

// Ticket returns the ticket currently shown, or nil.
func (pane *ThreadPane) Ticket() *helpdesk.Ticket {
	return pane.ticket
}

// ClearSelection drops the message cursor and resumes tail following.
func (pane *ThreadPane) ClearSelection() {
	if pane.cursor < 0 {
		return
	}
	pane.cursor = -1
	pane.followTail = true
	pane.rebuild()
	pane.viewport.GotoBottom()
}

// Messages returns the current message list.
func (pane *ThreadPane) Messages() []helpdesk.Message {
	return pane.messages
}

// SetMessages replaces the message list, preserving the cursor by
// message ID where possible. While following the tail, the viewport
// stays pinned to the newest message.
func (pane *ThreadPane) SetMessages(messages []helpdesk.Message) {
	selectedID := 0
	if pane.cursor >= 0 && pane.cursor < len(pane.messages) {
		selectedID = pane.messages[pane.cursor].ID
	}

	pane.messages = messages
	pane.cursor = -1
	if selectedID != 0 {
		for index, message := range messages {
			if message.ID == selectedID {
				pane.cursor = index
				break
			}
		}
	}

	pane.rebuild()
	if pane.followTail {
		pane.viewport.GotoBottom()
	}
}

// Selected returns the message under the cursor, or nil.
func (pane *ThreadPane) Selected() *helpdesk.Message {
	if pane.cursor < 0 || pane.cursor >= len(pane.messages) {
		return nil
	}
	return &pane.messages[pane.cursor]
}

// MoveUp moves the message cursor up. Entering selection from the
// tail starts at the newest message.
func (pane *ThreadPane) MoveUp() {
	if len(pane.messages) == 0 {
		return
	}
	if pane.cursor < 0 {
		pane.cursor = len(pane.messages) - 1
	} else if pane.cursor > 0 {
		pane.cursor--
	}
	pane.followTail = false
	pane.rebuild()
	pane.ensureCursorVisible()
}

// MoveDown moves the message cursor down. Moving past the newest
// message clears the selection and resumes tail following.
func (pane *ThreadPane) MoveDown() {
	if len(pane.messages) == 0 || pane.cursor < 0 {
		return
	}
	if pane.cursor < len(pane.messages)-1 {
		pane.cursor++
		pane.rebuild()
		pane.ensureCursorVisible()
		return
	}
	pane.cursor = -1
	pane.followTail = true
	pane.rebuild()
	pane.viewport.GotoBottom()
}

// PageUp scrolls the viewport up without moving the cursor.
func (pane *ThreadPane) PageUp() {
	pane.followTail = false
	pane.viewport.HalfViewUp()
}

// PageDown scrolls the viewport down. Reaching the bottom resumes
// tail following.
func (pane *ThreadPane) PageDown() {
	pane.viewport.HalfViewDown()
	if pane.viewport.AtBottom() {
		pane.followTail = true
	}
}

// GotoTop jumps to the oldest message.
func (pane *ThreadPane) GotoTop() {
	pane.followTail = false
	pane.viewport.GotoTop()
}

// GotoBottom jumps to the newest message and resumes tail following.
func (pane *ThreadPane) GotoBottom() {
	pane.followTail = true
	pane.viewport.GotoBottom()
}

// ScrollState reports the viewport geometry for the scrollbar.
func (pane *ThreadPane) ScrollState() (totalLines, visibleLines, offset int) {
	return pane.viewport.TotalLineCount(), pane.viewport.Height, pane.viewport.YOffset
}

// View renders the viewport content.
func (pane *ThreadPane) View() string {
	return pane.viewport.View()
}

// ensureCursorVisible scrolls the viewport so the selected message's
// first line is on screen.
func (pane *ThreadPane) ensureCursorVisible() {
	if pane.cursor < 0 || pane.cursor >= len(pane.lineOffsets) {
		return
	}
	target := pane.lineOffsets[pane.cursor]
	if target < pane.viewport.YOffset {
		pane.viewport.SetYOffset(target)
	} else if target >= pane.viewport.YOffset+pane.viewport.Height {
		pane.viewport.SetYOffset(target - pane.viewport.Height + 1)
	}
}

// rebuild re-renders the full thread into the viewport.
func (pane *ThreadPane) rebuild() {
	if pane.width <= 0 {
		return
	}

	if pane.ticket == nil {
		empty := lipgloss.NewStyle().
			Foreground(pane.theme.FaintText).
			Render("select a ticket, or press n to open one")
		pane.viewport.SetContent(empty)
		pane.lineOffsets = nil
		return
	}

	now := time.Now()
	var content strings.Builder
	pane.lineOffsets = make([]int, len(pane.messages))
	lineCount := 0

	for index, message := range pane.messages {
		pane.lineOffsets[index] = lineCount
		block := pane.renderMessage(message, index == pane.cursor, now)
		content.WriteString(block)
		content.WriteString("\n")
		lineCount += strings.Count(block, "\n") + 2
		content.WriteString("\n")
	}

	if len(pane.messages) == 0 {
		content.WriteString(lipgloss.NewStyle().
			Foreground(pane.theme.FaintText).
			Render("no messages yet — say something"))
	}

	pane.viewport.SetContent(strings.TrimRight(content.String(), "\n"))
}

// renderMessage renders one message: a header line with the sender
// and timestamp, then the markdown body. The selected message gets an
// accent bar down its left edge.
func (pane *ThreadPane) renderMessage(message helpdesk.Message, selected bool, now time.Time) string {
	bodyWidth := pane.width - 2
	if bodyWidth < 10 {
		bodyWidth = 10
	}

	// System notices (status changes, ban notices) render as a single
	// centered faint line.
	if message.MessageType == "system" {
		notice := lipgloss.NewStyle().
			Foreground(pane.theme.FaintText).
			Italic(true).
			Render("· " + message.Content + " ·")
		return lipgloss.PlaceHorizontal(pane.width, lipgloss.Center, notice)
	}

	nameStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(pane.theme.RoleColor(message.Sender.Role))
	metaStyle := lipgloss.NewStyle().
		Foreground(pane.theme.FaintText)

	header := nameStyle.Render(message.Sender.Username)
	if message.Sender.Role == helpdesk.RoleModerator {
		header += metaStyle.Render(" ⚒")
	}
	if message.Sender.Station != "" {
		header += metaStyle.Render(" · " + message.Sender.Station)
	}
	if clock := formatClock(message.CreatedAt, now); clock != "" {
		header += metaStyle.Render(" · " + clock)
	}
	if message.EditedAt != "" {
		header += metaStyle.Render(" (edited)")
	}
	if message.IsFlagged {
		header += lipgloss.NewStyle().
			Foreground(pane.theme.ErrorForeground).
			Render(" ⚑ flagged")
	}

	body := renderMessageMarkdown(message.Content, pane.theme, bodyWidth)
	if message.AttachmentURL != "" {
		body += "\n" + metaStyle.Render("attachment: "+message.AttachmentURL)
	}

	block := header + "\n" + body
	if !selected {
		// Indent under a plain gutter.
		return prefixLines(block, "  ")
	}
	bar := lipgloss.NewStyle().
		Foreground(pane.theme.Accent).
		Render("▌")
	return prefixLines(block, bar+" ")
}

// prefixLines prepends a prefix to every line of a block.
func prefixLines(block, prefix string) string {
	lines := strings.Split(block, "\n")
	for index, line := range lines {
		lines[index] = prefix + line
	}
	return strings.Join(lines, "\n")
}
