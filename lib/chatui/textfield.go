// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/coldfire-project/coldfire/lib/tui"
)

// TextField is a single-line rune-buffer input with cursor tracking.
// Used for the auth form fields and the message composer. Masked
// fields render bullets instead of the typed characters.
type TextField struct {
	// Label is rendered left of the input area.
	Label string

	// Masked hides the content (password fields).
	Masked bool

	// MaxRunes caps the content length when positive.
	MaxRunes int

	buffer []rune
	cursor int
}

// Value returns the current content.
func (field *TextField) Value() string {
	return string(field.buffer)
}

// RuneCount returns the content length in runes.
func (field *TextField) RuneCount() int {
	return len(field.buffer)
}

// SetValue replaces the content and moves the cursor to the end.
func (field *TextField) SetValue(value string) {
	field.buffer = []rune(value)
	field.cursor = len(field.buffer)
}

// Reset clears the field.
func (field *TextField) Reset() {
	field.buffer = nil
	field.cursor = 0
}

// Update processes a key message. Enter and Tab are not consumed
// here: the owning form decides what they mean.
func (field *TextField) Update(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			if field.MaxRunes > 0 && len(field.buffer) >= field.MaxRunes {
				break
			}
			newBuffer := make([]rune, len(field.buffer)+1)
			copy(newBuffer, field.buffer[:field.cursor])
			newBuffer[field.cursor] = character
			copy(newBuffer[field.cursor+1:], field.buffer[field.cursor:])
			field.buffer = newBuffer
			field.cursor++
		}

	case tea.KeyBackspace:
		if field.cursor > 0 {
			field.buffer = append(field.buffer[:field.cursor-1], field.buffer[field.cursor:]...)
			field.cursor--
		}

	case tea.KeyDelete:
		if field.cursor < len(field.buffer) {
			field.buffer = append(field.buffer[:field.cursor], field.buffer[field.cursor+1:]...)
		}

	case tea.KeyLeft:
		if field.cursor > 0 {
			field.cursor--
		}

	case tea.KeyRight:
		if field.cursor < len(field.buffer) {
			field.cursor++
		}

	case tea.KeyHome, tea.KeyCtrlA:
		field.cursor = 0

	case tea.KeyEnd, tea.KeyCtrlE:
		field.cursor = len(field.buffer)
	}
}

// View renders the field as "Label: content" within the given width.
// Focused fields show a reverse-video cursor; unfocused fields render
// plain text. Long content scrolls horizontally to keep the cursor
// visible.
func (field *TextField) View(width int, focused bool, theme tui.Theme) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	if focused {
		labelStyle = labelStyle.Foreground(theme.Accent).Bold(true)
	}
	textStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	cursorStyle := lipgloss.NewStyle().Reverse(true)

	label := ""
	if field.Label != "" {
		label = labelStyle.Render(field.Label+":") + " "
	}
	contentWidth := width - ansi.StringWidth(label)
	if contentWidth < 5 {
		contentWidth = 5
	}

	display := field.buffer
	if field.Masked {
		display = []rune(strings.Repeat("•", len(field.buffer)))
	}

	// Horizontal scroll: keep the cursor within the visible window,
	// reserving one column for the cursor cell itself.
	windowStart := 0
	if field.cursor >= contentWidth {
		windowStart = field.cursor - contentWidth + 1
	}
	windowEnd := windowStart + contentWidth - 1
	if windowEnd > len(display) {
		windowEnd = len(display)
	}

	if !focused {
		return label + textStyle.Render(string(display[windowStart:windowEnd]))
	}

	visibleCursor := field.cursor - windowStart
	visible := display[windowStart:windowEnd]

	var rendered string
	if visibleCursor >= len(visible) {
		rendered = textStyle.Render(string(visible)) + cursorStyle.Render(" ")
	} else {
		before := textStyle.Render(string(visible[:visibleCursor]))
		atCursor := cursorStyle.Render(string(visible[visibleCursor : visibleCursor+1]))
		after := textStyle.Render(string(visible[visibleCursor+1:]))
		rendered = before + atCursor + after
	}
	return label + rendered
}
