// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// InputModal is a centered text-input overlay. It implements a simple
// rune-buffer editor with cursor tracking, rendered on top of the main
// view. Single-line mode (ticket titles, report reasons) treats Enter
// as submit and never splits lines; multi-line mode (report details)
// inserts a newline on Enter and submits on Ctrl+D.
type InputModal struct {
	// Title is shown in the modal header (e.g. "New ticket").
	Title string

	// Footer is the key-hint line. When empty a default hint is
	// rendered based on the mode.
	Footer string

	// SingleLine collapses the editor to one row and disables the
	// Enter-inserts-newline behavior.
	SingleLine bool

	// MaxRunes caps the total content length when positive. Input
	// beyond the cap is dropped.
	MaxRunes int

	lines   [][]rune
	cursorY int // Current line index.
	cursorX int // Cursor position within the current line.
	theme   Theme
}

// NewInputModal creates an empty, focused input modal.
func NewInputModal(title string, singleLine bool, theme Theme) InputModal {
	return InputModal{
		Title:      title,
		SingleLine: singleLine,
		lines:      [][]rune{{}},
		theme:      theme,
	}
}

// Value returns the current text content.
func (modal InputModal) Value() string {
	var parts []string
	for _, line := range modal.lines {
		parts = append(parts, string(line))
	}
	return strings.Join(parts, "\n")
}

// RuneCount returns the content length in runes, counting newlines.
func (modal InputModal) RuneCount() int {
	count := 0
	for index, line := range modal.lines {
		if index > 0 {
			count++
		}
		count += len(line)
	}
	return count
}

// Update processes a key message for the editor. Enter in single-line
// mode and Ctrl+D are not handled here: the owning model watches for
// them and calls Value.
func (modal *InputModal) Update(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			if modal.MaxRunes > 0 && modal.RuneCount() >= modal.MaxRunes {
				break
			}
			modal.insertRune(character)
		}

	case tea.KeyEnter:
		if modal.SingleLine {
			return
		}
		if modal.MaxRunes > 0 && modal.RuneCount() >= modal.MaxRunes {
			return
		}
		// Split the current line at the cursor.
		line := modal.lines[modal.cursorY]
		before := make([]rune, modal.cursorX)
		copy(before, line[:modal.cursorX])
		after := make([]rune, len(line)-modal.cursorX)
		copy(after, line[modal.cursorX:])

		modal.lines[modal.cursorY] = before
		newLines := make([][]rune, len(modal.lines)+1)
		copy(newLines, modal.lines[:modal.cursorY+1])
		newLines[modal.cursorY+1] = after
		copy(newLines[modal.cursorY+2:], modal.lines[modal.cursorY+1:])
		modal.lines = newLines
		modal.cursorY++
		modal.cursorX = 0

	case tea.KeyBackspace:
		if modal.cursorX > 0 {
			line := modal.lines[modal.cursorY]
			modal.lines[modal.cursorY] = append(line[:modal.cursorX-1], line[modal.cursorX:]...)
			modal.cursorX--
		} else if modal.cursorY > 0 {
			// Merge with previous line.
			previousLine := modal.lines[modal.cursorY-1]
			currentLine := modal.lines[modal.cursorY]
			modal.cursorX = len(previousLine)
			modal.lines[modal.cursorY-1] = append(previousLine, currentLine...)
			modal.lines = append(modal.lines[:modal.cursorY], modal.lines[modal.cursorY+1:]...)
			modal.cursorY--
		}

	case tea.KeyDelete:
		line := modal.lines[modal.cursorY]
		if modal.cursorX < len(line) {
			modal.lines[modal.cursorY] = append(line[:modal.cursorX], line[modal.cursorX+1:]...)
		} else if modal.cursorY < len(modal.lines)-1 {
			// Merge with next line.
			nextLine := modal.lines[modal.cursorY+1]
			modal.lines[modal.cursorY] = append(line, nextLine...)
			modal.lines = append(modal.lines[:modal.cursorY+1], modal.lines[modal.cursorY+2:]...)
		}

	case tea.KeyLeft:
		if modal.cursorX > 0 {
			modal.cursorX--
		} else if modal.cursorY > 0 {
			modal.cursorY--
			modal.cursorX = len(modal.lines[modal.cursorY])
		}

	case tea.KeyRight:
		line := modal.lines[modal.cursorY]
		if modal.cursorX < len(line) {
			modal.cursorX++
		} else if modal.cursorY < len(modal.lines)-1 {
			modal.cursorY++
			modal.cursorX = 0
		}

	case tea.KeyUp:
		if modal.cursorY > 0 {
			modal.cursorY--
			if modal.cursorX > len(modal.lines[modal.cursorY]) {
				modal.cursorX = len(modal.lines[modal.cursorY])
			}
		}

	case tea.KeyDown:
		if modal.cursorY < len(modal.lines)-1 {
			modal.cursorY++
			if modal.cursorX > len(modal.lines[modal.cursorY]) {
				modal.cursorX = len(modal.lines[modal.cursorY])
			}
		}

	case tea.KeyHome, tea.KeyCtrlA:
		modal.cursorX = 0

	case tea.KeyEnd, tea.KeyCtrlE:
		modal.cursorX = len(modal.lines[modal.cursorY])
	}
}

// insertRune inserts a single rune at the cursor position.
func (modal *InputModal) insertRune(character rune) {
	line := modal.lines[modal.cursorY]
	newLine := make([]rune, len(line)+1)
	copy(newLine, line[:modal.cursorX])
	newLine[modal.cursorX] = character
	copy(newLine[modal.cursorX+1:], line[modal.cursorX:])
	modal.lines[modal.cursorY] = newLine
	modal.cursorX++
}

// Modal chrome overhead: 2 columns border + 2 columns padding = 4
// columns horizontal; 2 lines border + 1 title + 1 footer = 4 lines
// vertical. The inner text area gets the remainder.
const (
	inputModalChromeWidth  = 4
	inputModalChromeHeight = 4
	// Minimum inner text area. Below this the editor is too cramped
	// to be useful.
	inputModalMinInnerWidth  = 30
	inputModalMinInnerHeight = 5
	// Margin between the modal edge and the screen edge, so the user
	// can see the underlying view isn't gone. Collapses to 0 on very
	// small screens.
	inputModalMargin = 4
)

// Render produces the modal overlay lines for splicing onto the view.
// Returns the rendered lines and the anchor position (top-left corner
// in screen coordinates).
func (modal InputModal) Render(screenWidth, screenHeight int) ([]string, int, int) {
	modalWidth := screenWidth - inputModalMargin*2
	modalHeight := screenHeight - inputModalMargin*2

	minWidth := inputModalMinInnerWidth + inputModalChromeWidth
	minHeight := inputModalMinInnerHeight + inputModalChromeHeight
	if modal.SingleLine {
		minHeight = 1 + inputModalChromeHeight
		modalHeight = minHeight
	}
	if modalWidth < minWidth {
		modalWidth = minWidth
	}
	if modalHeight < minHeight {
		modalHeight = minHeight
	}
	// Clamp to screen bounds so the overlay doesn't extend past the
	// terminal edges even when the minimum exceeds the screen.
	if modalWidth > screenWidth {
		modalWidth = screenWidth
	}
	if modalHeight > screenHeight {
		modalHeight = screenHeight
	}

	innerWidth := modalWidth - inputModalChromeWidth
	innerHeight := modalHeight - inputModalChromeHeight

	bgStyle := lipgloss.NewStyle().
		Background(modal.theme.OverlayBackground)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.theme.HeaderForeground).
		Background(modal.theme.OverlayBackground)

	footerStyle := lipgloss.NewStyle().
		Foreground(modal.theme.FaintText).
		Background(modal.theme.OverlayBackground)

	cursorStyle := lipgloss.NewStyle().
		Reverse(true)

	textStyle := lipgloss.NewStyle().
		Foreground(modal.theme.OverlayForeground).
		Background(modal.theme.OverlayBackground)

	// Build title line.
	title := titleStyle.Render(modal.Title)
	titleWidth := ansi.StringWidth(title)
	if titleWidth < innerWidth {
		title += bgStyle.Render(strings.Repeat(" ", innerWidth-titleWidth))
	}

	// Build footer line.
	footerText := modal.Footer
	if footerText == "" {
		if modal.SingleLine {
			footerText = "Enter submit  Esc cancel"
		} else {
			footerText = "Ctrl+D submit  Esc cancel"
		}
	}
	footer := footerStyle.Render(footerText)
	footerWidth := ansi.StringWidth(footer)
	if footerWidth < innerWidth {
		footer += bgStyle.Render(strings.Repeat(" ", innerWidth-footerWidth))
	}

	// Build text area lines with cursor. Scroll the view if the
	// cursor is past the visible area.
	var textLines []string
	scrollOffset := 0
	if modal.cursorY >= innerHeight {
		scrollOffset = modal.cursorY - innerHeight + 1
	}

	for lineIndex := scrollOffset; lineIndex < scrollOffset+innerHeight; lineIndex++ {
		var renderedLine string
		if lineIndex < len(modal.lines) {
			line := modal.lines[lineIndex]
			if lineIndex == modal.cursorY {
				if modal.cursorX >= len(line) {
					renderedLine = textStyle.Render(string(line)) + cursorStyle.Render(" ")
				} else {
					before := textStyle.Render(string(line[:modal.cursorX]))
					atCursor := cursorStyle.Render(string(line[modal.cursorX : modal.cursorX+1]))
					after := textStyle.Render(string(line[modal.cursorX+1:]))
					renderedLine = before + atCursor + after
				}
			} else {
				renderedLine = textStyle.Render(string(line))
			}
		}

		// Pad to inner width.
		lineWidth := ansi.StringWidth(renderedLine)
		if lineWidth < innerWidth {
			renderedLine += bgStyle.Render(strings.Repeat(" ", innerWidth-lineWidth))
		}
		textLines = append(textLines, renderedLine)
	}

	// Assemble the modal content inside a border.
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.theme.Accent).
		Background(modal.theme.OverlayBackground)

	inner := title + "\n" + strings.Join(textLines, "\n") + "\n" + footer
	rendered := borderStyle.Render(inner)

	// Split into lines and compute anchor for centering.
	resultLines := strings.Split(rendered, "\n")
	renderedWidth := 0
	if len(resultLines) > 0 {
		renderedWidth = ansi.StringWidth(resultLines[0])
	}

	anchorX := (screenWidth - renderedWidth) / 2
	anchorY := (screenHeight - len(resultLines)) / 2
	if anchorX < 0 {
		anchorX = 0
	}
	if anchorY < 0 {
		anchorY = 0
	}

	return resultLines, anchorX, anchorY
}
