// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DropdownOption is a single selectable item in a dropdown overlay.
type DropdownOption struct {
	Label string // Display text shown in the dropdown.
	Value string // Wire value sent to the service on selection.
}

// DropdownOverlay renders a floating menu anchored at a screen
// position. It captures all keyboard input while active: up/down to
// navigate, enter to select, escape to dismiss. Used for picking a
// report reason on a flagged message.
type DropdownOverlay struct {
	Options []DropdownOption
	Cursor  int
	AnchorX int // Screen X coordinate of the dropdown's top-left corner.
	AnchorY int // Screen Y coordinate of the dropdown's top-left corner.
	ItemID  int // The message or ticket the selection applies to.
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (dropdown *DropdownOverlay) MoveUp() {
	dropdown.Cursor--
	if dropdown.Cursor < 0 {
		dropdown.Cursor = len(dropdown.Options) - 1
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (dropdown *DropdownOverlay) MoveDown() {
	dropdown.Cursor++
	if dropdown.Cursor >= len(dropdown.Options) {
		dropdown.Cursor = 0
	}
}

// Selected returns the currently highlighted option.
func (dropdown *DropdownOverlay) Selected() DropdownOption {
	return dropdown.Options[dropdown.Cursor]
}

// Render produces the dropdown lines for overlay splicing. Each line
// has the same visible width and a solid background for visual
// separation from the underlying content. The highlighted option uses
// a contrasting background.
func (dropdown *DropdownOverlay) Render(theme Theme) []string {
	maxLabelWidth := 0
	for _, option := range dropdown.Options {
		labelWidth := ansi.StringWidth(option.Label)
		if labelWidth > maxLabelWidth {
			maxLabelWidth = labelWidth
		}
	}
	// Layout: " > LABEL " with one space of padding on each side.
	innerWidth := 2 + maxLabelWidth
	totalWidth := innerWidth + 2

	backgroundStyle := lipgloss.NewStyle().
		Background(theme.OverlayBackground).
		Foreground(theme.OverlayForeground)
	selectedBackground := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	var lines []string
	for index, option := range dropdown.Options {
		marker := " "
		style := backgroundStyle
		if index == dropdown.Cursor {
			marker = ">"
			style = selectedBackground
		}

		content := marker + " " + option.Label
		rightPad := innerWidth - ansi.StringWidth(content)
		if rightPad < 0 {
			rightPad = 0
		}
		styledLine := style.Render(" " + content + strings.Repeat(" ", rightPad) + " ")

		// Ensure consistent visible width across all lines.
		lineWidth := ansi.StringWidth(styledLine)
		if lineWidth < totalWidth {
			styledLine += style.Render(strings.Repeat(" ", totalWidth-lineWidth))
		}

		lines = append(lines, styledLine)
	}

	return lines
}
