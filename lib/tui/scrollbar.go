// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// thumbSpan computes the scrollbar thumb geometry: the row the thumb
// starts on and how many rows it covers. The thumb is proportional to
// the visible fraction of the content, with two pinning rules so the
// bar tracks the reading position honestly on tall content: the thumb
// leaves the top row as soon as anything is scrolled off, and reaches
// the bottom row only when the end of the content is in view.
func thumbSpan(height, total, visible, offset int) (start, size int) {
	size = height * visible / total
	if size < 1 {
		size = 1
	}
	if size > height {
		size = height
	}

	hidden := total - visible
	room := height - size
	if hidden <= 0 || room <= 0 {
		return 0, size
	}

	start = offset * room / hidden
	switch {
	case offset <= 0:
		start = 0
	case offset >= hidden:
		start = room
	case start == 0:
		start = 1
	case start == room:
		start = room - 1
	}
	return start, size
}

// RenderScrollbar draws a one-column scrollbar of the given height for
// a pane showing visibleItems out of totalItems, scrolled down by
// scrollOffset. When everything fits the thumb fills the whole track.
// A focused pane gets an accent-colored thumb.
func RenderScrollbar(theme Theme, height, totalItems, visibleItems, scrollOffset int, focused bool) string {
	if height <= 0 {
		return ""
	}
	if totalItems < 1 {
		totalItems = 1
	}
	if visibleItems > totalItems {
		visibleItems = totalItems
	}

	thumbColor := theme.BorderColor
	if focused {
		thumbColor = theme.Accent
	}
	track := lipgloss.NewStyle().Foreground(theme.BorderColor).Render("│")
	thumb := lipgloss.NewStyle().Foreground(thumbColor).Render("┃")

	start, size := thumbSpan(height, totalItems, visibleItems, scrollOffset)

	var column strings.Builder
	for row := 0; row < height; row++ {
		if row > 0 {
			column.WriteByte('\n')
		}
		if row >= start && row < start+size {
			column.WriteString(thumb)
		} else {
			column.WriteString(track)
		}
	}
	return column.String()
}
