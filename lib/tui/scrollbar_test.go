// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestThumbSpanFullWhenContentFits(t *testing.T) {
	start, size := thumbSpan(8, 5, 10, 0)
	if start != 0 || size != 8 {
		t.Errorf("thumbSpan = (%d, %d), want (0, 8)", start, size)
	}
}

func TestThumbSpanProportional(t *testing.T) {
	// 20 of 100 lines visible on a 10-row track: 2-row thumb,
	// 8 rows of travel over 80 lines of hidden content.
	cases := []struct {
		offset    int
		wantStart int
	}{
		{0, 0},
		{40, 4},
		{80, 8},
	}
	for _, testCase := range cases {
		start, size := thumbSpan(10, 100, 20, testCase.offset)
		if size != 2 {
			t.Errorf("offset %d: size = %d, want 2", testCase.offset, size)
		}
		if start != testCase.wantStart {
			t.Errorf("offset %d: start = %d, want %d", testCase.offset, start, testCase.wantStart)
		}
	}
}

func TestThumbSpanLeavesTopOnceScrolled(t *testing.T) {
	// With very tall content the proportional start rounds to 0 for
	// small offsets; any scrolling must still move the thumb off the
	// top row.
	start, _ := thumbSpan(10, 1000, 20, 1)
	if start == 0 {
		t.Error("thumb stayed on the top row after scrolling")
	}
}

func TestThumbSpanPinsBottomOnlyAtEnd(t *testing.T) {
	start, size := thumbSpan(10, 1000, 20, 979)
	if start+size >= 10 {
		t.Errorf("thumb reached the bottom row one line early: start=%d size=%d", start, size)
	}
	start, size = thumbSpan(10, 1000, 20, 980)
	if start+size != 10 {
		t.Errorf("thumb not pinned to the bottom at full scroll: start=%d size=%d", start, size)
	}
}

func TestRenderScrollbarShape(t *testing.T) {
	theme := DefaultTheme
	rendered := ansi.Strip(RenderScrollbar(theme, 5, 50, 10, 0, false))
	rows := strings.Split(rendered, "\n")
	if len(rows) != 5 {
		t.Fatalf("rendered %d rows, want 5", len(rows))
	}
	if rows[0] != "┃" {
		t.Errorf("top row = %q, want thumb", rows[0])
	}
	for index, row := range rows[1:] {
		if row != "│" {
			t.Errorf("row %d = %q, want track", index+1, row)
		}
	}
}

func TestRenderScrollbarFullThumbWhenContentFits(t *testing.T) {
	rendered := ansi.Strip(RenderScrollbar(DefaultTheme, 3, 2, 5, 0, true))
	if rendered != "┃\n┃\n┃" {
		t.Errorf("rendered = %q, want a full-height thumb", rendered)
	}
}

func TestRenderScrollbarZeroHeight(t *testing.T) {
	if rendered := RenderScrollbar(DefaultTheme, 0, 10, 5, 0, false); rendered != "" {
		t.Errorf("rendered = %q, want empty", rendered)
	}
}
