// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeIntoModal(modal *InputModal, input string) {
	for _, character := range input {
		modal.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{character}})
	}
}

func TestInputModalTyping(t *testing.T) {
	modal := NewInputModal("Open a ticket", true, DefaultTheme)
	typeIntoModal(&modal, "no water at Polis")

	if modal.Value() != "no water at Polis" {
		t.Errorf("Value = %q", modal.Value())
	}
}

func TestInputModalSingleLineIgnoresEnter(t *testing.T) {
	modal := NewInputModal("Open a ticket", true, DefaultTheme)
	typeIntoModal(&modal, "ab")
	modal.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeIntoModal(&modal, "c")

	if modal.Value() != "abc" {
		t.Errorf("Value = %q, want %q", modal.Value(), "abc")
	}
}

func TestInputModalMultiLineEnterSplits(t *testing.T) {
	modal := NewInputModal("Notes", false, DefaultTheme)
	typeIntoModal(&modal, "ab")
	modal.Update(tea.KeyMsg{Type: tea.KeyLeft})
	modal.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if modal.Value() != "a\nb" {
		t.Errorf("Value = %q, want %q", modal.Value(), "a\nb")
	}
	if modal.RuneCount() != 3 {
		t.Errorf("RuneCount = %d, want 3 (newline counts)", modal.RuneCount())
	}
}

func TestInputModalBackspaceMergesLines(t *testing.T) {
	modal := NewInputModal("Notes", false, DefaultTheme)
	typeIntoModal(&modal, "ab")
	modal.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeIntoModal(&modal, "cd")
	modal.Update(tea.KeyMsg{Type: tea.KeyHome})
	modal.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	if modal.Value() != "abcd" {
		t.Errorf("Value = %q, want %q", modal.Value(), "abcd")
	}
}

func TestInputModalMaxRunes(t *testing.T) {
	modal := NewInputModal("Open a ticket", true, DefaultTheme)
	modal.MaxRunes = 4
	typeIntoModal(&modal, "abcdef")

	if modal.Value() != "abcd" {
		t.Errorf("Value = %q, want %q", modal.Value(), "abcd")
	}
}

func TestInputModalRenderCentersOnScreen(t *testing.T) {
	modal := NewInputModal("Open a ticket", true, DefaultTheme)
	lines, anchorX, anchorY := modal.Render(100, 40)

	if len(lines) == 0 {
		t.Fatal("no overlay lines rendered")
	}
	if anchorX <= 0 || anchorY <= 0 {
		t.Errorf("anchor = (%d, %d), want inside the screen", anchorX, anchorY)
	}
	if anchorY+len(lines) > 40 {
		t.Errorf("overlay runs off screen: anchorY = %d with %d lines", anchorY, len(lines))
	}
}

func TestDropdownNavigationWraps(t *testing.T) {
	dropdown := DropdownOverlay{
		Options: []DropdownOption{
			{Label: "Spam", Value: "spam"},
			{Label: "Harassment", Value: "harassment"},
			{Label: "Other", Value: "other"},
		},
	}

	dropdown.MoveUp()
	if dropdown.Selected().Value != "other" {
		t.Errorf("MoveUp from top selects %q, want wrap to last", dropdown.Selected().Value)
	}
	dropdown.MoveDown()
	if dropdown.Selected().Value != "spam" {
		t.Errorf("MoveDown from bottom selects %q, want wrap to first", dropdown.Selected().Value)
	}
	dropdown.MoveDown()
	if dropdown.Selected().Value != "harassment" {
		t.Errorf("Selected = %q, want harassment", dropdown.Selected().Value)
	}
}

func TestDropdownRenderUniformWidth(t *testing.T) {
	dropdown := DropdownOverlay{
		Options: []DropdownOption{
			{Label: "Spam", Value: "spam"},
			{Label: "Offensive content", Value: "offensive"},
		},
	}

	lines := dropdown.Render(DefaultTheme)
	if len(lines) != len(dropdown.Options) {
		t.Fatalf("rendered %d lines for %d options", len(lines), len(dropdown.Options))
	}
}
