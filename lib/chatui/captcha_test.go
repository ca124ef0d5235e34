// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/coldfire-project/coldfire/helpdesk"
	"github.com/coldfire-project/coldfire/lib/tui"
)

func TestCaptchaPanelSetChallenge(t *testing.T) {
	var panel captchaPanel
	if panel.token() != "" {
		t.Errorf("token before challenge = %q, want empty", panel.token())
	}

	panel.setChallenge(&helpdesk.CaptchaChallenge{SessionToken: "abc", Image: "███", ExpiresIn: 600})
	if panel.token() != "abc" {
		t.Errorf("token = %q, want abc", panel.token())
	}
	if panel.remaining != 600 {
		t.Errorf("remaining = %d, want 600", panel.remaining)
	}
	if panel.loading {
		t.Error("loading should clear when the challenge lands")
	}
}

func TestCaptchaPanelTickGenerations(t *testing.T) {
	var panel captchaPanel
	panel.setChallenge(&helpdesk.CaptchaChallenge{SessionToken: "a", ExpiresIn: 3})
	generation := panel.generation

	// Ticks for a replaced challenge are orphaned.
	if panel.tick(generation - 1) {
		t.Error("stale tick reported expiry")
	}
	if panel.remaining != 3 {
		t.Errorf("stale tick decremented: remaining = %d", panel.remaining)
	}

	if panel.tick(generation) || panel.tick(generation) {
		t.Error("expiry reported early")
	}
	if !panel.tick(generation) {
		t.Error("expected expiry on the final tick")
	}
}

func TestCaptchaPanelReplacementOrphansOldTicks(t *testing.T) {
	var panel captchaPanel
	panel.setChallenge(&helpdesk.CaptchaChallenge{SessionToken: "a", ExpiresIn: 10})
	oldGeneration := panel.generation

	panel.setChallenge(&helpdesk.CaptchaChallenge{SessionToken: "b", ExpiresIn: 600})
	if panel.tick(oldGeneration) {
		t.Error("tick for the replaced challenge reported expiry")
	}
	if panel.remaining != 600 {
		t.Errorf("replacement countdown disturbed: remaining = %d", panel.remaining)
	}
}

func TestCaptchaPanelView(t *testing.T) {
	var panel captchaPanel
	panel.loading = true
	if !strings.Contains(ansi.Strip(panel.view(tui.DefaultTheme)), "loading captcha") {
		t.Error("expected loading placeholder")
	}

	panel.setChallenge(&helpdesk.CaptchaChallenge{SessionToken: "a", Image: "█ █ █", ExpiresIn: 125})
	view := ansi.Strip(panel.view(tui.DefaultTheme))
	if !strings.Contains(view, "█ █ █") {
		t.Errorf("view missing image:\n%s", view)
	}
	if !strings.Contains(view, "expires in 2:05") {
		t.Errorf("view missing countdown:\n%s", view)
	}
	if !strings.Contains(view, "Ctrl+R") {
		t.Errorf("view missing refresh hint:\n%s", view)
	}
}
