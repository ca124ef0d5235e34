// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/coldfire-project/coldfire/helpdesk"
	"github.com/coldfire-project/coldfire/lib/tui"
)

// captchaPanel tracks the challenge currently shown on the
// registration form: the ASCII-art image, the seconds left before it
// expires, and a generation counter that orphans countdown ticks
// belonging to an earlier challenge.
type captchaPanel struct {
	challenge  *helpdesk.CaptchaChallenge
	remaining  int
	generation int
	loading    bool
}

// setChallenge installs a new challenge and bumps the generation so
// ticks scheduled for the previous challenge are ignored.
func (panel *captchaPanel) setChallenge(challenge *helpdesk.CaptchaChallenge) {
	panel.challenge = challenge
	panel.remaining = challenge.ExpiresIn
	panel.generation++
	panel.loading = false
}

// tick decrements the countdown. Returns true when the challenge has
// just expired and a fresh one should be fetched.
func (panel *captchaPanel) tick(generation int) bool {
	if generation != panel.generation || panel.challenge == nil {
		return false
	}
	if panel.remaining > 0 {
		panel.remaining--
	}
	return panel.remaining == 0
}

// token returns the session token of the current challenge, or "".
func (panel *captchaPanel) token() string {
	if panel.challenge == nil {
		return ""
	}
	return panel.challenge.SessionToken
}

// view renders the captcha block: the ASCII-art code, the countdown,
// and the refresh hint. The countdown turns red in the final minute.
func (panel *captchaPanel) view(theme tui.Theme) string {
	if panel.loading || panel.challenge == nil {
		return lipgloss.NewStyle().
			Foreground(theme.FaintText).
			Render("loading captcha…")
	}

	imageStyle := lipgloss.NewStyle().Foreground(theme.Accent)
	countdownStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	if panel.remaining <= 60 {
		countdownStyle = lipgloss.NewStyle().Foreground(theme.ErrorForeground)
	}

	var view strings.Builder
	for _, line := range strings.Split(strings.TrimRight(panel.challenge.Image, "\n"), "\n") {
		view.WriteString(imageStyle.Render(line))
		view.WriteString("\n")
	}
	view.WriteString(countdownStyle.Render(
		fmt.Sprintf("expires in %d:%02d", panel.remaining/60, panel.remaining%60)))
	view.WriteString(lipgloss.NewStyle().
		Foreground(theme.HelpText).
		Render("  (Ctrl+R new code)"))
	return view.String()
}
