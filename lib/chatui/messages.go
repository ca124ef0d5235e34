// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"github.com/coldfire-project/coldfire/helpdesk"
)

// loginResultMsg delivers the outcome of a login attempt.
type loginResultMsg struct {
	session *helpdesk.Session
	err     error
}

// registerResultMsg delivers the outcome of a registration attempt.
// Registration runs after the captcha has been verified server-side.
type registerResultMsg struct {
	session *helpdesk.Session
	err     error
}

// captchaMsg delivers a freshly fetched captcha challenge.
type captchaMsg struct {
	challenge *helpdesk.CaptchaChallenge
	err       error
}

// captchaVerifiedMsg reports whether the typed captcha answer was
// accepted. On success the session token doubles as the registration
// captcha token.
type captchaVerifiedMsg struct {
	token string
	err   error
}

// ticketsMsg delivers the ticket list from a load or poll.
type ticketsMsg struct {
	tickets []helpdesk.Ticket
	polled  bool // True when this came from the poll timer.
	err     error
}

// ticketCreatedMsg delivers the result of creating a ticket.
type ticketCreatedMsg struct {
	ticket *helpdesk.Ticket
	err    error
}

// threadMsg delivers the messages of one ticket from a load or poll.
type threadMsg struct {
	ticketID int
	messages []helpdesk.Message
	polled   bool
	err      error
}

// sentMsg delivers the result of sending a chat message.
type sentMsg struct {
	message *helpdesk.Message
	err     error
}

// flaggedMsg delivers the result of flagging a message.
type flaggedMsg struct {
	result *helpdesk.ReportResult
	err    error
}

// statsMsg delivers the moderator stats report for the overlay.
type statsMsg struct {
	report *helpdesk.StatsReport
	err    error
}

// pollTickMsg fires every poll interval while the chat phase is
// active. The generation counter invalidates ticks scheduled before a
// re-login or a manual refresh so only one poll chain runs at a time.
type pollTickMsg struct {
	generation int
}

// countdownTickMsg fires once per second while a captcha is displayed,
// driving the expiry countdown. Stale generations (from a replaced
// captcha) are ignored.
type countdownTickMsg struct {
	generation int
}

// arrivalTickMsg drives the fade animation for rows that just arrived
// through polling.
type arrivalTickMsg struct{}

// statusFadeMsg clears a transient status bar notice.
type statusFadeMsg struct{}
