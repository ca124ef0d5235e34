// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/coldfire-project/coldfire/helpdesk"
	"github.com/coldfire-project/coldfire/lib/tui"
)

// pollInterval is how often the chat phase refreshes the ticket list
// and the open thread from the server.
const pollInterval = 5 * time.Second

// statusFadeDelay is how long transient status notices stay visible.
const statusFadeDelay = 4 * time.Second

func loginCmd(ctx context.Context, client *helpdesk.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		session, err := client.Login(ctx, username, password)
		return loginResultMsg{session: session, err: err}
	}
}

func registerCmd(ctx context.Context, client *helpdesk.Client, request helpdesk.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		session, err := client.Register(ctx, request)
		return registerResultMsg{session: session, err: err}
	}
}

func fetchCaptchaCmd(ctx context.Context, client *helpdesk.Client) tea.Cmd {
	return func() tea.Msg {
		challenge, err := client.NewCaptcha(ctx)
		return captchaMsg{challenge: challenge, err: err}
	}
}

func verifyCaptchaCmd(ctx context.Context, client *helpdesk.Client, sessionToken, input string) tea.Cmd {
	return func() tea.Msg {
		err := client.VerifyCaptcha(ctx, sessionToken, input)
		return captchaVerifiedMsg{token: sessionToken, err: err}
	}
}

func loadTicketsCmd(ctx context.Context, session *helpdesk.Session, polled bool) tea.Cmd {
	return func() tea.Msg {
		tickets, err := session.Tickets(ctx)
		return ticketsMsg{tickets: tickets, polled: polled, err: err}
	}
}

func createTicketCmd(ctx context.Context, session *helpdesk.Session, title string) tea.Cmd {
	return func() tea.Msg {
		ticket, err := session.CreateTicket(ctx, title)
		return ticketCreatedMsg{ticket: ticket, err: err}
	}
}

func loadThreadCmd(ctx context.Context, session *helpdesk.Session, ticketID int, polled bool) tea.Cmd {
	return func() tea.Msg {
		messages, err := session.Messages(ctx, ticketID)
		return threadMsg{ticketID: ticketID, messages: messages, polled: polled, err: err}
	}
}

func sendMessageCmd(ctx context.Context, session *helpdesk.Session, ticketID int, content string) tea.Cmd {
	return func() tea.Msg {
		message, err := session.Send(ctx, ticketID, content)
		return sentMsg{message: message, err: err}
	}
}

func flagMessageCmd(ctx context.Context, session *helpdesk.Session, messageID int, reason string) tea.Cmd {
	return func() tea.Msg {
		result, err := session.Report(ctx, messageID, reason, "")
		return flaggedMsg{result: result, err: err}
	}
}

func loadStatsCmd(ctx context.Context, session *helpdesk.Session) tea.Cmd {
	return func() tea.Msg {
		report, err := session.ModeratorStats(ctx)
		return statsMsg{report: report, err: err}
	}
}

// schedulePoll arms the next poll tick. The generation is checked on
// receipt so a restarted poll chain orphans any ticks still in flight.
func schedulePoll(generation int) tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{generation: generation}
	})
}

// scheduleCountdown arms the next 1-second captcha countdown tick.
func scheduleCountdown(generation int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownTickMsg{generation: generation}
	})
}

// scheduleArrivalTick arms the next fade-animation frame.
func scheduleArrivalTick() tea.Cmd {
	return tea.Tick(tui.ArrivalTickInterval, func(time.Time) tea.Msg {
		return arrivalTickMsg{}
	})
}

// scheduleStatusFade clears the status notice after a short delay.
func scheduleStatusFade() tea.Cmd {
	return tea.Tick(statusFadeDelay, func(time.Time) tea.Msg {
		return statusFadeMsg{}
	})
}
