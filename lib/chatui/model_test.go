// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/coldfire-project/coldfire/helpdesk"
	"github.com/coldfire-project/coldfire/lib/mockapi"
)

// newTestSession logs into a fresh mock backend. Password for all
// seeded accounts is "metro2033".
func newTestSession(t *testing.T, username string) (*helpdesk.Client, *helpdesk.Session) {
	t.Helper()
	httpServer := httptest.NewServer(mockapi.New(nil).Handler())
	t.Cleanup(httpServer.Close)

	client, err := helpdesk.NewClient(helpdesk.ClientConfig{
		Endpoints: helpdesk.EndpointsFromBase(httpServer.URL),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	session, err := client.Login(context.Background(), username, "metro2033")
	if err != nil {
		t.Fatalf("login %s: %v", username, err)
	}
	return client, session
}

// newChatModel builds an authenticated model sized for tests.
func newChatModel(t *testing.T, username string) Model {
	t.Helper()
	client, session := newTestSession(t, username)
	model := NewAuthenticatedModel(context.Background(), client, session)
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func ticketFixtures() []helpdesk.Ticket {
	return []helpdesk.Ticket{
		{ID: 1, Title: "Radio dead past Rizhskaya", Status: helpdesk.StatusInProgress, Priority: helpdesk.PriorityHigh},
		{ID: 2, Title: "Water filter hissing", Status: helpdesk.StatusOpen, Priority: helpdesk.PriorityMedium},
		{ID: 3, Title: "Lamp oil ration short", Status: helpdesk.StatusClosed, Priority: helpdesk.PriorityLow},
	}
}

func messageFixtures() []helpdesk.Message {
	return []helpdesk.Message{
		{ID: 10, Content: "the signal cuts out near the junction", Sender: helpdesk.Sender{Username: "newbie_stalker", Role: helpdesk.RoleUser}},
		{ID: 11, Content: "checking the relay now", Sender: helpdesk.Sender{Username: "artyom_spartan", Role: helpdesk.RoleModerator}},
	}
}

func keyRune(character rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{character}}
}

func update(t *testing.T, model Model, message tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := model.Update(message)
	return updated.(Model), cmd
}

func TestViewBeforeFirstResize(t *testing.T) {
	client, _ := newTestSession(t, "newbie_stalker")
	model := NewModel(context.Background(), client)

	if !strings.Contains(model.View(), "initializing") {
		t.Errorf("expected placeholder before first WindowSizeMsg, got %q", model.View())
	}
}

func TestAuthViewShowsBanner(t *testing.T) {
	client, _ := newTestSession(t, "newbie_stalker")
	model := NewModel(context.Background(), client)
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 100, Height: 30})

	view := ansi.Strip(model.View())
	if !strings.Contains(view, "COLDFIRE SUPPORT TERMINAL") {
		t.Errorf("auth view missing banner:\n%s", view)
	}
	if !strings.Contains(view, "Callsign:") || !strings.Contains(view, "Password:") {
		t.Errorf("auth view missing login fields:\n%s", view)
	}
}

func TestAuthSwitchToRegister(t *testing.T) {
	client, _ := newTestSession(t, "newbie_stalker")
	model := NewModel(context.Background(), client)
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 100, Height: 30})

	model, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyCtrlT})
	if model.auth.mode != modeRegister {
		t.Fatalf("mode = %v, want register", model.auth.mode)
	}
	if len(model.auth.fields) != 6 {
		t.Errorf("register form has %d fields, want 6", len(model.auth.fields))
	}
	if cmd == nil {
		t.Error("expected a captcha fetch command on entering registration")
	}
	if !model.auth.captcha.loading {
		t.Error("captcha should be loading until the challenge arrives")
	}

	// Switching back rebuilds the login form.
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyCtrlT})
	if model.auth.mode != modeLogin || len(model.auth.fields) != 2 {
		t.Errorf("after switch back: mode = %v, fields = %d", model.auth.mode, len(model.auth.fields))
	}
}

func TestAuthCaptchaArrivalStartsCountdown(t *testing.T) {
	client, _ := newTestSession(t, "newbie_stalker")
	model := NewModel(context.Background(), client)
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyCtrlT})

	challenge := &helpdesk.CaptchaChallenge{SessionToken: "tok", Image: "███", ExpiresIn: 600}
	model, cmd := update(t, model, captchaMsg{challenge: challenge})
	if model.auth.captcha.remaining != 600 {
		t.Errorf("remaining = %d, want 600", model.auth.captcha.remaining)
	}
	if cmd == nil {
		t.Error("expected a countdown tick to be scheduled")
	}

	generation := model.auth.captcha.generation

	// A tick from a replaced challenge must not touch the countdown.
	model, _ = update(t, model, countdownTickMsg{generation: generation - 1})
	if model.auth.captcha.remaining != 600 {
		t.Errorf("stale tick changed remaining to %d", model.auth.captcha.remaining)
	}

	model, cmd = update(t, model, countdownTickMsg{generation: generation})
	if model.auth.captcha.remaining != 599 {
		t.Errorf("remaining after tick = %d, want 599", model.auth.captcha.remaining)
	}
	if cmd == nil {
		t.Error("countdown should reschedule while time remains")
	}
}

func TestTicketListNavigation(t *testing.T) {
	model := newChatModel(t, "artyom_spartan")
	model, _ = update(t, model, ticketsMsg{tickets: ticketFixtures()})

	if model.cursor != 0 {
		t.Fatalf("initial cursor = %d, want 0", model.cursor)
	}

	model, cmd := update(t, model, keyRune('j'))
	if model.cursor != 1 || model.selectedTicketID != 2 {
		t.Errorf("after j: cursor = %d, selected = %d", model.cursor, model.selectedTicketID)
	}
	if cmd == nil {
		t.Error("moving the cursor should load the ticket's thread")
	}

	model, _ = update(t, model, keyRune('k'))
	if model.cursor != 0 || model.selectedTicketID != 1 {
		t.Errorf("after k: cursor = %d, selected = %d", model.cursor, model.selectedTicketID)
	}

	model, _ = update(t, model, keyRune('G'))
	if model.cursor != 2 || model.selectedTicketID != 3 {
		t.Errorf("after G: cursor = %d, selected = %d", model.cursor, model.selectedTicketID)
	}

	model, _ = update(t, model, keyRune('g'))
	if model.cursor != 0 || model.selectedTicketID != 1 {
		t.Errorf("after g: cursor = %d, selected = %d", model.cursor, model.selectedTicketID)
	}
}

func TestEnterOpensTicketAndFocusesComposer(t *testing.T) {
	model := newChatModel(t, "newbie_stalker")
	model, _ = update(t, model, ticketsMsg{tickets: ticketFixtures()})

	model, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.selectedTicketID != 1 {
		t.Errorf("selected = %d, want 1", model.selectedTicketID)
	}
	if model.focusRegion != FocusComposer {
		t.Errorf("focus = %v, want composer", model.focusRegion)
	}
	if cmd == nil {
		t.Error("opening a ticket should load its thread")
	}
}

func TestNewTicketModal(t *testing.T) {
	model := newChatModel(t, "newbie_stalker")

	model, _ = update(t, model, keyRune('n'))
	if model.focusRegion != FocusNewTicket || model.newTicketModal == nil {
		t.Fatal("expected the new-ticket modal to open")
	}
	if model.newTicketModal.MaxRunes != 200 {
		t.Errorf("modal MaxRunes = %d, want 200", model.newTicketModal.MaxRunes)
	}

	// Escape closes without creating anything.
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEscape})
	if model.newTicketModal != nil || model.focusRegion != FocusTickets {
		t.Fatal("escape should close the modal and restore focus")
	}

	// Enter on a blank title is a no-op; with a title it submits.
	model, _ = update(t, model, keyRune('n'))
	model, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.newTicketModal == nil || cmd != nil {
		t.Error("blank title must not submit")
	}
	for _, character := range "No heat at Kitay-Gorod" {
		model, _ = update(t, model, keyRune(character))
	}
	model, cmd = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.newTicketModal != nil {
		t.Error("modal should close on submit")
	}
	if cmd == nil {
		t.Error("expected a create-ticket command")
	}
}

func TestNewTicketIsUserOnly(t *testing.T) {
	model := newChatModel(t, "artyom_spartan")

	model, _ = update(t, model, keyRune('n'))
	if model.newTicketModal != nil {
		t.Error("moderators must not open the new-ticket modal")
	}
	if model.statusNotice != "only users open tickets" {
		t.Errorf("notice = %q", model.statusNotice)
	}
}

func TestTicketCreatedSelectsNewTicket(t *testing.T) {
	model := newChatModel(t, "newbie_stalker")
	model, _ = update(t, model, ticketsMsg{tickets: ticketFixtures()})

	created := &helpdesk.Ticket{ID: 9, Title: "Airlock jammed", Status: helpdesk.StatusOpen}
	model, cmd := update(t, model, ticketCreatedMsg{ticket: created})

	if len(model.tickets) != 4 || model.tickets[0].ID != 9 {
		t.Errorf("new ticket should be prepended, got %d tickets, first = %d", len(model.tickets), model.tickets[0].ID)
	}
	if model.selectedTicketID != 9 || model.cursor != 0 {
		t.Errorf("selected = %d, cursor = %d", model.selectedTicketID, model.cursor)
	}
	if model.focusRegion != FocusComposer {
		t.Errorf("focus = %v, want composer", model.focusRegion)
	}
	if model.statusNotice != "ticket #9 opened" {
		t.Errorf("notice = %q", model.statusNotice)
	}
	if cmd == nil {
		t.Error("expected follow-up thread and list loads")
	}
}

func TestStatsIsModeratorOnly(t *testing.T) {
	model := newChatModel(t, "newbie_stalker")

	model, _ = update(t, model, keyRune('s'))
	if model.statsPanel != nil {
		t.Error("stats panel must not open for a regular user")
	}
	if model.statusNotice != "statistics are moderator-only" {
		t.Errorf("notice = %q", model.statusNotice)
	}
}

func TestStatsOverlayLifecycle(t *testing.T) {
	model := newChatModel(t, "artyom_spartan")

	model, cmd := update(t, model, keyRune('s'))
	if model.statsPanel == nil || model.focusRegion != FocusStats {
		t.Fatal("expected the stats overlay to open for a moderator")
	}
	if cmd == nil {
		t.Error("expected a stats load command")
	}

	report := &helpdesk.StatsReport{
		Stats: helpdesk.ModStats{TicketsClosed: 63, AverageRating: 4.7},
	}
	model, _ = update(t, model, statsMsg{report: report})

	// Tab keys switch panels; escape closes and restores focus.
	model, _ = update(t, model, keyRune('2'))
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEscape})
	if model.statsPanel != nil || model.focusRegion != FocusTickets {
		t.Error("escape should close the stats overlay")
	}
}

func TestFlagIsModeratorOnly(t *testing.T) {
	model := newChatModel(t, "newbie_stalker")
	model.focusRegion = FocusThread

	model, _ = update(t, model, keyRune('f'))
	if model.reportDropdown != nil {
		t.Error("report dropdown must not open for a regular user")
	}
	if model.statusNotice != "flagging is moderator-only" {
		t.Errorf("notice = %q", model.statusNotice)
	}
}

func TestFlagNeedsSelectedMessage(t *testing.T) {
	model := newChatModel(t, "artyom_spartan")
	model.focusRegion = FocusThread

	model, _ = update(t, model, keyRune('f'))
	if model.reportDropdown != nil {
		t.Error("dropdown opened without a selected message")
	}
	if !strings.Contains(model.statusNotice, "select a message first") {
		t.Errorf("notice = %q", model.statusNotice)
	}
}

func TestFlagOpensReasonDropdown(t *testing.T) {
	model := newChatModel(t, "artyom_spartan")
	model, _ = update(t, model, ticketsMsg{tickets: ticketFixtures()})
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	model, _ = update(t, model, threadMsg{ticketID: 1, messages: messageFixtures()})

	model.focusRegion = FocusThread
	// Entering selection from the tail starts at the newest message.
	model, _ = update(t, model, keyRune('k'))
	model, _ = update(t, model, keyRune('f'))

	if model.reportDropdown == nil || model.focusRegion != FocusReportReason {
		t.Fatal("expected the reason dropdown to open")
	}
	if model.reportDropdown.ItemID != 11 {
		t.Errorf("dropdown targets message %d, want 11", model.reportDropdown.ItemID)
	}

	model, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.reportDropdown != nil || model.focusRegion != FocusThread {
		t.Error("submitting should close the dropdown and restore focus")
	}
	if cmd == nil {
		t.Error("expected a flag command")
	}
}

func TestFlaggedResultNotice(t *testing.T) {
	model := newChatModel(t, "artyom_spartan")

	model, _ = update(t, model, flaggedMsg{result: &helpdesk.ReportResult{ReportID: 4, WarningCount: 2}})
	if model.statusNotice != "report #4 filed — sender now has 2 warning(s)" {
		t.Errorf("notice = %q", model.statusNotice)
	}

	model, _ = update(t, model, flaggedMsg{result: &helpdesk.ReportResult{ReportID: 5, WarningCount: 3, UserBanned: true}})
	if model.statusNotice != "report #5 filed — sender has been banned" {
		t.Errorf("ban notice = %q", model.statusNotice)
	}
}

func TestComposerRequiresOpenTicket(t *testing.T) {
	model := newChatModel(t, "newbie_stalker")
	model.focusRegion = FocusComposer

	for _, character := range "hello" {
		model, _ = update(t, model, keyRune(character))
	}
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	if model.sending {
		t.Error("nothing should be in flight without a ticket")
	}
	if model.statusNotice != "open a ticket first" {
		t.Errorf("notice = %q", model.statusNotice)
	}
}

func TestComposerSendAndClear(t *testing.T) {
	model := newChatModel(t, "newbie_stalker")
	model, _ = update(t, model, ticketsMsg{tickets: ticketFixtures()})
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	for _, character := range "the pump is fixed" {
		model, _ = update(t, model, keyRune(character))
	}
	model, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if !model.sending {
		t.Fatal("expected sending state after submit")
	}
	if cmd == nil {
		t.Fatal("expected a send command")
	}

	// Enter while a send is in flight is a no-op.
	model, cmd = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("double submit while sending")
	}

	model, cmd = update(t, model, sentMsg{message: &helpdesk.Message{ID: 12}})
	if model.sending {
		t.Error("sending should clear on acknowledgement")
	}
	if model.composer.Value() != "" {
		t.Errorf("composer not cleared: %q", model.composer.Value())
	}
	if cmd == nil {
		t.Fatal("expected reloads after sending")
	}

	// Both the thread and the ticket list refresh: the send bumped
	// the ticket's message count and last-activity ordering.
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatal("expected a batch of reload commands")
	}
	var threadReload, listReload bool
	for _, sub := range batch {
		switch sub().(type) {
		case threadMsg:
			threadReload = true
		case ticketsMsg:
			listReload = true
		}
	}
	if !threadReload || !listReload {
		t.Errorf("reloads fired: thread=%v list=%v, want both", threadReload, listReload)
	}
}

func TestStalePollTickIgnored(t *testing.T) {
	model := newChatModel(t, "newbie_stalker")

	_, cmd := model.Update(pollTickMsg{generation: model.pollGeneration - 1})
	if cmd != nil {
		t.Error("stale poll tick must not trigger loads")
	}

	_, cmd = model.Update(pollTickMsg{generation: model.pollGeneration})
	if cmd == nil {
		t.Error("current poll tick should trigger loads and reschedule")
	}
}

func TestRefreshOrphansPollChain(t *testing.T) {
	model := newChatModel(t, "newbie_stalker")
	previous := model.pollGeneration

	model, cmd := update(t, model, keyRune('r'))
	if model.pollGeneration != previous+1 {
		t.Errorf("pollGeneration = %d, want %d", model.pollGeneration, previous+1)
	}
	if cmd == nil {
		t.Error("refresh should start an immediate load")
	}

	_, cmd = model.Update(pollTickMsg{generation: previous})
	if cmd != nil {
		t.Error("the superseded poll chain should be orphaned")
	}
}

func TestPolledTicketsIgniteArrivals(t *testing.T) {
	model := newChatModel(t, "artyom_spartan")
	model, _ = update(t, model, ticketsMsg{tickets: ticketFixtures()})

	grown := append(ticketFixtures(), helpdesk.Ticket{ID: 4, Title: "Strangers at the gate", Status: helpdesk.StatusOpen})
	model, cmd := update(t, model, ticketsMsg{tickets: grown, polled: true})

	if len(model.tickets) != 4 {
		t.Errorf("tickets = %d, want 4", len(model.tickets))
	}
	if !model.tickRunning {
		t.Error("a polled arrival should start the fade animation")
	}
	if cmd == nil {
		t.Error("expected an arrival tick command")
	}
}

func TestThreadIgnoresStaleTicket(t *testing.T) {
	model := newChatModel(t, "newbie_stalker")
	model, _ = update(t, model, ticketsMsg{tickets: ticketFixtures()})
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	model, _ = update(t, model, threadMsg{ticketID: 99, messages: messageFixtures()})
	if len(model.thread.Messages()) != 0 {
		t.Error("messages for a different ticket must be dropped")
	}

	model, _ = update(t, model, threadMsg{ticketID: 1, messages: messageFixtures()})
	if len(model.thread.Messages()) != 2 {
		t.Errorf("thread has %d messages, want 2", len(model.thread.Messages()))
	}
}

func TestThreadScrollbarTracksOverflow(t *testing.T) {
	model := newChatModel(t, "newbie_stalker")
	model, _ = update(t, model, ticketsMsg{tickets: ticketFixtures()})
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	// A short thread fits the viewport: every scrollbar cell is a
	// full-height thumb, never a bare track.
	model, _ = update(t, model, threadMsg{ticketID: 1, messages: messageFixtures()})
	if pane := ansi.Strip(model.viewThreadPane()); strings.Contains(pane, "│") {
		t.Error("scrollbar track visible although nothing overflows")
	}

	long := make([]helpdesk.Message, 60)
	for index := range long {
		long[index] = helpdesk.Message{
			ID:      100 + index,
			Content: "tunnel report line",
			Sender:  helpdesk.Sender{Username: "newbie_stalker", Role: helpdesk.RoleUser},
		}
	}
	model, _ = update(t, model, threadMsg{ticketID: 1, messages: long})

	pane := ansi.Strip(model.viewThreadPane())
	if !strings.Contains(pane, "│") {
		t.Error("overflowing thread did not render a scrollbar track")
	}
	if !strings.Contains(pane, "┃") {
		t.Error("overflowing thread did not render a scrollbar thumb")
	}
}

func TestAuthErrorReturnsToLogin(t *testing.T) {
	model := newChatModel(t, "newbie_stalker")
	model, _ = update(t, model, ticketsMsg{tickets: ticketFixtures()})

	model, _ = update(t, model, ticketsMsg{err: &helpdesk.APIError{StatusCode: 401, Message: "Invalid token"}})
	if model.phase != PhaseAuth {
		t.Fatalf("phase = %v, want auth", model.phase)
	}
	if model.session != nil {
		t.Error("session should be dropped")
	}
	if model.auth.errorText != "session expired — sign in again" {
		t.Errorf("errorText = %q", model.auth.errorText)
	}
}

func TestLogoutReturnsToAuth(t *testing.T) {
	model := newChatModel(t, "newbie_stalker")
	model, _ = update(t, model, ticketsMsg{tickets: ticketFixtures()})
	previous := model.pollGeneration

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyCtrlL})
	if model.phase != PhaseAuth || model.session != nil {
		t.Fatal("logout should drop the session and show the login form")
	}
	if model.auth.errorText != "" {
		t.Errorf("logout should not show an error, got %q", model.auth.errorText)
	}
	if model.pollGeneration != previous+1 {
		t.Error("logout should orphan the running poll chain")
	}
}

func TestPollErrorIsTransient(t *testing.T) {
	model := newChatModel(t, "newbie_stalker")

	// A non-auth failure on a polled load is silent; the next tick
	// retries.
	model, cmd := update(t, model, ticketsMsg{polled: true, err: &helpdesk.APIError{StatusCode: 502, Message: "bad gateway"}})
	if cmd != nil || model.phase != PhaseChat || model.statusNotice != "" {
		t.Error("polled failures must not surface")
	}
}

func TestCycleFocus(t *testing.T) {
	model := newChatModel(t, "newbie_stalker")

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyTab})
	if model.focusRegion != FocusThread {
		t.Fatalf("focus = %v, want thread", model.focusRegion)
	}
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyTab})
	if model.focusRegion != FocusComposer {
		t.Fatalf("focus = %v, want composer", model.focusRegion)
	}
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyTab})
	if model.focusRegion != FocusTickets {
		t.Fatalf("focus = %v, want tickets", model.focusRegion)
	}
}

func TestHeaderShowsIdentity(t *testing.T) {
	model := newChatModel(t, "artyom_spartan")
	model, _ = update(t, model, ticketsMsg{tickets: ticketFixtures()})

	view := ansi.Strip(model.View())
	if !strings.Contains(view, "COLDFIRE SUPPORT") {
		t.Errorf("header missing banner:\n%s", view)
	}
	if !strings.Contains(view, "artyom_spartan") {
		t.Errorf("header missing username:\n%s", view)
	}
	if !strings.Contains(view, "3 tickets") {
		t.Errorf("header missing ticket count:\n%s", view)
	}
}

func TestEmptyListHint(t *testing.T) {
	model := newChatModel(t, "newbie_stalker")

	view := ansi.Strip(model.View())
	if !strings.Contains(view, "no tickets — press n") {
		t.Errorf("empty list hint missing:\n%s", view)
	}
}
