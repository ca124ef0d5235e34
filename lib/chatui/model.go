// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/coldfire-project/coldfire/helpdesk"
	"github.com/coldfire-project/coldfire/lib/tui"
)

// Phase identifies which screen the model is showing.
type Phase int

const (
	// PhaseAuth is the login/registration screen.
	PhaseAuth Phase = iota
	// PhaseChat is the two-pane ticket chat.
	PhaseChat
)

// FocusRegion identifies where keyboard input routes in the chat
// phase.
type FocusRegion int

const (
	// FocusTickets means navigation keys move the ticket list cursor.
	FocusTickets FocusRegion = iota
	// FocusThread means navigation keys select messages in the thread.
	FocusThread
	// FocusComposer means keystrokes go to the message input.
	FocusComposer
	// FocusNewTicket means the new-ticket modal captures all input.
	FocusNewTicket
	// FocusReportReason means the flag-reason dropdown captures all
	// input.
	FocusReportReason
	// FocusStats means the stats overlay is open.
	FocusStats
)

// List pane sizing: fixed share of the terminal width, clamped so
// neither pane collapses on extreme sizes.
const (
	listWidthShare = 0.38
	listWidthMin   = 28
	listWidthMax   = 60
)

// reportReasons are the flag categories offered to moderators.
var reportReasons = []tui.DropdownOption{
	{Label: "Spam", Value: "spam"},
	{Label: "Harassment", Value: "harassment"},
	{Label: "Offensive content", Value: "offensive"},
	{Label: "Other", Value: "other"},
}

// Model is the top-level bubbletea model for the support client.
type Model struct {
	ctx    context.Context
	client *helpdesk.Client
	theme  tui.Theme
	keys   KeyMap

	width  int
	height int
	ready  bool

	phase Phase
	auth  authScreen

	session *helpdesk.Session

	// Ticket list state.
	tickets          []helpdesk.Ticket
	cursor           int
	scrollOffset     int
	selectedTicketID int

	// Right pane.
	thread   ThreadPane
	composer TextField
	sending  bool

	focusRegion FocusRegion
	priorFocus  FocusRegion // Restored when an overlay closes.

	// Overlays. At most one is non-nil at a time.
	newTicketModal *tui.InputModal
	reportDropdown *tui.DropdownOverlay
	statsPanel     *StatsPanel

	// Poll loop. The generation counter orphans ticks from a previous
	// session or a superseded chain.
	pollGeneration int

	// Arrival glow for rows brought in by polling.
	arrivals    *tui.ArrivalTracker
	tickRunning bool

	// Transient status bar notice.
	statusNotice  string
	statusIsError bool

	// Bell, when set, rings the terminal bell when a message goes out
	// or new messages arrive on the watched thread. Wired from
	// configuration before the program starts.
	Bell bool
}

// ringBell emits the terminal bell. Written to stderr so it bypasses
// the renderer's alt-screen buffer.
func ringBell() {
	os.Stderr.WriteString("\a")
}

// NewModel creates a model starting at the login screen.
func NewModel(ctx context.Context, client *helpdesk.Client) Model {
	return Model{
		ctx:      ctx,
		client:   client,
		theme:    tui.DefaultTheme,
		keys:     DefaultKeyMap,
		phase:    PhaseAuth,
		auth:     newAuthScreen(),
		thread:   NewThreadPane(tui.DefaultTheme),
		composer: TextField{MaxRunes: helpdesk.MaxMessageLength},
		arrivals: tui.NewArrivalTracker(),
	}
}

// NewAuthenticatedModel creates a model that skips the login screen,
// for sessions established on the command line before the TUI starts.
func NewAuthenticatedModel(ctx context.Context, client *helpdesk.Client, session *helpdesk.Session) Model {
	model := NewModel(ctx, client)
	model.phase = PhaseChat
	model.session = session
	model.pollGeneration = 1
	return model
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	if model.phase == PhaseChat {
		return tea.Batch(
			loadTicketsCmd(model.ctx, model.session, false),
			schedulePoll(model.pollGeneration),
		)
	}
	return nil
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.updatePaneSizes()
		return model, nil

	case logNoticeMsg:
		model.statusNotice = message.summary
		model.statusIsError = message.level >= slog.LevelError
		return model, tea.Tick(logNoticeFadeDelay, func(time.Time) tea.Msg {
			return logNoticeFadeMsg{}
		})

	case logNoticeFadeMsg, statusFadeMsg:
		model.statusNotice = ""
		model.statusIsError = false
		return model, nil
	}

	if model.phase == PhaseAuth {
		switch message := message.(type) {
		case tea.KeyMsg:
			return model.handleAuthKeys(message)
		case captchaMsg, countdownTickMsg, captchaVerifiedMsg,
			loginResultMsg, registerResultMsg:
			return model.handleAuthResult(message)
		}
		return model, nil
	}

	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleChatKeys(message)

	case ticketsMsg:
		return model.handleTickets(message)

	case ticketCreatedMsg:
		return model.handleTicketCreated(message)

	case threadMsg:
		return model.handleThread(message)

	case sentMsg:
		model.sending = false
		if message.err != nil {
			return model.reportError(message.err)
		}
		model.composer.Reset()
		model.thread.GotoBottom()
		if model.Bell {
			ringBell()
		}
		// Refresh the list too: the send bumped the ticket's message
		// count and last-activity ordering.
		return model, tea.Batch(
			loadThreadCmd(model.ctx, model.session, model.selectedTicketID, false),
			loadTicketsCmd(model.ctx, model.session, false),
		)

	case flaggedMsg:
		return model.handleFlagged(message)

	case statsMsg:
		if message.err != nil {
			model.closeStatsPanel()
			return model.reportError(message.err)
		}
		if model.statsPanel != nil {
			model.statsPanel.SetReport(message.report)
		}
		return model, nil

	case pollTickMsg:
		if message.generation != model.pollGeneration {
			return model, nil
		}
		commands := []tea.Cmd{
			loadTicketsCmd(model.ctx, model.session, true),
			schedulePoll(message.generation),
		}
		if model.selectedTicketID != 0 {
			commands = append(commands, loadThreadCmd(model.ctx, model.session, model.selectedTicketID, true))
		}
		return model, tea.Batch(commands...)

	case arrivalTickMsg:
		if model.arrivals.HasHot(time.Now()) {
			return model, scheduleArrivalTick()
		}
		model.tickRunning = false
		return model, nil
	}

	return model, nil
}

// enterChat transitions to the chat phase after a successful login or
// registration.
func (model Model) enterChat(session *helpdesk.Session) (tea.Model, tea.Cmd) {
	model.phase = PhaseChat
	model.session = session
	model.auth = newAuthScreen()
	model.focusRegion = FocusTickets
	model.tickets = nil
	model.cursor = 0
	model.scrollOffset = 0
	model.selectedTicketID = 0
	model.thread = NewThreadPane(model.theme)
	model.composer = TextField{MaxRunes: helpdesk.MaxMessageLength}
	model.pollGeneration++
	model.updatePaneSizes()
	return model, tea.Batch(
		loadTicketsCmd(model.ctx, model.session, false),
		schedulePoll(model.pollGeneration),
	)
}

// returnToAuth drops back to the login screen, typically after the
// server rejected the session token.
func (model Model) returnToAuth(reason string) (tea.Model, tea.Cmd) {
	model.phase = PhaseAuth
	model.session = nil
	model.auth = newAuthScreen()
	model.auth.errorText = reason
	model.pollGeneration++ // Orphan any in-flight poll ticks.
	model.newTicketModal = nil
	model.reportDropdown = nil
	model.statsPanel = nil
	return model, nil
}

// reportError surfaces an error in the status bar. Auth failures
// instead terminate the session and return to the login screen.
func (model Model) reportError(err error) (tea.Model, tea.Cmd) {
	if helpdesk.IsAuthError(err) {
		return model.returnToAuth("session expired — sign in again")
	}
	model.statusNotice = err.Error()
	model.statusIsError = true
	return model, scheduleStatusFade()
}

// notify shows a transient informational notice in the status bar.
func (model Model) notify(text string) (tea.Model, tea.Cmd) {
	model.statusNotice = text
	model.statusIsError = false
	return model, scheduleStatusFade()
}

// --- Result handlers ---

func (model Model) handleTickets(message ticketsMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		if message.polled && !helpdesk.IsAuthError(message.err) {
			// Poll failures are transient; the next tick retries.
			return model, nil
		}
		return model.reportError(message.err)
	}

	known := make(map[int]bool, len(model.tickets))
	for _, ticket := range model.tickets {
		known[ticket.ID] = true
	}

	var ignited bool
	now := time.Now()
	if message.polled && len(model.tickets) > 0 {
		for _, ticket := range message.tickets {
			if !known[ticket.ID] {
				model.arrivals.Ignite(ticket.ID, now)
				ignited = true
			}
		}
	}

	model.tickets = message.tickets

	// Keep the cursor on the same ticket across refreshes.
	if model.selectedTicketID != 0 {
		for index, ticket := range model.tickets {
			if ticket.ID == model.selectedTicketID {
				model.cursor = index
				model.thread.SetTicketMeta(&model.tickets[index])
				break
			}
		}
	}
	if model.cursor >= len(model.tickets) {
		model.cursor = len(model.tickets) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	model.clampListScroll()

	if ignited && !model.tickRunning {
		model.tickRunning = true
		return model, scheduleArrivalTick()
	}
	return model, nil
}

func (model Model) handleTicketCreated(message ticketCreatedMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		return model.reportError(message.err)
	}

	model.tickets = append([]helpdesk.Ticket{*message.ticket}, model.tickets...)
	model.cursor = 0
	model.scrollOffset = 0
	model.selectedTicketID = message.ticket.ID
	model.thread.SetTicket(message.ticket)
	model.focusRegion = FocusComposer

	updated, notifyCmd := model.notify(fmt.Sprintf("ticket #%d opened", message.ticket.ID))
	model = updated.(Model)
	return model, tea.Batch(
		notifyCmd,
		loadThreadCmd(model.ctx, model.session, message.ticket.ID, false),
		loadTicketsCmd(model.ctx, model.session, false),
	)
}

func (model Model) handleThread(message threadMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		if message.polled && !helpdesk.IsAuthError(message.err) {
			return model, nil
		}
		return model.reportError(message.err)
	}
	if message.ticketID != model.selectedTicketID {
		// Stale response for a ticket the user has moved away from.
		return model, nil
	}

	var ignited bool
	if message.polled {
		known := make(map[int]bool, len(model.thread.Messages()))
		for _, existing := range model.thread.Messages() {
			known[existing.ID] = true
		}
		now := time.Now()
		for _, incoming := range message.messages {
			if !known[incoming.ID] {
				model.arrivals.Ignite(incoming.ID, now)
				ignited = true
			}
		}
		// Nothing new: skip the rebuild to avoid disturbing scroll.
		if !ignited && len(message.messages) == len(model.thread.Messages()) {
			return model, nil
		}
	}

	model.thread.SetMessages(message.messages)

	if ignited && model.Bell {
		ringBell()
	}
	if ignited && !model.tickRunning {
		model.tickRunning = true
		return model, scheduleArrivalTick()
	}
	return model, nil
}

func (model Model) handleFlagged(message flaggedMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		return model.reportError(message.err)
	}

	notice := fmt.Sprintf("report #%d filed — sender now has %d warning(s)",
		message.result.ReportID, message.result.WarningCount)
	if message.result.UserBanned {
		notice = fmt.Sprintf("report #%d filed — sender has been banned", message.result.ReportID)
	}
	updated, notifyCmd := model.notify(notice)
	model = updated.(Model)
	return model, tea.Batch(
		notifyCmd,
		loadThreadCmd(model.ctx, model.session, model.selectedTicketID, false),
	)
}

// --- Keyboard routing ---

func (model Model) handleChatKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays capture all input while open.
	switch model.focusRegion {
	case FocusNewTicket:
		return model.handleNewTicketKeys(message)
	case FocusReportReason:
		return model.handleReportKeys(message)
	case FocusStats:
		return model.handleStatsKeys(message)
	case FocusComposer:
		return model.handleComposerKeys(message)
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.FocusNext):
		model.cycleFocus()
		return model, nil

	case key.Matches(message, model.keys.Logout):
		return model.returnToAuth("")

	case key.Matches(message, model.keys.NewTicket):
		if model.session.User().Role != helpdesk.RoleUser {
			return model.notify("only users open tickets")
		}
		modal := tui.NewInputModal("Open a ticket", true, model.theme)
		modal.MaxRunes = 200
		model.newTicketModal = &modal
		model.priorFocus = model.focusRegion
		model.focusRegion = FocusNewTicket
		return model, nil

	case key.Matches(message, model.keys.Refresh):
		model.pollGeneration++
		commands := []tea.Cmd{
			loadTicketsCmd(model.ctx, model.session, false),
			schedulePoll(model.pollGeneration),
		}
		if model.selectedTicketID != 0 {
			commands = append(commands, loadThreadCmd(model.ctx, model.session, model.selectedTicketID, false))
		}
		return model, tea.Batch(commands...)

	case key.Matches(message, model.keys.Stats):
		if model.session.User().Role != helpdesk.RoleModerator {
			return model.notify("statistics are moderator-only")
		}
		model.statsPanel = NewStatsPanel(model.theme)
		model.priorFocus = model.focusRegion
		model.focusRegion = FocusStats
		return model, loadStatsCmd(model.ctx, model.session)
	}

	if model.focusRegion == FocusTickets {
		return model.handleTicketListKeys(message)
	}
	return model.handleThreadKeys(message)
}

func (model *Model) cycleFocus() {
	switch model.focusRegion {
	case FocusTickets:
		model.focusRegion = FocusThread
	case FocusThread:
		model.focusRegion = FocusComposer
	default:
		model.focusRegion = FocusTickets
	}
}

func (model Model) handleTicketListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
			model.clampListScroll()
			return model.openTicketUnderCursor()
		}

	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.tickets)-1 {
			model.cursor++
			model.clampListScroll()
			return model.openTicketUnderCursor()
		}

	case key.Matches(message, model.keys.Home):
		if len(model.tickets) > 0 {
			model.cursor = 0
			model.clampListScroll()
			return model.openTicketUnderCursor()
		}

	case key.Matches(message, model.keys.End):
		if len(model.tickets) > 0 {
			model.cursor = len(model.tickets) - 1
			model.clampListScroll()
			return model.openTicketUnderCursor()
		}

	case message.Type == tea.KeyEnter:
		if len(model.tickets) > 0 {
			updated, cmd := model.openTicketUnderCursor()
			model = updated.(Model)
			model.focusRegion = FocusComposer
			return model, cmd
		}
	}
	return model, nil
}

// openTicketUnderCursor selects the cursor's ticket and loads its
// thread. Re-selecting the already-open ticket is a no-op.
func (model Model) openTicketUnderCursor() (tea.Model, tea.Cmd) {
	if model.cursor < 0 || model.cursor >= len(model.tickets) {
		return model, nil
	}
	ticket := &model.tickets[model.cursor]
	if ticket.ID == model.selectedTicketID {
		return model, nil
	}
	model.selectedTicketID = ticket.ID
	model.thread.SetTicket(ticket)
	return model, loadThreadCmd(model.ctx, model.session, ticket.ID, false)
}

func (model Model) handleThreadKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Up):
		model.thread.MoveUp()

	case key.Matches(message, model.keys.Down):
		model.thread.MoveDown()

	case key.Matches(message, model.keys.PageUp):
		model.thread.PageUp()

	case key.Matches(message, model.keys.PageDown):
		model.thread.PageDown()

	case key.Matches(message, model.keys.Home):
		model.thread.GotoTop()

	case key.Matches(message, model.keys.End):
		model.thread.GotoBottom()

	case key.Matches(message, model.keys.Cancel):
		model.thread.ClearSelection()

	case key.Matches(message, model.keys.Flag):
		if model.session.User().Role != helpdesk.RoleModerator {
			return model.notify("flagging is moderator-only")
		}
		selected := model.thread.Selected()
		if selected == nil {
			return model.notify("select a message first (k to start selecting)")
		}
		model.reportDropdown = &tui.DropdownOverlay{
			Options: reportReasons,
			ItemID:  selected.ID,
			AnchorX: model.listWidth() + 4,
			AnchorY: 3,
		}
		model.priorFocus = model.focusRegion
		model.focusRegion = FocusReportReason
	}
	return model, nil
}

func (model Model) handleComposerKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyCtrlC:
		return model, tea.Quit

	case tea.KeyTab:
		model.cycleFocus()
		return model, nil

	case tea.KeyEscape:
		model.focusRegion = FocusThread
		return model, nil

	case tea.KeyEnter:
		content := strings.TrimSpace(model.composer.Value())
		if content == "" || model.sending {
			return model, nil
		}
		if model.selectedTicketID == 0 {
			return model.notify("open a ticket first")
		}
		model.sending = true
		return model, sendMessageCmd(model.ctx, model.session, model.selectedTicketID, content)
	}

	model.composer.Update(message)
	return model, nil
}

func (model Model) handleNewTicketKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyCtrlC:
		return model, tea.Quit

	case tea.KeyEscape:
		model.newTicketModal = nil
		model.focusRegion = model.priorFocus
		return model, nil

	case tea.KeyEnter:
		title := strings.TrimSpace(model.newTicketModal.Value())
		if title == "" {
			return model, nil
		}
		model.newTicketModal = nil
		model.focusRegion = model.priorFocus
		return model, createTicketCmd(model.ctx, model.session, title)
	}

	model.newTicketModal.Update(message)
	return model, nil
}

func (model Model) handleReportKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyCtrlC:
		return model, tea.Quit

	case tea.KeyEscape:
		model.reportDropdown = nil
		model.focusRegion = model.priorFocus
		return model, nil

	case tea.KeyUp:
		model.reportDropdown.MoveUp()
		return model, nil

	case tea.KeyDown:
		model.reportDropdown.MoveDown()
		return model, nil

	case tea.KeyEnter:
		messageID := model.reportDropdown.ItemID
		reason := model.reportDropdown.Selected().Value
		model.reportDropdown = nil
		model.focusRegion = model.priorFocus
		return model, flagMessageCmd(model.ctx, model.session, messageID, reason)
	}

	switch {
	case key.Matches(message, model.keys.Up):
		model.reportDropdown.MoveUp()
	case key.Matches(message, model.keys.Down):
		model.reportDropdown.MoveDown()
	}
	return model, nil
}

func (model Model) handleStatsKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case message.Type == tea.KeyEscape,
		key.Matches(message, model.keys.Stats),
		key.Matches(message, model.keys.Quit):
		model.closeStatsPanel()

	case key.Matches(message, model.keys.StatsTab1):
		model.statsPanel.SetTab(statsTabPersonal)

	case key.Matches(message, model.keys.StatsTab2):
		model.statsPanel.SetTab(statsTabLeaderboard)

	case key.Matches(message, model.keys.StatsTab3):
		model.statsPanel.SetTab(statsTabSystem)
	}
	return model, nil
}

func (model *Model) closeStatsPanel() {
	if model.statsPanel == nil {
		return
	}
	model.statsPanel = nil
	if model.focusRegion == FocusStats {
		model.focusRegion = model.priorFocus
	}
}

// --- Layout ---

func (model Model) listWidth() int {
	width := int(float64(model.width) * listWidthShare)
	if width < listWidthMin {
		width = listWidthMin
	}
	if width > listWidthMax {
		width = listWidthMax
	}
	if width > model.width-20 {
		width = model.width - 20
	}
	if width < 10 {
		width = 10
	}
	return width
}

// contentHeight is the rows available to the panes: everything except
// the header and status bar.
func (model Model) contentHeight() int {
	height := model.height - 2
	if height < 1 {
		height = 1
	}
	return height
}

func (model *Model) updatePaneSizes() {
	if !model.ready {
		return
	}
	threadWidth := model.width - model.listWidth() - 2 // Divider + scrollbar.
	threadHeight := model.contentHeight() - 2          // Separator + composer.
	if threadHeight < 1 {
		threadHeight = 1
	}
	model.thread.SetSize(threadWidth, threadHeight)
}

// clampListScroll keeps the cursor row within the visible window.
func (model *Model) clampListScroll() {
	visible := model.contentHeight()
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+visible {
		model.scrollOffset = model.cursor - visible + 1
	}
	if model.scrollOffset < 0 {
		model.scrollOffset = 0
	}
}

// --- View ---

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "initializing…"
	}
	if model.phase == PhaseAuth {
		return model.viewAuth()
	}

	view := model.viewHeader() + "\n" +
		model.viewContent() + "\n" +
		model.viewStatusBar()

	if model.newTicketModal != nil {
		lines, anchorX, anchorY := model.newTicketModal.Render(model.width, model.height)
		view = tui.SpliceOverlay(view, lines, anchorX, anchorY)
	}
	if model.reportDropdown != nil {
		lines := model.reportDropdown.Render(model.theme)
		view = tui.SpliceOverlay(view, lines, model.reportDropdown.AnchorX, model.reportDropdown.AnchorY)
	}
	if model.statsPanel != nil {
		lines, anchorX, anchorY := model.statsPanel.Render(model.width, model.height)
		view = tui.SpliceOverlay(view, lines, anchorX, anchorY)
	}
	return view
}

func (model Model) viewHeader() string {
	theme := model.theme
	user := model.session.User()

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent)
	identityStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground)
	roleStyle := lipgloss.NewStyle().Foreground(theme.RoleColor(user.Role))
	countStyle := lipgloss.NewStyle().Foreground(theme.FaintText)

	left := titleStyle.Render(" COLDFIRE SUPPORT ") +
		identityStyle.Render(user.Username) +
		roleStyle.Render(" ["+string(user.Role)+"]")
	if user.Station != "" {
		left += countStyle.Render(" · " + user.Station)
	}
	right := countStyle.Render(fmt.Sprintf("%d tickets ", len(model.tickets)))

	gap := model.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + spaces(gap) + right
}

func (model Model) viewContent() string {
	listPane := model.viewTicketList()

	divider := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.TrimRight(strings.Repeat("│\n", model.contentHeight()), "\n"))

	rightPane := model.viewThreadPane()

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, divider, rightPane)
}

func (model Model) viewTicketList() string {
	height := model.contentHeight()
	rowWidth := model.listWidth() - 1 // Reserve the scrollbar column.
	renderer := NewTicketListRenderer(model.theme, rowWidth)
	now := time.Now()

	rows := make([]string, 0, height)
	for index := model.scrollOffset; index < model.scrollOffset+height; index++ {
		if index >= len(model.tickets) {
			rows = append(rows, spaces(rowWidth))
			continue
		}
		ticket := model.tickets[index]
		selected := index == model.cursor && model.focusRegion != FocusNewTicket
		heat := model.arrivals.Heat(ticket.ID, now)
		rows = append(rows, renderer.RenderRow(ticket, selected, heat, now))
	}

	if len(model.tickets) == 0 {
		hint := "  no tickets — press n"
		if model.session != nil && model.session.User().Role == helpdesk.RoleModerator {
			hint = "  no tickets yet"
		}
		empty := lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render(hint)
		rows[0] = lipgloss.NewStyle().Width(rowWidth).MaxWidth(rowWidth).Render(empty)
	}

	scrollbar := tui.RenderScrollbar(model.theme, height,
		len(model.tickets), height, model.scrollOffset,
		model.focusRegion == FocusTickets)

	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(rows, "\n"), scrollbar)
}

func (model Model) viewThreadPane() string {
	paneWidth := model.width - model.listWidth() - 1

	totalLines, visibleLines, offset := model.thread.ScrollState()
	scrollbar := tui.RenderScrollbar(model.theme, visibleLines,
		totalLines, visibleLines, offset,
		model.focusRegion == FocusThread)
	thread := lipgloss.JoinHorizontal(lipgloss.Top, model.thread.View(), scrollbar)

	separator := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", paneWidth))

	return thread + "\n" + separator + "\n" + model.viewComposer(paneWidth)
}

func (model Model) viewComposer(width int) string {
	counter := fmt.Sprintf(" %d/%d", model.composer.RuneCount(), helpdesk.MaxMessageLength)
	counterStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	if model.composer.RuneCount() >= helpdesk.MaxMessageLength {
		counterStyle = lipgloss.NewStyle().Foreground(model.theme.ErrorForeground)
	}
	renderedCounter := counterStyle.Render(counter)

	prompt := "> "
	promptStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	if model.focusRegion == FocusComposer {
		promptStyle = lipgloss.NewStyle().Foreground(model.theme.Accent).Bold(true)
	}

	fieldWidth := width - lipgloss.Width(prompt) - lipgloss.Width(counter)
	if fieldWidth < 10 {
		fieldWidth = 10
	}
	field := model.composer.View(fieldWidth, model.focusRegion == FocusComposer, model.theme)

	line := promptStyle.Render(prompt) + field
	gap := width - lipgloss.Width(line) - lipgloss.Width(counter)
	if gap < 0 {
		gap = 0
	}
	return line + spaces(gap) + renderedCounter
}

func (model Model) viewStatusBar() string {
	if model.statusNotice != "" {
		style := lipgloss.NewStyle().Foreground(model.theme.NormalText)
		if model.statusIsError {
			style = lipgloss.NewStyle().Foreground(model.theme.ErrorForeground)
		}
		return style.MaxWidth(model.width).Render(" " + model.statusNotice)
	}

	var help string
	switch model.focusRegion {
	case FocusComposer:
		help = " Enter send · Esc thread · Tab pane · Ctrl+C quit"
	case FocusThread:
		help = " j/k select · f flag · g/G top/bottom · Tab pane · q quit"
	case FocusNewTicket, FocusReportReason:
		help = " Enter confirm · Esc cancel"
	case FocusStats:
		help = " 1/2/3 tabs · Esc close"
	default:
		help = " j/k move · Enter chat · n new ticket · r refresh · C-l sign out · q quit"
		if model.session != nil && model.session.User().Role == helpdesk.RoleModerator {
			help = " j/k move · Enter chat · r refresh · s stats · C-l sign out · q quit"
		}
	}
	return lipgloss.NewStyle().
		Foreground(model.theme.HelpText).
		MaxWidth(model.width).
		Render(help)
}
