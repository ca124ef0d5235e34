// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

// Package chatui implements the Coldfire support chat TUI. The
// top-level [Model] runs two phases: an authentication screen (login
// and registration with a captcha gate) and the chat screen, a
// two-pane layout with the ticket list on the left and the message
// thread plus composer on the right.
//
// Data flows through the helpdesk client: every keystroke that needs
// the server becomes a tea.Cmd wrapping a client call, and the result
// comes back through the bubbletea message loop. A 5-second poll
// timer keeps tickets and the open thread fresh; rows brought in by
// polling briefly glow via the arrival tracker.
//
// Moderators additionally get a stats overlay (personal performance,
// leaderboard, system totals) and can flag messages from the thread.
package chatui
