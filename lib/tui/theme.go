// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/coldfire-project/coldfire/helpdesk"
)

// Theme defines the color palette and visual properties for the
// Coldfire terminal client. All colors use lipgloss ANSI 256-color
// codes for broad terminal compatibility.
//
// The fields cover universal chrome (text, selection, borders) and the
// semantic categories that recur across screens: ticket priority and
// status, sender roles, and moderator rating tiers.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Priority colors (indexed 0-3: low, medium, high, urgent).
	PriorityColors [4]lipgloss.Color

	// Ticket status colors.
	StatusOpen       lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusClosed     lipgloss.Color

	// Sender roles in the message thread.
	UserForeground      lipgloss.Color
	ModeratorForeground lipgloss.Color

	// Moderator rating tiers (stats panel).
	RatingExcellent lipgloss.Color // 4.5 and up
	RatingGood      lipgloss.Color // 4.0 to 4.5
	RatingFair      lipgloss.Color // 3.0 to 4.0
	RatingPoor      lipgloss.Color // below 3.0

	// UI chrome. Accent is the Coldfire signal orange used for the
	// focused pane, the active tab, and the flame marker on hot rows.
	Accent           lipgloss.Color
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	ErrorForeground  lipgloss.Color

	// Background tint for tickets and messages that just arrived
	// through polling.
	HotAccent lipgloss.Color

	// Modal and overlay boxes.
	OverlayForeground lipgloss.Color
	OverlayBackground lipgloss.Color
}

// PriorityColor returns the color for a ticket priority. Unknown
// values render as NormalText.
func (theme Theme) PriorityColor(priority helpdesk.TicketPriority) lipgloss.Color {
	switch priority {
	case helpdesk.PriorityLow:
		return theme.PriorityColors[0]
	case helpdesk.PriorityMedium:
		return theme.PriorityColors[1]
	case helpdesk.PriorityHigh:
		return theme.PriorityColors[2]
	case helpdesk.PriorityUrgent:
		return theme.PriorityColors[3]
	default:
		return theme.NormalText
	}
}

// StatusColor returns the color for a ticket status. Unknown values
// render as FaintText.
func (theme Theme) StatusColor(status helpdesk.TicketStatus) lipgloss.Color {
	switch status {
	case helpdesk.StatusOpen:
		return theme.StatusOpen
	case helpdesk.StatusInProgress:
		return theme.StatusInProgress
	case helpdesk.StatusClosed:
		return theme.StatusClosed
	default:
		return theme.FaintText
	}
}

// RatingColor returns the tier color for a moderator rating on the
// 0-5 scale. Tiers break at 4.5, 4.0, and 3.0.
func (theme Theme) RatingColor(rating float64) lipgloss.Color {
	switch {
	case rating >= 4.5:
		return theme.RatingExcellent
	case rating >= 4.0:
		return theme.RatingGood
	case rating >= 3.0:
		return theme.RatingFair
	default:
		return theme.RatingPoor
	}
}

// RoleColor returns the sender color for a role. Moderators get the
// warm accent so their replies stand out in the thread.
func (theme Theme) RoleColor(role helpdesk.Role) lipgloss.Color {
	if role == helpdesk.RoleModerator {
		return theme.ModeratorForeground
	}
	return theme.UserForeground
}

// DefaultTheme is the built-in dark-terminal color scheme: rust and
// signal-orange accents over grays, designed for 256-color terminals
// with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	PriorityColors: [4]lipgloss.Color{
		lipgloss.Color("245"), // low: gray
		lipgloss.Color("75"),  // medium: blue
		lipgloss.Color("208"), // high: orange
		lipgloss.Color("196"), // urgent: bright red
	},

	StatusOpen:       lipgloss.Color("114"), // green
	StatusInProgress: lipgloss.Color("220"), // amber
	StatusClosed:     lipgloss.Color("245"), // gray

	UserForeground:      lipgloss.Color("110"), // steel blue
	ModeratorForeground: lipgloss.Color("209"), // salmon orange

	RatingExcellent: lipgloss.Color("114"), // green
	RatingGood:      lipgloss.Color("75"),  // blue
	RatingFair:      lipgloss.Color("220"), // amber
	RatingPoor:      lipgloss.Color("196"), // red

	Accent:           lipgloss.Color("202"), // signal orange
	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	ErrorForeground:  lipgloss.Color("196"),

	HotAccent: lipgloss.Color("58"), // dark amber background tint

	OverlayForeground: lipgloss.Color("252"),
	OverlayBackground: lipgloss.Color("237"),
}
