// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/coldfire-project/coldfire/helpdesk"
	"github.com/coldfire-project/coldfire/lib/tui"
)

// statsTab selects which page of the stats overlay is visible.
type statsTab int

const (
	statsTabPersonal statsTab = iota
	statsTabLeaderboard
	statsTabSystem
)

// Achievement thresholds. Earned badges render highlighted on the
// personal stats page.
const (
	achievementClosedThreshold   = 50
	achievementRatingThreshold   = 4.5
	achievementResponseThreshold = 30 // minutes
)

// StatsPanel is the moderator statistics overlay: three tabbed pages
// over a single report fetched when the panel opens.
type StatsPanel struct {
	theme     tui.Theme
	report    *helpdesk.StatsReport
	activeTab statsTab
	loading   bool
}

// NewStatsPanel creates a panel in its loading state; the report
// arrives via SetReport once the fetch completes.
func NewStatsPanel(theme tui.Theme) *StatsPanel {
	return &StatsPanel{theme: theme, loading: true}
}

// SetReport installs the fetched report.
func (panel *StatsPanel) SetReport(report *helpdesk.StatsReport) {
	panel.report = report
	panel.loading = false
}

// SetTab switches the visible page.
func (panel *StatsPanel) SetTab(tab statsTab) {
	panel.activeTab = tab
}

// statsPanelWidth is the inner content width of the overlay.
const statsPanelWidth = 56

// Render produces the overlay lines and the centered anchor position.
func (panel *StatsPanel) Render(screenWidth, screenHeight int) ([]string, int, int) {
	theme := panel.theme

	bgStyle := lipgloss.NewStyle().Background(theme.OverlayBackground)
	textStyle := lipgloss.NewStyle().
		Foreground(theme.OverlayForeground).
		Background(theme.OverlayBackground)
	faintStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Background(theme.OverlayBackground)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Accent).
		Background(theme.OverlayBackground)

	tabLabels := []string{"1 My stats", "2 Leaderboard", "3 System"}
	var tabParts []string
	for index, label := range tabLabels {
		if statsTab(index) == panel.activeTab {
			tabParts = append(tabParts, activeTabStyle.Render(label))
		} else {
			tabParts = append(tabParts, faintStyle.Render(label))
		}
	}
	header := strings.Join(tabParts, bgStyle.Render("   "))

	var contentLines []string
	switch {
	case panel.loading:
		contentLines = []string{faintStyle.Render("fetching report…")}
	case panel.activeTab == statsTabPersonal:
		contentLines = panel.renderPersonal(textStyle, faintStyle)
	case panel.activeTab == statsTabLeaderboard:
		contentLines = panel.renderLeaderboard(textStyle, faintStyle)
	default:
		contentLines = panel.renderSystem(textStyle, faintStyle)
	}

	footer := faintStyle.Render("1/2/3 switch tab  Esc close")

	var lines []string
	lines = append(lines, tui.PadOverlayLine(header, statsPanelWidth, statsPanelWidth+2, bgStyle))
	lines = append(lines, tui.PadOverlayLine("", statsPanelWidth, statsPanelWidth+2, bgStyle))
	for _, line := range contentLines {
		lines = append(lines, tui.PadOverlayLine(line, statsPanelWidth, statsPanelWidth+2, bgStyle))
	}
	lines = append(lines, tui.PadOverlayLine("", statsPanelWidth, statsPanelWidth+2, bgStyle))
	lines = append(lines, tui.PadOverlayLine(footer, statsPanelWidth, statsPanelWidth+2, bgStyle))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Background(theme.OverlayBackground)
	rendered := boxStyle.Render(strings.Join(lines, "\n"))

	resultLines := strings.Split(rendered, "\n")
	renderedWidth := 0
	if len(resultLines) > 0 {
		renderedWidth = ansi.StringWidth(resultLines[0])
	}
	anchorX := (screenWidth - renderedWidth) / 2
	anchorY := (screenHeight - len(resultLines)) / 2
	if anchorX < 0 {
		anchorX = 0
	}
	if anchorY < 0 {
		anchorY = 0
	}
	return resultLines, anchorX, anchorY
}

// renderPersonal renders the moderator's own aggregates plus the
// achievement badges.
func (panel *StatsPanel) renderPersonal(textStyle, faintStyle lipgloss.Style) []string {
	stats := panel.report.Stats
	ratingStyle := lipgloss.NewStyle().
		Foreground(panel.theme.RatingColor(stats.AverageRating)).
		Background(panel.theme.OverlayBackground)

	lines := []string{
		textStyle.Render(fmt.Sprintf("Tickets closed     %d", stats.TicketsClosed)),
		textStyle.Render(fmt.Sprintf("Reviews received   %d", stats.TotalReviews)),
		textStyle.Render("Average rating     ") +
			ratingStyle.Render(fmt.Sprintf("%s %.1f", renderStars(stats.AverageRating), stats.AverageRating)),
		textStyle.Render(fmt.Sprintf("Avg response       %d min", stats.ResponseTimeAvg)),
	}
	if stats.LastActive != "" {
		lines = append(lines, faintStyle.Render("Last active        "+stats.LastActive))
	}

	lines = append(lines, textStyle.Render(""))
	lines = append(lines, textStyle.Render("Achievements"))
	lines = append(lines, panel.renderAchievement("Veteran of the tunnels",
		fmt.Sprintf("%d+ tickets closed", achievementClosedThreshold),
		stats.TicketsClosed >= achievementClosedThreshold))
	lines = append(lines, panel.renderAchievement("Decorated",
		"rating 4.5 or higher",
		stats.AverageRating >= achievementRatingThreshold))
	lines = append(lines, panel.renderAchievement("First responder",
		"responds within 30 minutes",
		stats.ResponseTimeAvg > 0 && stats.ResponseTimeAvg <= achievementResponseThreshold))
	return lines
}

func (panel *StatsPanel) renderAchievement(name, description string, earned bool) string {
	if earned {
		earnedStyle := lipgloss.NewStyle().
			Foreground(panel.theme.RatingExcellent).
			Background(panel.theme.OverlayBackground)
		return earnedStyle.Render("  ✓ " + name + " — " + description)
	}
	return lipgloss.NewStyle().
		Foreground(panel.theme.FaintText).
		Background(panel.theme.OverlayBackground).
		Render("  · " + name + " — " + description)
}

// renderLeaderboard renders the cross-moderator ranking in server
// order. The top three ranks get the accent color.
func (panel *StatsPanel) renderLeaderboard(textStyle, faintStyle lipgloss.Style) []string {
	board := panel.report.TopModerators
	if len(board) == 0 {
		return []string{faintStyle.Render("no moderators ranked yet")}
	}

	var lines []string
	for index, entry := range board {
		rankStyle := faintStyle
		if index < 3 {
			rankStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(panel.theme.Accent).
				Background(panel.theme.OverlayBackground)
		}
		name := entry.Username
		if entry.Station != "" {
			name += " (" + entry.Station + ")"
		}
		if ansi.StringWidth(name) > 28 {
			name = truncateWidth(name, 27) + "…"
		}
		ratingStyle := lipgloss.NewStyle().
			Foreground(panel.theme.RatingColor(entry.AverageRating)).
			Background(panel.theme.OverlayBackground)
		lines = append(lines,
			rankStyle.Render(fmt.Sprintf("%2d.", index+1))+
				textStyle.Render(" "+padRight(name, 29))+
				textStyle.Render(fmt.Sprintf("%4d closed  ", entry.TicketsClosed))+
				ratingStyle.Render(fmt.Sprintf("%.1f", entry.AverageRating)))
	}
	return lines
}

// renderSystem renders the system-wide counters.
func (panel *StatsPanel) renderSystem(textStyle, faintStyle lipgloss.Style) []string {
	system := panel.report.System
	return []string{
		textStyle.Render(fmt.Sprintf("Total tickets      %d", system.TotalTickets)),
		textStyle.Render(fmt.Sprintf("Open tickets       %d", system.OpenTickets)),
		textStyle.Render(fmt.Sprintf("Closed today       %d", system.ClosedToday)),
		textStyle.Render(fmt.Sprintf("Avg response       %d min", system.AverageResponseTime)),
		textStyle.Render(fmt.Sprintf("Satisfaction       %.0f%%", system.UserSatisfaction)),
	}
}

// renderStars renders a five-star gauge for a 0-5 rating.
func renderStars(rating float64) string {
	full := int(rating + 0.5)
	if full < 0 {
		full = 0
	}
	if full > 5 {
		full = 5
	}
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}
