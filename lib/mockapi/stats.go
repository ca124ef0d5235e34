// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package mockapi

import (
	"net/http"
	"sort"
	"strconv"
	"time"
)

func (s *Server) handleModeratorStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	moderatorID, err := strconv.Atoi(r.URL.Query().Get("moderator_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "moderator_id is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	caller := s.authenticate(r)
	if caller == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if caller.role != "moderator" {
		writeError(w, http.StatusForbidden, "moderator role required")
		return
	}

	personal := s.modStats[moderatorID]
	if personal == nil {
		personal = &moderatorStatsRecord{}
	}

	type leaderboardEntry struct {
		user  *userRecord
		stats *moderatorStatsRecord
	}
	var leaderboard []leaderboardEntry
	for _, user := range s.users {
		stats := s.modStats[user.id]
		if user.role != "moderator" || stats == nil || stats.ticketsClosed == 0 {
			continue
		}
		leaderboard = append(leaderboard, leaderboardEntry{user: user, stats: stats})
	}
	sort.Slice(leaderboard, func(i, j int) bool {
		if leaderboard[i].stats.averageRating != leaderboard[j].stats.averageRating {
			return leaderboard[i].stats.averageRating > leaderboard[j].stats.averageRating
		}
		return leaderboard[i].stats.ticketsClosed > leaderboard[j].stats.ticketsClosed
	})
	if len(leaderboard) > 10 {
		leaderboard = leaderboard[:10]
	}

	topModerators := make([]map[string]any, 0, len(leaderboard))
	var ratingSum float64
	var ratingCount int
	var responseSum, responseCount int
	for _, entry := range leaderboard {
		topModerators = append(topModerators, map[string]any{
			"username":             entry.user.username,
			"station":              entry.user.station,
			"total_tickets_closed": entry.stats.ticketsClosed,
			"average_rating":       entry.stats.averageRating,
			"total_reviews":        entry.stats.totalReviews,
		})
		ratingSum += entry.stats.averageRating
		ratingCount++
		if entry.stats.responseTimeAvg > 0 {
			responseSum += entry.stats.responseTimeAvg
			responseCount++
		}
	}

	totalTickets := len(s.tickets)
	openTickets := 0
	closedToday := 0
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, ticket := range s.tickets {
		if ticket.status == "open" {
			openTickets++
		}
		if ticket.status == "closed" && !ticket.closedAt.IsZero() && !ticket.closedAt.Before(today) {
			closedToday++
		}
	}

	averageRating := 0.0
	if ratingCount > 0 {
		averageRating = ratingSum / float64(ratingCount)
	}
	averageResponse := 45
	if responseCount > 0 {
		averageResponse = responseSum / responseCount
	}
	satisfaction := averageRating / 5.0 * 100
	if satisfaction > 100 {
		satisfaction = 100
	}
	if satisfaction < 0 {
		satisfaction = 0
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stats": map[string]any{
			"total_tickets_closed": personal.ticketsClosed,
			"average_rating":       personal.averageRating,
			"total_reviews":        personal.totalReviews,
			"response_time_avg":    personal.responseTimeAvg,
			"last_active":          isoTime(personal.lastActive),
		},
		"top_moderators": topModerators,
		"system_stats": map[string]any{
			"total_tickets":         totalTickets,
			"open_tickets":          openTickets,
			"closed_today":          closedToday,
			"average_response_time": averageResponse,
			"user_satisfaction":     satisfaction,
		},
	})
}
