// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package mockapi

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
)

func (s *Server) handleTickets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTickets(w, r)
	case http.MethodPost:
		s.createTicket(w, r)
	case http.MethodPut:
		s.updateTicket(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listTickets(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller := s.authenticate(r)
	if caller == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	// Moderators see every ticket; users only their own. The scoping
	// follows the caller's stored role, not the query parameter, so a
	// user cannot widen their view by claiming moderator.
	role := r.URL.Query().Get("role")
	if role == "moderator" && caller.role != "moderator" {
		writeError(w, http.StatusForbidden, "moderator role required")
		return
	}

	var visible []*ticketRecord
	for _, ticket := range s.tickets {
		if caller.role == "moderator" || ticket.userID == caller.id {
			visible = append(visible, ticket)
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		return visible[i].updatedAt.After(visible[j].updatedAt)
	})

	payload := make([]map[string]any, 0, len(visible))
	for _, ticket := range visible {
		payload = append(payload, s.ticketPayload(ticket))
	}
	writeJSON(w, http.StatusOK, map[string]any{"tickets": payload})
}

func (s *Server) ticketPayload(ticket *ticketRecord) map[string]any {
	owner := s.userByID(ticket.userID)

	messageCount := 0
	var lastMessageAt any
	for _, message := range s.messages {
		if message.ticketID != ticket.id {
			continue
		}
		messageCount++
		lastMessageAt = isoTime(message.createdAt)
	}

	return map[string]any{
		"id":         ticket.id,
		"title":      ticket.title,
		"status":     ticket.status,
		"priority":   ticket.priority,
		"category":   ticket.category,
		"created_at": isoTime(ticket.createdAt),
		"updated_at": isoTime(ticket.updatedAt),
		"user": map[string]any{
			"username":   owner.username,
			"email":      owner.email,
			"station":    owner.station,
			"avatar_url": owner.avatarURL,
		},
		"message_count":   messageCount,
		"last_message_at": lastMessageAt,
	}
}

func (s *Server) createTicket(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Title    string `json:"title"`
		Category string `json:"category"`
		Priority string `json:"priority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	caller := s.authenticate(r)
	if caller == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	title := strings.TrimSpace(request.Title)
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if request.Category == "" {
		request.Category = "general"
	}
	if request.Priority == "" {
		request.Priority = "medium"
	}

	ticket := s.addTicket(caller.id, title, request.Category, request.Priority, s.now())
	s.logger.Info("ticket created", "ticket_id", ticket.id, "user", caller.username)

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"ticket":  s.ticketPayload(ticket),
	})
}

func (s *Server) updateTicket(w http.ResponseWriter, r *http.Request) {
	var request struct {
		TicketID int    `json:"ticket_id"`
		Status   string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
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
	if request.TicketID == 0 || request.Status == "" {
		writeError(w, http.StatusBadRequest, "ticket_id and status are required")
		return
	}

	for _, ticket := range s.tickets {
		if ticket.id != request.TicketID {
			continue
		}
		ticket.status = request.Status
		ticket.moderatorID = caller.id
		ticket.updatedAt = s.now()
		if request.Status == "closed" {
			ticket.closedAt = s.now()
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "ticket updated"})
		return
	}
	writeError(w, http.StatusNotFound, "ticket not found")
}
