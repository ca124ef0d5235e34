// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package mockapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	maxMessageRunes = 1000
	banThreshold    = 3
)

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listMessages(w, r)
	case http.MethodPost:
		s.postMessage(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	ticketID, err := strconv.Atoi(r.URL.Query().Get("ticket_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "ticket_id is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	caller := s.authenticate(r)
	if caller == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	payload := make([]map[string]any, 0)
	for _, message := range s.messages {
		if message.ticketID != ticketID {
			continue
		}
		sender := s.userByID(message.senderID)
		payload = append(payload, map[string]any{
			"id":             message.id,
			"content":        message.content,
			"message_type":   message.messageType,
			"attachment_url": message.attachmentURL,
			"created_at":     isoTime(message.createdAt),
			"edited_at":      isoTime(message.editedAt),
			"is_flagged":     message.flagged,
			"sender": map[string]any{
				"username":   sender.username,
				"role":       sender.role,
				"station":    sender.station,
				"avatar_url": sender.avatarURL,
			},
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": payload})
}

type messageRequest struct {
	Action      string `json:"action"`
	TicketID    int    `json:"ticket_id"`
	Content     string `json:"content"`
	MessageType string `json:"message_type"`
	MessageID   int    `json:"message_id"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	var request messageRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if request.Action == "" {
		request.Action = "send_message"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	caller := s.authenticate(r)
	if caller == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	switch request.Action {
	case "send_message":
		s.sendMessage(w, caller, request)
	case "report_message":
		s.reportMessage(w, caller, request)
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}

func (s *Server) sendMessage(w http.ResponseWriter, caller *userRecord, request messageRequest) {
	content := strings.TrimSpace(request.Content)
	if request.TicketID == 0 || content == "" {
		writeError(w, http.StatusBadRequest, "ticket_id and content are required")
		return
	}
	if utf8.RuneCountInString(content) > maxMessageRunes {
		writeError(w, http.StatusBadRequest, "message too long (max %d characters)", maxMessageRunes)
		return
	}

	var ticket *ticketRecord
	for _, candidate := range s.tickets {
		if candidate.id == request.TicketID {
			ticket = candidate
			break
		}
	}
	if ticket == nil {
		writeError(w, http.StatusNotFound, "ticket not found")
		return
	}

	messageType := request.MessageType
	if messageType == "" {
		messageType = "text"
	}

	message := s.addMessage(ticket.id, caller.id, content, s.now())
	message.messageType = messageType
	ticket.updatedAt = s.now()

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": map[string]any{
			"id":         message.id,
			"content":    message.content,
			"created_at": isoTime(message.createdAt),
		},
	})
}

// reportMessage files a moderation report: the message is flagged, the
// author's warning count goes up, and the third warning bans the
// account automatically.
func (s *Server) reportMessage(w http.ResponseWriter, caller *userRecord, request messageRequest) {
	if caller.role != "moderator" {
		writeError(w, http.StatusForbidden, "moderator role required")
		return
	}
	reason := strings.TrimSpace(request.Reason)
	if request.MessageID == 0 || reason == "" {
		writeError(w, http.StatusBadRequest, "message_id and reason are required")
		return
	}

	var message *messageRecord
	for _, candidate := range s.messages {
		if candidate.id == request.MessageID {
			message = candidate
			break
		}
	}
	if message == nil {
		writeError(w, http.StatusNotFound, "message not found")
		return
	}

	reportID := s.nextReportID
	s.nextReportID++

	message.flagged = true
	message.flagReason = reason

	author := s.userByID(message.senderID)
	author.warningCount++
	if author.warningCount >= banThreshold {
		author.banned = true
	}

	s.logger.Info("message reported",
		"report_id", reportID,
		"message_id", message.id,
		"author", author.username,
		"banned", author.banned,
	)
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":       true,
		"report_id":     reportID,
		"warning_count": author.warningCount,
		"user_banned":   author.banned,
	})
}
