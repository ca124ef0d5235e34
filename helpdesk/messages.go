// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package helpdesk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Local validation failures for message sending. These are returned
// before any request is issued; the composer checks for them to show
// inline feedback instead of a connection error.
var (
	ErrNoTicketSelected = errors.New("helpdesk: no ticket selected")
	ErrEmptyMessage     = errors.New("helpdesk: message is empty")
	ErrMessageTooLong   = fmt.Errorf("helpdesk: message exceeds %d characters", MaxMessageLength)
)

// Messages fetches the full message list for a ticket, in server
// (creation) order. Callers replace their state wholesale with the
// result — there is no incremental merge, so duplicate suppression and
// ordering are entirely the server's responsibility.
func (s *Session) Messages(ctx context.Context, ticketID int) ([]Message, error) {
	query := url.Values{"ticket_id": {strconv.Itoa(ticketID)}}
	body, err := s.client.doRequest(ctx, http.MethodGet, s.client.endpoints.Messages, s.credentials(), nil, query)
	if err != nil {
		return nil, fmt.Errorf("helpdesk: listing messages: %w", err)
	}

	var response struct {
		Messages []Message `json:"messages"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("helpdesk: parsing message list: %w", err)
	}
	return response.Messages, nil
}

// Send posts a text message to a ticket and returns the created
// message as the server recorded it. Local checks reject a missing
// ticket, blank content, and content over MaxMessageLength characters
// without touching the network. Content is trimmed of surrounding
// whitespace; internal formatting is preserved.
func (s *Session) Send(ctx context.Context, ticketID int, content string) (*Message, error) {
	if ticketID == 0 {
		return nil, ErrNoTicketSelected
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	body, err := s.client.doRequest(ctx, http.MethodPost, s.client.endpoints.Messages, s.credentials(), map[string]any{
		"action":       "send_message",
		"ticket_id":    ticketID,
		"content":      content,
		"message_type": "text",
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("helpdesk: sending message: %w", err)
	}
	var response struct {
		Message Message `json:"message"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("helpdesk: parsing send response: %w", err)
	}
	return &response.Message, nil
}

// Report flags a message as violating policy. Moderator-only on the
// server side; reason is required, description may be empty. The
// result reports whether the flag pushed the author over the ban
// threshold — an opaque server decision the client only displays.
func (s *Session) Report(ctx context.Context, messageID int, reason, description string) (*ReportResult, error) {
	reason = strings.TrimSpace(reason)
	if messageID == 0 || reason == "" {
		return nil, fmt.Errorf("helpdesk: message id and reason are required")
	}

	body, err := s.client.doRequest(ctx, http.MethodPost, s.client.endpoints.Messages, s.credentials(), map[string]any{
		"action":      "report_message",
		"message_id":  messageID,
		"reason":      reason,
		"description": strings.TrimSpace(description),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("helpdesk: reporting message: %w", err)
	}

	var result ReportResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("helpdesk: parsing report response: %w", err)
	}

	s.client.logger.Info("message reported",
		"message_id", messageID,
		"user_banned", result.UserBanned,
	)
	return &result, nil
}
