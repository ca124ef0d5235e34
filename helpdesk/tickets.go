// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package helpdesk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Default classification for tickets opened from the chat view. The
// composer asks only for a title; category and priority are fixed and
// the server may reclassify during triage.
const (
	defaultTicketCategory = "general"
	defaultTicketPriority = PriorityMedium
)

// Tickets fetches the caller's visible tickets. Scoping is server-side
// and driven by the role query parameter: a user receives only their
// own tickets, a moderator receives all of them, newest activity first.
func (s *Session) Tickets(ctx context.Context) ([]Ticket, error) {
	query := url.Values{"role": {string(s.user.Role)}}
	body, err := s.client.doRequest(ctx, http.MethodGet, s.client.endpoints.Tickets, s.credentials(), nil, query)
	if err != nil {
		return nil, fmt.Errorf("helpdesk: listing tickets: %w", err)
	}

	var response struct {
		Tickets []Ticket `json:"tickets"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("helpdesk: parsing ticket list: %w", err)
	}
	return response.Tickets, nil
}

// CreateTicket opens a new support case with the default category and
// priority and returns it. Blank titles are rejected locally.
func (s *Session) CreateTicket(ctx context.Context, title string) (*Ticket, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("helpdesk: ticket title is required")
	}

	body, err := s.client.doRequest(ctx, http.MethodPost, s.client.endpoints.Tickets, s.credentials(), map[string]any{
		"title":    title,
		"category": defaultTicketCategory,
		"priority": string(defaultTicketPriority),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("helpdesk: creating ticket: %w", err)
	}

	var response struct {
		Ticket Ticket `json:"ticket"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("helpdesk: parsing create ticket response: %w", err)
	}

	s.client.logger.Info("ticket created", "ticket_id", response.Ticket.ID, "title", title)
	return &response.Ticket, nil
}
