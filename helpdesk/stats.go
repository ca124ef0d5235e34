// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package helpdesk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ModeratorStats fetches the caller's personal performance aggregate,
// the cross-moderator leaderboard (already sorted by the server), and
// the system-wide counters in one call. Read-only; the rating
// thresholds the UI derives from these numbers carry no business
// effect.
func (s *Session) ModeratorStats(ctx context.Context) (*StatsReport, error) {
	query := url.Values{"moderator_id": {strconv.Itoa(s.user.ID)}}
	body, err := s.client.doRequest(ctx, http.MethodGet, s.client.endpoints.Stats, s.credentials(), nil, query)
	if err != nil {
		return nil, fmt.Errorf("helpdesk: fetching moderator stats: %w", err)
	}

	var report StatsReport
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("helpdesk: parsing moderator stats: %w", err)
	}
	return &report, nil
}
