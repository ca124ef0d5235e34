// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package helpdesk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// NewCaptcha requests a fresh challenge. Each challenge is single-use:
// requesting a new one conceptually abandons the previous (the server
// also expires unused challenges on its own schedule).
func (c *Client) NewCaptcha(ctx context.Context) (*CaptchaChallenge, error) {
	body, err := c.doRequest(ctx, http.MethodGet, c.endpoints.Captcha, nil, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("helpdesk: captcha request failed: %w", err)
	}

	var challenge CaptchaChallenge
	if err := json.Unmarshal(body, &challenge); err != nil {
		return nil, fmt.Errorf("helpdesk: parsing captcha response: %w", err)
	}
	if challenge.SessionToken == "" {
		return nil, fmt.Errorf("helpdesk: captcha response missing session token")
	}
	return &challenge, nil
}

// VerifyCaptcha submits the user's answer for a challenge. On success
// the session token becomes usable exactly once as the captcha_token
// of a registration. On rejection the token is burned — the caller
// must load a fresh challenge rather than retry this one.
//
// The input is upcased and trimmed before submission, matching the
// server's normalization, so case never causes a spurious failure.
func (c *Client) VerifyCaptcha(ctx context.Context, sessionToken, input string) error {
	input = strings.ToUpper(strings.TrimSpace(input))
	if sessionToken == "" || input == "" {
		return fmt.Errorf("helpdesk: captcha session token and input are required")
	}

	body, err := c.doRequest(ctx, http.MethodPost, c.endpoints.Captcha, nil, map[string]any{
		"session_token": sessionToken,
		"captcha_input": input,
	}, nil)
	if err != nil {
		return fmt.Errorf("helpdesk: captcha verification failed: %w", err)
	}

	var response struct {
		Valid bool `json:"valid"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("helpdesk: parsing captcha verify response: %w", err)
	}
	if !response.Valid {
		return fmt.Errorf("helpdesk: captcha code rejected")
	}
	return nil
}
