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

// Session is an authenticated connection to the support API: the
// server-issued identity plus the bearer token attached to every
// subsequent request. Sessions live in memory only. There is no
// refresh — once the server stops accepting the token, operations
// fail with an *APIError and the caller logs in again.
type Session struct {
	client *Client
	user   User
	token  string
}

// User returns the authenticated identity.
func (s *Session) User() User { return s.user }

// Token returns the opaque bearer token.
func (s *Session) Token() string { return s.token }

// credentials builds the auth-header pair for this session.
func (s *Session) credentials() *auth {
	return &auth{userID: s.user.ID, token: s.token}
}

// authResponse is the success envelope of the auth endpoint, shared by
// login and registration.
type authResponse struct {
	Success bool   `json:"success"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

// Login authenticates with username and password and returns a
// Session. Empty fields are rejected locally; banned accounts and bad
// credentials come back as *APIError from the server.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("helpdesk: username and password are required")
	}

	body, err := c.doRequest(ctx, http.MethodPost, c.endpoints.Auth, nil, map[string]any{
		"action":   "login",
		"username": username,
		"password": password,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("helpdesk: login failed: %w", err)
	}

	var response authResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("helpdesk: parsing login response: %w", err)
	}

	c.logger.Info("logged in",
		"username", response.User.Username,
		"role", response.User.Role,
	)

	return &Session{client: c, user: response.User, token: response.Token}, nil
}

// RegisterRequest carries the registration form fields. CaptchaToken
// must be a session token that already passed VerifyCaptcha — the
// server rejects registration with an unverified or reused token.
type RegisterRequest struct {
	Username        string
	Password        string
	ConfirmPassword string
	Email           string
	Station         string
	CaptchaToken    string
}

// validate applies the client-side registration rules so that a
// request with no chance of succeeding never reaches the network.
func (r RegisterRequest) validate() error {
	if strings.TrimSpace(r.Username) == "" || r.Password == "" {
		return fmt.Errorf("helpdesk: username and password are required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("helpdesk: email is required")
	}
	if strings.TrimSpace(r.Station) == "" {
		return fmt.Errorf("helpdesk: station is required")
	}
	if len(r.Password) < MinPasswordLength {
		return fmt.Errorf("helpdesk: password must be at least %d characters", MinPasswordLength)
	}
	if r.Password != r.ConfirmPassword {
		return fmt.Errorf("helpdesk: passwords do not match")
	}
	if r.CaptchaToken == "" {
		return fmt.Errorf("helpdesk: captcha verification is required")
	}
	return nil
}

// Register creates a new account and returns a Session for it. The
// server assigns role "user"; moderator accounts are provisioned out
// of band.
func (c *Client) Register(ctx context.Context, request RegisterRequest) (*Session, error) {
	if err := request.validate(); err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, http.MethodPost, c.endpoints.Auth, nil, map[string]any{
		"action":        "register",
		"username":      strings.TrimSpace(request.Username),
		"password":      request.Password,
		"email":         strings.TrimSpace(request.Email),
		"station":       strings.TrimSpace(request.Station),
		"captcha_token": request.CaptchaToken,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("helpdesk: registration failed: %w", err)
	}

	var response authResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("helpdesk: parsing register response: %w", err)
	}

	c.logger.Info("registered account",
		"username", response.User.Username,
		"station", response.User.Station,
	)

	return &Session{client: c, user: response.User, token: response.Token}, nil
}
