// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package helpdesk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/coldfire-project/coldfire/lib/netutil"
)

// Client-side validation limits. These mirror the server's checks so
// that invalid input is rejected before a request is issued.
const (
	// MaxMessageLength is the hard cap on message content length in
	// characters (runes, not bytes — the server counts characters).
	MaxMessageLength = 1000

	// CaptchaCodeLength is the exact length of a captcha code. The
	// verify action is held back until the input reaches this length.
	CaptchaCodeLength = 5

	// MinPasswordLength is the minimum registration password length.
	MinPasswordLength = 6
)

// Endpoints holds the URL of each backend function. The production
// deployment serves every function from its own URL rather than routes
// under a shared base, so each one is configurable independently.
type Endpoints struct {
	Auth     string `yaml:"auth"`
	Captcha  string `yaml:"captcha"`
	Tickets  string `yaml:"tickets"`
	Messages string `yaml:"messages"`
	Stats    string `yaml:"stats"`
}

// EndpointsFromBase derives the five function URLs from a single base
// URL, for deployments that mount everything under one host.
func EndpointsFromBase(base string) Endpoints {
	base = strings.TrimRight(base, "/")
	return Endpoints{
		Auth:     base + "/auth",
		Captcha:  base + "/captcha",
		Tickets:  base + "/tickets",
		Messages: base + "/messages",
		Stats:    base + "/moderator-stats",
	}
}

// Complete reports whether every endpoint is set.
func (e Endpoints) Complete() bool {
	return e.Auth != "" && e.Captcha != "" && e.Tickets != "" &&
		e.Messages != "" && e.Stats != ""
}

// Validate checks that every endpoint is present and parses as a URL.
func (e Endpoints) Validate() error {
	for name, endpoint := range map[string]string{
		"auth":     e.Auth,
		"captcha":  e.Captcha,
		"tickets":  e.Tickets,
		"messages": e.Messages,
		"stats":    e.Stats,
	} {
		if endpoint == "" {
			return fmt.Errorf("helpdesk: %s endpoint is required", name)
		}
		if _, err := url.Parse(endpoint); err != nil {
			return fmt.Errorf("helpdesk: invalid %s endpoint %q: %w", name, endpoint, err)
		}
	}
	return nil
}

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// Endpoints are the backend function URLs.
	Endpoints Endpoints
	// HTTPClient is used for all requests. If nil, http.DefaultClient
	// is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Client is an unauthenticated support API client. It holds the
// endpoint set and HTTP transport, shared across Sessions.
type Client struct {
	endpoints  Endpoints
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a support API client.
func NewClient(config ClientConfig) (*Client, error) {
	if err := config.Endpoints.Validate(); err != nil {
		return nil, err
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		endpoints:  config.Endpoints,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// APIError is a non-2xx response from the support API. Message comes
// from the optional "error" field of the response body; when the body
// is not JSON the raw text is preserved instead.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("helpdesk: server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("helpdesk: %s (status %d)", e.Message, e.StatusCode)
}

// IsAuthError reports whether err is an API rejection of the caller's
// credentials (401 or 403). The browser client this replaces collapsed
// auth failures and connectivity failures into one generic error; this
// client keeps them distinct so the UI can say which one happened.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// auth identifies the caller on authenticated endpoints. The two
// header values are passed through verbatim — the client attaches no
// interpretation to the token.
type auth struct {
	userID int
	token  string
}

// doRequest performs an HTTP request against one of the backend
// function URLs and returns the response body. On 2xx, returns the
// body. On any other status, returns an *APIError carrying the
// server's "error" text when present. credentials may be nil for the
// unauthenticated endpoints (auth, captcha). query may be nil.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, credentials *auth, requestBody any, query url.Values) ([]byte, error) {
	requestURL := endpoint
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("helpdesk: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("helpdesk: creating request: %w", err)
	}

	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if credentials != nil {
		request.Header.Set("X-User-Id", fmt.Sprintf("%d", credentials.userID))
		request.Header.Set("X-Auth-Token", credentials.token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("helpdesk: request to %s failed: %w", requestURL, err)
	}
	defer response.Body.Close()

	responseBody, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("helpdesk: reading response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	// Error responses carry {"error": "..."} when the backend produced
	// them deliberately. Anything else (gateway pages, truncated JSON)
	// is preserved as raw text.
	var errorEnvelope struct {
		Error string `json:"error"`
	}
	message := strings.TrimSpace(string(responseBody))
	if jsonErr := json.Unmarshal(responseBody, &errorEnvelope); jsonErr == nil && errorEnvelope.Error != "" {
		message = errorEnvelope.Error
	}

	return responseBody, &APIError{StatusCode: response.StatusCode, Message: message}
}
