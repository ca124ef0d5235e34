// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides HTTP I/O helpers shared by the support API
// client and the mock server.
//
// All response body reads are bounded at MaxResponseSize so that a
// misbehaving server cannot make the client allocate without limit.
// These helpers are for JSON API responses, not for streaming bodies.
package netutil

import (
	"encoding/json"
	"fmt"
	"io"
)

// MaxResponseSize is the bound on JSON response body reads: 16 MB. The
// support API's largest legitimate payload is a full message list for
// a busy ticket, which is orders of magnitude smaller; the limit only
// exists to cap pathological responses.
const MaxResponseSize int64 = 16 << 20

// ReadResponse reads a JSON API response body up to MaxResponseSize
// bytes. Use instead of io.ReadAll on HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// DecodeResponse reads a response body (bounded) and JSON-decodes it
// into v. Replaces the io.ReadAll + json.Unmarshal pattern.
func DecodeResponse(body io.Reader, v any) error {
	data, err := io.ReadAll(io.LimitReader(body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	return json.Unmarshal(data, v)
}
