// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

// Package helpdesk is the client for the Coldfire support API.
//
// The API is a small set of HTTP+JSON endpoints: auth (login/register),
// captcha issue/verify, ticket listing and creation, message listing,
// sending and reporting, and moderator statistics. All business logic —
// authentication, persistence, ticket state, abuse handling — lives on
// the server; this package only speaks the wire protocol and enforces
// the client-side validation rules (message length, captcha input
// length, registration field checks) before any request is issued.
//
// Entry point is [Client]. Login and Register return a [Session], which
// carries the user identity and bearer token and exposes the
// authenticated operations. Sessions exist only in memory: there is no
// refresh or persistence, and a stale token simply makes subsequent
// requests fail with an authentication error.
package helpdesk
