// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal user interface components for
// the Coldfire support client. Built on bubbletea (Elm architecture),
// these components handle common patterns: modal overlays, dropdown
// menus, text-input editing, arrival highlighting, and ANSI-aware
// screen compositing.
//
// The chat screens in lib/chatui import this package for consistent
// look and behavior: same theme, same keyboard conventions, same
// overlay mechanics. Screen models own their own data sources, layout,
// and domain rendering.
package tui
