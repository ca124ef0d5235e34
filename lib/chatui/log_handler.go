// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logNoticeMsg delivers a slog record to the model for display in the
// status bar.
type logNoticeMsg struct {
	summary string
	level   slog.Level
}

// logNoticeFadeMsg clears the log notice from the status bar.
type logNoticeFadeMsg struct{}

// logNoticeFadeDelay is how long log notices stay visible before the
// status bar returns to the keyboard help line.
const logNoticeFadeDelay = 5 * time.Second

// StatusBarHandler is a slog.Handler that routes warnings and errors
// into the running bubbletea program as status bar notices. Records
// below the configured level are dropped, as are records arriving
// before SetProgram is called.
//
// Handlers derived via WithAttrs/WithGroup share the same program
// pointer, so one SetProgram call covers every derived handler.
type StatusBarHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
}

// NewStatusBarHandler creates a handler delivering records at or above
// the given level. Call SetProgram once the tea.Program exists.
func NewStatusBarHandler(level slog.Level) *StatusBarHandler {
	return &StatusBarHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram sets the program that receives notices. Safe to call
// from any goroutine.
func (handler *StatusBarHandler) SetProgram(program *tea.Program) {
	handler.program.Store(program)
}

// Enabled implements slog.Handler.
func (handler *StatusBarHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record as a one-line summary and sends it to the
// program.
func (handler *StatusBarHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}

	var attrParts []string
	for _, attr := range handler.attrs {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
		return true
	})

	summary := record.Message
	if len(attrParts) > 0 {
		summary += " (" + strings.Join(attrParts, ", ") + ")"
	}

	program.Send(logNoticeMsg{summary: summary, level: record.Level})
	return nil
}

// WithAttrs returns a derived handler with the attributes appended.
func (handler *StatusBarHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := make([]slog.Attr, 0, len(handler.attrs)+len(attrs))
	combined = append(combined, handler.attrs...)
	combined = append(combined, attrs...)
	return &StatusBarHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   combined,
	}
}

// WithGroup returns the handler unchanged: status bar summaries are
// flat, so group nesting adds nothing here.
func (handler *StatusBarHandler) WithGroup(string) slog.Handler {
	return handler
}
