// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package vaultui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg carries one log record to the status bar.
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// logRecordFadeMsg clears the status bar notice. Seq names the record
// it was scheduled for, so a newer notice is not cleared early.
type logRecordFadeMsg struct {
	seq uint64
}

// logRecordFadeDelay is how long a notice stays in the status bar.
const logRecordFadeDelay = 5 * time.Second

// Sender is the part of *tea.Program the handler needs.
type Sender interface {
	Send(msg tea.Msg)
}

// LogHandler is a slog.Handler that shows records in the status bar of
// a running program. Records below its level, and records arriving
// before [LogHandler.SetProgram], are dropped.
//
// Handlers derived through WithAttrs and WithGroup share the program
// pointer, so one SetProgram call reaches all of them.
type LogHandler struct {
	level   slog.Leveler
	program *atomic.Pointer[Sender]
	// attrs are preformatted "key=value" pairs, qualified by the
	// groups open when they were added.
	attrs  []string
	prefix string
}

// NewLogHandler returns a handler for records at or above level.
func NewLogHandler(level slog.Leveler) *LogHandler {
	return &LogHandler{level: level, program: &atomic.Pointer[Sender]{}}
}

// SetProgram starts delivery. Safe to call from any goroutine.
func (handler *LogHandler) SetProgram(program Sender) {
	handler.program.Store(&program)
}

func (handler *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level.Level()
}

// Handle formats the record as "message (key=value, ...)" and sends it.
func (handler *LogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}

	parts := slices.Clone(handler.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, formatAttr(handler.prefix, attr))
		return true
	})

	summary := record.Message
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}
	// Records logged from inside Update would block on the loop that
	// reads them, so delivery happens off the caller's goroutine.
	go (*program).Send(logRecordMsg{Summary: summary, Level: record.Level})
	return nil
}

func (handler *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	formatted := slices.Clone(handler.attrs)
	for _, attr := range attrs {
		formatted = append(formatted, formatAttr(handler.prefix, attr))
	}
	return &LogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   formatted,
		prefix:  handler.prefix,
	}
}

func (handler *LogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	return &LogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   handler.attrs,
		prefix:  handler.prefix + name + ".",
	}
}

// formatAttr resolves LogValuers first, so redacting types such as
// vault.Request keep their secrets out of the status bar.
func formatAttr(prefix string, attr slog.Attr) string {
	return fmt.Sprintf("%s%s=%s", prefix, attr.Key, attr.Value.Resolve())
}
