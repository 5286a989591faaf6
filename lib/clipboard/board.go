// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

// Package clipboard places entry passwords on the system clipboard for
// a limited time and puts back whatever the clipboard held before.
//
// [Timer] owns at most one copied secret. A second copy replaces the
// first outright: only the newest copy's expiry restores anything, and
// it restores what the clipboard held just before that newest copy.
package clipboard

import (
	"sync"

	systemclipboard "github.com/atotto/clipboard"
)

// Board is a text clipboard.
type Board interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// System returns the desktop clipboard.
func System() Board { return systemBoard{} }

// SystemAvailable reports whether a clipboard utility was found on
// this machine.
func SystemAvailable() bool { return !systemclipboard.Unsupported }

type systemBoard struct{}

func (systemBoard) ReadAll() (string, error)   { return systemclipboard.ReadAll() }
func (systemBoard) WriteAll(text string) error { return systemclipboard.WriteAll(text) }

// Memory is a process-local Board, used when no system clipboard is
// available and in tests. ReadErr and WriteErr, when set, are returned
// by the next calls.
type Memory struct {
	mu       sync.Mutex
	text     string
	ReadErr  error
	WriteErr error
}

// NewMemory returns a Memory board holding text.
func NewMemory(text string) *Memory {
	return &Memory{text: text}
}

// ReadAll returns the held text.
func (m *Memory) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return "", m.ReadErr
	}
	return m.text, nil
}

// WriteAll replaces the held text.
func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.text = text
	return nil
}

// Text returns the held text regardless of ReadErr.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}
