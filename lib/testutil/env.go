// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"log/slog"
	"os"
	"strings"
	"testing"
)

// SocketDir creates a short-named directory under /tmp for unix
// sockets and removes it when the test ends.
func SocketDir(t *testing.T) string {
	t.Helper()
	directory, err := os.MkdirTemp("/tmp", "pants-test-*")
	if err != nil {
		t.Fatalf("creating socket directory: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(directory) })
	return directory
}

// Logger returns a debug-level logger writing through t.Log.
func Logger(t *testing.T) *slog.Logger {
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(data []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(data), "\n"))
	return len(data), nil
}
