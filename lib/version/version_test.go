// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	original := [4]string{Version, GitCommit, GitDirty, BuildTime}
	t.Cleanup(func() {
		Version, GitCommit, GitDirty, BuildTime = original[0], original[1], original[2], original[3]
	})

	Version, GitCommit, GitDirty, BuildTime = "1.2.3", "abc1234", "false", "2026-10-19T00:00:00Z"
	if got, want := Info(), "1.2.3 (abc1234, 2026-10-19T00:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}

	GitDirty = "true"
	if got := Info(); !strings.Contains(got, "abc1234-dirty") {
		t.Errorf("Info() = %q, want dirty marker", got)
	}
	if got := Full(); !strings.HasPrefix(got, Info()) || !strings.Contains(got, runtime.GOOS) {
		t.Errorf("Full() = %q", got)
	}
}
