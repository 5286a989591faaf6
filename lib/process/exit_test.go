// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

type usageError struct{}

func (usageError) Error() string { return "bad flag" }
func (usageError) ExitCode() int { return 2 }

func TestReport(t *testing.T) {
	var output bytes.Buffer
	if code := Report(&output, errors.New("boom")); code != 1 {
		t.Errorf("code = %d, want 1", code)
	}
	if output.String() != "error: boom\n" {
		t.Errorf("output = %q", output.String())
	}

	output.Reset()
	if code := Report(&output, fmt.Errorf("parsing: %w", usageError{})); code != 2 {
		t.Errorf("code = %d, want 2 from the wrapped error", code)
	}
}
