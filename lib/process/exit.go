// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ExitCoder is an error that carries its own exit code.
type ExitCoder interface {
	ExitCode() int
}

// Fatal writes "error: err" to stderr and exits. The code is 1 unless
// err wraps an [ExitCoder].
func Fatal(err error) {
	os.Exit(Report(os.Stderr, err))
}

// Report writes err to w the way [Fatal] does and returns the exit
// code Fatal would use.
func Report(w io.Writer, err error) int {
	fmt.Fprintf(w, "error: %v\n", err)
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}
