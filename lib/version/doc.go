// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for the pants binaries.
//
// The variables are injected at build time via -ldflags -X, for
// example:
//
//	go build -ldflags "-X github.com/pants-project/pants/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// They default to "unknown" and "0.1.0-dev" in development builds and
// test runs.
package version
