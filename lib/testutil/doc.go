// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds helpers shared by Pants tests.
//
// [RequireReceive], [RequireNoReceive] and [RequireClosed] bound every
// channel wait with a timeout, so a broken goroutine fails the test
// instead of hanging it. They are the only place tests wait on the
// wall clock; everything else uses the fake clock from lib/clock.
//
// [SocketDir] returns a short directory for unix sockets. Socket paths
// are limited to 108 bytes, which deeply nested t.TempDir paths can
// exceed.
//
// [Logger] returns a slog.Logger that writes through t.Log, so log
// output appears only for failing or verbose tests.
package testutil
