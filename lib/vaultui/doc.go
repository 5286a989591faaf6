// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

// Package vaultui is the terminal front end of the pants client. It is
// a bubbletea model that turns keystrokes into orchestrator events and
// draws the orchestrator's state: the vault list from the directory
// cache, the top workflow step as a centered modal, and a status bar.
//
// The model holds no vault state of its own beyond cursor position and
// the filter text. Everything else is read back from the
// [orchestrator.Orchestrator] on every render.
//
// Connection events arrive on a channel the model listens to (see
// [NewModel]); log records reach the status bar through [LogHandler].
package vaultui
