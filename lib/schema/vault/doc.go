// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

// Package vault defines the Pants store protocol types: outbound
// requests, directory snapshots, entry values and their field layouts.
//
// An entry's value is a [Value]: a [Choice] naming the field layout
// plus the field map. Editing happens on raw name→string maps in the
// client; [Convert] is the single place a raw map becomes a validated
// [Value], and it is usable on its own without any client state.
//
// The store's directory snapshot ([Info]) names every vault and, per
// vault, every entry key with its layout. It never contains field
// values. Values only travel in [Reads] responses to an authenticated
// read request.
package vault
