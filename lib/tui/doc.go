// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui holds terminal drawing helpers shared by the pants
// client: the color themes, ANSI-aware overlay splicing for modal
// steps, and the list scrollbar. It has no state and no knowledge of
// vaults; [github.com/pants-project/pants/lib/vaultui] owns layout and
// input.
package tui
