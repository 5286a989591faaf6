// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret keeps sensitive bytes out of the Go heap.
//
// Pants holds two kinds of secret material longer than a single event:
// the entry password placed on the system clipboard, and whatever the
// clipboard held before it, which is restored when the copy expires.
// Both live in a [Buffer] for that interval.
//
// A Buffer is an anonymous mmap region locked into RAM with mlock and
// marked MADV_DONTDUMP, so it is neither swapped nor written into core
// dumps. Close zeroes the region before unmapping it. Any access after
// Close panics.
package secret
