// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock is the time source for everything in Pants that waits:
// the clipboard expiry timer and the store connection's reconnect
// backoff.
//
// Production code takes a [Clock] and receives [Real]. Tests pass a
// [FakeClock] and move time with [FakeClock.Advance]:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go worker(fake)
//	fake.WaitForTimers(1) // worker has started waiting
//	fake.Advance(30 * time.Second)
package clock
