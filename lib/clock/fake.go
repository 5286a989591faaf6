// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"slices"
	"sync"
	"time"
)

// FakeClock is a [Clock] that only moves when told to. It is safe for
// concurrent use.
//
// AfterFunc callbacks run synchronously inside Advance, in deadline
// order. A callback must not call Advance.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	pending []*fakeTimer
	changed *sync.Cond
}

type fakeTimer struct {
	deadline time.Time
	// Exactly one of channel and callback is set.
	channel  chan time.Time
	callback func()
	done     bool
}

// Fake returns a FakeClock reading initial.
func Fake(initial time.Time) *FakeClock {
	clock := &FakeClock{now: initial}
	clock.changed = sync.NewCond(&clock.mu)
	return clock
}

// Now returns the fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// After registers a channel timer.
func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	channel := make(chan time.Time, 1)
	if d <= 0 {
		channel <- c.now
		return channel
	}
	c.add(&fakeTimer{deadline: c.now.Add(d), channel: channel})
	return channel
}

// AfterFunc registers a callback timer. A non-positive d runs f before
// AfterFunc returns.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	if d <= 0 {
		f()
		return &Timer{stop: func() bool { return false }}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	timer := &fakeTimer{deadline: c.now.Add(d), callback: f}
	c.add(timer)
	return &Timer{stop: func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if timer.done {
			return false
		}
		timer.done = true
		c.pending = slices.DeleteFunc(c.pending, func(t *fakeTimer) bool { return t == timer })
		c.changed.Broadcast()
		return true
	}}
}

// add must be called with c.mu held.
func (c *FakeClock) add(timer *fakeTimer) {
	c.pending = append(c.pending, timer)
	c.changed.Broadcast()
}

// Advance moves time forward by d and fires every timer whose deadline
// has been reached, earliest first.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now

	var due []*fakeTimer
	c.pending = slices.DeleteFunc(c.pending, func(timer *fakeTimer) bool {
		if timer.deadline.After(now) {
			return false
		}
		timer.done = true
		due = append(due, timer)
		return true
	})
	c.changed.Broadcast()
	c.mu.Unlock()

	slices.SortStableFunc(due, func(a, b *fakeTimer) int {
		return a.deadline.Compare(b.deadline)
	})
	for _, timer := range due {
		if timer.callback != nil {
			timer.callback()
			continue
		}
		timer.channel <- now
	}
}

// WaitForTimers blocks until at least n timers are pending. Use it to
// make sure a goroutine has started waiting before calling Advance.
func (c *FakeClock) WaitForTimers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.pending) < n {
		c.changed.Wait()
	}
}

// PendingCount returns the number of timers that have neither fired
// nor been stopped.
func (c *FakeClock) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
