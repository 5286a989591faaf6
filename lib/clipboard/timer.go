// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package clipboard

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pants-project/pants/lib/clock"
	"github.com/pants-project/pants/lib/secret"
)

// DefaultDelay is how long a copied secret stays on the clipboard when
// the configuration does not say otherwise.
const DefaultDelay = 30 * time.Second

// Expiry identifies one copy and when it lapses.
type Expiry struct {
	Seq   uint64
	Delay time.Duration
}

// Timer tracks the secret currently on the clipboard. Copy and Expire
// may be called from any goroutine; Wait only touches the clock.
type Timer struct {
	board  Board
	clock  clock.Clock
	logger *slog.Logger

	mu    sync.Mutex
	delay time.Duration
	seq   uint64
	// active is false when no copy is outstanding. copied and previous
	// are nil for empty strings.
	active   bool
	copied   *secret.Buffer
	previous *secret.Buffer
}

// NewTimer returns a Timer writing to board. A non-positive delay
// means [DefaultDelay].
func NewTimer(board Board, clk clock.Clock, delay time.Duration, logger *slog.Logger) *Timer {
	timer := &Timer{board: board, clock: clk, logger: logger}
	timer.SetDelay(delay)
	return timer
}

// SetDelay changes the lifetime of future copies.
func (t *Timer) SetDelay(delay time.Duration) {
	if delay <= 0 {
		delay = DefaultDelay
	}
	t.mu.Lock()
	t.delay = delay
	t.mu.Unlock()
}

// Copy captures the current clipboard contents, writes value, and
// starts a new copy that supersedes any earlier one. A clipboard that
// cannot be read is treated as empty. If value cannot be written, the
// earlier copy (if any) stays in force and the error is returned.
func (t *Timer) Copy(value string) (Expiry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	captured, err := t.board.ReadAll()
	if err != nil {
		t.logger.Debug("clipboard unreadable, restoring to empty", "error", err)
		captured = ""
	}
	previous, err := secret.NewFromString(captured)
	if err != nil {
		return Expiry{}, fmt.Errorf("protecting previous clipboard contents: %w", err)
	}
	copied, err := secret.NewFromString(value)
	if err != nil {
		previous.Close()
		return Expiry{}, fmt.Errorf("protecting copied secret: %w", err)
	}

	if err := t.board.WriteAll(value); err != nil {
		previous.Close()
		copied.Close()
		return Expiry{}, fmt.Errorf("writing clipboard: %w", err)
	}

	t.releaseLocked()
	t.seq++
	t.active = true
	t.copied = copied
	t.previous = previous
	t.logger.Info("secret copied to clipboard", "seq", t.seq, "expires_in", t.delay)
	return Expiry{Seq: t.seq, Delay: t.delay}, nil
}

// Wait blocks until the expiry's delay has passed on the clock and
// returns it unchanged.
func (t *Timer) Wait(expiry Expiry) Expiry {
	<-t.clock.After(expiry.Delay)
	return expiry
}

// Expire restores the captured clipboard contents if seq names the
// current copy. It reports whether anything was restored; a stale or
// repeated seq is a no-op. The record is cleared even when the restore
// write fails.
func (t *Timer) Expire(seq uint64) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active || seq != t.seq {
		return false, nil
	}
	restore := t.previous.String()
	t.releaseLocked()

	if err := t.board.WriteAll(restore); err != nil {
		return true, fmt.Errorf("restoring clipboard: %w", err)
	}
	t.logger.Info("clipboard restored", "seq", seq)
	return true, nil
}

// Current returns the sequence of the outstanding copy.
func (t *Timer) Current() (uint64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seq, t.active
}

// Close restores the clipboard immediately if a copy is outstanding.
// Call it on shutdown so a secret never outlives the client.
func (t *Timer) Close() error {
	seq, active := t.Current()
	if !active {
		return nil
	}
	_, err := t.Expire(seq)
	return err
}

// releaseLocked drops the current record. Must be called with t.mu
// held.
func (t *Timer) releaseLocked() {
	if err := t.copied.Close(); err != nil {
		t.logger.Warn("releasing copied secret", "error", err)
	}
	if err := t.previous.Close(); err != nil {
		t.logger.Warn("releasing captured clipboard", "error", err)
	}
	t.active = false
	t.copied = nil
	t.previous = nil
}
