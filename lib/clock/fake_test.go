// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeNowMovesOnlyOnAdvance(t *testing.T) {
	clock := Fake(epoch)
	if !clock.Now().Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", clock.Now(), epoch)
	}
	clock.Advance(5 * time.Second)
	if want := epoch.Add(5 * time.Second); !clock.Now().Equal(want) {
		t.Fatalf("Now() = %v, want %v", clock.Now(), want)
	}
}

func TestFakeAfter(t *testing.T) {
	clock := Fake(epoch)
	channel := clock.After(3 * time.Second)

	clock.Advance(2 * time.Second)
	select {
	case <-channel:
		t.Fatal("After fired early")
	default:
	}

	clock.Advance(time.Second)
	select {
	case fired := <-channel:
		if want := epoch.Add(3 * time.Second); !fired.Equal(want) {
			t.Errorf("fired at %v, want %v", fired, want)
		}
	default:
		t.Fatal("After did not fire at its deadline")
	}
	if clock.PendingCount() != 0 {
		t.Errorf("PendingCount() = %d after firing", clock.PendingCount())
	}
}

func TestFakeAfterNonPositive(t *testing.T) {
	clock := Fake(epoch)
	select {
	case <-clock.After(0):
	default:
		t.Fatal("After(0) should deliver immediately")
	}
	if clock.PendingCount() != 0 {
		t.Error("After(0) registered a timer")
	}
}

func TestFakeAfterFuncOrderAndStop(t *testing.T) {
	clock := Fake(epoch)
	var order []string
	clock.AfterFunc(2*time.Second, func() { order = append(order, "second") })
	clock.AfterFunc(time.Second, func() { order = append(order, "first") })
	cancelled := clock.AfterFunc(time.Second, func() { order = append(order, "cancelled") })

	if !cancelled.Stop() {
		t.Fatal("Stop() on a pending timer returned false")
	}
	if cancelled.Stop() {
		t.Error("second Stop() returned true")
	}
	if clock.PendingCount() != 2 {
		t.Fatalf("PendingCount() = %d, want 2", clock.PendingCount())
	}

	clock.Advance(5 * time.Second)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("callbacks ran as %v, want [first second]", order)
	}
}

func TestFakeWaitForTimers(t *testing.T) {
	clock := Fake(epoch)
	done := make(chan struct{})
	go func() {
		<-clock.After(time.Minute)
		close(done)
	}()

	clock.WaitForTimers(1)
	clock.Advance(time.Minute)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("goroutine did not observe the advance")
	}
}
