// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import "testing"

func TestNewRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := New(size); err == nil {
			t.Errorf("New(%d) succeeded", size)
		}
	}
}

func TestNewIsZeroFilled(t *testing.T) {
	buffer, err := New(32)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer buffer.Close()

	if buffer.Len() != 32 {
		t.Fatalf("Len() = %d, want 32", buffer.Len())
	}
	for index, value := range buffer.Bytes() {
		if value != 0 {
			t.Fatalf("byte %d = %d, want 0", index, value)
		}
	}
}

func TestNewFromBytesZeroesSource(t *testing.T) {
	source := []byte("hunter2")
	buffer, err := NewFromBytes(source)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	defer buffer.Close()

	if buffer.String() != "hunter2" {
		t.Errorf("String() = %q, want hunter2", buffer.String())
	}
	for index, value := range source {
		if value != 0 {
			t.Fatalf("source byte %d not zeroed", index)
		}
	}
}

func TestNewFromStringEmptyIsNil(t *testing.T) {
	buffer, err := NewFromString("")
	if err != nil {
		t.Fatalf("NewFromString: %v", err)
	}
	if buffer != nil {
		t.Fatal("empty string should produce a nil buffer")
	}
	if buffer.String() != "" || buffer.Len() != 0 {
		t.Error("nil buffer should read as empty")
	}
	if err := buffer.Close(); err != nil {
		t.Errorf("Close() on nil buffer: %v", err)
	}
}

func TestCloseIsIdempotentAndBlocksReads(t *testing.T) {
	buffer, err := NewFromString("hunter2")
	if err != nil {
		t.Fatalf("NewFromString: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("Bytes() after Close did not panic")
		}
	}()
	buffer.Bytes()
}
