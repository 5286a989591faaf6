// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"testing"
)

type sampleRequest struct {
	Action string `cbor:"action"`
	Vault  string `cbor:"vault,omitempty"`
	Key    string `cbor:"key,omitempty"`
}

func TestMarshalDeterministic(t *testing.T) {
	request := map[string]any{
		"vault":  "bank",
		"action": "read",
		"key":    "login",
	}

	first, err := Marshal(request)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(request)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestUntypedMapsDecodeWithStringKeys(t *testing.T) {
	data, err := Marshal(sampleRequest{Action: "info"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	fields, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded type = %T, want map[string]any", decoded)
	}
	if fields["action"] != "info" {
		t.Errorf("action = %v, want info", fields["action"])
	}
	if _, present := fields["vault"]; present {
		t.Error("omitempty vault field should be absent")
	}
}

func TestEncoderDecoderStream(t *testing.T) {
	requests := []sampleRequest{
		{Action: "read", Vault: "bank", Key: "login"},
		{Action: "info"},
	}

	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, request := range requests {
		if err := encoder.Encode(request); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	for index, want := range requests {
		var got sampleRequest
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode[%d]: %v", index, err)
		}
		if got != want {
			t.Errorf("message %d = %+v, want %+v", index, got, want)
		}
	}
}
