// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration shared by the
// Pants client and vault store.
//
// Everything that crosses the store socket (requests, response
// envelopes, directory snapshots, entry values) is CBOR. The encoder
// uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map keys,
// smallest integer encoding, no indefinite-length items, so the same
// request always produces the same bytes.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations (the store socket):
//
//	encoder := codec.NewEncoder(conn)
//	decoder := codec.NewDecoder(conn)
//
// Wire types carry `cbor` struct tags. They are never rendered as
// JSON.
package codec
