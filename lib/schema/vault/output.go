// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"maps"
	"slices"
)

// Schema lists the entries of one vault: entry key to layout.
type Schema map[string]Choice

// Keys returns the entry keys in sorted order.
func (s Schema) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// Info is a full directory snapshot: every vault and its schema. It is
// the payload of an [ActionInfo] response.
type Info struct {
	Vaults map[string]Schema `cbor:"vaults"`
}

// Reads carries entry values returned by an [ActionRead].
type Reads struct {
	Vault   string           `cbor:"vault"`
	Entries map[string]Value `cbor:"entries"`
}

// OutputKind discriminates [Output].
type OutputKind int

const (
	// OutputNothing is a successful response without payload.
	OutputNothing OutputKind = iota
	// OutputInfo carries a directory snapshot.
	OutputInfo
	// OutputRead carries entry values.
	OutputRead
)

// Output is a decoded successful store response. Exactly the payload
// matching Kind is set.
type Output struct {
	Kind  OutputKind
	Info  *Info
	Reads *Reads
}

// NothingOutput is the response to mutations.
func NothingOutput() Output {
	return Output{Kind: OutputNothing}
}

// InfoOutput wraps a directory snapshot.
func InfoOutput(info Info) Output {
	return Output{Kind: OutputInfo, Info: &info}
}

// ReadOutput wraps read entry values.
func ReadOutput(reads Reads) Output {
	return Output{Kind: OutputRead, Reads: &reads}
}
