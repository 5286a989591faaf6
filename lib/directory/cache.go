// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

// Package directory is the client's picture of which vaults exist and
// which entries each holds. It never holds entry values.
//
// A [Cache] is immutable. Every full snapshot from the store replaces
// it through [Rebuild]; the one piece of local state, whether a vault
// is expanded in the list, is carried forward by vault name. [Toggle]
// flips that flag by returning a new cache.
package directory

import (
	"maps"
	"slices"

	"github.com/pants-project/pants/lib/schema/vault"
)

// Vault is one vault as last reported by the store.
type Vault struct {
	Name string
	// Keys maps entry key to layout. Read-only.
	Keys vault.Schema
	// Expanded is UI state: whether the list shows this vault's keys.
	Expanded bool
}

// IsEmpty reports whether the vault holds no entries.
func (v Vault) IsEmpty() bool { return len(v.Keys) == 0 }

// Cache is a snapshot of the vault directory. The zero value is an
// empty directory.
type Cache struct {
	vaults map[string]Vault
}

// Rebuild builds a cache from a full store snapshot. Expanded flags of
// vaults present in previous are kept; vaults missing from info are
// dropped along with their flags.
func Rebuild(previous Cache, info vault.Info) Cache {
	vaults := make(map[string]Vault, len(info.Vaults))
	for name, schema := range info.Vaults {
		keys := maps.Clone(schema)
		if keys == nil {
			keys = vault.Schema{}
		}
		vaults[name] = Vault{
			Name:     name,
			Keys:     keys,
			Expanded: previous.vaults[name].Expanded,
		}
	}
	return Cache{vaults: vaults}
}

// Lookup returns the named vault.
func (c Cache) Lookup(name string) (Vault, bool) {
	found, ok := c.vaults[name]
	return found, ok
}

// Has reports whether the named vault exists.
func (c Cache) Has(name string) bool {
	_, ok := c.vaults[name]
	return ok
}

// IsEmpty reports whether the named vault exists and holds no entries.
// An unknown vault is not empty: nothing is known about it.
func (c Cache) IsEmpty(name string) bool {
	found, ok := c.vaults[name]
	return ok && found.IsEmpty()
}

// HasKey reports whether the named vault holds an entry called key.
func (c Cache) HasKey(name, key string) bool {
	_, ok := c.vaults[name].Keys[key]
	return ok
}

// Len returns the number of vaults.
func (c Cache) Len() int { return len(c.vaults) }

// Names returns every vault name in sorted order.
func (c Cache) Names() []string {
	return slices.Sorted(maps.Keys(c.vaults))
}

// Toggle returns a copy of the cache with the named vault's Expanded
// flag flipped. An unknown name returns the cache unchanged.
func (c Cache) Toggle(name string) Cache {
	found, ok := c.vaults[name]
	if !ok {
		return c
	}
	vaults := maps.Clone(c.vaults)
	found.Expanded = !found.Expanded
	vaults[name] = found
	return Cache{vaults: vaults}
}
