// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package vaultui

import (
	"github.com/pants-project/pants/lib/directory"
	"github.com/pants-project/pants/lib/schema/vault"
)

// row is one line of the vault list. Key is empty for a vault header.
type row struct {
	Vault    string
	Key      string
	Choice   vault.Choice
	Expanded bool
	Entries  int
}

func (r row) isVault() bool { return r.Key == "" }

// rowID identifies a row across rebuilds.
type rowID struct {
	vault, key string
}

func (r row) id() rowID { return rowID{r.Vault, r.Key} }

// buildRows lays out the directory. Without a filter every vault is
// listed with the entries of expanded vaults beneath it. With one,
// the list is the fuzzy matches, best first, each entry match showing
// its vault.
func buildRows(cache directory.Cache, filter string) []row {
	if filter != "" {
		matches := cache.Filter(filter)
		rows := make([]row, 0, len(matches))
		for _, match := range matches {
			entry, _ := cache.Lookup(match.Vault)
			rows = append(rows, row{
				Vault:    match.Vault,
				Key:      match.Key,
				Choice:   entry.Keys[match.Key],
				Expanded: entry.Expanded,
				Entries:  len(entry.Keys),
			})
		}
		return rows
	}

	var rows []row
	for _, name := range cache.Names() {
		entry, _ := cache.Lookup(name)
		rows = append(rows, row{Vault: name, Expanded: entry.Expanded, Entries: len(entry.Keys)})
		if !entry.Expanded {
			continue
		}
		for _, key := range entry.Keys.Keys() {
			rows = append(rows, row{Vault: name, Key: key, Choice: entry.Keys[key]})
		}
	}
	return rows
}
