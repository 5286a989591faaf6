// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"slices"
	"testing"

	"github.com/pants-project/pants/lib/schema/vault"
)

func snapshot() vault.Info {
	return vault.Info{Vaults: map[string]vault.Schema{
		"bank": {"login": vault.ChoiceUsernamePassword, "pin": vault.ChoicePassword},
		"temp": {},
	}}
}

func TestRebuildQueries(t *testing.T) {
	cache := Rebuild(Cache{}, snapshot())

	if got := cache.Names(); !slices.Equal(got, []string{"bank", "temp"}) {
		t.Errorf("Names() = %v", got)
	}
	if !cache.Has("bank") || cache.Has("work") {
		t.Error("Has() wrong")
	}
	if !cache.IsEmpty("temp") || cache.IsEmpty("bank") {
		t.Error("IsEmpty() wrong for known vaults")
	}
	if cache.IsEmpty("work") {
		t.Error("unknown vault reported empty")
	}
	if !cache.HasKey("bank", "login") || cache.HasKey("bank", "missing") || cache.HasKey("work", "login") {
		t.Error("HasKey() wrong")
	}

	bank, ok := cache.Lookup("bank")
	if !ok || bank.Keys["login"] != vault.ChoiceUsernamePassword {
		t.Errorf("Lookup(bank) = %+v, %v", bank, ok)
	}
}

func TestRebuildCarriesExpandedByName(t *testing.T) {
	first := Rebuild(Cache{}, snapshot()).Toggle("bank")

	next := Rebuild(first, vault.Info{Vaults: map[string]vault.Schema{
		"bank": {"login": vault.ChoicePassword},
		"work": {},
	}})

	bank, _ := next.Lookup("bank")
	if !bank.Expanded {
		t.Error("bank lost its expanded flag")
	}
	if _, ok := bank.Keys["pin"]; ok {
		t.Error("keys must come from the new snapshot only")
	}
	work, _ := next.Lookup("work")
	if work.Expanded {
		t.Error("new vault should start collapsed")
	}
	if next.Has("temp") {
		t.Error("vault missing from snapshot survived")
	}
}

func TestToggleIsCopyOnWrite(t *testing.T) {
	original := Rebuild(Cache{}, snapshot())
	toggled := original.Toggle("bank")

	before, _ := original.Lookup("bank")
	after, _ := toggled.Lookup("bank")
	if before.Expanded {
		t.Error("Toggle mutated the original cache")
	}
	if !after.Expanded {
		t.Error("Toggle did not flip the flag")
	}
	if unchanged := toggled.Toggle("missing"); unchanged.Len() != toggled.Len() {
		t.Error("toggling an unknown vault changed the cache")
	}
}

func TestRebuildCopiesSnapshot(t *testing.T) {
	info := snapshot()
	cache := Rebuild(Cache{}, info)
	info.Vaults["bank"]["extra"] = vault.ChoicePassword
	if cache.HasKey("bank", "extra") {
		t.Error("cache shares the snapshot's maps")
	}
}

func TestFilter(t *testing.T) {
	cache := Rebuild(Cache{}, snapshot())

	if matches := cache.Filter("  "); matches != nil {
		t.Errorf("blank pattern matched %v", matches)
	}

	matches := cache.Filter("LOG")
	if len(matches) != 1 || matches[0].Vault != "bank" || matches[0].Key != "login" {
		t.Errorf("Filter(LOG) = %+v, want bank/login", matches)
	}

	matches = cache.Filter("tmp")
	if len(matches) != 1 || matches[0].Vault != "temp" || matches[0].Key != "" {
		t.Errorf("Filter(tmp) = %+v, want vault temp", matches)
	}

	if matches := cache.Filter("zzz"); len(matches) != 0 {
		t.Errorf("Filter(zzz) = %+v, want none", matches)
	}
}
