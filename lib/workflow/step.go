// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"maps"

	"github.com/pants-project/pants/lib/schema/vault"
)

// Step is one modal layer of the workflow. The set of steps is closed:
// [*PasswordPrompt], [*VaultNamePrompt], [*NewEntryForm] and
// [*ExistingEntryForm]. Consumers switch on the concrete type.
type Step interface {
	step()
}

// PasswordPrompt collects the master password. ConfirmRequired is set
// when the password establishes a vault's first entry, so a typo
// cannot lock the user out of the vault.
type PasswordPrompt struct {
	Password        string
	Confirm         string
	ConfirmRequired bool
}

// Valid reports whether the prompt may be submitted.
func (p *PasswordPrompt) Valid() bool {
	if p.Password == "" {
		return false
	}
	return !p.ConfirmRequired || p.Confirm == p.Password
}

// VaultNamePrompt collects the name of a vault to create.
type VaultNamePrompt struct {
	Name string
}

// NewEntryForm edits a not-yet-existing entry in Vault.
type NewEntryForm struct {
	Vault  string
	Key    string
	Choice vault.Choice
	Fields map[string]string
}

// NewNewEntryForm returns an empty form for vaultName using the
// default layout.
func NewNewEntryForm(vaultName string) *NewEntryForm {
	return &NewEntryForm{
		Vault:  vaultName,
		Choice: vault.DefaultChoice,
		Fields: vault.DefaultChoice.DefaultFields(),
	}
}

// SetChoice switches the layout and resets the fields.
func (f *NewEntryForm) SetChoice(choice vault.Choice) {
	f.Choice = choice
	f.Fields = choice.DefaultFields()
}

// ExistingEntryForm views and edits an entry read from the store.
// Loaded stays false until the read response arrives. Hidden masks
// password fields in the display.
type ExistingEntryForm struct {
	Vault  string
	Key    string
	Choice vault.Choice
	Fields map[string]string
	Hidden bool
	Loaded bool
}

// NewExistingEntryForm returns a hidden, not yet loaded view of key in
// vaultName.
func NewExistingEntryForm(vaultName, key string) *ExistingEntryForm {
	return &ExistingEntryForm{
		Vault:  vaultName,
		Key:    key,
		Choice: vault.DefaultChoice,
		Fields: vault.DefaultChoice.DefaultFields(),
		Hidden: true,
	}
}

// Load replaces layout and fields with a value read from the store.
func (f *ExistingEntryForm) Load(value vault.Value) {
	f.Choice, f.Fields = value.Split()
	f.Loaded = true
}

// Secret returns the value of the password field, if the entry has
// one and it is loaded.
func (f *ExistingEntryForm) Secret() (string, bool) {
	if !f.Loaded {
		return "", false
	}
	value, ok := f.Fields[vault.FieldPassword]
	return value, ok && value != ""
}

// FieldsCopy returns a copy of the edited fields.
func (f *ExistingEntryForm) FieldsCopy() map[string]string {
	return maps.Clone(f.Fields)
}

func (*PasswordPrompt) step()    {}
func (*VaultNamePrompt) step()   {}
func (*NewEntryForm) step()      {}
func (*ExistingEntryForm) step() {}
