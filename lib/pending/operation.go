// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

// Package pending models the single sensitive operation the user is
// preparing: what it targets, the data collected so far, and the rules
// deciding when it may become an outbound store request.
//
// An [Operation] is plain data. It never talks to the store itself;
// [Operation.Finalize] produces the [vault.Request] and the caller
// dispatches it.
package pending

import (
	"fmt"
	"maps"

	"github.com/pants-project/pants/lib/schema/vault"
)

// Kind discriminates [Operation].
type Kind int

const (
	// KindEmpty means nothing is pending.
	KindEmpty Kind = iota
	// KindRead fetches one entry's value.
	KindRead
	// KindDelete removes one entry.
	KindDelete
	// KindDeleteVault removes a vault known to contain entries.
	KindDeleteVault
	// KindDeleteEmptyVault removes a vault known to be empty.
	KindDeleteEmptyVault
	// KindCreate adds a new entry.
	KindCreate
	// KindWrite replaces an existing entry's value.
	KindWrite
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindRead:
		return "read"
	case KindDelete:
		return "delete"
	case KindDeleteVault:
		return "delete-vault"
	case KindDeleteEmptyVault:
		return "delete-empty-vault"
	case KindCreate:
		return "create"
	case KindWrite:
		return "write"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Operation is one pending store operation. Which fields are
// meaningful depends on Kind: Vault for everything but Empty, Key for
// Read/Delete/Create/Write, Choice and Fields for Create/Write.
//
// The zero value is the Empty operation.
type Operation struct {
	Kind   Kind
	Vault  string
	Key    string
	Choice vault.Choice
	Fields map[string]string
}

// Empty returns the "nothing pending" operation.
func Empty() Operation { return Operation{} }

// Read fetches the entry key in vaultName.
func Read(vaultName, key string) Operation {
	return Operation{Kind: KindRead, Vault: vaultName, Key: key}
}

// Delete removes the entry key from vaultName.
func Delete(vaultName, key string) Operation {
	return Operation{Kind: KindDelete, Vault: vaultName, Key: key}
}

// DeleteVault removes a vault that holds entries.
func DeleteVault(vaultName string) Operation {
	return Operation{Kind: KindDeleteVault, Vault: vaultName}
}

// DeleteEmptyVault removes a vault that holds no entries.
func DeleteEmptyVault(vaultName string) Operation {
	return Operation{Kind: KindDeleteEmptyVault, Vault: vaultName}
}

// Create starts a new entry. Key may be empty and filled in later; a
// nil fields map is replaced by the layout's empty fields.
func Create(vaultName, key string, choice vault.Choice, fields map[string]string) Operation {
	return Operation{Kind: KindCreate, Vault: vaultName, Key: key, Choice: choice, Fields: fieldsOrDefault(choice, fields)}
}

// Write updates an existing entry. A nil fields map is replaced by the
// layout's empty fields.
func Write(vaultName, key string, choice vault.Choice, fields map[string]string) Operation {
	return Operation{Kind: KindWrite, Vault: vaultName, Key: key, Choice: choice, Fields: fieldsOrDefault(choice, fields)}
}

func fieldsOrDefault(choice vault.Choice, fields map[string]string) map[string]string {
	if fields == nil {
		return choice.DefaultFields()
	}
	return maps.Clone(fields)
}

// IsEmpty reports whether nothing is pending.
func (o Operation) IsEmpty() bool { return o.Kind == KindEmpty }

// HasFields reports whether the operation carries an editable value.
func (o Operation) HasFields() bool {
	return o.Kind == KindCreate || o.Kind == KindWrite
}

// NeedsAuthentication reports whether a password must be attached
// before the operation may be dispatched. Deleting a vault with no
// entries exposes nothing, so it goes out without one.
func (o Operation) NeedsAuthentication() bool {
	switch o.Kind {
	case KindEmpty, KindDeleteEmptyVault:
		return false
	default:
		return true
	}
}

// IsComplete reports whether the collected data is structurally
// complete. Vault-level operations check the vault name when they are
// created, so they are always complete here.
func (o Operation) IsComplete() bool {
	switch o.Kind {
	case KindCreate, KindWrite:
		if o.Key == "" {
			return false
		}
		for _, value := range o.Fields {
			if value == "" {
				return false
			}
		}
		return true
	case KindRead, KindDelete:
		return o.Key != ""
	default:
		return true
	}
}

// SetKey sets the entry key of a Create operation. Other kinds are
// unchanged: their key is fixed by what the user selected.
func (o *Operation) SetKey(key string) {
	if o.Kind == KindCreate {
		o.Key = key
	}
}

// SetChoice switches the layout of a Create or Write operation and
// resets its fields to the layout's empty fields.
func (o *Operation) SetChoice(choice vault.Choice) {
	if !o.HasFields() {
		return
	}
	o.Choice = choice
	o.Fields = choice.DefaultFields()
}

// SetField sets one field of a Create or Write operation.
func (o *Operation) SetField(name, value string) {
	if !o.HasFields() {
		return
	}
	if o.Fields == nil {
		o.Fields = make(map[string]string)
	}
	o.Fields[name] = value
}

// SetValue replaces layout and fields of a Write operation with a
// value read from the store.
func (o *Operation) SetValue(value vault.Value) {
	if o.Kind != KindWrite {
		return
	}
	o.Choice, o.Fields = value.Split()
}

// Finalize produces the outbound request, attaching secret where the
// store expects a password. Create and Write both become a write
// request; the distinction only matters before dispatch.
//
// Conversion of the field map can fail with a [*vault.ConversionError];
// no request is produced then and the caller keeps its workflow open.
func (o Operation) Finalize(secret string) (vault.Request, error) {
	switch o.Kind {
	case KindEmpty:
		return vault.InfoRequest(), nil
	case KindRead:
		return vault.Request{Action: vault.ActionRead, Vault: o.Vault, Key: o.Key, Password: secret}, nil
	case KindDelete:
		return vault.Request{Action: vault.ActionDelete, Vault: o.Vault, Key: o.Key, Password: secret}, nil
	case KindDeleteVault:
		return vault.Request{Action: vault.ActionDeleteVault, Vault: o.Vault, Password: secret}, nil
	case KindDeleteEmptyVault:
		return vault.DeleteEmptyVaultRequest(o.Vault), nil
	case KindCreate, KindWrite:
		value, err := vault.Convert(o.Choice, o.Fields)
		if err != nil {
			return vault.Request{}, err
		}
		return vault.Request{Action: vault.ActionWrite, Vault: o.Vault, Key: o.Key, Password: secret, Value: &value}, nil
	default:
		return vault.Request{}, fmt.Errorf("finalizing %s operation: unknown kind", o.Kind)
	}
}

// Summary describes the operation in one line for a status display.
func (o Operation) Summary() string {
	switch o.Kind {
	case KindRead:
		return fmt.Sprintf("Working on getting %s in %s", o.Key, o.Vault)
	case KindDelete:
		return fmt.Sprintf("Working on deleting %s in %s", o.Key, o.Vault)
	case KindDeleteVault, KindDeleteEmptyVault:
		return fmt.Sprintf("Working on deleting vault %s", o.Vault)
	case KindCreate:
		return fmt.Sprintf("Working on a new entry %s in %s", o.Key, o.Vault)
	case KindWrite:
		return fmt.Sprintf("Working on updating entry %s in %s", o.Key, o.Vault)
	default:
		return "Working on nothing"
	}
}
