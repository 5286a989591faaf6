// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"github.com/pants-project/pants/lib/config"
	"github.com/pants-project/pants/lib/connection"
	"github.com/pants-project/pants/lib/schema/vault"
)

// Event is anything [Orchestrator.Handle] accepts. Every event type is
// also a tea.Msg, so commands returned by Handle feed straight back
// into the program's update loop.
type Event interface {
	event()
}

// Starting an operation. Each discards whatever workflow was open.
type (
	// ViewEntry reads an entry for display and editing.
	ViewEntry struct{ Vault, Key string }
	// DeleteEntry removes an entry.
	DeleteEntry struct{ Vault, Key string }
	// NewEntry opens a form for a new entry in Vault.
	NewEntry struct{ Vault string }
	// DeleteVault removes a vault. An empty vault goes without a
	// password.
	DeleteVault struct{ Vault string }
	// NewVault asks for the name of a vault to create.
	NewVault struct{}
)

// Workflow control.
type (
	// Submit confirms the top step.
	Submit struct{}
	// Cancel backs out of the top step.
	Cancel struct{}
)

// Input to the top step. Each is ignored unless the top step is of a
// kind that has the field.
type (
	PasswordChanged  struct{ Value string }
	ConfirmChanged   struct{ Value string }
	VaultNameChanged struct{ Value string }
	KeyChanged       struct{ Value string }
	ChoiceSelected   struct{ Choice vault.Choice }
	FieldChanged     struct{ Name, Value string }
	// GeneratePassword fills the form's password field from the
	// configured policy.
	GeneratePassword struct{}
	// ShowSecret and HideSecret toggle masking in the entry view.
	ShowSecret struct{}
	HideSecret struct{}
	// CopySecret puts a field of the viewed entry on the clipboard.
	// An empty Field means the password.
	CopySecret struct{ Field string }
)

// ToggleVault expands or collapses a vault in the list.
type ToggleVault struct{ Vault string }

// ClipboardExpired is delivered when a copied secret's lifetime ends.
type ClipboardExpired struct{ Seq uint64 }

// ApplyConfig replaces the configuration.
type ApplyConfig struct{ Config config.Config }

// Connection state and store responses.
type (
	Connected    struct{}
	Disconnected struct{}
	// OutputReceived carries a successful store response.
	OutputReceived struct{ Output vault.Output }
	// RemoteError carries a store refusal.
	RemoteError struct{ Err error }
)

func (ViewEntry) event()        {}
func (DeleteEntry) event()      {}
func (NewEntry) event()         {}
func (DeleteVault) event()      {}
func (NewVault) event()         {}
func (Submit) event()           {}
func (Cancel) event()           {}
func (PasswordChanged) event()  {}
func (ConfirmChanged) event()   {}
func (VaultNameChanged) event() {}
func (KeyChanged) event()       {}
func (ChoiceSelected) event()   {}
func (FieldChanged) event()     {}
func (GeneratePassword) event() {}
func (ShowSecret) event()       {}
func (HideSecret) event()       {}
func (CopySecret) event()       {}
func (ToggleVault) event()      {}
func (ClipboardExpired) event() {}
func (ApplyConfig) event()      {}
func (Connected) event()        {}
func (Disconnected) event()     {}
func (OutputReceived) event()   {}
func (RemoteError) event()      {}

// FromConnection translates a connection worker event.
func FromConnection(event connection.Event) Event {
	switch event.Kind {
	case connection.EventConnected:
		return Connected{}
	case connection.EventDisconnected:
		return Disconnected{}
	case connection.EventOutput:
		return OutputReceived{Output: event.Output}
	default:
		return RemoteError{Err: event.Err}
	}
}
