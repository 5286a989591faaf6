// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package vault

import "log/slog"

// Action names a store operation.
type Action string

// Operations that carry a master password.
const (
	ActionRead        Action = "read"
	ActionWrite       Action = "write"
	ActionDelete      Action = "delete"
	ActionDeleteVault Action = "delete-vault"
)

// Operations that need no password.
const (
	ActionInfo             Action = "info"
	ActionNewVault         Action = "new-vault"
	ActionDeleteEmptyVault Action = "delete-empty-vault"
)

// Authenticated reports whether the store expects a password with the
// action.
func (a Action) Authenticated() bool {
	switch a {
	case ActionRead, ActionWrite, ActionDelete, ActionDeleteVault:
		return true
	default:
		return false
	}
}

// Request is one outbound store operation. Fields not used by the
// action are left empty and omitted on the wire.
type Request struct {
	Action   Action `cbor:"action"`
	Vault    string `cbor:"vault,omitempty"`
	Key      string `cbor:"key,omitempty"`
	Password string `cbor:"password,omitempty"`
	Value    *Value `cbor:"value,omitempty"`
}

// InfoRequest asks for a fresh directory snapshot.
func InfoRequest() Request {
	return Request{Action: ActionInfo}
}

// NewVaultRequest creates an empty vault.
func NewVaultRequest(name string) Request {
	return Request{Action: ActionNewVault, Vault: name}
}

// DeleteEmptyVaultRequest removes a vault that holds no entries.
func DeleteEmptyVaultRequest(name string) Request {
	return Request{Action: ActionDeleteEmptyVault, Vault: name}
}

// Fields returns the request body without the action, in the shape
// [service.Client.Call] expects.
func (r Request) Fields() map[string]any {
	fields := make(map[string]any, 4)
	if r.Vault != "" {
		fields["vault"] = r.Vault
	}
	if r.Key != "" {
		fields["key"] = r.Key
	}
	if r.Password != "" {
		fields["password"] = r.Password
	}
	if r.Value != nil {
		fields["value"] = *r.Value
	}
	return fields
}

// LogValue renders the request for structured logs. The password and
// field values never appear.
func (r Request) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("action", string(r.Action))}
	if r.Vault != "" {
		attrs = append(attrs, slog.String("vault", r.Vault))
	}
	if r.Key != "" {
		attrs = append(attrs, slog.String("key", r.Key))
	}
	if r.Password != "" {
		attrs = append(attrs, slog.Bool("authenticated", true))
	}
	if r.Value != nil {
		attrs = append(attrs, slog.String("choice", string(r.Value.Choice)))
	}
	return slog.GroupValue(attrs...)
}
