// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

// Package service is the request/response protocol between the Pants
// client and a vault store.
//
// The transport is a unix socket carrying one CBOR request and one
// CBOR response per connection. A request is a map with an "action"
// key and action-specific fields. The response is a [Response]
// envelope: ok, an error message when ok is false, and an optional
// data payload whose shape depends on the action.
//
// [Client] is the caller side; [Server] dispatches requests to
// handlers registered per action. Store refusals reach the caller as
// [*ServiceError]; transport failures are plain wrapped errors, which
// is how the connection layer tells "the store said no" apart from
// "the store is gone".
package service
