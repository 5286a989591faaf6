// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

// Package orchestrator is the client's controller. It owns the pending
// operation, the workflow stack, the directory cache, the clipboard
// timer and the connection flag, and it is the only code that decides
// when an operation may go to the store.
//
// Events are applied one at a time through [Orchestrator.Handle], in
// arrival order. Work that takes time is returned as a tea.Cmd whose
// result is another [Event]; nothing here blocks and nothing here runs
// on a second goroutine. Responses may arrive after the user has moved
// on, so every response handler checks the current state before
// applying anything.
//
// Gating rules:
//
//   - An operation that needs authentication is dispatched only from a
//     valid password prompt, or by reusing a password already entered
//     lower in the stack.
//   - Entry operations are dispatched only when complete: key and
//     every field non-empty.
//   - Every dispatch except an info refresh is followed by an info
//     refresh.
//   - While disconnected nothing is dispatched and the workflow stays
//     open for a retry.
//   - A store refusal returns the client to idle.
package orchestrator

import (
	"errors"
	"log/slog"
	"maps"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pants-project/pants/lib/clipboard"
	"github.com/pants-project/pants/lib/config"
	"github.com/pants-project/pants/lib/directory"
	"github.com/pants-project/pants/lib/passgen"
	"github.com/pants-project/pants/lib/pending"
	"github.com/pants-project/pants/lib/schema/vault"
	"github.com/pants-project/pants/lib/workflow"
)

// Local refusals recorded in [Status.LastError].
var (
	ErrNotConnected     = errors.New("not connected to the store")
	ErrEmptyPassword    = errors.New("password is empty")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrIncomplete       = errors.New("key and every field must be filled in")
	ErrDuplicateKey     = errors.New("an entry with this key already exists")
	ErrVaultExists      = errors.New("a vault with this name already exists")
	ErrEmptyVaultName   = errors.New("vault name is empty")
	ErrUnknownEntry     = errors.New("entry is no longer in the directory")
)

// Sender delivers requests to the store. Send must not block; the
// outcome arrives later as an event.
type Sender interface {
	Send(request vault.Request)
}

// Status is the line of state the UI shows outside the workflow.
type Status struct {
	Connected bool
	// Working summarizes the pending operation, empty when idle.
	Working string
	// LastError is the most recent refusal, local or remote. Starting
	// an operation or cancelling clears it.
	LastError error
	// Copied is set while a secret is on the clipboard.
	Copied bool
}

// Orchestrator applies events to client state. It is not safe for
// concurrent use; the bubbletea update loop is its only caller.
type Orchestrator struct {
	sender    Sender
	clipboard *clipboard.Timer
	logger    *slog.Logger
	generate  func(passgen.Policy) (string, error)

	config    config.Config
	pending   pending.Operation
	stack     workflow.Stack
	directory directory.Cache
	connected bool
	lastError error
}

// New returns an idle, disconnected orchestrator.
func New(sender Sender, timer *clipboard.Timer, cfg config.Config, logger *slog.Logger) *Orchestrator {
	timer.SetDelay(cfg.ClipboardDelay())
	return &Orchestrator{
		sender:    sender,
		clipboard: timer,
		logger:    logger,
		generate:  passgen.Generate,
		config:    cfg,
	}
}

// Top returns the live workflow step, or nil when idle.
func (o *Orchestrator) Top() workflow.Step { return o.stack.Top() }

// Depth returns the number of open workflow steps.
func (o *Orchestrator) Depth() int { return o.stack.Len() }

// Display returns the display model of the live step.
func (o *Orchestrator) Display() workflow.DisplayModel { return workflow.Display(o.stack.Top()) }

// Pending returns a copy of the pending operation.
func (o *Orchestrator) Pending() pending.Operation {
	operation := o.pending
	operation.Fields = maps.Clone(operation.Fields)
	return operation
}

// Directory returns the directory cache.
func (o *Orchestrator) Directory() directory.Cache { return o.directory }

// Config returns the configuration in force.
func (o *Orchestrator) Config() config.Config { return o.config }

// Status returns the status line state.
func (o *Orchestrator) Status() Status {
	status := Status{Connected: o.connected, LastError: o.lastError}
	if !o.pending.IsEmpty() {
		status.Working = o.pending.Summary()
	}
	_, status.Copied = o.clipboard.Current()
	return status
}

// Handle applies one event and returns the follow-up work, if any.
func (o *Orchestrator) Handle(event Event) tea.Cmd {
	switch event := event.(type) {
	case ViewEntry:
		o.startEntryOperation(pending.Read(event.Vault, event.Key))
	case DeleteEntry:
		o.startEntryOperation(pending.Delete(event.Vault, event.Key))
	case NewEntry:
		o.startNewEntry(event.Vault)
	case DeleteVault:
		o.startDeleteVault(event.Vault)
	case NewVault:
		o.reset()
		o.stack.Push(&workflow.VaultNamePrompt{})

	case Submit:
		o.submit()
	case Cancel:
		o.cancel()

	case PasswordChanged, ConfirmChanged, VaultNameChanged, KeyChanged,
		ChoiceSelected, FieldChanged, GeneratePassword, ShowSecret, HideSecret:
		o.input(event)
	case CopySecret:
		return o.copySecret(event.Field)
	case ClipboardExpired:
		o.expireClipboard(event.Seq)
	case ToggleVault:
		o.directory = o.directory.Toggle(event.Vault)

	case ApplyConfig:
		o.config = event.Config
		o.clipboard.SetDelay(o.config.ClipboardDelay())
		o.logger.Info("configuration applied", "theme", o.config.Theme, "clipboard_seconds", o.config.ClipboardSeconds)

	case Connected:
		o.connected = true
		o.lastError = nil
		o.dispatch(vault.InfoRequest())
	case Disconnected:
		o.connected = false
		o.lastError = ErrNotConnected
	case OutputReceived:
		o.output(event.Output)
	case RemoteError:
		o.logger.Error("store refused request", "error", event.Err, "operation", o.pending.Kind)
		o.reset()
		o.lastError = event.Err
	}
	return nil
}

// reset discards the pending operation and every open step.
func (o *Orchestrator) reset() {
	o.stack.Clear()
	o.pending = pending.Empty()
	o.lastError = nil
}

// refuse records a local validation failure. The workflow is kept.
func (o *Orchestrator) refuse(err error, attrs ...any) {
	o.lastError = err
	o.logger.Warn("refused", append([]any{"reason", err, "operation", o.pending.Kind}, attrs...)...)
}

// dispatch sends request and, unless it is itself a refresh, an info
// refresh after it. It reports false, sending nothing, while
// disconnected.
func (o *Orchestrator) dispatch(request vault.Request) bool {
	if !o.connected {
		o.logger.Debug("not dispatching while disconnected", "request", request)
		return false
	}
	o.logger.Debug("dispatching", "request", request)
	o.sender.Send(request)
	if request.Action != vault.ActionInfo {
		o.sender.Send(vault.InfoRequest())
	}
	return true
}
