// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"fmt"
	"strings"

	"github.com/pants-project/pants/lib/pending"
	"github.com/pants-project/pants/lib/schema/vault"
	"github.com/pants-project/pants/lib/workflow"
)

// startEntryOperation begins a read or delete of an entry the
// directory knows about.
func (o *Orchestrator) startEntryOperation(operation pending.Operation) {
	if !o.directory.HasKey(operation.Vault, operation.Key) {
		o.logger.Debug("ignoring operation on unknown entry", "vault", operation.Vault, "key", operation.Key)
		return
	}
	o.reset()
	o.pending = operation
	o.stack.Push(&workflow.PasswordPrompt{})
}

// startNewEntry opens an entry form. The password is asked for when
// the form is submitted.
func (o *Orchestrator) startNewEntry(vaultName string) {
	if !o.directory.Has(vaultName) {
		o.logger.Debug("ignoring new entry in unknown vault", "vault", vaultName)
		return
	}
	o.reset()
	form := workflow.NewNewEntryForm(vaultName)
	o.pending = pending.Create(vaultName, "", form.Choice, form.Fields)
	o.stack.Push(form)
}

// startDeleteVault deletes an empty vault at once and asks for the
// password of any other.
func (o *Orchestrator) startDeleteVault(vaultName string) {
	if !o.directory.Has(vaultName) {
		o.logger.Debug("ignoring deletion of unknown vault", "vault", vaultName)
		return
	}
	o.reset()
	if !o.directory.IsEmpty(vaultName) {
		o.pending = pending.DeleteVault(vaultName)
		o.stack.Push(&workflow.PasswordPrompt{})
		return
	}

	operation := pending.DeleteEmptyVault(vaultName)
	request, err := operation.Finalize("")
	if err != nil {
		o.refuse(err)
		return
	}
	if !o.dispatch(request) {
		o.refuse(ErrNotConnected, "vault", vaultName)
	}
}

func (o *Orchestrator) submit() {
	switch step := o.stack.Top().(type) {
	case *workflow.PasswordPrompt:
		o.submitPassword(step)
	case *workflow.VaultNamePrompt:
		o.submitVaultName(step)
	case *workflow.NewEntryForm:
		o.submitNewEntry(step)
	case *workflow.ExistingEntryForm:
		o.submitExistingEntry(step)
	}
}

func (o *Orchestrator) submitPassword(prompt *workflow.PasswordPrompt) {
	switch {
	case prompt.Password == "":
		o.refuse(ErrEmptyPassword)
		return
	case !prompt.Valid():
		o.refuse(ErrPasswordMismatch)
		return
	case !o.pending.IsComplete():
		o.refuse(ErrIncomplete)
		return
	case !o.connected:
		o.refuse(ErrNotConnected)
		return
	}

	request, err := o.pending.Finalize(prompt.Password)
	if err != nil {
		o.refuse(err)
		return
	}
	o.dispatch(request)

	// A read leaves the prompt underneath an entry view, so saving an
	// edit can reuse the password.
	if o.pending.Kind == pending.KindRead {
		vaultName, key := o.pending.Vault, o.pending.Key
		o.stack.Push(workflow.NewExistingEntryForm(vaultName, key))
		o.pending = pending.Write(vaultName, key, vault.DefaultChoice, nil)
		return
	}
	o.reset()
}

func (o *Orchestrator) submitVaultName(prompt *workflow.VaultNamePrompt) {
	name := strings.TrimSpace(prompt.Name)
	switch {
	case name == "":
		o.refuse(ErrEmptyVaultName)
		return
	case o.directory.Has(name):
		o.refuse(fmt.Errorf("%w: %s", ErrVaultExists, name))
		return
	}
	if !o.dispatch(vault.NewVaultRequest(name)) {
		o.refuse(ErrNotConnected)
		return
	}
	o.stack.Pop()
	o.lastError = nil
}

func (o *Orchestrator) submitNewEntry(form *workflow.NewEntryForm) {
	if !o.pending.IsComplete() {
		o.refuse(ErrIncomplete)
		return
	}
	switch {
	case o.directory.IsEmpty(form.Vault):
		o.stack.Push(&workflow.PasswordPrompt{ConfirmRequired: true})
	case !o.directory.HasKey(form.Vault, form.Key):
		o.stack.Push(&workflow.PasswordPrompt{})
	default:
		o.refuse(fmt.Errorf("%w: %s in %s", ErrDuplicateKey, form.Key, form.Vault))
		return
	}
	o.lastError = nil
}

func (o *Orchestrator) submitExistingEntry(form *workflow.ExistingEntryForm) {
	switch {
	case !form.Loaded || !o.pending.IsComplete():
		o.refuse(ErrIncomplete)
		return
	case !o.directory.HasKey(form.Vault, form.Key):
		o.refuse(fmt.Errorf("%w: %s in %s", ErrUnknownEntry, form.Key, form.Vault))
		return
	}

	password, ok := o.stack.Password()
	if !ok {
		o.stack.Push(&workflow.PasswordPrompt{})
		return
	}
	if !o.connected {
		o.refuse(ErrNotConnected)
		return
	}
	request, err := o.pending.Finalize(password)
	if err != nil {
		o.refuse(err)
		return
	}
	o.dispatch(request)
	o.reset()
}

func (o *Orchestrator) cancel() {
	switch o.stack.Top().(type) {
	case nil:
		return
	case *workflow.PasswordPrompt:
		o.stack.Pop()
		switch o.pending.Kind {
		case pending.KindRead, pending.KindDelete, pending.KindDeleteVault, pending.KindDeleteEmptyVault:
			o.pending = pending.Empty()
		}
	case *workflow.VaultNamePrompt:
		o.stack.Pop()
	case *workflow.NewEntryForm, *workflow.ExistingEntryForm:
		o.reset()
	}
	o.lastError = nil
}
