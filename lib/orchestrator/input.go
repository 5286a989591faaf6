// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pants-project/pants/lib/directory"
	"github.com/pants-project/pants/lib/pending"
	"github.com/pants-project/pants/lib/schema/vault"
	"github.com/pants-project/pants/lib/workflow"
)

// input routes an edit to the top step, keeping the pending
// operation's copy of form data in step.
func (o *Orchestrator) input(event Event) {
	switch step := o.stack.Top().(type) {
	case *workflow.PasswordPrompt:
		switch event := event.(type) {
		case PasswordChanged:
			step.Password = event.Value
		case ConfirmChanged:
			step.Confirm = event.Value
		}

	case *workflow.VaultNamePrompt:
		if event, ok := event.(VaultNameChanged); ok {
			step.Name = event.Value
		}

	case *workflow.NewEntryForm:
		switch event := event.(type) {
		case KeyChanged:
			step.Key = event.Value
			o.pending.SetKey(event.Value)
		case ChoiceSelected:
			if !event.Choice.Valid() {
				return
			}
			step.SetChoice(event.Choice)
			o.pending.SetChoice(event.Choice)
		case FieldChanged:
			if _, ok := step.Fields[event.Name]; ok {
				step.Fields[event.Name] = event.Value
				o.pending.SetField(event.Name, event.Value)
			}
		case GeneratePassword:
			o.fillPassword(step.Fields)
		}

	case *workflow.ExistingEntryForm:
		if !step.Loaded {
			return
		}
		switch event := event.(type) {
		case ChoiceSelected:
			if !event.Choice.Valid() {
				return
			}
			step.Choice, step.Fields = event.Choice, event.Choice.DefaultFields()
			o.pending.SetChoice(event.Choice)
		case FieldChanged:
			if _, ok := step.Fields[event.Name]; ok {
				step.Fields[event.Name] = event.Value
				o.pending.SetField(event.Name, event.Value)
			}
		case GeneratePassword:
			o.fillPassword(step.Fields)
		case ShowSecret:
			step.Hidden = false
		case HideSecret:
			step.Hidden = true
		}
	}
}

// fillPassword sets the password field of fields, and of the pending
// operation, to a generated password. Layouts without a password
// field are left alone.
func (o *Orchestrator) fillPassword(fields map[string]string) {
	if _, ok := fields[vault.FieldPassword]; !ok {
		return
	}
	generated, err := o.generate(o.config.Password)
	if err != nil {
		o.refuse(err)
		return
	}
	fields[vault.FieldPassword] = generated
	o.pending.SetField(vault.FieldPassword, generated)
}

// copySecret puts a field of the viewed entry on the clipboard and
// returns the command that reports its expiry.
func (o *Orchestrator) copySecret(field string) tea.Cmd {
	form, ok := o.stack.TopExistingEntryForm()
	if !ok || !form.Loaded {
		return nil
	}
	if field == "" {
		field = vault.FieldPassword
	}
	value := form.Fields[field]
	if value == "" {
		return nil
	}

	expiry, err := o.clipboard.Copy(value)
	if err != nil {
		o.logger.Error("copying to clipboard", "error", err, "vault", form.Vault, "key", form.Key)
		o.lastError = err
		return nil
	}
	timer := o.clipboard
	return func() tea.Msg {
		return ClipboardExpired{Seq: timer.Wait(expiry).Seq}
	}
}

// expireClipboard restores the clipboard if seq is still the latest
// copy. Superseded expiries are dropped.
func (o *Orchestrator) expireClipboard(seq uint64) {
	expired, err := o.clipboard.Expire(seq)
	if err != nil {
		o.logger.Error("restoring clipboard", "error", err, "seq", seq)
		o.lastError = err
		return
	}
	if !expired {
		o.logger.Debug("ignoring superseded clipboard expiry", "seq", seq)
	}
}

// output applies a successful store response.
func (o *Orchestrator) output(output vault.Output) {
	switch output.Kind {
	case vault.OutputInfo:
		if output.Info != nil {
			o.directory = directory.Rebuild(o.directory, *output.Info)
		}
	case vault.OutputRead:
		if output.Reads != nil {
			o.applyReads(*output.Reads)
		}
	}
}

// applyReads loads a read response into the entry view waiting for
// it. Reads nobody is waiting for are dropped.
func (o *Orchestrator) applyReads(reads vault.Reads) {
	form, ok := o.stack.TopExistingEntryForm()
	if !ok || form.Loaded || form.Vault != reads.Vault {
		o.logger.Debug("dropping stale read", "vault", reads.Vault)
		return
	}
	value, ok := reads.Entries[form.Key]
	if !ok {
		o.logger.Debug("read response lacks the viewed key", "vault", reads.Vault, "key", form.Key, "keys", len(reads.Entries))
		return
	}
	form.Load(value)
	if o.pending.Kind == pending.KindWrite && o.pending.Vault == form.Vault && o.pending.Key == form.Key {
		o.pending.SetValue(value)
	}
}
