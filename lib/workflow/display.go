// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"maps"
	"slices"
	"strings"

	"github.com/pants-project/pants/lib/schema/vault"
)

// DisplayField is one labelled input or value of a step.
type DisplayField struct {
	// Name identifies the field for input routing: "password",
	// "confirm", "name", "key", or an entry field name.
	Name  string
	Label string
	Value string

	// Masked fields are drawn as bullets.
	Masked bool

	// Editable fields accept typed input.
	Editable bool
}

// DisplayModel is everything the UI needs to draw one step.
type DisplayModel struct {
	Title  string
	Fields []DisplayField
	// Choice is the entry layout, empty for prompts.
	Choice vault.Choice
	// Hint is a one-line key reminder.
	Hint string
}

// Mask replaces every rune of value with a bullet.
func Mask(value string) string {
	return strings.Repeat("•", len([]rune(value)))
}

// Display maps a step to its display model. Nil steps produce the zero
// model.
func Display(step Step) DisplayModel {
	switch step := step.(type) {
	case *PasswordPrompt:
		model := DisplayModel{
			Title: "Master password",
			Fields: []DisplayField{
				{Name: "password", Label: "Password", Value: step.Password, Masked: true, Editable: true},
			},
			Hint: "enter submit • esc cancel",
		}
		if step.ConfirmRequired {
			model.Title = "New vault password"
			model.Fields = append(model.Fields, DisplayField{
				Name: "confirm", Label: "Confirm", Value: step.Confirm, Masked: true, Editable: true,
			})
		}
		return model

	case *VaultNamePrompt:
		return DisplayModel{
			Title: "New vault",
			Fields: []DisplayField{
				{Name: "name", Label: "Name", Value: step.Name, Editable: true},
			},
			Hint: "enter create • esc cancel",
		}

	case *NewEntryForm:
		fields := []DisplayField{{Name: "key", Label: "Key", Value: step.Key, Editable: true}}
		fields = append(fields, entryFields(step.Choice, step.Fields, false)...)
		return DisplayModel{
			Title:  "New entry in " + step.Vault,
			Fields: fields,
			Choice: step.Choice,
			Hint:   "enter save • tab next field • ctrl+t layout • ctrl+g generate • esc cancel",
		}

	case *ExistingEntryForm:
		model := DisplayModel{
			Title:  step.Key + " in " + step.Vault,
			Choice: step.Choice,
			Hint:   "enter save • ctrl+s show/hide • ctrl+y copy field • ctrl+g generate • esc close",
		}
		if !step.Loaded {
			model.Hint = "loading… • esc close"
			return model
		}
		model.Fields = entryFields(step.Choice, step.Fields, step.Hidden)
		return model
	}
	return DisplayModel{}
}

// entryFields lists the layout's fields in display order, followed by
// any extra fields in the map (which conversion will reject, but the
// user should see them).
func entryFields(choice vault.Choice, values map[string]string, hidden bool) []DisplayField {
	var fields []DisplayField
	seen := make(map[string]bool, len(values))
	for _, name := range choice.Fields() {
		seen[name] = true
		fields = append(fields, DisplayField{
			Name:     name,
			Label:    fieldLabel(name),
			Value:    values[name],
			Masked:   hidden && name == vault.FieldPassword,
			Editable: true,
		})
	}
	for _, name := range slices.Sorted(maps.Keys(values)) {
		if seen[name] {
			continue
		}
		fields = append(fields, DisplayField{Name: name, Label: fieldLabel(name), Value: values[name], Editable: true})
	}
	return fields
}

func fieldLabel(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
