// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"fmt"
	"maps"
	"slices"
)

// Field names shared by the built-in layouts.
const (
	FieldPassword = "password"
	FieldUsername = "username"
)

// Choice names the field layout of an entry.
type Choice string

const (
	// ChoicePassword is a single password field.
	ChoicePassword Choice = "password"
	// ChoiceUsernamePassword is a username and a password.
	ChoiceUsernamePassword Choice = "username-password"
)

// DefaultChoice is the layout a new entry starts with.
const DefaultChoice = ChoicePassword

// Choices returns every known layout in display order.
func Choices() []Choice {
	return []Choice{ChoicePassword, ChoiceUsernamePassword}
}

// Valid reports whether c is a known layout.
func (c Choice) Valid() bool {
	return slices.Contains(Choices(), c)
}

// Fields returns the field names of the layout in display order. Nil
// for an unknown layout.
func (c Choice) Fields() []string {
	switch c {
	case ChoicePassword:
		return []string{FieldPassword}
	case ChoiceUsernamePassword:
		return []string{FieldUsername, FieldPassword}
	default:
		return nil
	}
}

// DefaultFields returns a field map holding every field of the layout
// with an empty value. This is the starting state of an entry form.
func (c Choice) DefaultFields() map[string]string {
	fields := make(map[string]string, len(c.Fields()))
	for _, name := range c.Fields() {
		fields[name] = ""
	}
	return fields
}

// Next returns the layout after c in display order, wrapping around.
func (c Choice) Next() Choice {
	choices := Choices()
	index := slices.Index(choices, c)
	return choices[(index+1)%len(choices)]
}

// Value is a validated entry value: a layout and exactly the fields it
// names.
type Value struct {
	Choice Choice            `cbor:"choice"`
	Fields map[string]string `cbor:"fields"`
}

// Split returns the layout and a copy of the field map, the inverse of
// [Convert].
func (v Value) Split() (Choice, map[string]string) {
	return v.Choice, maps.Clone(v.Fields)
}

// Validate checks that the field set matches the layout exactly.
func (v Value) Validate() error {
	_, err := Convert(v.Choice, v.Fields)
	return err
}

// ConversionError reports why a raw field map does not fit a layout.
type ConversionError struct {
	Choice Choice
	Field  string
	Reason string
}

func (e *ConversionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("converting %q entry: %s", e.Choice, e.Reason)
	}
	return fmt.Sprintf("converting %q entry: field %q %s", e.Choice, e.Field, e.Reason)
}

// Convert turns a raw field map into a [Value] for the given layout.
// Every field of the layout must be present and no others may appear.
// Field values are copied; emptiness is a completeness concern of the
// caller, not a conversion failure.
func Convert(choice Choice, raw map[string]string) (Value, error) {
	if !choice.Valid() {
		return Value{}, &ConversionError{Choice: choice, Reason: "unknown layout"}
	}

	expected := choice.Fields()
	for _, name := range slices.Sorted(maps.Keys(raw)) {
		if !slices.Contains(expected, name) {
			return Value{}, &ConversionError{Choice: choice, Field: name, Reason: "is not part of the layout"}
		}
	}

	fields := make(map[string]string, len(expected))
	for _, name := range expected {
		value, ok := raw[name]
		if !ok {
			return Value{}, &ConversionError{Choice: choice, Field: name, Reason: "is missing"}
		}
		fields[name] = value
	}

	return Value{Choice: choice, Fields: fields}, nil
}
