// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name      string
		choice    Choice
		raw       map[string]string
		wantField string
	}{
		{
			name:   "password layout",
			choice: ChoicePassword,
			raw:    map[string]string{"password": "hunter2"},
		},
		{
			name:   "username-password layout",
			choice: ChoiceUsernamePassword,
			raw:    map[string]string{"username": "ada", "password": "x"},
		},
		{
			name:   "empty values convert",
			choice: ChoicePassword,
			raw:    map[string]string{"password": ""},
		},
		{
			name:      "missing field",
			choice:    ChoiceUsernamePassword,
			raw:       map[string]string{"password": "x"},
			wantField: "username",
		},
		{
			name:      "unknown field",
			choice:    ChoicePassword,
			raw:       map[string]string{"password": "x", "pin": "1234"},
			wantField: "pin",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			value, err := Convert(test.choice, test.raw)
			if test.wantField == "" {
				if err != nil {
					t.Fatalf("Convert: %v", err)
				}
				if value.Choice != test.choice {
					t.Errorf("choice = %q, want %q", value.Choice, test.choice)
				}
				for name, raw := range test.raw {
					if value.Fields[name] != raw {
						t.Errorf("field %q = %q, want %q", name, value.Fields[name], raw)
					}
				}
				return
			}

			var conversionError *ConversionError
			if !errors.As(err, &conversionError) {
				t.Fatalf("error = %v, want *ConversionError", err)
			}
			if conversionError.Field != test.wantField {
				t.Errorf("error field = %q, want %q", conversionError.Field, test.wantField)
			}
		})
	}
}

func TestConvertUnknownChoice(t *testing.T) {
	_, err := Convert(Choice("totp"), map[string]string{})
	if err == nil {
		t.Fatal("expected error for unknown layout")
	}
	if !strings.Contains(err.Error(), "unknown layout") {
		t.Errorf("error = %q, want mention of unknown layout", err)
	}
}

func TestSplitIsInverseOfConvert(t *testing.T) {
	raw := map[string]string{"username": "ada", "password": "x"}
	value, err := Convert(ChoiceUsernamePassword, raw)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	choice, fields := value.Split()
	if choice != ChoiceUsernamePassword {
		t.Errorf("choice = %q", choice)
	}
	fields["password"] = "changed"
	if value.Fields["password"] != "x" {
		t.Error("Split must return a copy of the field map")
	}
}

func TestDefaultFieldsMatchLayout(t *testing.T) {
	for _, choice := range Choices() {
		value, err := Convert(choice, choice.DefaultFields())
		if err != nil {
			t.Errorf("%s: default fields do not convert: %v", choice, err)
			continue
		}
		for name, field := range value.Fields {
			if field != "" {
				t.Errorf("%s: default field %q = %q, want empty", choice, name, field)
			}
		}
	}
}

func TestChoiceNextWraps(t *testing.T) {
	if got := ChoicePassword.Next(); got != ChoiceUsernamePassword {
		t.Errorf("Next(password) = %q", got)
	}
	if got := ChoiceUsernamePassword.Next(); got != ChoicePassword {
		t.Errorf("Next(username-password) = %q", got)
	}
}

func TestRequestLogValueOmitsSecrets(t *testing.T) {
	value, _ := Convert(ChoicePassword, map[string]string{"password": "s3cret-field"})
	request := Request{
		Action:   ActionWrite,
		Vault:    "bank",
		Key:      "login",
		Password: "master-pw",
		Value:    &value,
	}

	rendered := fmt.Sprint(request.LogValue().Resolve())
	for _, secret := range []string{"master-pw", "s3cret-field"} {
		if strings.Contains(rendered, secret) {
			t.Errorf("log value %q leaks %q", rendered, secret)
		}
	}
	if request.LogValue().Kind() != slog.KindGroup {
		t.Errorf("log value kind = %v, want group", request.LogValue().Kind())
	}
}

func TestRequestFieldsOmitEmpty(t *testing.T) {
	fields := NewVaultRequest("bank").Fields()
	if fields["vault"] != "bank" {
		t.Errorf("vault = %v", fields["vault"])
	}
	for _, name := range []string{"key", "password", "value", "action"} {
		if _, present := fields[name]; present {
			t.Errorf("field %q should be absent", name)
		}
	}
}
