// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

// Package passgen generates random entry passwords from character
// classes. Randomness comes from crypto/rand unless a test supplies its
// own reader.
package passgen

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"gopkg.in/yaml.v3"
)

const (
	lowerSet  = "abcdefghijklmnopqrstuvwxyz"
	upperSet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitSet  = "0123456789"
	symbolSet = "!@#$%^&*()-_=+[]{}<>?/|:;.,~"
)

// Policy selects the length and character classes of a generated
// password. It is embedded in the client configuration file.
type Policy struct {
	Length  int  `yaml:"length" json:"length"`
	Lower   bool `yaml:"lower" json:"lower"`
	Upper   bool `yaml:"upper" json:"upper"`
	Digits  bool `yaml:"digits" json:"digits"`
	Symbols bool `yaml:"symbols" json:"symbols"`
}

// DefaultPolicy is 20 characters drawn from every class.
func DefaultPolicy() Policy {
	return Policy{Length: 20, Lower: true, Upper: true, Digits: true, Symbols: true}
}

// configuredPolicy is the starting point for a policy read from a
// file: the default length with every class off, so a class is enabled
// only by naming it.
func configuredPolicy() Policy {
	return Policy{Length: DefaultPolicy().Length}
}

// policyFields has Policy's fields without its decode methods.
type policyFields Policy

// UnmarshalYAML decodes onto [configuredPolicy] rather than onto the
// receiver's current value.
func (p *Policy) UnmarshalYAML(node *yaml.Node) error {
	decoded := policyFields(configuredPolicy())
	if err := node.Decode(&decoded); err != nil {
		return err
	}
	*p = Policy(decoded)
	return nil
}

// UnmarshalJSON is the JSON counterpart of [Policy.UnmarshalYAML].
func (p *Policy) UnmarshalJSON(data []byte) error {
	decoded := policyFields(configuredPolicy())
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = Policy(decoded)
	return nil
}

func (p Policy) classes() []string {
	var classes []string
	if p.Lower {
		classes = append(classes, lowerSet)
	}
	if p.Upper {
		classes = append(classes, upperSet)
	}
	if p.Digits {
		classes = append(classes, digitSet)
	}
	if p.Symbols {
		classes = append(classes, symbolSet)
	}
	return classes
}

// Validate rejects a policy that cannot produce a password.
func (p Policy) Validate() error {
	classes := p.classes()
	if len(classes) == 0 {
		return fmt.Errorf("password policy enables no character class")
	}
	if p.Length < len(classes) {
		return fmt.Errorf("password length %d is shorter than the %d enabled character classes", p.Length, len(classes))
	}
	return nil
}

// Generate returns a password following policy with at least one
// character from every enabled class.
func Generate(policy Policy) (string, error) {
	return GenerateFrom(rand.Reader, policy)
}

// GenerateFrom is Generate with an explicit randomness source.
func GenerateFrom(random io.Reader, policy Policy) (string, error) {
	if err := policy.Validate(); err != nil {
		return "", err
	}

	classes := policy.classes()
	var all string
	for _, class := range classes {
		all += class
	}

	password := make([]byte, policy.Length)
	for index := range password {
		set := all
		// The first characters seed one of each class; the shuffle
		// below moves them to random positions.
		if index < len(classes) {
			set = classes[index]
		}
		choice, err := randomIndex(random, len(set))
		if err != nil {
			return "", err
		}
		password[index] = set[choice]
	}

	for index := len(password) - 1; index > 0; index-- {
		swap, err := randomIndex(random, index+1)
		if err != nil {
			return "", err
		}
		password[index], password[swap] = password[swap], password[index]
	}
	return string(password), nil
}

func randomIndex(random io.Reader, n int) (int, error) {
	value, err := rand.Int(random, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading randomness: %w", err)
	}
	return int(value.Int64()), nil
}
