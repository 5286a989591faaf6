// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

// Package memstore is a vault store that keeps everything in process
// memory. It speaks the same socket protocol as a real store and backs
// the pants-store-mock binary and the client's end-to-end tests.
//
// Authentication is deliberately simple: a vault's password is fixed
// by the first entry written into it and forgotten when its last entry
// is deleted. Nothing is encrypted.
package memstore

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/pants-project/pants/lib/codec"
	"github.com/pants-project/pants/lib/schema/vault"
	"github.com/pants-project/pants/lib/service"
)

// Refusals. The socket carries only their text.
var (
	ErrNoVault       = errors.New("no such vault")
	ErrVaultExists   = errors.New("vault already exists")
	ErrVaultNotEmpty = errors.New("vault is not empty")
	ErrNoEntry       = errors.New("no such entry")
	ErrWrongPassword = errors.New("wrong password")
	ErrBadRequest    = errors.New("malformed request")
)

type storedVault struct {
	password string
	entries  map[string]vault.Value
}

// Store holds vaults in memory. It is safe for concurrent use.
type Store struct {
	logger *slog.Logger

	mu     sync.Mutex
	vaults map[string]*storedVault
}

// New returns an empty store.
func New(logger *slog.Logger) *Store {
	return &Store{logger: logger, vaults: make(map[string]*storedVault)}
}

// Seed creates or replaces a vault with entries protected by password.
func (s *Store) Seed(name, password string, entries map[string]vault.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vaults[name] = &storedVault{password: password, entries: maps.Clone(entries)}
	if s.vaults[name].entries == nil {
		s.vaults[name].entries = make(map[string]vault.Value)
	}
}

// Register installs a handler for every store action on server.
func (s *Store) Register(server *service.Server) {
	for _, action := range []vault.Action{
		vault.ActionInfo,
		vault.ActionRead,
		vault.ActionWrite,
		vault.ActionDelete,
		vault.ActionDeleteVault,
		vault.ActionNewVault,
		vault.ActionDeleteEmptyVault,
	} {
		server.Handle(string(action), s.handle)
	}
}

func (s *Store) handle(ctx context.Context, raw []byte) (any, error) {
	var request vault.Request
	if err := codec.Unmarshal(raw, &request); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	result, err := s.Apply(request)
	if err != nil {
		s.logger.Info("request refused", "request", request, "error", err)
		return nil, err
	}
	s.logger.Debug("request applied", "request", request)
	return result, nil
}

// Apply executes one request. The result is a [vault.Info] for info,
// a [vault.Reads] for read, and nil otherwise.
func (s *Store) Apply(request vault.Request) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch request.Action {
	case vault.ActionInfo:
		return s.infoLocked(), nil
	case vault.ActionNewVault:
		if request.Vault == "" {
			return nil, fmt.Errorf("%w: vault name is empty", ErrBadRequest)
		}
		if _, exists := s.vaults[request.Vault]; exists {
			return nil, fmt.Errorf("%w: %s", ErrVaultExists, request.Vault)
		}
		s.vaults[request.Vault] = &storedVault{entries: make(map[string]vault.Value)}
		return nil, nil
	case vault.ActionDeleteEmptyVault:
		stored, err := s.lookupLocked(request.Vault)
		if err != nil {
			return nil, err
		}
		if len(stored.entries) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrVaultNotEmpty, request.Vault)
		}
		delete(s.vaults, request.Vault)
		return nil, nil
	}

	stored, err := s.lookupLocked(request.Vault)
	if err != nil {
		return nil, err
	}
	if err := stored.authenticate(request); err != nil {
		return nil, err
	}

	switch request.Action {
	case vault.ActionRead:
		value, ok := stored.entries[request.Key]
		if !ok {
			return nil, fmt.Errorf("%w: %s in %s", ErrNoEntry, request.Key, request.Vault)
		}
		choice, fields := value.Split()
		return vault.Reads{
			Vault:   request.Vault,
			Entries: map[string]vault.Value{request.Key: {Choice: choice, Fields: fields}},
		}, nil
	case vault.ActionWrite:
		if request.Key == "" || request.Value == nil {
			return nil, fmt.Errorf("%w: write needs a key and a value", ErrBadRequest)
		}
		if err := request.Value.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
		if len(stored.entries) == 0 {
			stored.password = request.Password
		}
		choice, fields := request.Value.Split()
		stored.entries[request.Key] = vault.Value{Choice: choice, Fields: fields}
		return nil, nil
	case vault.ActionDelete:
		if _, ok := stored.entries[request.Key]; !ok {
			return nil, fmt.Errorf("%w: %s in %s", ErrNoEntry, request.Key, request.Vault)
		}
		delete(stored.entries, request.Key)
		if len(stored.entries) == 0 {
			stored.password = ""
		}
		return nil, nil
	case vault.ActionDeleteVault:
		delete(s.vaults, request.Vault)
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrBadRequest, request.Action)
	}
}

func (s *Store) lookupLocked(name string) (*storedVault, error) {
	stored, ok := s.vaults[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoVault, name)
	}
	return stored, nil
}

// authenticate checks the request password. An empty vault has no
// password yet and accepts any.
func (v *storedVault) authenticate(request vault.Request) error {
	if request.Password == "" {
		return ErrWrongPassword
	}
	if len(v.entries) == 0 {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(v.password), []byte(request.Password)) != 1 {
		return ErrWrongPassword
	}
	return nil
}

func (s *Store) infoLocked() vault.Info {
	info := vault.Info{Vaults: make(map[string]vault.Schema, len(s.vaults))}
	for name, stored := range s.vaults {
		schema := make(vault.Schema, len(stored.entries))
		for key, value := range stored.entries {
			schema[key] = value.Choice
		}
		info.Vaults[name] = schema
	}
	return info
}
