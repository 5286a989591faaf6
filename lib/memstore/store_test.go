// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package memstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/pants-project/pants/lib/schema/vault"
	"github.com/pants-project/pants/lib/service"
	"github.com/pants-project/pants/lib/testutil"
)

func login(password string) *vault.Value {
	return &vault.Value{Choice: vault.ChoicePassword, Fields: map[string]string{"password": password}}
}

func apply(t *testing.T, store *Store, request vault.Request) any {
	t.Helper()
	result, err := store.Apply(request)
	if err != nil {
		t.Fatalf("Apply(%s): %v", request.Action, err)
	}
	return result
}

func TestLifecycle(t *testing.T) {
	store := New(testutil.Logger(t))

	apply(t, store, vault.NewVaultRequest("bank"))
	info := apply(t, store, vault.InfoRequest()).(vault.Info)
	if schema, ok := info.Vaults["bank"]; !ok || len(schema) != 0 {
		t.Fatalf("info after new-vault = %+v", info)
	}

	apply(t, store, vault.Request{Action: vault.ActionWrite, Vault: "bank", Key: "login", Password: "master", Value: login("hunter2")})

	reads := apply(t, store, vault.Request{Action: vault.ActionRead, Vault: "bank", Key: "login", Password: "master"}).(vault.Reads)
	if reads.Entries["login"].Fields["password"] != "hunter2" {
		t.Errorf("read = %+v", reads)
	}

	if _, err := store.Apply(vault.Request{Action: vault.ActionRead, Vault: "bank", Key: "login", Password: "guess"}); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("wrong password error = %v", err)
	}
	if _, err := store.Apply(vault.DeleteEmptyVaultRequest("bank")); !errors.Is(err, ErrVaultNotEmpty) {
		t.Errorf("delete-empty-vault on full vault error = %v", err)
	}

	apply(t, store, vault.Request{Action: vault.ActionDelete, Vault: "bank", Key: "login", Password: "master"})
	apply(t, store, vault.DeleteEmptyVaultRequest("bank"))

	info = apply(t, store, vault.InfoRequest()).(vault.Info)
	if len(info.Vaults) != 0 {
		t.Errorf("vaults left: %+v", info.Vaults)
	}
}

func TestEmptiedVaultForgetsPassword(t *testing.T) {
	store := New(testutil.Logger(t))
	store.Seed("bank", "old", map[string]vault.Value{"login": *login("x")})

	apply(t, store, vault.Request{Action: vault.ActionDelete, Vault: "bank", Key: "login", Password: "old"})
	apply(t, store, vault.Request{Action: vault.ActionWrite, Vault: "bank", Key: "login", Password: "new", Value: login("y")})

	if _, err := store.Apply(vault.Request{Action: vault.ActionRead, Vault: "bank", Key: "login", Password: "old"}); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("old password still accepted: %v", err)
	}
}

func TestRefusals(t *testing.T) {
	store := New(testutil.Logger(t))
	store.Seed("bank", "master", map[string]vault.Value{"login": *login("x")})

	tests := []struct {
		name    string
		request vault.Request
		want    error
	}{
		{"unknown vault", vault.Request{Action: vault.ActionRead, Vault: "work", Key: "k", Password: "p"}, ErrNoVault},
		{"duplicate vault", vault.NewVaultRequest("bank"), ErrVaultExists},
		{"missing entry", vault.Request{Action: vault.ActionRead, Vault: "bank", Key: "pin", Password: "master"}, ErrNoEntry},
		{"no password", vault.Request{Action: vault.ActionDeleteVault, Vault: "bank"}, ErrWrongPassword},
		{"invalid value", vault.Request{Action: vault.ActionWrite, Vault: "bank", Key: "k", Password: "master",
			Value: &vault.Value{Choice: vault.ChoicePassword, Fields: map[string]string{"pin": "1"}}}, ErrBadRequest},
		{"empty vault name", vault.NewVaultRequest(""), ErrBadRequest},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := store.Apply(test.request); !errors.Is(err, test.want) {
				t.Errorf("error = %v, want %v", err, test.want)
			}
		})
	}
}

func TestOverSocket(t *testing.T) {
	socketPath := filepath.Join(testutil.SocketDir(t), "store.sock")
	server := service.NewServer(socketPath, testutil.Logger(t))
	store := New(testutil.Logger(t))
	store.Seed("bank", "master", map[string]vault.Value{"login": *login("hunter2")})
	store.Register(server)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx) }()
	defer func() {
		cancel()
		testutil.RequireReceive(t, done, 5*time.Second, "server shutdown")
	}()
	testutil.RequireClosed(t, server.Ready(), 5*time.Second, "server ready")

	client := service.NewClient(socketPath)
	request := vault.Request{Action: vault.ActionRead, Vault: "bank", Key: "login", Password: "master"}
	var reads vault.Reads
	if err := client.Call(ctx, string(request.Action), request.Fields(), &reads); err != nil {
		t.Fatalf("read: %v", err)
	}
	if reads.Vault != "bank" || reads.Entries["login"].Fields["password"] != "hunter2" {
		t.Errorf("reads = %+v", reads)
	}

	var info vault.Info
	if err := client.Call(ctx, string(vault.ActionInfo), nil, &info); err != nil {
		t.Fatalf("info: %v", err)
	}
	if info.Vaults["bank"]["login"] != vault.ChoicePassword {
		t.Errorf("info = %+v", info)
	}

	request.Password = "guess"
	err := client.Call(ctx, string(request.Action), request.Fields(), nil)
	var serviceError *service.ServiceError
	if !errors.As(err, &serviceError) || serviceError.Message != ErrWrongPassword.Error() {
		t.Errorf("wrong password over socket = %v", err)
	}
}
