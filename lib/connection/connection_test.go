// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package connection

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pants-project/pants/lib/clock"
	"github.com/pants-project/pants/lib/codec"
	"github.com/pants-project/pants/lib/memstore"
	"github.com/pants-project/pants/lib/schema/vault"
	"github.com/pants-project/pants/lib/service"
	"github.com/pants-project/pants/lib/testutil"
)

const wait = 5 * time.Second

// storeCaller answers from an in-memory store without a socket.
// While unreachable every call fails the way a refused dial does.
type storeCaller struct {
	store       *memstore.Store
	unreachable atomic.Bool
	calls       atomic.Int32
}

func (s *storeCaller) Call(ctx context.Context, action string, fields map[string]any, result any) error {
	s.calls.Add(1)
	if s.unreachable.Load() {
		return errors.New("connecting: connection refused")
	}
	fields["action"] = action
	raw, err := codec.Marshal(fields)
	if err != nil {
		return err
	}
	var request vault.Request
	if err := codec.Unmarshal(raw, &request); err != nil {
		return err
	}
	payload, err := s.store.Apply(request)
	if err != nil {
		return &service.ServiceError{Action: action, Message: err.Error()}
	}
	if result == nil || payload == nil {
		return nil
	}
	data, err := codec.Marshal(payload)
	if err != nil {
		return err
	}
	return codec.Unmarshal(data, result)
}

func start(t *testing.T, caller Caller) (*Connection, *clock.FakeClock) {
	t.Helper()
	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	connection := New(caller, fake, testutil.Logger(t))
	connection.Start(context.Background())
	t.Cleanup(connection.Close)
	return connection, fake
}

func next(t *testing.T, connection *Connection, want EventKind) Event {
	t.Helper()
	event := testutil.RequireReceive(t, connection.Events(), wait, "waiting for %s event", want)
	if event.Kind != want {
		t.Fatalf("event = %s (%v), want %s", event.Kind, event.Err, want)
	}
	return event
}

func TestConnectThenRoundTrip(t *testing.T) {
	store := memstore.New(testutil.Logger(t))
	store.Seed("bank", "master", map[string]vault.Value{
		"login": {Choice: vault.ChoicePassword, Fields: map[string]string{"password": "hunter2"}},
	})
	connection, _ := start(t, &storeCaller{store: store})

	next(t, connection, EventConnected)
	if !connection.Connected() {
		t.Fatal("Connected() false after connect event")
	}

	connection.Send(vault.InfoRequest())
	event := next(t, connection, EventOutput)
	if event.Output.Kind != vault.OutputInfo || event.Output.Info.Vaults["bank"]["login"] != vault.ChoicePassword {
		t.Errorf("info output = %+v", event.Output)
	}

	connection.Send(vault.Request{Action: vault.ActionRead, Vault: "bank", Key: "login", Password: "master"})
	event = next(t, connection, EventOutput)
	if event.Output.Kind != vault.OutputRead || event.Output.Reads.Entries["login"].Fields["password"] != "hunter2" {
		t.Errorf("read output = %+v", event.Output)
	}

	connection.Send(vault.NewVaultRequest("work"))
	event = next(t, connection, EventOutput)
	if event.Output.Kind != vault.OutputNothing || event.Action != vault.ActionNewVault {
		t.Errorf("new-vault event = %+v", event)
	}
}

func TestRefusalIsErrorEvent(t *testing.T) {
	store := memstore.New(testutil.Logger(t))
	store.Seed("bank", "master", map[string]vault.Value{
		"login": {Choice: vault.ChoicePassword, Fields: map[string]string{"password": "x"}},
	})
	connection, _ := start(t, &storeCaller{store: store})
	next(t, connection, EventConnected)

	connection.Send(vault.Request{Action: vault.ActionRead, Vault: "bank", Key: "login", Password: "guess"})
	event := next(t, connection, EventError)
	var refusal *service.ServiceError
	if !errors.As(event.Err, &refusal) {
		t.Errorf("error = %v, want *service.ServiceError", event.Err)
	}
	if !connection.Connected() {
		t.Error("a refusal must not drop the connection")
	}
}

func TestReconnectWithBackoff(t *testing.T) {
	caller := &storeCaller{store: memstore.New(testutil.Logger(t))}
	caller.unreachable.Store(true)
	connection, fake := start(t, caller)

	connection.Send(vault.InfoRequest())
	if connection.Connected() {
		t.Fatal("Connected() true before the store answered")
	}

	// First retry after one second, second after two.
	fake.WaitForTimers(1)
	fake.Advance(initialBackoff)
	fake.WaitForTimers(1)
	if calls := caller.calls.Load(); calls != 2 {
		t.Fatalf("calls after first retry = %d, want 2", calls)
	}

	caller.unreachable.Store(false)
	fake.Advance(initialBackoff)
	testutil.RequireNoReceive(t, connection.Events(), 20*time.Millisecond, "advanced less than the backoff")
	fake.Advance(initialBackoff)
	next(t, connection, EventConnected)
}

func TestDisconnectDropsSendsUntilReconnected(t *testing.T) {
	caller := &storeCaller{store: memstore.New(testutil.Logger(t))}
	connection, fake := start(t, caller)
	next(t, connection, EventConnected)

	caller.unreachable.Store(true)
	connection.Send(vault.InfoRequest())
	event := next(t, connection, EventDisconnected)
	if event.Action != vault.ActionInfo || event.Err == nil {
		t.Errorf("disconnect event = %+v", event)
	}
	if connection.Connected() {
		t.Error("Connected() true after disconnect")
	}

	fake.WaitForTimers(1)
	before := caller.calls.Load()
	connection.Send(vault.NewVaultRequest("dropped"))
	if caller.calls.Load() != before {
		t.Error("Send reached the store while disconnected")
	}

	caller.unreachable.Store(false)
	fake.Advance(initialBackoff)
	next(t, connection, EventConnected)

	connection.Send(vault.InfoRequest())
	event = next(t, connection, EventOutput)
	if _, ok := event.Output.Info.Vaults["dropped"]; ok {
		t.Error("request sent while disconnected reached the store")
	}
}

func TestCloseEndsEvents(t *testing.T) {
	caller := &storeCaller{store: memstore.New(testutil.Logger(t))}
	caller.unreachable.Store(true)
	connection, fake := start(t, caller)
	fake.WaitForTimers(1)

	connection.Close()
	if _, ok := <-connection.Events(); ok {
		t.Error("events channel still open after Close")
	}
	connection.Close()
}

func TestOverSocket(t *testing.T) {
	socketPath := filepath.Join(testutil.SocketDir(t), "store.sock")
	server := service.NewServer(socketPath, testutil.Logger(t))
	memstore.New(testutil.Logger(t)).Register(server)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		testutil.RequireReceive(t, done, wait, "server shutdown")
	})
	testutil.RequireClosed(t, server.Ready(), wait, "server ready")

	connection, _ := start(t, service.NewClient(socketPath))
	next(t, connection, EventConnected)

	connection.Send(vault.NewVaultRequest("bank"))
	next(t, connection, EventOutput)
	connection.Send(vault.InfoRequest())
	event := next(t, connection, EventOutput)
	if _, ok := event.Output.Info.Vaults["bank"]; !ok {
		t.Errorf("info after new-vault = %+v", event.Output.Info)
	}
}
