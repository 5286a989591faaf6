// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

// Package connection runs the client's link to the vault store in a
// background goroutine.
//
// The UI thread never blocks on the socket. It hands requests to
// [Connection.Send] and consumes [Event]s from [Connection.Events]:
// Connected when the store starts answering, Disconnected when it
// stops, Output for every successful response, and Error for every
// refusal. The worker owns no client state; matching a response to
// what the user is currently doing is the consumer's job.
//
// While the store is unreachable the worker probes it with info
// requests, backing off exponentially, and Send drops requests.
package connection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pants-project/pants/lib/clock"
	"github.com/pants-project/pants/lib/schema/vault"
	"github.com/pants-project/pants/lib/service"
)

// Reconnect backoff bounds.
const (
	initialBackoff = 1 * time.Second
	maxBackoff     = 30 * time.Second
)

// callTimeout bounds one request/response exchange.
const callTimeout = 30 * time.Second

// queueSize is how many requests may wait for the worker.
const queueSize = 32

// Caller performs one store exchange. [*service.Client] implements it.
type Caller interface {
	Call(ctx context.Context, action string, fields map[string]any, result any) error
}

// EventKind discriminates [Event].
type EventKind int

const (
	// EventConnected means the store answered after being unreachable.
	EventConnected EventKind = iota
	// EventDisconnected means an exchange failed at the transport
	// level. The request in flight, if any, is lost.
	EventDisconnected
	// EventOutput carries a successful response.
	EventOutput
	// EventError carries a store refusal.
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventConnected:
		return "connected"
	case EventDisconnected:
		return "disconnected"
	case EventOutput:
		return "output"
	case EventError:
		return "error"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is one notification from the worker.
type Event struct {
	Kind EventKind
	// Action is the request the event answers, empty for connection
	// state changes.
	Action vault.Action
	Output vault.Output
	Err    error
}

// Connection serializes requests to the store on one worker goroutine.
type Connection struct {
	caller Caller
	clock  clock.Clock
	logger *slog.Logger

	queue     chan vault.Request
	events    chan Event
	connected atomic.Bool

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// New returns a stopped connection. Call Start to run the worker.
func New(caller Caller, clk clock.Clock, logger *slog.Logger) *Connection {
	return &Connection{
		caller: caller,
		clock:  clk,
		logger: logger,
		queue:  make(chan vault.Request, queueSize),
		events: make(chan Event, queueSize),
		done:   make(chan struct{}),
	}
}

// Start launches the worker. It runs until ctx is cancelled or Close
// is called, then closes the events channel.
func (c *Connection) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)
	go c.run(ctx)
}

// Close stops the worker and waits for it to exit.
func (c *Connection) Close() {
	c.once.Do(func() {
		if c.cancel != nil {
			c.cancel()
			<-c.done
		}
	})
}

// Events yields worker notifications. It is closed when the worker
// exits.
func (c *Connection) Events() <-chan Event { return c.events }

// Connected reports whether the store answered the last exchange.
func (c *Connection) Connected() bool { return c.connected.Load() }

// Send queues request for the store. While disconnected, or when the
// queue is full, the request is dropped.
func (c *Connection) Send(request vault.Request) {
	if !c.connected.Load() {
		c.logger.Debug("dropping request while disconnected", "request", request)
		return
	}
	select {
	case c.queue <- request:
	default:
		c.logger.Warn("request queue full, dropping request", "request", request)
	}
}

func (c *Connection) run(ctx context.Context) {
	defer close(c.done)
	defer close(c.events)

	for ctx.Err() == nil {
		if !c.connect(ctx) {
			return
		}
		c.serve(ctx)
	}
}

// connect probes until the store answers. It returns false if ctx
// ended first.
func (c *Connection) connect(ctx context.Context) bool {
	backoff := initialBackoff
	for {
		err := c.call(ctx, vault.InfoRequest(), nil)
		var refusal *service.ServiceError
		if err == nil || errors.As(err, &refusal) {
			break
		}
		if ctx.Err() != nil {
			return false
		}
		c.logger.Debug("store unreachable", "error", err, "retry_in", backoff)
		select {
		case <-ctx.Done():
			return false
		case <-c.clock.After(backoff):
		}
		backoff = min(backoff*2, maxBackoff)
	}

	c.connected.Store(true)
	c.logger.Info("connected to store")
	return c.emit(ctx, Event{Kind: EventConnected})
}

// serve forwards queued requests until an exchange fails at the
// transport level or ctx ends.
func (c *Connection) serve(ctx context.Context) {
	for {
		var request vault.Request
		select {
		case <-ctx.Done():
			return
		case request = <-c.queue:
		}

		output, err := c.exchange(ctx, request)
		var refusal *service.ServiceError
		switch {
		case err == nil:
			if !c.emit(ctx, Event{Kind: EventOutput, Action: request.Action, Output: output}) {
				return
			}
		case errors.As(err, &refusal):
			c.logger.Error("store refused request", "request", request, "error", err)
			if !c.emit(ctx, Event{Kind: EventError, Action: request.Action, Err: err}) {
				return
			}
		default:
			if ctx.Err() != nil {
				return
			}
			c.connected.Store(false)
			c.drain()
			c.logger.Warn("lost connection to store", "request", request, "error", err)
			c.emit(ctx, Event{Kind: EventDisconnected, Action: request.Action, Err: err})
			return
		}
	}
}

// exchange sends request and decodes the payload its action returns.
func (c *Connection) exchange(ctx context.Context, request vault.Request) (vault.Output, error) {
	switch request.Action {
	case vault.ActionInfo:
		var info vault.Info
		if err := c.call(ctx, request, &info); err != nil {
			return vault.Output{}, err
		}
		return vault.InfoOutput(info), nil
	case vault.ActionRead:
		var reads vault.Reads
		if err := c.call(ctx, request, &reads); err != nil {
			return vault.Output{}, err
		}
		return vault.ReadOutput(reads), nil
	default:
		if err := c.call(ctx, request, nil); err != nil {
			return vault.Output{}, err
		}
		return vault.NothingOutput(), nil
	}
}

func (c *Connection) call(ctx context.Context, request vault.Request, result any) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	return c.caller.Call(ctx, string(request.Action), request.Fields(), result)
}

// drain discards requests queued before the connection dropped.
func (c *Connection) drain() {
	for {
		select {
		case request := <-c.queue:
			c.logger.Debug("discarding queued request", "request", request)
		default:
			return
		}
	}
}

// emit delivers event unless ctx ends first.
func (c *Connection) emit(ctx context.Context, event Event) bool {
	select {
	case c.events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}
