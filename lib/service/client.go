// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"io"
	"maps"
	"net"
	"time"

	"github.com/pants-project/pants/lib/codec"
)

// dialTimeout bounds the connect phase only.
const dialTimeout = 5 * time.Second

// responseTimeout bounds the exchange once connected. It exceeds the
// server's read plus write timeouts.
const responseTimeout = 45 * time.Second

// maxMessageSize caps a request or response in either direction.
const maxMessageSize = 1 << 20

// ServiceError is a refusal reported by the store: the response
// arrived with ok=false.
type ServiceError struct {
	Action  string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("store refused %q: %s", e.Action, e.Message)
}

// Client calls a store over its unix socket. Each Call uses a fresh
// connection, so a Client is safe for concurrent use.
type Client struct {
	socketPath string
}

// NewClient returns a client for the store listening at socketPath.
func NewClient(socketPath string) *Client {
	return &Client{socketPath: socketPath}
}

// SocketPath returns the socket the client dials.
func (c *Client) SocketPath() string { return c.socketPath }

// Call sends action with fields and decodes the response payload into
// result. fields must not contain "action". A nil result discards the
// payload.
//
// A refusal returns *ServiceError. Any other error means the exchange
// itself failed.
func (c *Client) Call(ctx context.Context, action string, fields map[string]any, result any) error {
	request := make(map[string]any, len(fields)+1)
	maps.Copy(request, fields)
	request["action"] = action

	response, err := c.exchange(ctx, request)
	if err != nil {
		return fmt.Errorf("calling %q on %s: %w", action, c.socketPath, err)
	}
	if !response.OK {
		return &ServiceError{Action: action, Message: response.Error}
	}
	if result != nil && len(response.Data) > 0 {
		if err := codec.Unmarshal(response.Data, result); err != nil {
			return fmt.Errorf("decoding %q response: %w", action, err)
		}
	}
	return nil
}

func (c *Client) exchange(ctx context.Context, request map[string]any) (*Response, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connecting: %w", err)
	}
	defer conn.Close()

	// Armed before the cancellation hook so a later deadline cannot
	// overwrite the one the hook sets.
	conn.SetDeadline(time.Now().Add(responseTimeout))

	// Cancelling ctx aborts a blocked read or write.
	stop := context.AfterFunc(ctx, func() {
		conn.SetDeadline(time.Now())
	})
	defer stop()

	if err := codec.NewEncoder(conn).Encode(request); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("writing request: %w", err)
	}
	if unixConn, ok := conn.(*net.UnixConn); ok {
		unixConn.CloseWrite()
	}

	var response Response
	if err := codec.NewDecoder(io.LimitReader(conn, maxMessageSize)).Decode(&response); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return &response, nil
}
