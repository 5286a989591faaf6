// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/pants-project/pants/lib/codec"
)

// ActionFunc handles one action. raw is the whole CBOR request,
// including the action field. A non-nil result becomes the response's
// data payload; an error becomes a refusal carrying its message.
type ActionFunc func(ctx context.Context, raw []byte) (any, error)

// Response is the envelope of every reply.
type Response struct {
	OK    bool             `cbor:"ok"`
	Error string           `cbor:"error,omitempty"`
	Data  codec.RawMessage `cbor:"data,omitempty"`
}

const (
	readTimeout  = 30 * time.Second
	writeTimeout = 10 * time.Second
)

// Server answers requests on a unix socket. Register every action
// with Handle before calling Serve.
type Server struct {
	socketPath string
	handlers   map[string]ActionFunc
	logger     *slog.Logger
	ready      chan struct{}
	inFlight   sync.WaitGroup
}

// NewServer returns a server that will listen on socketPath.
func NewServer(socketPath string, logger *slog.Logger) *Server {
	return &Server{
		socketPath: socketPath,
		handlers:   make(map[string]ActionFunc),
		logger:     logger,
		ready:      make(chan struct{}),
	}
}

// Handle registers handler for action. Registering an action twice
// panics.
func (s *Server) Handle(action string, handler ActionFunc) {
	if _, exists := s.handlers[action]; exists {
		panic(fmt.Sprintf("service.Server: duplicate handler for action %q", action))
	}
	s.handlers[action] = handler
}

// Ready is closed once the socket accepts connections.
func (s *Server) Ready() <-chan struct{} { return s.ready }

// Serve listens until ctx is cancelled, then waits for in-flight
// requests and removes the socket. A stale socket file at the path is
// replaced. The socket is only accessible to the owning user.
func (s *Server) Serve(ctx context.Context) error {
	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale socket %s: %w", s.socketPath, err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.socketPath, err)
	}
	defer func() {
		listener.Close()
		os.Remove(s.socketPath)
	}()
	if err := os.Chmod(s.socketPath, 0o600); err != nil {
		return fmt.Errorf("restricting %s: %w", s.socketPath, err)
	}

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	s.logger.Info("store listening", "path", s.socketPath)
	close(s.ready)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			s.logger.Error("accept failed", "error", err)
			continue
		}
		s.inFlight.Add(1)
		go func() {
			defer s.inFlight.Done()
			s.serveConnection(ctx, conn)
		}()
	}

	s.inFlight.Wait()
	return nil
}

func (s *Server) serveConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(readTimeout))

	var raw codec.RawMessage
	if err := codec.NewDecoder(io.LimitReader(conn, maxMessageSize)).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return
		}
		s.reply(conn, Response{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	var header struct {
		Action string `cbor:"action"`
	}
	if err := codec.Unmarshal(raw, &header); err != nil {
		s.reply(conn, Response{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if header.Action == "" {
		s.reply(conn, Response{Error: "missing required field: action"})
		return
	}

	handler, exists := s.handlers[header.Action]
	if !exists {
		s.reply(conn, Response{Error: fmt.Sprintf("unknown action %q", header.Action)})
		return
	}

	result, err := handler(ctx, raw)
	if err != nil {
		s.logger.Debug("action refused", "action", header.Action, "error", err)
		s.reply(conn, Response{Error: err.Error()})
		return
	}

	response := Response{OK: true}
	if result != nil {
		data, err := codec.Marshal(result)
		if err != nil {
			s.reply(conn, Response{Error: fmt.Sprintf("internal: encoding response: %v", err)})
			return
		}
		response.Data = data
	}
	s.reply(conn, response)
}

// reply writes response. The connection closes either way, so a write
// failure is only logged.
func (s *Server) reply(conn net.Conn, response Response) {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := codec.NewEncoder(conn).Encode(response); err != nil {
		s.logger.Debug("writing response failed", "error", err)
	}
}
