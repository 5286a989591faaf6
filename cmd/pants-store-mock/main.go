// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

// pants-store-mock is an in-memory vault store for trying the client
// and for manual testing. It speaks the store's socket protocol and
// keeps everything in process memory; nothing is written to disk and
// nothing is encrypted.
//
// With --demo it starts with a "personal" vault (master password
// "demo") holding two entries, and an empty "scratch" vault.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/pants-project/pants/lib/config"
	"github.com/pants-project/pants/lib/memstore"
	"github.com/pants-project/pants/lib/process"
	"github.com/pants-project/pants/lib/schema/vault"
	"github.com/pants-project/pants/lib/service"
	"github.com/pants-project/pants/lib/version"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var (
		socketPath  string
		demo        bool
		verbose     bool
		showVersion bool
	)
	flagSet := pflag.NewFlagSet("pants-store-mock", pflag.ContinueOnError)
	flagSet.StringVar(&socketPath, "socket", config.Default().ResolvedSocketPath(), "socket to listen on")
	flagSet.BoolVar(&demo, "demo", false, "start with demo vaults")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log every request")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}
	if showVersion {
		version.Print("pants-store-mock")
		return nil
	}

	logger := newLogger(verbose)

	if err := os.MkdirAll(filepath.Dir(socketPath), 0o700); err != nil {
		return fmt.Errorf("creating socket directory: %w", err)
	}

	store := memstore.New(logger)
	if demo {
		seedDemo(store)
		logger.Info("seeded demo vaults", "vaults", []string{"personal", "scratch"})
	}

	server := service.NewServer(socketPath, logger)
	store.Register(server)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return server.Serve(ctx)
}

// newLogger writes text to a terminal and JSON otherwise.
func newLogger(verbose bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		options.Level = slog.LevelDebug
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, options))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, options))
}

func seedDemo(store *memstore.Store) {
	store.Seed("personal", "demo", map[string]vault.Value{
		"email": {
			Choice: vault.ChoiceUsernamePassword,
			Fields: map[string]string{vault.FieldUsername: "ada@example.com", vault.FieldPassword: "correct horse battery staple"},
		},
		"wifi": {
			Choice: vault.ChoicePassword,
			Fields: map[string]string{vault.FieldPassword: "hunter2hunter2"},
		},
	})
	store.Seed("scratch", "", nil)
}
