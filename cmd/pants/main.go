// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

// pants is the interactive password manager client. It connects to a
// vault store over a unix socket and presents the vaults in a terminal
// UI. Entry values are fetched only when viewed, and only with the
// vault's master password.
//
// Configuration comes from --config, else the file named by
// PANTS_CONFIG, else built-in defaults. Log records at warning and
// above appear in the status bar; --log-output captures everything to
// a JSON file.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/pants-project/pants/lib/clipboard"
	"github.com/pants-project/pants/lib/clock"
	"github.com/pants-project/pants/lib/config"
	"github.com/pants-project/pants/lib/connection"
	"github.com/pants-project/pants/lib/orchestrator"
	"github.com/pants-project/pants/lib/process"
	"github.com/pants-project/pants/lib/service"
	"github.com/pants-project/pants/lib/vaultui"
	"github.com/pants-project/pants/lib/version"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var (
		configPath  string
		socketPath  string
		logOutput   string
		showVersion bool
	)
	flagSet := pflag.NewFlagSet("pants", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "configuration file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&socketPath, "socket", "", "store socket, overriding the configuration")
	flagSet.StringVar(&logOutput, "log-output", "", "also write JSON log records to this file")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return usageError{err}
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if showVersion {
		version.Print("pants")
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return usageError{fmt.Errorf("unexpected argument: %s", args[0])}
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	// The override stays out of cfg, which theme cycling saves.
	if socketPath == "" {
		socketPath = cfg.ResolvedSocketPath()
	}

	tuiHandler := vaultui.NewLogHandler(slog.LevelWarn)
	var handler slog.Handler = tuiHandler
	if logOutput != "" {
		fileHandler, closeFile, err := openFileLogHandler(logOutput)
		if err != nil {
			return fmt.Errorf("opening log file %s: %w", logOutput, err)
		}
		defer closeFile()
		handler = fanoutHandler{tuiHandler, fileHandler}
	}
	logger := slog.New(handler)

	board := clipboard.System()
	if !clipboard.SystemAvailable() {
		logger.Warn("no system clipboard; copies stay inside pants")
		board = clipboard.NewMemory("")
	}
	timer := clipboard.NewTimer(board, clock.Real(), cfg.ClipboardDelay(), logger.With("component", "clipboard"))
	defer func() {
		if err := timer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: restoring clipboard: %v\n", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := connection.New(service.NewClient(socketPath), clock.Real(), logger.With("component", "connection", "socket", socketPath))
	store.Start(ctx)
	defer store.Close()

	controller := orchestrator.New(store, timer, *cfg, logger.With("component", "orchestrator"))
	program := tea.NewProgram(vaultui.NewModel(controller, store.Events()), tea.WithAltScreen())
	tuiHandler.SetProgram(program)

	_, err = program.Run()
	return err
}

// loadConfig reads path if given, else the file named by the
// environment, else returns the defaults.
func loadConfig(path string) (*config.Config, error) {
	switch {
	case path != "":
		return config.LoadFile(path)
	case os.Getenv(config.EnvironmentVariable) != "":
		return config.Load()
	default:
		return config.Default(), nil
	}
}

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }
func (usageError) ExitCode() int   { return 2 }

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `pants: terminal client for a pants vault store.

Usage:
  pants [flags]

Keys:
  enter open  space expand  n new entry  N new vault  d delete
  / filter  t theme  q quit
  In an entry: ctrl+s show/hide  ctrl+y copy  ctrl+g generate  ctrl+t layout

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
