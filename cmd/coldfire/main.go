// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

// coldfire is the terminal client for the Coldfire Project support
// chat. Regular users open tickets and talk to moderators; moderators
// see every ticket, flag messages, and review their statistics.
//
// The server location comes from --server, from a YAML config file
// (--config or the COLDFIRE_CONFIG environment variable), or both —
// the flag wins. With --username the password is prompted on the
// terminal and login happens before the TUI starts; otherwise the
// client opens on the sign-in form.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/coldfire-project/coldfire/helpdesk"
	"github.com/coldfire-project/coldfire/lib/chatui"
	"github.com/coldfire-project/coldfire/lib/config"
	"github.com/coldfire-project/coldfire/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var serverFlag string
	var configFlag string
	var usernameFlag string
	var logOutput string

	flagSet := pflag.NewFlagSet("coldfire", pflag.ContinueOnError)
	flagSet.StringVar(&serverFlag, "server", "", "base URL of the support API (overrides config)")
	flagSet.StringVar(&configFlag, "config", "", "path to coldfire.yaml (default: $COLDFIRE_CONFIG)")
	flagSet.StringVar(&usernameFlag, "username", "", "sign in as this user before starting (password is prompted)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (in addition to TUI display)")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing to match other Coldfire
	// binaries.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("coldfire")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	cfg, err := loadConfig(configFlag, serverFlag)
	if err != nil {
		return err
	}

	endpoints, err := cfg.Endpoints()
	if err != nil {
		return err
	}

	if logOutput == "" {
		logOutput = cfg.Log.File
	}

	// Background logging routes into the TUI status bar. stderr would
	// corrupt the alt-screen display, so a JSON file is the only full
	// trace while the program runs.
	statusHandler := chatui.NewStatusBarHandler(cfg.SlogLevel())
	logger := slog.New(statusHandler)
	if logOutput != "" {
		fileHandler, closeFile, fileErr := openFileLogHandler(logOutput)
		if fileErr != nil {
			return fmt.Errorf("cannot open log file %s: %w", logOutput, fileErr)
		}
		defer closeFile()
		logger = slog.New(fanoutHandler{statusHandler, fileHandler})
	}

	client, err := helpdesk.NewClient(helpdesk.ClientConfig{
		Endpoints:  endpoints,
		HTTPClient: cfg.HTTPClient(),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var model chatui.Model
	if usernameFlag != "" {
		session, loginErr := promptLogin(ctx, client, usernameFlag)
		if loginErr != nil {
			return loginErr
		}
		model = chatui.NewAuthenticatedModel(ctx, client, session)
	} else {
		model = chatui.NewModel(ctx, client)
	}
	model.Bell = cfg.UI.Bell

	program := tea.NewProgram(model, tea.WithAltScreen())
	statusHandler.SetProgram(program)

	_, err = program.Run()
	return err
}

// loadConfig resolves the effective configuration: the file named by
// --config, else COLDFIRE_CONFIG if set, else built-in defaults. A
// --server flag overrides the file's base URL either way.
func loadConfig(configFlag, serverFlag string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case configFlag != "":
		cfg, err = config.LoadFile(configFlag)
	case os.Getenv("COLDFIRE_CONFIG") != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, err
	}

	if serverFlag != "" {
		cfg.Server.BaseURL = serverFlag
	}
	if cfg.Server.BaseURL == "" && !cfg.Server.Endpoints.Complete() {
		return nil, fmt.Errorf("no server configured: pass --server, or point --config / COLDFIRE_CONFIG at a coldfire.yaml")
	}
	return cfg, nil
}

// promptLogin reads the password from the terminal without echo and
// signs in before the TUI starts.
func promptLogin(ctx context.Context, client *helpdesk.Client, username string) (*helpdesk.Session, error) {
	fmt.Fprintf(os.Stderr, "password for %s: ", username)
	passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	session, err := client.Login(ctx, username, strings.TrimSpace(string(passwordBytes)))
	if err != nil {
		return nil, err
	}
	return session, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Coldfire support terminal — ticket chat for the metro.

Connects to the Coldfire support API. Users see their own tickets and
chat with moderators; moderator accounts additionally see all tickets,
flag messages (f), and open the statistics panel (s).

Usage:
  coldfire [flags]

Examples:
  # Connect to a server directly
  coldfire --server https://support.coldfire.example

  # Use a config file
  coldfire --config ~/.config/coldfire/coldfire.yaml

  # Skip the sign-in form
  coldfire --server http://127.0.0.1:8787 --username artyom_spartan

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// openFileLogHandler creates a slog.JSONHandler writing to the given
// path. The file is created or truncated.
func openFileLogHandler(path string) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return handler, func() { file.Close() }, nil
}

// fanoutHandler is a slog.Handler that sends each record to multiple
// underlying handlers. A record is enabled if any sub-handler is
// enabled for that level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
