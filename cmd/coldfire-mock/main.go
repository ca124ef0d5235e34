// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

// coldfire-mock serves an in-memory implementation of the Coldfire
// support API for local development. It speaks the production wire
// format on the same five endpoints (auth, captcha, tickets, messages,
// moderator stats) and starts with seeded demo accounts:
//
//	newbie_stalker / metro2033  (user)
//	artyom_spartan / metro2033  (moderator)
//
// Point the client at it with:
//
//	coldfire --server http://127.0.0.1:8787
//
// Captcha answers are logged at debug level so registration can be
// completed without squinting at ASCII art.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coldfire-project/coldfire/lib/mockapi"
	"github.com/coldfire-project/coldfire/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var listenAddress string
	var verbose bool
	var showVersion bool
	flag.StringVar(&listenAddress, "listen", "127.0.0.1:8787", "address to serve the API on")
	flag.BoolVar(&verbose, "verbose", false, "log every request at debug level")
	flag.BoolVar(&showVersion, "version", false, "print version information and exit")
	flag.Parse()

	if showVersion {
		version.Print("coldfire-mock")
		return nil
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mock := mockapi.New(logger)
	server := &http.Server{
		Addr:    listenAddress,
		Handler: mock.Handler(),
	}

	serveDone := make(chan error, 1)
	go func() {
		serveDone <- server.ListenAndServe()
	}()

	logger.Info("mock support API running",
		"listen", listenAddress,
		"accounts", "newbie_stalker, artyom_spartan (password metro2033)",
	)

	select {
	case err := <-serveDone:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serveDone; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
