// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the Coldfire
// support client.
//
// Configuration is loaded from a single YAML file specified by:
//   - COLDFIRE_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. A missing file is an
// error; this keeps configuration deterministic and auditable. The
// client also runs without any config file at all when --server is
// given on the command line.
package config

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coldfire-project/coldfire/helpdesk"
)

// Config is the client configuration.
type Config struct {
	// Server locates the support API.
	Server ServerConfig `yaml:"server"`

	// HTTP tunes the underlying HTTP client.
	HTTP HTTPConfig `yaml:"http"`

	// Log configures diagnostic output.
	Log LogConfig `yaml:"log"`

	// UI holds presentation options.
	UI UIConfig `yaml:"ui"`
}

// UIConfig holds presentation options.
type UIConfig struct {
	// Bell rings the terminal bell when a message is sent or new
	// messages arrive. Default: true.
	Bell bool `yaml:"bell"`
}

// ServerConfig locates the support API. BaseURL derives the standard
// endpoint set; individual entries in Endpoints override single
// functions, for deployments that split the API across hosts.
type ServerConfig struct {
	// BaseURL is the root of the support API, e.g.
	// "https://support.coldfire.example".
	BaseURL string `yaml:"base_url"`

	// Endpoints overrides individual function URLs. Empty entries
	// fall back to the BaseURL derivation.
	Endpoints helpdesk.Endpoints `yaml:"endpoints"`
}

// HTTPConfig tunes the HTTP client shared by all API calls.
type HTTPConfig struct {
	// Timeout is the per-request timeout as a Go duration string.
	// Default: "15s".
	Timeout string `yaml:"timeout"`
}

// LogConfig configures diagnostic output.
type LogConfig struct {
	// Level is the minimum slog level: debug, info, warn, error.
	// Default: warn (the TUI surfaces warnings in its status bar).
	Level string `yaml:"level"`

	// File is an optional path receiving full JSON logs. The TUI
	// owns the terminal, so file output is the only way to get a
	// complete trace.
	File string `yaml:"file"`
}

// Default returns the built-in defaults applied before the config
// file is merged on top.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout: "15s",
		},
		Log: LogConfig{
			Level: "warn",
		},
		UI: UIConfig{
			Bell: true,
		},
	}
}

// Load loads configuration from the COLDFIRE_CONFIG environment
// variable. Fails when the variable is unset; callers that accept a
// --config flag should use LoadFile directly.
func Load() (*Config, error) {
	path := os.Getenv("COLDFIRE_CONFIG")
	if path == "" {
		return nil, fmt.Errorf("COLDFIRE_CONFIG environment variable not set; " +
			"set it to the path of your coldfire.yaml, or use --config")
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, merged over
// the defaults. Environment variables do not override file values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.BaseURL == "" && !c.Server.Endpoints.Complete() {
		return fmt.Errorf("server.base_url is required unless every server.endpoints entry is set")
	}
	if c.HTTP.Timeout != "" {
		if _, err := time.ParseDuration(c.HTTP.Timeout); err != nil {
			return fmt.Errorf("http.timeout: %w", err)
		}
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// HTTPTimeout returns the parsed request timeout. Unset or invalid
// values (validate rejects the latter at load time) fall back to the
// default.
func (c *Config) HTTPTimeout() time.Duration {
	if c.HTTP.Timeout == "" {
		return 15 * time.Second
	}
	timeout, err := time.ParseDuration(c.HTTP.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return timeout
}

// HTTPClient returns an http.Client with the configured request
// timeout applied.
func (c *Config) HTTPClient() *http.Client {
	return &http.Client{Timeout: c.HTTPTimeout()}
}

// SlogLevel maps the configured level name onto a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Endpoints resolves the effective endpoint set: the BaseURL
// derivation with any per-function overrides applied on top.
func (c *Config) Endpoints() (helpdesk.Endpoints, error) {
	endpoints := c.Server.Endpoints
	if c.Server.BaseURL != "" {
		derived := helpdesk.EndpointsFromBase(c.Server.BaseURL)
		if endpoints.Auth == "" {
			endpoints.Auth = derived.Auth
		}
		if endpoints.Captcha == "" {
			endpoints.Captcha = derived.Captcha
		}
		if endpoints.Tickets == "" {
			endpoints.Tickets = derived.Tickets
		}
		if endpoints.Messages == "" {
			endpoints.Messages = derived.Messages
		}
		if endpoints.Stats == "" {
			endpoints.Stats = derived.Stats
		}
	}
	if err := endpoints.Validate(); err != nil {
		return helpdesk.Endpoints{}, err
	}
	return endpoints, nil
}
