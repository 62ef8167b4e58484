// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// mapping server and the client. It is populated by merging values from
// environment variables, command-line flags, an optional JSON file and the
// built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds settings used by both binaries: identity, the shared
	// server password, the jar and the admin token parameters.
	App App `envPrefix:"APP_"`

	// Storage holds the mappings database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the TCP and admin HTTP listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds settings of the client's admin status adapter.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background worker settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration of the persistence backend.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// App holds settings shared by server and client.
type App struct {
	// Username is the name the client logs in with.
	// Env: APP_USERNAME
	Username string `env:"USERNAME"`

	// Password is the server password. The server verifies logins against
	// it; the client sends it. Empty means no password.
	// Env: APP_PASSWORD
	Password string `env:"PASSWORD"`

	// JarPath points to the obfuscated jar. Both sides hash it and a login
	// with a different checksum is refused.
	// Env: APP_JAR_PATH
	JarPath string `env:"JAR_PATH"`

	// TokenSignKey signs and verifies admin API tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of admin tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is how long an admin token stays valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is reported by GET /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// LogFile is where the client writes its log, since stdout belongs to
	// the terminal UI.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Server holds the listener settings of the mapping server.
type Server struct {
	// Address is the TCP address of the mapping protocol, in "host:port"
	// format. The server listens on it and the client dials it.
	// Env: SERVER_ADDRESS
	Address string `env:"ADDRESS"`

	// HTTPAddress is where the admin HTTP API listens. Empty disables it.
	// Env: SERVER_HTTP_ADDRESS
	HTTPAddress string `env:"HTTP_ADDRESS"`

	// RequestTimeout bounds a single admin API request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxRejectedEdits is how many edits in a row a client may have
	// rejected before it is kicked.
	// Env: SERVER_MAX_REJECTED_EDITS
	MaxRejectedEdits int `env:"MAX_REJECTED_EDITS"`

	// OutboundQueueSize is the number of packets buffered per connection.
	// A client whose queue is full is kicked.
	// Env: SERVER_OUTBOUND_QUEUE_SIZE
	OutboundQueueSize int `env:"OUTBOUND_QUEUE_SIZE"`
}

// DB holds connection settings for the mappings database.
type DB struct {
	// DSN selects the backend: postgres:// and postgresql:// URLs open
	// PostgreSQL, anything else is a SQLite path or file: URI.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds settings of the client's outbound HTTP adapter.
type Adapter struct {
	// StatusURL is the base URL of the server's admin HTTP API.
	// Env: ADAPTER_STATUS_URL
	StatusURL string `env:"STATUS_URL"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// AutosaveInterval is the period of the autosave worker.
	// Env: WORKERS_AUTOSAVE_INTERVAL
	AutosaveInterval time.Duration `env:"AUTOSAVE_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (the first
// source that sets a field wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
