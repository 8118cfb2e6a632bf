// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// Defaults applied to fields left empty by every configuration source.
const (
	DefaultHTTPAddress      = "localhost:8080"
	DefaultDataDir          = "user_data"
	DefaultTokenIssuer      = "go-note-keeper"
	DefaultTokenDuration    = 7 * 24 * time.Hour
	DefaultRequestTimeout   = 30 * time.Second
	DefaultMaxUploadSize    = 50 * 1024 * 1024
	DefaultAdminLogin       = "admin"
	DefaultTmpSweepInterval = 10 * time.Minute
	DefaultTmpMaxAge        = time.Hour
	DefaultAuthRateLimit    = 20
	DefaultAuthRateBurst    = 5
)

// StructuredConfig is the top-level configuration container for the
// go-note-keeper application. It is populated by merging values from
// environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: token parameters, the admin
	// account and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the location of the flat-file data root.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address, timeout and upload settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the settings used by the command-line client to reach
	// the server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// AdminLogin is the username of the administrator account.
	// Env: APP_ADMIN_LOGIN
	AdminLogin string `env:"ADMIN_LOGIN"`

	// AdminPassword is the password the administrator account is
	// (re)provisioned with at startup. When empty, the admin account is
	// not bootstrapped.
	// Env: APP_ADMIN_PASSWORD
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// LogLevel is the minimal zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is the semantic version string of the running application.
	// Exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	// Files holds the file-system storage settings.
	Files Files `envPrefix:"FILES_"`
}

// Files holds file-system settings for user registry, notes and attachments.
type Files struct {
	// DataDir is the root directory holding users.json and one
	// sub-directory per user.
	// Env: STORAGE_FILES_DATA_DIR
	DataDir string `env:"DATA_DIR"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxUploadSize caps the size in bytes of a single multipart request.
	// Env: SERVER_MAX_UPLOAD_SIZE
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE"`

	// AuthRateLimit is how many register/login attempts one client address
	// may make per minute. A negative value disables the limit.
	// Env: SERVER_AUTH_RATE_LIMIT
	AuthRateLimit int `env:"AUTH_RATE_LIMIT"`

	// AuthRateBurst is how many attempts may be made back to back.
	// Env: SERVER_AUTH_RATE_BURST
	AuthRateBurst int `env:"AUTH_RATE_BURST"`
}

// Adapter holds the client-side view of the server endpoint.
type Adapter struct {
	// HTTPAddress is the base URL of the server (e.g. "http://localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the timeout applied to every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Login and Password are the credentials the client signs in with.
	// Env: ADAPTER_LOGIN, ADAPTER_PASSWORD
	Login    string `env:"LOGIN"`
	Password string `env:"PASSWORD"`

	// LogFile is where the client writes its logs; empty discards them.
	// Env: ADAPTER_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// TmpSweepInterval is how often stale temporary files are swept.
	// Env: WORKERS_TMP_SWEEP_INTERVAL
	TmpSweepInterval time.Duration `env:"TMP_SWEEP_INTERVAL"`

	// TmpMaxAge is the age after which a temporary file is considered
	// abandoned.
	// Env: WORKERS_TMP_MAX_AGE
	TmpMaxAge time.Duration `env:"TMP_MAX_AGE"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order
// (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}

// applyDefaults fills every zero-valued field that has a sensible default.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.MaxUploadSize == 0 {
		cfg.Server.MaxUploadSize = DefaultMaxUploadSize
	}
	if cfg.Server.AuthRateLimit == 0 {
		cfg.Server.AuthRateLimit = DefaultAuthRateLimit
	}
	if cfg.Server.AuthRateBurst == 0 {
		cfg.Server.AuthRateBurst = DefaultAuthRateBurst
	}
	if cfg.Storage.Files.DataDir == "" {
		cfg.Storage.Files.DataDir = DefaultDataDir
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.AdminLogin == "" {
		cfg.App.AdminLogin = DefaultAdminLogin
	}
	if cfg.Workers.TmpSweepInterval == 0 {
		cfg.Workers.TmpSweepInterval = DefaultTmpSweepInterval
	}
	if cfg.Workers.TmpMaxAge == 0 {
		cfg.Workers.TmpMaxAge = DefaultTmpMaxAge
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
}
