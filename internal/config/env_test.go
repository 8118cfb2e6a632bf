// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_TOKEN_SIGN_KEY": "jwt_secret",
		"APP_TOKEN_ISSUER":   "test_issuer",
		"APP_TOKEN_DURATION": "1h",
		"APP_ADMIN_LOGIN":    "root",
		"APP_ADMIN_PASSWORD": "888888",
		"APP_LOG_LEVEL":      "info",
		"APP_VERSION":        "1.2.3",

		"SERVER_ADDRESS":         "localhost:8080",
		"SERVER_REQUEST_TIMEOUT": "30s",
		"SERVER_MAX_UPLOAD_SIZE": "1024",

		"STORAGE_FILES_DATA_DIR": "/var/notes",

		"WORKERS_TMP_SWEEP_INTERVAL": "5m",
		"WORKERS_TMP_MAX_AGE":        "2h",

		"ADAPTER_ADDRESS":  "http://localhost:8080",
		"ADAPTER_LOGIN":    "alice",
		"ADAPTER_PASSWORD": "pw",
	})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "test_issuer", cfg.App.TokenIssuer)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "root", cfg.App.AdminLogin)
	assert.Equal(t, "888888", cfg.App.AdminPassword)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "1.2.3", cfg.App.Version)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, int64(1024), cfg.Server.MaxUploadSize)

	assert.Equal(t, "/var/notes", cfg.Storage.Files.DataDir)

	assert.Equal(t, 5*time.Minute, cfg.Workers.TmpSweepInterval)
	assert.Equal(t, 2*time.Hour, cfg.Workers.TmpMaxAge)

	assert.Equal(t, "http://localhost:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "alice", cfg.Adapter.Login)
	assert.Equal(t, "pw", cfg.Adapter.Password)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("APP_TOKEN_DURATION", "not-a-duration")

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func TestParseEnv_NoVariables(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Empty(t, cfg.Storage.Files.DataDir)
}
