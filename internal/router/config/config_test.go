package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	t.Setenv("DM_ENVIRONMENT", "test")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":5003", cfg.ServerAddress)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "dm_session", cfg.SessionCookie)
	assert.Equal(t, "/user/login", cfg.LoginURL)
	assert.Equal(t, developmentSessionSecret, cfg.SessionSecret)
}

func TestLoadConfigReadsFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	file := "DM_ENVIRONMENT=test\nDM_BASE_URL=https://www.example.gov.uk/\nDM_REQUEST_TIMEOUT=2s\nDM_DATA_API_URL=http://api.local\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(file), 0o600))
	t.Setenv("DM_DATA_API_URL", "http://override.local")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://www.example.gov.uk", cfg.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, "http://override.local", cfg.DataAPIURL)
}

func TestValidateRequiresSecretsOutsideDevelopment(t *testing.T) {
	cfg := Config{Environment: "production", Timeout: time.Second, DataAPIURL: "http://api.local"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DM_DATA_API_AUTH_TOKEN")
	assert.Contains(t, err.Error(), "DM_SESSION_SECRET")
	assert.NotContains(t, err.Error(), "DM_DATA_API_URL")

	cfg.DataAPIAuthToken = "token"
	cfg.NotifyAPIKey = "key"
	cfg.SessionSecret = "secret"
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsUnknownEnvironment(t *testing.T) {
	cfg := Config{Environment: "moon", Timeout: time.Second}
	assert.Error(t, cfg.Validate())
}
