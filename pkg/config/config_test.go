package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
app:
  name: tradetrack
  env: test

data_sources:
  alphavantage:
    api_key: "file-key"
    timeout: 5s

database:
  postgres:
    host: dbhost
    port: 5432
    user: app
    password: secret
    dbname: tradetrack
    sslmode: disable

auth:
  jwt_secret: "file-secret"

monitor:
  poll_interval: 30s
  quote_timeout: 3s
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "tradetrack", cfg.App.Name)
	assert.Equal(t, "file-key", cfg.DataSources.AlphaVantage.APIKey)
	assert.Equal(t, 5*time.Second, cfg.DataSources.AlphaVantage.Timeout.Std())
	assert.Equal(t, "dbhost", cfg.Database.Postgres.Host)
	assert.Equal(t, 30*time.Second, cfg.Monitor.PollInterval.Std())
	assert.Equal(t, 3*time.Second, cfg.Monitor.QuoteTimeout.Std())
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "app:\n  name: x\n"))
	require.NoError(t, err)

	assert.Equal(t, "https://www.alphavantage.co/query", cfg.DataSources.AlphaVantage.BaseURL)
	assert.Equal(t, "8080", cfg.API.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL.Std())
	assert.Equal(t, time.Minute, cfg.Monitor.PollInterval.Std())
	assert.Equal(t, 10*time.Second, cfg.Monitor.QuoteTimeout.Std())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ALPHAVANTAGE_API_KEY", "env-key")
	t.Setenv("DB_HOST", "envhost")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("MONITOR_POLL_INTERVAL", "2m")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.DataSources.AlphaVantage.APIKey)
	assert.Equal(t, "envhost", cfg.Database.Postgres.Host)
	assert.Equal(t, 6543, cfg.Database.Postgres.Port)
	assert.Equal(t, 2*time.Minute, cfg.Monitor.PollInterval.Std())
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
}

func TestValidate(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, testYAML))
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())

	cfg.DataSources.AlphaVantage.APIKey = ""
	assert.Error(t, cfg.Validate())

	cfg.DataSources.AlphaVantage.APIKey = "k"
	cfg.Auth.JWTSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
