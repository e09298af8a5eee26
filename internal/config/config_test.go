package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := writeConfig(t, `
server:
  address: ":9090"
database:
  driver: memory
jwt:
  secret: test-secret
  expiration: 30m
tracker:
  timezone: Europe/Berlin
  history_default_limit: 10
  history_max_limit: 20
cors:
  allowed_origins:
    - https://app.example.com
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, 10, cfg.Tracker.HistoryDefaultLimit)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORS.AllowedOrigins)

	loc, err := cfg.Tracker.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())

	// untouched keys keep their defaults
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.S3.Enabled())
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := writeConfig(t, `
database:
  driver: memory
jwt:
  secret: from-file
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SERVER_ADDRESS", ":7070")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, ":7070", cfg.Server.Address)
}

func TestLoadConfigWithoutFileUsesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "UTC", cfg.Tracker.Timezone)
	assert.Equal(t, 50, cfg.Tracker.HistoryDefaultLimit)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing secret", "database:\n  driver: memory\n"},
		{"unknown driver", "database:\n  driver: sqlite\njwt:\n  secret: s\n"},
		{"bad timezone", "jwt:\n  secret: s\ntracker:\n  timezone: Mars/Olympus\n"},
		{"limits inverted", "jwt:\n  secret: s\ntracker:\n  history_default_limit: 100\n  history_max_limit: 10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
