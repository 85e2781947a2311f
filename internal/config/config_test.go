package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[backend]
url = "https://api.example.com/v1"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, DraftStoreRedis, cfg.DraftStore.Driver)
	assert.Equal(t, "booking-draft", cfg.DraftStore.KeyPrefix)
	assert.Equal(t, 4096, cfg.DraftStore.QueueSize)
	assert.Equal(t, 10, cfg.Backend.Timeout)
	assert.Equal(t, 1800, cfg.Sessions.IdleTimeout)
	assert.Equal(t, 60, cfg.Sessions.SweepInterval)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[logs]
level = "debug"
file = "/tmp/booking-flow.log"

[database]
host = "db"
port = 5433
user = "flow"
password = "secret"
dbname = "booking"

[draft_store]
driver = "postgres"
key_prefix = "draft"

[backend]
url = "https://api.example.com"
api_key = "anon"
timeout = 5

[metrics]
enabled = true
path = "/internal/metrics"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, DraftStorePostgres, cfg.DraftStore.Driver)
	assert.Equal(t, "draft", cfg.DraftStore.KeyPrefix)
	assert.Equal(t, "anon", cfg.Backend.APIKey)
	assert.Equal(t, "postgres://flow:secret@db:5433/booking?sslmode=disable", cfg.Database.DSN())
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("BACKEND_API_KEY", "from-env")
	t.Setenv("REDIS_PASSWORD", "redis-pass")
	path := writeConfig(t, `
[backend]
url = "https://api.example.com"
api_key = "from-file"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Backend.APIKey)
	assert.Equal(t, "redis-pass", cfg.Redis.Password)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing backend url", content: `[server]
http_port = 8080`},
		{name: "relative backend url", content: `[backend]
url = "api.example.com"`},
		{name: "unknown driver", content: `[backend]
url = "https://api.example.com"
[draft_store]
driver = "memcached"`},
		{name: "postgres without database", content: `[backend]
url = "https://api.example.com"
[draft_store]
driver = "postgres"`},
		{name: "negative session idle timeout", content: `[backend]
url = "https://api.example.com"
[sessions]
idle_timeout = -1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}
