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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
http:
  port: "9000"
  request_timeout: 5s
storage:
  driver: memory
log:
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 20.0, cfg.HTTP.RateLimit, "unset keys keep defaults")
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "storage:\n  driver: memory\n")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DB_DSN", "postgres://u:p@db:5432/gsr")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_BURST", "7")
	t.Setenv("DB_MAX_CONNS", "12")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://u:p@db:5432/gsr", cfg.Storage.PostgresDSN)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 7, cfg.HTTP.RateBurst)
	assert.Equal(t, int32(12), cfg.Storage.PostgresMaxConns)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "bad yaml", body: "http: [\n"},
		{name: "unknown driver", body: "storage:\n  driver: mongo\n"},
		{name: "unknown log format", body: "log:\n  format: xml\n"},
		{name: "bad timeout env", env: map[string]string{"REQUEST_TIMEOUT": "soon"}},
		{name: "bad rate env", env: map[string]string{"RATE_LIMIT": "fast"}},
		{name: "zero burst", body: "http:\n  rate_burst: 0\n"},
		{name: "bad max conns env", env: map[string]string{"DB_MAX_CONNS": "many"}},
		{name: "zero postgres conns", body: "storage:\n  driver: postgres\n  postgres_max_conns: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.body != "" {
				path = writeConfig(t, tt.body)
			}
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
