package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "data/orders.csv", cfg.Dataset.Path)
	assert.False(t, cfg.Dataset.DisableCache)
	assert.False(t, cfg.Security.RateLimit.Disabled)
	assert.Equal(t, float64(100), cfg.Security.RateLimit.RPS)
}

func TestLoadFrom_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
logging:
  level: debug
dataset:
  path: /srv/orders.xlsx
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	cfg, err := LoadFrom(file)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/srv/orders.xlsx", cfg.Dataset.Path)
	// Unset fields fall back to defaults
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server:\n  port: 9090\n"), 0o644))

	t.Setenv("SALESDASH_SERVER_PORT", "7070")
	t.Setenv("SALESDASH_DATASET_PATH", "env/orders.csv")

	cfg, err := LoadFrom(file)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "env/orders.csv", cfg.Dataset.Path)
}

func TestLoadFrom_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"invalid port", "server:\n  port: -1\n"},
		{"invalid log level", "logging:\n  level: verbose\n"},
		{"invalid log format", "logging:\n  format: xml\n"},
		{"invalid log output", "logging:\n  output: syslog\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(file, []byte(tt.yaml), 0o644))

			_, err := LoadFrom(file)
			assert.Error(t, err)
		})
	}
}

func TestAddr(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 8080
	assert.Equal(t, ":8080", cfg.Addr())
}
