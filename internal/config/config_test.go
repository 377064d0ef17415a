package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kv.dev/portfolio/internal/services"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_ADDR", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "data/portfolio.db", cfg.Storage.Path)
	assert.False(t, cfg.Storage.SkipSeed)
	assert.Equal(t, services.DefaultRemoteURL, cfg.Remote.URL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_LegacyServerAddr(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9999")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	content := `server:
  addr: 127.0.0.1:7000
  shutdown_timeout: 3s
storage:
  driver: file
  skip_seed: true
remote:
  url: http://localhost:1234/bin
  min_interval: 1m
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "data/slots.json", cfg.Storage.Path)
	assert.True(t, cfg.Storage.SkipSeed)
	assert.Equal(t, "http://localhost:1234/bin", cfg.Remote.URL)
	assert.Equal(t, time.Minute, cfg.Remote.MinInterval)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: :7000\n"), 0600))

	t.Setenv("PORTFOLIO_SERVER_ADDR", ":7001")
	t.Setenv("PORTFOLIO_STORAGE_DRIVER", "memory")
	t.Setenv("PORTFOLIO_SESSION_SIGNING_KEY", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7001", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "secret", cfg.Session.SigningKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"PORTFOLIO_STORAGE_DRIVER": "redis"}},
		{"unknown level", map[string]string{"PORTFOLIO_LOG_LEVEL": "loud"}},
		{"unknown format", map[string]string{"PORTFOLIO_LOG_FORMAT": "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.addr", envKey("PORTFOLIO_SERVER_ADDR"))
	assert.Equal(t, "remote.min_interval", envKey("PORTFOLIO_REMOTE_MIN_INTERVAL"))
	assert.Equal(t, "session.signing_key", envKey("PORTFOLIO_SESSION_SIGNING_KEY"))
}
