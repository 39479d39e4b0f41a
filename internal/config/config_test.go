package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https", cfg.API.Protocol)
	assert.Equal(t, "preseries.io", cfg.API.Host)
	assert.Equal(t, "zion", cfg.API.Version)
	assert.Equal(t, 180, cfg.API.TimeoutSecs)
	assert.Equal(t, 5, cfg.API.MaxRetries)
	assert.Empty(t, cfg.API.Username)
	assert.Equal(t, 10, cfg.Enrich.BatchSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
api:
  host: sandbox.preseries.io
  port: 8443
  username: alice
  api_key: secret
enrich:
  batch_size: 25
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sandbox.preseries.io", cfg.API.Host)
	assert.Equal(t, 8443, cfg.API.Port)
	assert.Equal(t, "alice", cfg.API.Username)
	assert.Equal(t, "secret", cfg.API.APIKey)
	assert.Equal(t, 25, cfg.Enrich.BatchSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults still apply to untouched keys.
	assert.Equal(t, "zion", cfg.API.Version)
}

func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)

	t.Setenv("PRESERIES_API_USERNAME", "bob")
	t.Setenv("PRESERIES_API_API_KEY", "hunter2")
	t.Setenv("PRESERIES_API_HOST", "api.example.net")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "bob", cfg.API.Username)
	assert.Equal(t, "hunter2", cfg.API.APIKey)
	assert.Equal(t, "api.example.net", cfg.API.Host)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "json"}))

	err := InitLogger(LogConfig{Level: "shouting", Format: "json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log level")
}
