package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(Options{Lookup: env(nil)})
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "/admin", cfg.Server.BasePath)
	assert.Equal(t, 5*time.Second, cfg.Notifications.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Realtime.Interval)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shell.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  address: ":9000"
notifications:
  timeout: 3s
  capacity: -1
realtime:
  interval: 500ms
theme:
  dark_mode: true
logging:
  level: debug
`), 0o600))

	cfg, err := Load(Options{Path: path, Lookup: env(map[string]string{
		"DASHBOARD_ADDR":         ":9100",
		"DASHBOARD_DOWNLOAD_TTL": "1m",
		"DASHBOARD_LOG_JSON":     "true",
	})})
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Server.Address)
	assert.Equal(t, 3*time.Second, cfg.Notifications.Timeout)
	assert.Equal(t, -1, cfg.Notifications.Capacity)
	assert.Equal(t, 500*time.Millisecond, cfg.Realtime.Interval)
	assert.Equal(t, 5*time.Second, cfg.Realtime.DriftInterval)
	assert.Equal(t, time.Minute, cfg.Export.DownloadTTL)
	assert.True(t, cfg.Theme.DarkMode)
	assert.True(t, cfg.Logging.JSON)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DASHBOARD_EXPORT_DIR=/tmp/shell-exports\n"), 0o600))
	t.Setenv("DASHBOARD_EXPORT_DIR", "")
	os.Unsetenv("DASHBOARD_EXPORT_DIR")

	cfg, err := Load(Options{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/shell-exports", cfg.Export.Dir)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(Options{EnvFile: filepath.Join(t.TempDir(), "missing.env"), Lookup: env(nil)})
	require.NoError(t, err)
}

func TestLoadRejectsBadOverrides(t *testing.T) {
	_, err := Load(Options{Lookup: env(map[string]string{"DASHBOARD_REALTIME_INTERVAL": "soon"})})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DASHBOARD_REALTIME_INTERVAL")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Server.BasePath = "admin"
	cfg.Logging.Level = "verbose"
	cfg.Realtime.Interval = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Config.Server.BasePath failed startswith")
	assert.Contains(t, err.Error(), "Config.Logging.Level failed oneof")
	assert.Contains(t, err.Error(), "Config.Realtime.Interval failed gt")
}

func TestLoadMissingYAMLFails(t *testing.T) {
	_, err := Load(Options{Path: filepath.Join(t.TempDir(), "nope.yaml"), Lookup: env(nil)})
	require.Error(t, err)
}
