package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "http://localhost:5001", cfg.ServerBaseURL)
	assert.Equal(t, "billing.db", cfg.DatabasePath)
	assert.Equal(t, 10*time.Second, cfg.NetworkTimeout)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}

func TestLoad_NoJsonFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "billing.db", cfg.DatabasePath)
}

func TestLoad_JsonOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
  "server_base_url": "https://billing.example.com",
  "database_path": "/var/lib/billing/queue.db",
  "network_timeout": "5s",
  "online_check_interval": 1000000000
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://billing.example.com", cfg.ServerBaseURL)
	assert.Equal(t, "/var/lib/billing/queue.db", cfg.DatabasePath)
	assert.Equal(t, 5*time.Second, cfg.NetworkTimeout)
	assert.Equal(t, time.Second, cfg.OnlineCheckInterval)
}

func TestLoad_PartialJsonKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_base_url": "http://10.0.0.5:5001"}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:5001", cfg.ServerBaseURL)
	assert.Equal(t, "billing.db", cfg.DatabasePath, "fields absent from JSON keep their defaults")
	assert.Equal(t, 10*time.Second, cfg.NetworkTimeout)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}
