package commons

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_EnvOnly(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadConfig_YAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9000
database:
  host: db.example.com
  connMaxLifetime: 2m
order:
  maxRetryAttempts: 5
  legacyIdFormat: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Equal(t, 2*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 5, cfg.Order.MaxRetryAttempts)
	assert.False(t, cfg.Order.LegacyIDFormat)
	// untouched keys keep env defaults
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
