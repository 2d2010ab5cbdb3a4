package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mdouchement/lostfound/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost:5000", cfg.Address)
	assert.Equal(t, "storm", cfg.Database.Driver)
	assert.Equal(t, "lostItems", cfg.StorageKey)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.EqualValues(t, 5<<20, cfg.Upload.MaxSize)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_File(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lostfound.yml")
	err := os.WriteFile(filename, []byte(`
address: 0.0.0.0:8080
database:
  driver: sqlite
  path: /var/lib/lostfound
cors_origins:
  - http://localhost:3000
upload:
  max_size: 1024
log:
  level: debug
`), 0o644)
	require.NoError(t, err)

	cfg, err := config.Load(filename)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Address)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/var/lib/lostfound", cfg.Database.Path)
	assert.Equal(t, "lostItems", cfg.StorageKey)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.EqualValues(t, 1024, cfg.Upload.MaxSize)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("LOSTFOUND_STORAGE_KEY", "reception")
	t.Setenv("LOSTFOUND_DATABASE__DRIVER", "file")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "reception", cfg.StorageKey)
	assert.Equal(t, "file", cfg.Database.Driver)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	t.Setenv("LOSTFOUND_STORAGE_KEY", "")
	_, err = config.Load("")
	assert.EqualError(t, err, "storage_key not found")
}
