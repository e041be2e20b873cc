package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 200, cfg.Search.ExcerptWindow)
	assert.Equal(t, runtime.NumCPU(), cfg.Extract.Workers)
	assert.Equal(t, 30, cfg.Extract.FileTimeoutSec)
	assert.Equal(t, "info", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: ":9000"
search:
  excerpt_window: 400
logging:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, 400, cfg.Search.ExcerptWindow)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched sections still get defaults
	assert.Equal(t, 30, cfg.Extract.FileTimeoutSec)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("XEEDO_TEST_ADDR", ":7777")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: "${XEEDO_TEST_ADDR}"
extract:
  workers: ${XEEDO_TEST_WORKERS:-3}
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.HTTP.Addr)
	assert.Equal(t, 3, cfg.Extract.Workers, "missing variable falls back to the :- default")
}

func TestLoad_InvalidLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: verbose\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "logging.level")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate_ExcerptWindow(t *testing.T) {
	cfg := Default()
	cfg.Search.ExcerptWindow = 1
	assert.ErrorContains(t, cfg.Validate(), "excerpt_window")
}

func TestFileTimeout(t *testing.T) {
	cfg := Default()
	cfg.Extract.FileTimeoutSec = 5
	assert.Equal(t, "5s", cfg.FileTimeout().String())
}
