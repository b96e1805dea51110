package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadFromFileLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carmesh.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
engine:
  step_timeout: 5s
model:
  provider: anthropic
storage:
  driver: sqlite
  path: /tmp/listings.db
`), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Engine.StepTimeout)
	assert.Equal(t, "anthropic", cfg.Model.Provider)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	// Untouched sections keep their defaults.
	assert.Equal(t, 3, cfg.Knowledge.TopK)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model.Provider = "petrol"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Storage.Driver = "sqlite"
	cfg.Storage.Path = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Model.Temperature = 1.5
	assert.Error(t, cfg.Validate())
}

func TestAPIKeyByProvider(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg := DefaultConfig()

	assert.Empty(t, cfg.APIKey()) // provider disabled
	cfg.Model.Provider = "openai"
	assert.Equal(t, "sk-test", cfg.APIKey())
}
