package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
provider:
  name: anthropic
  model: claude-sonnet-4-20250514
  api_key: test-key
orchestrator:
  complexity_cutoff: 0.7
react:
  max_iterations: 8
dialogue:
  session_ttl: 1h
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.Provider.Name)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Provider.Model)
	assert.InDelta(t, 0.7, cfg.Orchestrator.ComplexityCutoff, 1e-9)
	assert.Equal(t, 8, cfg.React.MaxIterations)
	assert.Equal(t, time.Hour, cfg.SessionTTL())
	assert.Equal(t, "debug", cfg.Logging.Level)

	// unspecified fields are defaulted
	assert.Equal(t, 20, cfg.Dialogue.HistoryWindow)
	assert.Equal(t, 50, cfg.Orchestrator.HistoryLimit)
	assert.InDelta(t, 0.7, cfg.Provider.Temperature, 1e-9)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	for name, content := range map[string]string{
		"unknown provider": "provider:\n  name: carrier-pigeon\n",
		"cutoff too large": "orchestrator:\n  complexity_cutoff: 1.5\n",
		"bad ttl":          "dialogue:\n  session_ttl: soon\n",
		"bad level":        "logging:\n  level: chatty\n",
	} {
		_, err := Load(writeConfig(t, content))
		assert.Error(t, err, name)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NotNil(t, cfg)
	assert.Equal(t, "mock", cfg.Provider.Name)
	assert.Equal(t, 5, cfg.React.MaxIterations)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MENTORMESH_MODEL", "gpt-4o-mini")
	t.Setenv("MENTORMESH_LOG_LEVEL", "warn")
	t.Setenv("MENTORMESH_MAX_ITERATIONS", "7")

	cfg, err := Load(writeConfig(t, "provider:\n  name: openai\n"))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", cfg.Provider.Model)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 7, cfg.React.MaxIterations)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Provider.Name = "openai"
	cfg.React.MaxIterations = 9

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", loaded.Provider.Name)
	assert.Equal(t, 9, loaded.React.MaxIterations)
}
