package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8085, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 100, cfg.Pipeline.PlanCacheSize)
	assert.Equal(t, 3, cfg.Pipeline.MaxRetries)
	assert.Equal(t, LLMProviderGemini, cfg.LLM.DefaultProvider)
	assert.True(t, cfg.Scheduler.Enabled)
}

func TestLoadFromFile_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, "designer.toml", `
environment = "production"

[server]
port = 9090

[pipeline]
max_retries = 5
image_timeout = "90s"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host, "unset keys keep their defaults")
	assert.Equal(t, 5, cfg.Pipeline.MaxRetries)
	assert.Equal(t, "90s", cfg.Pipeline.ImageTimeout)
	assert.Equal(t, 100, cfg.Pipeline.PlanCacheSize)
}

func TestLoadFromFiles_LaterFilesWin(t *testing.T) {
	base := writeConfig(t, "base.toml", "[server]\nport = 9000\nhost = \"0.0.0.0\"\n")
	local := writeConfig(t, "local.toml", "[server]\nport = 9001\n")

	cfg, err := LoadFromFiles(base, local)
	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadFromFile_MalformedTOML(t *testing.T) {
	path := writeConfig(t, "bad.toml", "[server\nport = what")
	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestEnvOverridesBeatFiles(t *testing.T) {
	path := writeConfig(t, "designer.toml", "[server]\nport = 9000\n")

	t.Setenv("DESIGNER_SERVER_PORT", "7070")
	t.Setenv("DESIGNER_LOG_LEVEL", "debug")
	t.Setenv("DESIGNER_LLM_PROVIDER", "claude")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, LLMProviderClaude, cfg.LLM.DefaultProvider)
}

func TestEnvOverrides_IgnoresBadPort(t *testing.T) {
	t.Setenv("DESIGNER_SERVER_PORT", "not-a-port")

	cfg, err := LoadFromFiles()
	require.NoError(t, err)
	assert.Equal(t, 8085, cfg.Server.Port)
}

func TestParseDurationOr(t *testing.T) {
	assert.Equal(t, 5*time.Second, ParseDurationOr("5s", time.Minute))
	assert.Equal(t, time.Minute, ParseDurationOr("", time.Minute))
	assert.Equal(t, time.Minute, ParseDurationOr("bogus", time.Minute))
}
