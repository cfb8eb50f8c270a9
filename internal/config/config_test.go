package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"DECKCRITIC_MODEL", "DECKCRITIC_TIMEOUT_SECONDS", "DECKCRITIC_PROFILES_DIR",
	"DECKCRITIC_LOG_LEVEL", "DECKCRITIC_THRESHOLD", "DECKCRITIC_CONCURRENCY",
	"DECKCRITIC_REDACT", "ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeEnv(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Model)
	assert.Equal(t, 180*time.Second, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 60, cfg.Threshold)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.True(t, cfg.Redact)
	assert.False(t, cfg.Keys.Any())
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	path := writeEnv(t, `
DECKCRITIC_MODEL=gpt-4.1
DECKCRITIC_TIMEOUT_SECONDS=30
DECKCRITIC_THRESHOLD=70
DECKCRITIC_CONCURRENCY=8
DECKCRITIC_REDACT=false
DECKCRITIC_LOG_LEVEL=debug
OPENAI_API_KEY=sk-test
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4.1", cfg.Model)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 70, cfg.Threshold)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.False(t, cfg.Redact)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "sk-test", cfg.Keys.OpenAI)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DECKCRITIC_THRESHOLD", "85")
	cfg, err := Load(writeEnv(t, "DECKCRITIC_THRESHOLD=40\n"))
	require.NoError(t, err)
	assert.Equal(t, 85, cfg.Threshold)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{Timeout: time.Second, LogLevel: "info", Threshold: 60, Concurrency: 1}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"threshold below range", func(c *Config) { c.Threshold = -1 }},
		{"threshold above range", func(c *Config) { c.Threshold = 101 }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "chatty" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeEnv(t, "DECKCRITIC_THRESHOLD=150\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threshold must be within [0,100]")
}
