package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/timestables/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, quiz.DefaultRevealDelay, cfg.RevealDelay())
	assert.Equal(t, quiz.TierFive, cfg.Tier())
	assert.Equal(t, "localhost:8080", cfg.ServerAddress())
}

func TestLoadPartialFile(t *testing.T) {
	path := writeConfig(t, `
quiz {
  reveal_delay_ms = 500
  default_tier    = "all"
  seed            = 42
}

server {
  port = 9001
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 500*time.Millisecond, cfg.RevealDelay())
	assert.Equal(t, quiz.TierAll, cfg.Tier())
	assert.Equal(t, int64(42), cfg.Quiz.Seed)

	// Omitted block and omitted attributes fall back to defaults.
	assert.Equal(t, Default().UI, cfg.UI)
	assert.Equal(t, "localhost:9001", cfg.ServerAddress())
}

func TestLoadNegativeRevealDelay(t *testing.T) {
	path := writeConfig(t, `
quiz {
  reveal_delay_ms = -1
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Negative(t, cfg.RevealDelay())
}

func TestLoadRejectsBadSyntax(t *testing.T) {
	path := writeConfig(t, `quiz {`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse HCL file")
}

func TestLoadRejectsUnknownAttribute(t *testing.T) {
	path := writeConfig(t, `
ui {
  colour = "blue"
}
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "tier ten", mutate: func(c *Config) { c.Quiz.DefaultTier = "10" }},
		{name: "plain theme", mutate: func(c *Config) { c.UI.Theme = "plain" }},
		{name: "bad tier", mutate: func(c *Config) { c.Quiz.DefaultTier = "7" }, wantErr: "quiz"},
		{name: "bad log level", mutate: func(c *Config) { c.UI.LogLevel = "loud" }, wantErr: "invalid log level"},
		{name: "bad theme", mutate: func(c *Config) { c.UI.Theme = "neon" }, wantErr: "invalid theme"},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "invalid port"},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "invalid port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTierFallsBackOnInvalidValue(t *testing.T) {
	cfg := Default()
	cfg.Quiz.DefaultTier = "bogus"
	assert.Equal(t, quiz.DefaultTier, cfg.Tier())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
quiz {
  seed = 42
}
ui {
  theme = "plain"
}
`)
	t.Setenv("TIMESTABLES_QUIZ_SEED", "7")
	t.Setenv("TIMESTABLES_QUIZ_DEFAULT_TIER", "20")
	t.Setenv("TIMESTABLES_SERVER_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(7), cfg.Quiz.Seed)
	assert.Equal(t, quiz.TierTwenty, cfg.Tier())
	assert.Equal(t, "plain", cfg.UI.Theme, "file value kept when no override is set")
	assert.Equal(t, "localhost:9100", cfg.ServerAddress())
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("TIMESTABLES_UI_LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.UI.LogLevel)
}

func TestEnvironmentRejectsBadValue(t *testing.T) {
	t.Setenv("TIMESTABLES_SERVER_PORT", "http")

	_, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.ErrorContains(t, err, "failed to parse environment")
}
