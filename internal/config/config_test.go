package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.Dataset.PrimaryURL, "esg_indicators_ai.json")
	assert.Contains(t, cfg.Dataset.FallbackURL, "esg_indicators.json")
	assert.Equal(t, 30, cfg.Dataset.TimeoutSecs)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 4, cfg.Anthropic.MaxConcurrent)
	assert.Equal(t, "csv", cfg.Export.DefaultFormat)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ESG_SERVER_PORT", "9090")
	t.Setenv("ESG_DATASET_PRIMARY_URL", "http://localhost:8000/a.json")
	t.Setenv("ESG_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8000/a.json", cfg.Dataset.PrimaryURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "nope", Format: "json"}))
}
