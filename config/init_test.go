package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setDatabaseEnv(t *testing.T) {
	t.Setenv("REPLYCRAFT_POSTGRES_HOST", "localhost")
	t.Setenv("REPLYCRAFT_POSTGRES_USER", "replycraft")
	t.Setenv("REPLYCRAFT_POSTGRES_DB_NAME", "replycraft")
	t.Setenv("REPLYCRAFT_POSTGRES_PASSWORD", "secret")
}

func TestParseConfig_Defaults(t *testing.T) {
	setDatabaseEnv(t)

	cfg, err := ParseConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppConfig.APIPort)
	assert.Equal(t, []string{"*"}, cfg.AppConfig.CorsAllowedOrigins)
	assert.Equal(t, "5432", cfg.DatabaseConfig.Port)
	assert.Equal(t, "disable", cfg.DatabaseConfig.SSLMode)
	assert.Equal(t, time.Duration(0), cfg.GeminiConfig.HttpTimeout)
	assert.False(t, cfg.ArchiveConfig.Enabled)
	assert.Equal(t, "replycraft", cfg.Tracing.ServiceName)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
}

func TestParseConfig_GeminiSettingsAreOptionalAtLoadTime(t *testing.T) {
	setDatabaseEnv(t)
	t.Setenv("GEMINI_API_URL", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := ParseConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.GeminiConfig.ApiUrl)
	assert.Empty(t, cfg.GeminiConfig.ApiKey)
}

func TestParseConfig_ReadsValues(t *testing.T) {
	setDatabaseEnv(t)
	t.Setenv("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent?key=")
	t.Setenv("GEMINI_API_KEY", "abc")
	t.Setenv("GEMINI_HTTP_TIMEOUT", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://mail.google.com,http://localhost:5173")

	cfg, err := ParseConfig()
	require.NoError(t, err)
	assert.Equal(t, "abc", cfg.GeminiConfig.ApiKey)
	assert.Equal(t, 30*time.Second, cfg.GeminiConfig.HttpTimeout)
	assert.Equal(t, []string{"https://mail.google.com", "http://localhost:5173"}, cfg.AppConfig.CorsAllowedOrigins)
}

func TestParseConfig_MissingDatabaseHost(t *testing.T) {
	setDatabaseEnv(t)
	require.NoError(t, os.Unsetenv("REPLYCRAFT_POSTGRES_HOST"))

	_, err := ParseConfig()
	assert.Error(t, err)
}
