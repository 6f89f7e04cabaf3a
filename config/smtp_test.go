package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setSMTPEnv(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SMTP_USER", "mailer")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("SMTP_FROM", "no-reply@example.com")
	t.Setenv("SMTP_TO", "ada@example.com")
}

func TestLoadSMTPConfig(t *testing.T) {
	setSMTPEnv(t)
	t.Setenv("APP_BASE_URL", "https://notes.example.com/")
	t.Setenv("SMTP_FROM_NAME", "")

	cfg, err := LoadSMTPConfig()
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com", cfg.Host)
	assert.Equal(t, 587, cfg.Port)
	assert.Equal(t, "ada@example.com", cfg.To)
	assert.Equal(t, "Notes API", cfg.FromName)
	assert.Equal(t, "https://notes.example.com", cfg.BaseURL)
}

func TestLoadSMTPConfigListsMissingKeys(t *testing.T) {
	setSMTPEnv(t)
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_PASS", "")

	_, err := LoadSMTPConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_HOST")
	assert.Contains(t, err.Error(), "SMTP_PASS")
	assert.NotContains(t, err.Error(), "SMTP_USER")
}

func TestLoadSMTPConfigRejectsBadPort(t *testing.T) {
	setSMTPEnv(t)

	for _, port := range []string{"smtp", "0", "70000"} {
		t.Setenv("SMTP_PORT", port)
		_, err := LoadSMTPConfig()
		assert.Error(t, err, port)
	}
}

func TestLoadServerConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE_BACKEND", "CORS_ALLOWED_ORIGINS", "RATE_LIMIT_RPS", "REDIS_URL"} {
		t.Setenv(key, "")
	}

	cfg := LoadServerConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMongo, cfg.StorageBackend)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.True(t, cfg.RateLimit.Enabled())
	assert.Empty(t, cfg.RateLimit.RedisURL)
}

func TestLoadServerConfigOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("RATE_LIMIT_RPS", "0")

	cfg := LoadServerConfig()
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.False(t, cfg.RateLimit.Enabled())
}
