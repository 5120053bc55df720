package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.False(t, cfg.LLMEnabled())
	assert.False(t, cfg.AuthEnabled())
	require.NoError(t, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")

	cfg := FromEnv()

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LLMEnabled())
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
}

func TestFromEnvInvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("SERVER_READ_TIMEOUT", "soon")

	cfg := FromEnv()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Defaults pass", func(c *Config) {}, false},
		{"Port too low", func(c *Config) { c.Port = 0 }, true},
		{"Port too high", func(c *Config) { c.Port = 70000 }, true},
		{"Zero upload cap", func(c *Config) { c.MaxUploadBytes = 0 }, true},
		{"Zero rps", func(c *Config) { c.RateLimitRPS = 0 }, true},
		{"Zero burst", func(c *Config) { c.RateLimitBurst = 0 }, true},
		{"Short token ttl", func(c *Config) { c.AuthSecret = "s"; c.AuthTokenTTL = time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := FromEnv()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
