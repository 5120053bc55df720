// Package config provides configuration loading and validation for the
// parser service and CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime settings. Values come from the environment;
// cmd entrypoints load a .env file first so local runs behave like
// deployed ones.
type Config struct {
	// Server
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxUploadBytes  int64

	// Auth. An empty secret disables bearer-token checking.
	AuthSecret   string
	AuthTokenTTL time.Duration

	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// LLM parsing. An empty key disables the LLM strategy; the heuristic
	// parser then runs alone.
	GeminiAPIKey string
	GeminiModel  string
	LLMTimeout   time.Duration

	// Logging
	LogLevel string
}

// FromEnv builds a Config from environment variables, applying defaults
// for everything unset.
func FromEnv() *Config {
	return &Config{
		Port:            envInt("PORT", 8080),
		ReadTimeout:     envDuration("SERVER_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:    envDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: envDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxUploadBytes:  envInt64("MAX_UPLOAD_BYTES", 10<<20),
		AuthSecret:      os.Getenv("AUTH_SECRET"),
		AuthTokenTTL:    envDuration("AUTH_TOKEN_TTL", 24*time.Hour),
		RateLimitRPS:    envFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:  envInt("RATE_LIMIT_BURST", 10),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     envString("GEMINI_MODEL", "gemini-2.0-flash"),
		LLMTimeout:      envDuration("LLM_TIMEOUT", 45*time.Second),
		LogLevel:        envString("LOG_LEVEL", "info"),
	}
}

// Validate checks ranges. A zero-environment configuration always passes.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port %d out of range", c.Port)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("config error: max upload bytes must be positive")
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("config error: rate limit rps must be positive")
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("config error: rate limit burst must be at least 1")
	}
	if c.AuthSecret != "" && c.AuthTokenTTL < time.Minute {
		return fmt.Errorf("config error: auth token ttl too short: %s", c.AuthTokenTTL)
	}
	return nil
}

// LLMEnabled reports whether the LLM parsing strategy is configured.
func (c *Config) LLMEnabled() bool {
	return c.GeminiAPIKey != ""
}

// AuthEnabled reports whether bearer-token authentication is configured.
func (c *Config) AuthEnabled() bool {
	return c.AuthSecret != ""
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
