package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "")

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "./data/memories/memories.db", cfg.DBPath)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, DefaultRateLimitPerMinute, cfg.RateLimitPerMinute)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", ":9090")
	t.Setenv("DB_PATH", "/tmp/custom.db")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "60")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, "secret", cfg.JWTSecret)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
}

func TestLoadRateLimitFallback(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-5"} {
		t.Setenv("RATE_LIMIT_PER_MINUTE", raw)
		assert.Equal(t, DefaultRateLimitPerMinute, Load().RateLimitPerMinute)
	}
}
