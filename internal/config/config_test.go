package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadGeneratesEphemeralSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("DB_DRIVER", "memory")

	a := Load()
	b := Load()

	assert.True(t, a.EphemeralSecret)
	assert.Len(t, a.JWTSecret, 64)
	assert.NotEqual(t, a.JWTSecret, b.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, a.TokenTTL)
}

func TestLoadUsesConfiguredSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SESSION_SECRET", "from-session")
	t.Setenv("DB_DRIVER", "memory")

	cfg := Load()
	assert.False(t, cfg.EphemeralSecret)
	assert.Equal(t, "from-session", cfg.JWTSecret)

	t.Setenv("JWT_SECRET", "from-jwt")
	assert.Equal(t, "from-jwt", Load().JWTSecret)
}

func TestLoadRateLimitConfigNormalizes(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.TTL)
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "bogus")

	cfg := LoadCacheConfig()
	assert.True(t, cfg.Methods["GET"])
	assert.True(t, cfg.Methods["HEAD"])
	assert.False(t, cfg.Methods["POST"])
	assert.Equal(t, 30*time.Second, cfg.TTL)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "search", cfg.Prefix)

	t.Setenv("CACHE_TTL", "0s")
	assert.False(t, LoadCacheConfig().Enabled)
}
