package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, "http://localhost:8000/api", cfg.Upstream.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 1, cfg.Auth.AccessTTLDays)
	assert.Equal(t, 7, cfg.Auth.RefreshTTLDays)
	assert.False(t, cfg.Server.IsProduction())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("UPSTREAM_URL", "https://api.example.edu/api")
	t.Setenv("UPSTREAM_TIMEOUT", "30s")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("AUTH_ACCESS_TTL_DAYS", "2")
	t.Setenv("AUTH_REFRESH_TTL_DAYS", "14")
	t.Setenv("AUTH_COOKIE_DOMAIN", ".example.edu")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Server.IsProduction())
	assert.Equal(t, "https://api.example.edu/api", cfg.Upstream.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "cache.internal:6380", cfg.Redis.Addr())
	assert.Equal(t, 2, cfg.Auth.AccessTTLDays)
	assert.Equal(t, 14, cfg.Auth.RefreshTTLDays)
	assert.Equal(t, ".example.edu", cfg.Auth.CookieDomain)
}

func TestMalformedNumbersFallBack(t *testing.T) {
	t.Setenv("AUTH_ACCESS_TTL_DAYS", "soon")
	t.Setenv("UPSTREAM_TIMEOUT", "whenever")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Auth.AccessTTLDays)
	assert.Equal(t, 15*time.Second, cfg.Upstream.Timeout)
}
