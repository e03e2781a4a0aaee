package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "medchain-portal", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:3000", cfg.App.Addr())
	assert.Equal(t, "http://localhost:8000", cfg.Upstream.BaseURL)
	assert.Equal(t, TokenStoreMemory, cfg.Session.TokenStore)
	assert.Equal(t, "medchain_sid", cfg.Session.CookieName)
	assert.Equal(t, 24*time.Hour, cfg.Session.TokenTTL())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "8088")
	t.Setenv("UPSTREAM_BASE_URL", "https://api.example.com")
	t.Setenv("SESSION_TOKEN_STORE", "redis")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8088", cfg.App.Addr())
	assert.Equal(t, "https://api.example.com", cfg.Upstream.BaseURL)
	assert.Equal(t, TokenStoreRedis, cfg.Session.TokenStore)
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout())
}

func TestLoad_RejectsUnknownTokenStore(t *testing.T) {
	t.Setenv("SESSION_TOKEN_STORE", "sqlite")

	_, err := Load()
	assert.Error(t, err)
}
