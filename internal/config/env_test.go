package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setProviderEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CMU_OAUTH_GET_TOKEN_URL", "https://oauth.example.ac.th/v1/GetToken.aspx")
	t.Setenv("CMU_OAUTH_GET_BASIC_INFO", "https://api.example.ac.th/basicinfo")
	t.Setenv("CMU_OAUTH_CLIENT_ID", "env-client")
	t.Setenv("CMU_OAUTH_CLIENT_SECRET", "env-secret")
	t.Setenv("CMU_OAUTH_REDIRECT_URL", "http://localhost:3000/cmuOAuthCallback")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestFromEnv(t *testing.T) {
	setProviderEnv(t)
	t.Setenv("NODE_ENV", "production")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("PROVIDER_TIMEOUT", "3s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "env-client", cfg.Provider.ClientID)
	assert.Equal(t, Secret("env-secret"), cfg.Provider.ClientSecret)
	assert.Equal(t, 3*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTL)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.True(t, cfg.Server.Environment.IsProduction())
}

func TestFromEnv_AppEnvOverridesNodeEnv(t *testing.T) {
	setProviderEnv(t)
	t.Setenv("NODE_ENV", "production")
	t.Setenv("APP_ENV", "development")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.Server.Environment.IsProduction())
}

func TestFromEnv_MissingJWTSecret(t *testing.T) {
	setProviderEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwtSecret is required")
}

func TestFromEnv_InvalidDuration(t *testing.T) {
	setProviderEnv(t)
	t.Setenv("SESSION_TTL", "an hour")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}
