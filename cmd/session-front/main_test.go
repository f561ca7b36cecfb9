package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cmu-oauth/session-front/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDefaultConfig_Loads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, generateDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	provider := raw["provider"].(map[string]any)
	assert.Equal(t, map[string]any{"$env": "CMU_OAUTH_CLIENT_SECRET"}, provider["clientSecret"])

	t.Setenv("CMU_OAUTH_CLIENT_ID", "client")
	t.Setenv("CMU_OAUTH_CLIENT_SECRET", "secret")
	t.Setenv("JWT_SECRET", strings.Repeat("x", 32))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "client", cfg.Provider.ClientID)
	assert.Equal(t, config.DefaultCookieName, cfg.Session.CookieName)
	assert.False(t, cfg.Server.Environment.IsProduction())
}

func TestLoadConfig_FromEnvWhenNoPath(t *testing.T) {
	t.Setenv("CMU_OAUTH_GET_TOKEN_URL", "https://oauth.cmu.ac.th/v1/GetToken.aspx")
	t.Setenv("CMU_OAUTH_GET_BASIC_INFO", "https://misapi.cmu.ac.th/cmuitaccount/v1/api/cmuitaccount/basicinfo")
	t.Setenv("CMU_OAUTH_CLIENT_ID", "client")
	t.Setenv("CMU_OAUTH_CLIENT_SECRET", "secret")
	t.Setenv("CMU_OAUTH_REDIRECT_URL", "http://localhost:3000/cmuOAuthCallback")
	t.Setenv("JWT_SECRET", strings.Repeat("x", 32))
	t.Setenv("NODE_ENV", "production")
	t.Setenv("APP_ENV", "")

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.True(t, cfg.Server.Environment.IsProduction())
	assert.Equal(t, config.Secret("secret"), cfg.Provider.ClientSecret)
}
