package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// environmentConfig holds raw env values. Variable names follow the ones the
// CMU OAuth example deployments already export.
type environmentConfig struct {
	Addr      string `env:"SESSION_FRONT_ADDR"`
	NodeEnv   string `env:"NODE_ENV"`
	AppEnv    string `env:"APP_ENV"`
	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	TokenURL        string        `env:"CMU_OAUTH_GET_TOKEN_URL"`
	ProfileURL      string        `env:"CMU_OAUTH_GET_BASIC_INFO"`
	AuthorizeURL    string        `env:"CMU_OAUTH_URL"`
	ClientID        string        `env:"CMU_OAUTH_CLIENT_ID"`
	ClientSecret    string        `env:"CMU_OAUTH_CLIENT_SECRET"`
	RedirectURI     string        `env:"CMU_OAUTH_REDIRECT_URL"`
	Scope           string        `env:"CMU_OAUTH_SCOPE"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT"`

	JWTSecret    string        `env:"JWT_SECRET"`
	SessionTTL   time.Duration `env:"SESSION_TTL"`
	CookieName   string        `env:"COOKIE_NAME"`
	CookieDomain string        `env:"COOKIE_DOMAIN"`
}

// FromEnv builds the configuration purely from environment variables.
// It is used when no config file is given.
func FromEnv() (Config, error) {
	var raw environmentConfig
	if err := env.Parse(&raw); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	environment := raw.AppEnv
	if environment == "" {
		environment = raw.NodeEnv
	}

	config := Config{
		Server: ServerConfig{
			Addr:        raw.Addr,
			Environment: Environment(environment),
			LogLevel:    raw.LogLevel,
			LogFormat:   raw.LogFormat,
		},
		Provider: ProviderConfig{
			TokenURL:     raw.TokenURL,
			ProfileURL:   raw.ProfileURL,
			AuthorizeURL: raw.AuthorizeURL,
			ClientID:     raw.ClientID,
			ClientSecret: Secret(raw.ClientSecret),
			RedirectURI:  raw.RedirectURI,
			Scope:        raw.Scope,
			Timeout:      raw.ProviderTimeout,
		},
		Session: SessionConfig{
			JWTSecret:    Secret(raw.JWTSecret),
			TTL:          raw.SessionTTL,
			CookieName:   raw.CookieName,
			CookieDomain: raw.CookieDomain,
		},
	}

	config.ApplyDefaults()
	if err := ValidateConfig(&config); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}
