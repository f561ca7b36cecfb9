package config

import (
	"encoding/json"
	"strings"
	"time"
)

// Secret is a string type that redacts itself when printed
type Secret string

// String implements fmt.Stringer to redact the secret
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "***"
}

// MarshalJSON implements json.Marshaler to prevent secrets in JSON logs
func (s Secret) MarshalJSON() ([]byte, error) {
	if s == "" {
		return json.Marshal("")
	}
	return json.Marshal("***")
}

// Environment distinguishes production deployments from local development.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// IsProduction reports whether cookies must be marked Secure.
// Anything that is not explicitly development-like counts as production.
func (e Environment) IsProduction() bool {
	switch strings.ToLower(string(e)) {
	case "development", "dev", "test", "":
		return false
	default:
		return true
	}
}

// Defaults applied when a field is left empty
const (
	DefaultAddr            = ":3000"
	DefaultSessionTTL      = time.Hour
	DefaultProviderTimeout = 10 * time.Second
	DefaultCookieName      = "cmu-oauth-example-token"
	DefaultCookieDomain    = "localhost"
	DefaultCookiePath      = "/"
	DefaultScope           = "cmuitaccount.basicinfo"

	// MinJWTSecretLength is the shortest HS256 key accepted at startup.
	MinJWTSecretLength = 32
)

// ServerConfig configures the HTTP listener and ambient behaviour
type ServerConfig struct {
	Addr        string      `json:"addr"`
	Environment Environment `json:"environment"`
	LogLevel    string      `json:"logLevel,omitempty"`
	LogFormat   string      `json:"logFormat,omitempty"`
}

// ProviderConfig holds the CMU OAuth endpoints and confidential client credentials.
type ProviderConfig struct {
	TokenURL     string        `json:"tokenUrl"`
	ProfileURL   string        `json:"profileUrl"`
	AuthorizeURL string        `json:"authorizeUrl,omitempty"`
	ClientID     string        `json:"clientId"`
	ClientSecret Secret        `json:"clientSecret"`
	RedirectURI  string        `json:"redirectUri"`
	Scope        string        `json:"scope,omitempty"`
	Timeout      time.Duration `json:"timeout"`
}

// SessionConfig configures credential signing and the cookie carrying it.
type SessionConfig struct {
	JWTSecret    Secret        `json:"jwtSecret"`
	TTL          time.Duration `json:"ttl"`
	CookieName   string        `json:"cookieName"`
	CookieDomain string        `json:"cookieDomain"`
}

// Config represents the config structure with resolved values
type Config struct {
	Server   ServerConfig   `json:"server"`
	Provider ProviderConfig `json:"provider"`
	Session  SessionConfig  `json:"session"`
}

// ApplyDefaults fills unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.Environment == "" {
		c.Server.Environment = EnvironmentDevelopment
	}
	if c.Provider.Scope == "" {
		c.Provider.Scope = DefaultScope
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = DefaultProviderTimeout
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = DefaultSessionTTL
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = DefaultCookieName
	}
	if c.Session.CookieDomain == "" {
		c.Session.CookieDomain = DefaultCookieDomain
	}
}
