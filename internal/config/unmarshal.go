package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ParseConfigValue parses a JSON value that is either a plain string or an
// {"$env": "VAR_NAME"} reference resolved immediately from the environment.
func ParseConfigValue(raw json.RawMessage) (string, error) {
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str, nil
	}

	var ref map[string]string
	if err := json.Unmarshal(raw, &ref); err != nil {
		return "", fmt.Errorf("config value must be string or reference object")
	}

	envVar, ok := ref["$env"]
	if !ok {
		return "", fmt.Errorf("unknown reference type in config value")
	}
	value := os.Getenv(envVar)
	if value == "" {
		return "", fmt.Errorf("environment variable %s not set", envVar)
	}
	// Strip surrounding quotes if present (only matching pairs)
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	return value, nil
}

// field pairs a raw config value with the string it resolves into
type field struct {
	raw json.RawMessage
	dst *string
}

// parseFields resolves every non-nil raw value into its destination.
func parseFields(fields map[string]field) error {
	for name, f := range fields {
		if f.raw == nil {
			continue
		}
		value, err := ParseConfigValue(f.raw)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", name, err)
		}
		*f.dst = value
	}
	return nil
}

func parseDuration(name, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	return d, nil
}

// UnmarshalJSON implements custom unmarshaling for ServerConfig
func (s *ServerConfig) UnmarshalJSON(data []byte) error {
	type rawServer struct {
		Addr        json.RawMessage `json:"addr"`
		Environment json.RawMessage `json:"environment"`
		LogLevel    string          `json:"logLevel"`
		LogFormat   string          `json:"logFormat"`
	}

	var raw rawServer
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var env string
	if err := parseFields(map[string]field{
		"addr":        {raw.Addr, &s.Addr},
		"environment": {raw.Environment, &env},
	}); err != nil {
		return err
	}
	s.Environment = Environment(env)
	s.LogLevel = raw.LogLevel
	s.LogFormat = raw.LogFormat
	return nil
}

// UnmarshalJSON implements custom unmarshaling for ProviderConfig
func (p *ProviderConfig) UnmarshalJSON(data []byte) error {
	type rawProvider struct {
		TokenURL     json.RawMessage `json:"tokenUrl"`
		ProfileURL   json.RawMessage `json:"profileUrl"`
		AuthorizeURL json.RawMessage `json:"authorizeUrl"`
		ClientID     json.RawMessage `json:"clientId"`
		ClientSecret json.RawMessage `json:"clientSecret"`
		RedirectURI  json.RawMessage `json:"redirectUri"`
		Scope        string          `json:"scope"`
		Timeout      string          `json:"timeout"`
	}

	var raw rawProvider
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var clientSecret string
	if err := parseFields(map[string]field{
		"tokenUrl":     {raw.TokenURL, &p.TokenURL},
		"profileUrl":   {raw.ProfileURL, &p.ProfileURL},
		"authorizeUrl": {raw.AuthorizeURL, &p.AuthorizeURL},
		"clientId":     {raw.ClientID, &p.ClientID},
		"clientSecret": {raw.ClientSecret, &clientSecret},
		"redirectUri":  {raw.RedirectURI, &p.RedirectURI},
	}); err != nil {
		return err
	}
	p.ClientSecret = Secret(clientSecret)
	p.Scope = raw.Scope

	timeout, err := parseDuration("timeout", raw.Timeout)
	if err != nil {
		return err
	}
	p.Timeout = timeout
	return nil
}

// UnmarshalJSON implements custom unmarshaling for SessionConfig
func (s *SessionConfig) UnmarshalJSON(data []byte) error {
	type rawSession struct {
		JWTSecret    json.RawMessage `json:"jwtSecret"`
		TTL          string          `json:"ttl"`
		CookieName   string          `json:"cookieName"`
		CookieDomain json.RawMessage `json:"cookieDomain"`
	}

	var raw rawSession
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var jwtSecret string
	if err := parseFields(map[string]field{
		"jwtSecret":    {raw.JWTSecret, &jwtSecret},
		"cookieDomain": {raw.CookieDomain, &s.CookieDomain},
	}); err != nil {
		return err
	}
	s.JWTSecret = Secret(jwtSecret)
	s.CookieName = raw.CookieName

	ttl, err := parseDuration("ttl", raw.TTL)
	if err != nil {
		return err
	}
	s.TTL = ttl
	return nil
}
