package config

import (
	"fmt"
	"net/url"
)

// ValidateConfig validates the resolved configuration. Every error returned
// here is a deployment fault: the process must not start serving.
func ValidateConfig(config *Config) error {
	if config.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	if err := validateProviderConfig(&config.Provider); err != nil {
		return fmt.Errorf("provider config: %w", err)
	}
	if err := validateSessionConfig(&config.Session); err != nil {
		return fmt.Errorf("session config: %w", err)
	}
	return nil
}

func validateProviderConfig(p *ProviderConfig) error {
	if err := validateURL("tokenUrl", p.TokenURL); err != nil {
		return err
	}
	if err := validateURL("profileUrl", p.ProfileURL); err != nil {
		return err
	}
	if p.AuthorizeURL != "" {
		if err := validateURL("authorizeUrl", p.AuthorizeURL); err != nil {
			return err
		}
	}
	if p.ClientID == "" {
		return fmt.Errorf("clientId is required")
	}
	if p.ClientSecret == "" {
		return fmt.Errorf("clientSecret is required")
	}
	if err := validateURL("redirectUri", p.RedirectURI); err != nil {
		return err
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive (got %s)", p.Timeout)
	}
	return nil
}

func validateSessionConfig(s *SessionConfig) error {
	if s.JWTSecret == "" {
		return fmt.Errorf("jwtSecret is required")
	}
	if len(s.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("jwtSecret must be at least %d characters (got %d). Generate with: openssl rand -base64 32", MinJWTSecretLength, len(s.JWTSecret))
	}
	if s.TTL <= 0 {
		return fmt.Errorf("ttl must be positive (got %s)", s.TTL)
	}
	if s.CookieName == "" {
		return fmt.Errorf("cookieName is required")
	}
	return nil
}

func validateURL(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", name)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an absolute http(s) URL (got %q)", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host", name)
	}
	return nil
}
