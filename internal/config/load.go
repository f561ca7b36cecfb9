package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// SupportedVersion is the config file version prefix this binary understands
const SupportedVersion = "v0.0.1"

// Load reads a JSON config file, resolves {"$env": ...} references immediately,
// applies defaults and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse is Load without the file read.
func Parse(data []byte) (Config, error) {
	var rawConfig map[string]any
	if err := json.Unmarshal(data, &rawConfig); err != nil {
		return Config{}, fmt.Errorf("parsing config JSON: %w", err)
	}

	version, ok := rawConfig["version"].(string)
	if !ok {
		return Config{}, fmt.Errorf("config version is required")
	}
	if !strings.HasPrefix(version, SupportedVersion) {
		return Config{}, fmt.Errorf("unsupported config version: %s", version)
	}

	if err := validateRawConfig(rawConfig); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}

	// The custom UnmarshalJSON methods resolve env vars while decoding
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	config.ApplyDefaults()
	if err := ValidateConfig(&config); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// validateRawConfig rejects secrets written inline instead of as env references
func validateRawConfig(rawConfig map[string]any) error {
	secrets := []struct {
		section string
		name    string
	}{
		{"provider", "clientSecret"},
		{"session", "jwtSecret"},
	}

	for _, secret := range secrets {
		section, ok := rawConfig[secret.section].(map[string]any)
		if !ok {
			continue
		}
		value, exists := section[secret.name]
		if !exists {
			continue
		}
		if _, isString := value.(string); isString {
			return fmt.Errorf("%s.%s must use environment variable reference for security", secret.section, secret.name)
		}
		if refMap, isMap := value.(map[string]any); isMap {
			if _, hasEnv := refMap["$env"]; !hasEnv {
				return fmt.Errorf("%s.%s must use {\"$env\": \"VAR_NAME\"} format", secret.section, secret.name)
			}
		}
	}
	return nil
}
