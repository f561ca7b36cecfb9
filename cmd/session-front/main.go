package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cmu-oauth/session-front/internal"
	"github.com/cmu-oauth/session-front/internal/config"
	"github.com/cmu-oauth/session-front/internal/log"
)

var BuildVersion = "dev"

func generateDefaultConfig(path string) error {
	defaultConfig := map[string]any{
		"version": config.SupportedVersion,
		"server": map[string]any{
			"addr":        config.DefaultAddr,
			"environment": "development",
		},
		"provider": map[string]any{
			"tokenUrl":     "https://oauth.cmu.ac.th/v1/GetToken.aspx",
			"profileUrl":   "https://misapi.cmu.ac.th/cmuitaccount/v1/api/cmuitaccount/basicinfo",
			"authorizeUrl": "https://oauth.cmu.ac.th/v1/Authorize.aspx",
			"clientId":     map[string]string{"$env": "CMU_OAUTH_CLIENT_ID"},
			"clientSecret": map[string]string{"$env": "CMU_OAUTH_CLIENT_SECRET"},
			"redirectUri":  "http://localhost:3000/cmuOAuthCallback",
			"scope":        config.DefaultScope,
			"timeout":      config.DefaultProviderTimeout.String(),
		},
		"session": map[string]any{
			"jwtSecret":    map[string]string{"$env": "JWT_SECRET"},
			"ttl":          config.DefaultSessionTTL.String(),
			"cookieName":   config.DefaultCookieName,
			"cookieDomain": config.DefaultCookieDomain,
		},
	}

	data, err := json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// loadConfig reads the config file when given, otherwise the environment
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.FromEnv()
	}
	return config.Load(path)
}

func main() {
	conf := flag.String("config", "", "path to config file (environment variables are used when omitted)")
	version := flag.Bool("version", false, "print version and exit")
	help := flag.Bool("help", false, "print help and exit")
	configInit := flag.String("config-init", "", "generate default config file at specified path")
	validate := flag.Bool("validate", false, "validate configuration and exit")
	flag.Parse()
	if *help {
		flag.Usage()
		return
	}
	if *version {
		fmt.Println(BuildVersion)
		return
	}
	if *configInit != "" {
		if err := generateDefaultConfig(*configInit); err != nil {
			log.LogError("Failed to generate config: %v", err)
			os.Exit(1)
		}
		fmt.Printf("Generated default config at: %s\n", *configInit)
		return
	}

	cfg, err := loadConfig(*conf)
	if *validate {
		if err != nil {
			fmt.Printf("Result: FAIL\n  - %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Result: PASS")
		return
	}
	if err != nil {
		log.LogError("Failed to load config: %v", err)
		os.Exit(1)
	}

	if err := log.Configure(cfg.Server.LogLevel, cfg.Server.LogFormat); err != nil {
		log.LogError("Invalid logging config: %v", err)
		os.Exit(1)
	}

	log.LogInfoWithFields("main", "Starting session-front", map[string]any{
		"version": BuildVersion,
		"config":  *conf,
	})

	ctx := context.Background()
	app, err := internal.NewSessionFront(ctx, cfg)
	if err != nil {
		log.LogError("Failed to create application: %v", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.LogError("Server stopped: %v", err)
		os.Exit(1)
	}
}
