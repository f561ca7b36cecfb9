package idp

import (
	"strings"

	"github.com/cmu-oauth/session-front/internal/config"
)

// NewProvider creates the CMU provider from the resolved provider config.
func NewProvider(cfg config.ProviderConfig) *CMUProvider {
	return NewCMUProvider(CMUConfig{
		TokenURL:     cfg.TokenURL,
		ProfileURL:   cfg.ProfileURL,
		AuthorizeURL: cfg.AuthorizeURL,
		ClientID:     cfg.ClientID,
		ClientSecret: string(cfg.ClientSecret),
		RedirectURI:  cfg.RedirectURI,
		Scopes:       strings.Fields(cfg.Scope),
		Timeout:      cfg.Timeout,
	})
}
