package idp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/cmu-oauth/session-front/internal/ioutil"
	"github.com/cmu-oauth/session-front/internal/log"
	"golang.org/x/oauth2"
)

// maxProfileBytes bounds how much of the profile response is decoded
const maxProfileBytes = 1 << 20

// CMUConfig configures the CMU OAuth client.
type CMUConfig struct {
	TokenURL     string
	ProfileURL   string
	AuthorizeURL string

	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string

	// Timeout bounds each outbound call. Zero means 10s.
	Timeout time.Duration

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// CMUProvider implements Provider for CMU OAuth (oauth.cmu.ac.th).
// There are no retries: one failed call fails the handshake.
type CMUProvider struct {
	config     oauth2.Config
	profileURL string
	timeout    time.Duration
	httpClient *http.Client
}

// NewCMUProvider creates a new CMU OAuth provider.
func NewCMUProvider(cfg CMUConfig) *CMUProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &CMUProvider{
		config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthorizeURL,
				TokenURL: cfg.TokenURL,
				// CMU expects client credentials in the form body, not Basic auth
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		profileURL: cfg.ProfileURL,
		timeout:    timeout,
		httpClient: httpClient,
	}
}

// AuthURL returns the consent page URL, or "" when no authorize endpoint is configured.
func (p *CMUProvider) AuthURL() string {
	if p.config.Endpoint.AuthURL == "" {
		return ""
	}
	return p.config.AuthCodeURL("")
}

// ExchangeCode exchanges an authorization code for an access token.
func (p *CMUProvider) ExchangeCode(ctx context.Context, code string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		fields := map[string]any{"error": err.Error()}
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			fields = map[string]any{
				"status":    retrieveErr.Response.StatusCode,
				"errorCode": retrieveErr.ErrorCode,
			}
		}
		log.LogDebugWithFields("idp", "Authorization code exchange failed", fields)
		return "", false
	}
	if token.AccessToken == "" {
		log.LogDebugWithFields("idp", "Token response carried no access token", nil)
		return "", false
	}

	return token.AccessToken, true
}

// FetchProfile fetches the CMU basic info using the access token as bearer.
func (p *CMUProvider) FetchProfile(ctx context.Context, accessToken string) (*Profile, bool) {
	if accessToken == "" {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.profileURL, nil)
	if err != nil {
		log.LogErrorWithFields("idp", "Failed to build profile request", map[string]any{"error": err.Error()})
		return nil, false
	}
	req.Header.Set("Accept", "application/json")
	(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}).SetAuthHeader(req)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.LogDebugWithFields("idp", "Profile request failed", map[string]any{"error": err.Error()})
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.LogDebugWithFields("idp", "Profile endpoint rejected request", map[string]any{
			"status": resp.StatusCode,
			"body":   ioutil.ReadLimited(resp.Body, 512),
		})
		return nil, false
	}

	var profile Profile
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProfileBytes)).Decode(&profile); err != nil {
		log.LogDebugWithFields("idp", "Failed to decode profile", map[string]any{"error": err.Error()})
		return nil, false
	}
	if profile.Account == "" {
		log.LogDebugWithFields("idp", "Profile response missing cmuitaccount", nil)
		return nil, false
	}

	return &profile, true
}
