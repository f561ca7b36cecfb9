package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Paths served by FakeCMU
const (
	FakeTokenPath     = "/v1/GetToken.aspx"
	FakeProfilePath   = "/cmuitaccount/v1/api/cmuitaccount/basicinfo"
	FakeAuthorizePath = "/v1/Authorize.aspx"
)

// FakeCMU is an in-process stand-in for the CMU OAuth token and basic info
// endpoints. One code maps to one access token, which maps to one profile.
type FakeCMU struct {
	Server *httptest.Server

	ClientID     string
	ClientSecret string

	mu       sync.Mutex
	codes    map[string]string
	profiles map[string]map[string]any
	calls    map[string]int
}

// NewFakeCMU starts a fake provider that is closed with the test
func NewFakeCMU(t *testing.T, clientID, clientSecret string) *FakeCMU {
	t.Helper()
	f := &FakeCMU{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		codes:        make(map[string]string),
		profiles:     make(map[string]map[string]any),
		calls:        make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+FakeTokenPath, f.handleToken)
	mux.HandleFunc("GET "+FakeProfilePath, f.handleProfile)
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// AddAccount registers an authorization code that yields the given basic info
func (f *FakeCMU) AddAccount(code, accessToken string, profile map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes[code] = accessToken
	f.profiles[accessToken] = profile
}

// Calls returns how many requests hit the given path
func (f *FakeCMU) Calls(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *FakeCMU) TokenURL() string     { return f.Server.URL + FakeTokenPath }
func (f *FakeCMU) ProfileURL() string   { return f.Server.URL + FakeProfilePath }
func (f *FakeCMU) AuthorizeURL() string { return f.Server.URL + FakeAuthorizePath }

func (f *FakeCMU) handleToken(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls[FakeTokenPath]++
	f.mu.Unlock()

	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_request"})
		return
	}
	if r.PostForm.Get("grant_type") != "authorization_code" ||
		r.PostForm.Get("client_id") != f.ClientID ||
		r.PostForm.Get("client_secret") != f.ClientSecret {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_client"})
		return
	}

	f.mu.Lock()
	accessToken, ok := f.codes[r.PostForm.Get("code")]
	f.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": accessToken,
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
}

func (f *FakeCMU) handleProfile(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls[FakeProfilePath]++
	f.mu.Unlock()

	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) <= len(prefix) || auth[:len(prefix)] != prefix {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		return
	}

	f.mu.Lock()
	profile, ok := f.profiles[auth[len(prefix):]]
	f.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
