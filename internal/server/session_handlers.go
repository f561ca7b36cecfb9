package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cmu-oauth/session-front/internal/cookie"
	"github.com/cmu-oauth/session-front/internal/credential"
	"github.com/cmu-oauth/session-front/internal/idp"
	jsonwriter "github.com/cmu-oauth/session-front/internal/json"
	"github.com/cmu-oauth/session-front/internal/log"
)

// maxSignInBodyBytes limits the sign-in request body
const maxSignInBodyBytes = 64 << 10

// Client-facing failure messages
const (
	messageInvalidMethod = "Invalid HTTP method"
	messageInvalidCode   = "Invalid authorization code"
	messageTokenFailed   = "Cannot get OAuth access token"
	messageProfileFailed = "Cannot get cmu basic info"
	messageInternalError = "Internal server error"
	messageInvalidToken  = "Invalid token"
	messageNotFound      = "Not found"
)

// SessionHandlers serves sign-in, identity query and sign-out.
// It holds only immutable dependencies and is safe for concurrent use.
type SessionHandlers struct {
	provider idp.Provider
	codec    *credential.Codec
	cookies  *cookie.Store
}

// NewSessionHandlers creates the session endpoint handlers
func NewSessionHandlers(provider idp.Provider, codec *credential.Codec, cookies *cookie.Store) *SessionHandlers {
	return &SessionHandlers{
		provider: provider,
		codec:    codec,
		cookies:  cookies,
	}
}

// signInRequest keeps the code untyped so a non-string value is
// distinguishable from a decode failure of the whole body.
type signInRequest struct {
	AuthorizationCode any `json:"authorizationCode"`
}

type whoAmIResponse struct {
	OK         bool    `json:"ok"`
	CMUAccount string  `json:"cmuAccount"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	StudentID  *string `json:"studentId,omitempty"`
}

type signInURLResponse struct {
	OK  bool   `json:"ok"`
	URL string `json:"url"`
}

// SignInHandler exchanges an authorization code for a session cookie.
// No cookie is written unless every step succeeds.
func (h *SessionHandlers) SignInHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonwriter.WriteNotFound(w, messageInvalidMethod)
		return
	}

	var req signInRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSignInBodyBytes)).Decode(&req); err != nil {
		log.LogDebugWithFields("session", "Sign-in body rejected", map[string]any{
			"error":      err.Error(),
			"request_id": RequestIDFromContext(r.Context()),
		})
		jsonwriter.WriteBadRequest(w, messageInvalidCode)
		return
	}
	code, ok := req.AuthorizationCode.(string)
	if !ok {
		jsonwriter.WriteBadRequest(w, messageInvalidCode)
		return
	}

	ctx := r.Context()
	accessToken, ok := h.provider.ExchangeCode(ctx, code)
	if !ok {
		log.LogInfoWithFields("session", "Sign-in failed at code exchange", map[string]any{
			"request_id": RequestIDFromContext(ctx),
		})
		jsonwriter.WriteBadRequest(w, messageTokenFailed)
		return
	}

	profile, ok := h.provider.FetchProfile(ctx, accessToken)
	if !ok {
		log.LogInfoWithFields("session", "Sign-in failed at profile fetch", map[string]any{
			"request_id": RequestIDFromContext(ctx),
		})
		jsonwriter.WriteBadRequest(w, messageProfileFailed)
		return
	}

	token, err := h.codec.Issue(credential.Claims{
		CMUAccount: profile.Account,
		FirstName:  profile.FirstNameEN,
		LastName:   profile.LastNameEN,
		StudentID:  profile.StudentID,
	})
	if err != nil {
		log.LogErrorWithFields("session", "Failed to issue credential", map[string]any{
			"error":      err.Error(),
			"request_id": RequestIDFromContext(ctx),
		})
		jsonwriter.WriteInternalServerError(w, messageInternalError)
		return
	}

	h.cookies.Write(w, token)

	log.LogInfoWithFields("session", "User signed in", map[string]any{
		"cmuAccount":  profile.Account,
		"accountType": string(profile.AccountType),
		"request_id":  RequestIDFromContext(ctx),
	})
	jsonwriter.WriteOK(w)
}

// WhoAmIHandler returns the identity in the session cookie.
// Every rejection produces the same 401 body.
func (h *SessionHandlers) WhoAmIHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonwriter.WriteNotFound(w, messageInvalidMethod)
		return
	}

	token, ok := h.cookies.Read(r)
	if !ok {
		jsonwriter.WriteUnauthorized(w, messageInvalidToken)
		return
	}

	claims, err := h.codec.Verify(token)
	if err != nil {
		if errors.Is(err, credential.ErrMissingSecret) {
			log.LogErrorWithFields("session", "Credential codec not configured", nil)
		} else {
			log.LogTraceWithFields("session", "Credential rejected", map[string]any{
				"request_id": RequestIDFromContext(r.Context()),
			})
		}
		jsonwriter.WriteUnauthorized(w, messageInvalidToken)
		return
	}

	_ = jsonwriter.Write(w, whoAmIResponse{
		OK:         true,
		CMUAccount: claims.CMUAccount,
		FirstName:  claims.FirstName,
		LastName:   claims.LastName,
		StudentID:  claims.StudentID,
	})
}

// SignOutHandler clears the session cookie. Any method is accepted.
func (h *SessionHandlers) SignOutHandler(w http.ResponseWriter, r *http.Request) {
	h.cookies.Delete(w)
	jsonwriter.WriteOK(w)
}

// SignInURLHandler returns the provider consent page URL
func (h *SessionHandlers) SignInURLHandler(w http.ResponseWriter, r *http.Request) {
	authURL := h.provider.AuthURL()
	if authURL == "" {
		jsonwriter.WriteNotFound(w, messageNotFound)
		return
	}
	_ = jsonwriter.Write(w, signInURLResponse{OK: true, URL: authURL})
}
