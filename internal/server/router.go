package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	jsonwriter "github.com/cmu-oauth/session-front/internal/json"
)

// Routes registers the session API on the provided router.
// signIn, whoAmI and signOut accept every method and check it themselves,
// so a wrong method gets the API's own 404 body.
func (h *SessionHandlers) Routes(r chi.Router) {
	r.HandleFunc("/api/signIn", h.SignInHandler)
	r.HandleFunc("/api/whoAmI", h.WhoAmIHandler)
	r.HandleFunc("/api/signOut", h.SignOutHandler)
	r.Get("/api/signInUrl", h.SignInURLHandler)
}

// NewRouter builds the full handler: health, session API and middleware.
func NewRouter(h *SessionHandlers) http.Handler {
	r := chi.NewRouter()
	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(methodNotAllowedHandler)

	r.Method(http.MethodGet, "/health", NewHealthHandler())
	h.Routes(r)

	return ChainMiddleware(r,
		NewRecoverMiddleware("session-front"),
		NewLoggerMiddleware("http"),
		NewRequestIDMiddleware(),
	)
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	jsonwriter.WriteNotFound(w, messageNotFound)
}

// chi answers 405 by default; the API reports every method mismatch as 404.
func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	jsonwriter.WriteNotFound(w, messageInvalidMethod)
}
