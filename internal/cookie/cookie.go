package cookie

import (
	"net/http"
	"time"

	"github.com/cmu-oauth/session-front/internal/log"
)

// Default attribute values
const (
	DefaultName   = "cmu-oauth-example-token"
	DefaultPath   = "/"
	DefaultDomain = "localhost"
	DefaultMaxAge = time.Hour
)

// Options fixes the attributes of the session cookie. The same values are
// used for writing and deleting, since a browser ignores a deletion whose
// Path or Domain differ from the stored cookie.
type Options struct {
	Name   string
	Domain string
	Path   string
	Secure bool
	MaxAge time.Duration
}

// Store reads and writes the session credential cookie
type Store struct {
	opts Options
}

// NewStore creates a cookie store, filling unset options with defaults
func NewStore(opts Options) *Store {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	if opts.Domain == "" {
		opts.Domain = DefaultDomain
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = DefaultMaxAge
	}
	return &Store{opts: opts}
}

// Name returns the cookie name
func (s *Store) Name() string {
	return s.opts.Name
}

func (s *Store) base() *http.Cookie {
	return &http.Cookie{
		Name:     s.opts.Name,
		Path:     s.opts.Path,
		Domain:   s.opts.Domain,
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Write sets the session cookie on the response
func (s *Store) Write(w http.ResponseWriter, value string) {
	c := s.base()
	c.Value = value
	c.MaxAge = int(s.opts.MaxAge.Seconds())
	http.SetCookie(w, c)

	log.LogTraceWithFields("cookie", "Session cookie set", map[string]any{
		"maxAge":   s.opts.MaxAge.String(),
		"secure":   s.opts.Secure,
		"sameSite": "Lax",
	})
}

// Read returns the session cookie value from the request, if any
func (s *Store) Read(r *http.Request) (string, bool) {
	c, err := r.Cookie(s.opts.Name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Delete expires the session cookie immediately
func (s *Store) Delete(w http.ResponseWriter) {
	c := s.base()
	c.Value = ""
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)

	log.LogTraceWithFields("cookie", "Session cookie cleared", nil)
}
