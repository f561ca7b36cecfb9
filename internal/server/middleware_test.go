package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/cmu-oauth/session-front/internal/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainMiddleware_Order(t *testing.T) {
	var order []string
	mark := func(name string) MiddlewareFunc {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := ChainMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("inner"), mark("outer"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		incoming  string
		wantReuse bool
	}{
		{name: "generated when absent", incoming: "", wantReuse: false},
		{name: "propagated when present", incoming: "req-abc-123", wantReuse: true},
		{name: "replaced when too long", incoming: strings.Repeat("x", 500), wantReuse: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := NewRequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = RequestIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			require.NotEmpty(t, seen)
			assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
			if tt.wantReuse {
				assert.Equal(t, tt.incoming, seen)
			} else {
				_, err := uuid.Parse(seen)
				assert.NoError(t, err)
			}
		})
	}
}

func TestRecoverMiddleware(t *testing.T) {
	h := NewRecoverMiddleware("test")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/whoAmI", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"ok":false,"message":"Internal server error"}`, w.Body.String())
}

func TestLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	require.NoError(t, log.Configure("info", "text"))

	h := ChainMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short"))
	}), NewLoggerMiddleware("http"), NewRequestIDMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/cmuOAuthCallback?code=secret-code", nil)
	req.Header.Set(RequestIDHeader, "rid-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "path=/cmuOAuthCallback")
	assert.Contains(t, out, "bytes=5")
	assert.Contains(t, out, "request_id=rid-1")
	assert.NotContains(t, out, "secret-code")
}

func TestResponseWriterDelegator(t *testing.T) {
	rec := httptest.NewRecorder()
	w := wrapResponseWriter(rec)

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)
	_, err := w.Write([]byte("hello"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, w.Status())
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 5, w.BytesWritten())
	assert.Same(t, rec, w.Unwrap())
}
