package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onlyCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestStore_Write(t *testing.T) {
	tests := []struct {
		name       string
		secure     bool
		wantSecure bool
	}{
		{name: "development", secure: false, wantSecure: false},
		{name: "production", secure: true, wantSecure: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(Options{Secure: tt.secure})
			w := httptest.NewRecorder()

			store.Write(w, "signed-token")

			c := onlyCookie(t, w)
			assert.Equal(t, DefaultName, c.Name)
			assert.Equal(t, "signed-token", c.Value)
			assert.Equal(t, "/", c.Path)
			assert.Equal(t, "localhost", c.Domain)
			assert.Equal(t, 3600, c.MaxAge)
			assert.True(t, c.HttpOnly)
			assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
			assert.Equal(t, tt.wantSecure, c.Secure)
		})
	}
}

func TestStore_Read(t *testing.T) {
	store := NewStore(Options{})

	t.Run("present", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/whoAmI", nil)
		r.AddCookie(&http.Cookie{Name: DefaultName, Value: "abc"})

		value, ok := store.Read(r)
		assert.True(t, ok)
		assert.Equal(t, "abc", value)
	})

	t.Run("absent", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/whoAmI", nil)
		r.AddCookie(&http.Cookie{Name: "other", Value: "abc"})

		_, ok := store.Read(r)
		assert.False(t, ok)
	})

	t.Run("empty", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/whoAmI", nil)
		r.AddCookie(&http.Cookie{Name: DefaultName, Value: ""})

		_, ok := store.Read(r)
		assert.False(t, ok)
	})
}

// Browsers only drop a cookie when the deletion repeats its Path and Domain.
func TestStore_DeleteMatchesWriteAttributes(t *testing.T) {
	store := NewStore(Options{
		Name:   "session",
		Domain: "app.example.ac.th",
		Path:   "/",
		Secure: true,
		MaxAge: 30 * time.Minute,
	})

	written := httptest.NewRecorder()
	store.Write(written, "token")
	set := onlyCookie(t, written)

	deleted := httptest.NewRecorder()
	store.Delete(deleted)
	del := onlyCookie(t, deleted)

	assert.Equal(t, set.Name, del.Name)
	assert.Equal(t, set.Path, del.Path)
	assert.Equal(t, set.Domain, del.Domain)
	assert.Equal(t, set.Secure, del.Secure)
	assert.Equal(t, set.HttpOnly, del.HttpOnly)
	assert.Equal(t, set.SameSite, del.SameSite)
	assert.Empty(t, del.Value)
	assert.Equal(t, -1, del.MaxAge)
	assert.True(t, del.Expires.Before(time.Now()))

	header := deleted.Header().Get("Set-Cookie")
	assert.Contains(t, header, "Max-Age=0")
	assert.Contains(t, header, "Domain=app.example.ac.th")
	assert.Contains(t, header, "Path=/")
}

func TestNewStore_Defaults(t *testing.T) {
	store := NewStore(Options{})
	assert.Equal(t, DefaultName, store.Name())
}
