package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionEcho(seen *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen, _ = GetSessionID(r.Context())
	})
}

func TestSession_IssuesCookie(t *testing.T) {
	var seen string
	h := Session(SessionConfig{CookieName: "nbne_session", Secure: true})(sessionEcho(&seen))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "nbne_session", c.Name)
	assert.Equal(t, seen, c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, "/", c.Path)
	assert.Zero(t, c.MaxAge)

	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

func TestSession_ReusesValidCookie(t *testing.T) {
	var seen string
	h := Session(SessionConfig{CookieName: "nbne_session"})(sessionEcho(&seen))

	id := uuid.NewString()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "nbne_session", Value: id})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, id, seen)
	assert.Empty(t, w.Result().Cookies())
}

func TestSession_ReplacesGarbageCookie(t *testing.T) {
	var seen string
	h := Session(SessionConfig{CookieName: "nbne_session"})(sessionEcho(&seen))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "nbne_session", Value: "not-a-uuid"})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.NotEqual(t, "not-a-uuid", seen)
	require.Len(t, w.Result().Cookies(), 1)
	assert.Equal(t, seen, w.Result().Cookies()[0].Value)
}

func TestGetSessionID_Empty(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetSessionID(r.Context())
	assert.False(t, ok)

	_, ok = GetSessionID(WithSessionID(r.Context(), ""))
	assert.False(t, ok)
}
