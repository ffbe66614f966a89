package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionEcho() (http.Handler, *string) {
	var seen string
	handler := SessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = getSessionID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	return handler, &seen
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == SessionCookieName {
			return cookie
		}
	}
	t.Fatalf("response carries no %s cookie", SessionCookieName)
	return nil
}

func TestSessionMiddleware_CookieWins(t *testing.T) {
	handler, seen := sessionEcho()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "from-cookie"})
	req.Header.Set(sessionHeaderName, "from-header")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, "from-cookie", *seen)
	assert.Equal(t, "from-cookie", rec.Header().Get(sessionHeaderName))
	assert.Equal(t, "from-cookie", sessionCookie(t, rec).Value)
}

func TestSessionMiddleware_HeaderFallback(t *testing.T) {
	handler, seen := sessionEcho()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(sessionHeaderName, "from-header")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, "from-header", *seen)
	assert.Equal(t, "from-header", sessionCookie(t, rec).Value)
}

func TestSessionMiddleware_MintsWhenAbsent(t *testing.T) {
	handler, seen := sessionEcho()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	_, err := uuid.Parse(*seen)
	require.NoError(t, err)

	cookie := sessionCookie(t, rec)
	assert.Equal(t, *seen, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, int((30 * 24 * time.Hour).Seconds()), cookie.MaxAge)
	assert.Equal(t, *seen, rec.Header().Get(sessionHeaderName))
}
