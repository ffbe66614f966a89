package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// SessionCookieName carries the guest session id. The cookie is the
	// authoritative channel; the X-Session-Id header is a compatibility
	// shim consulted only when the cookie is absent. The chosen id is
	// always echoed in both channels.
	SessionCookieName = "blisora_session"
	sessionHeaderName = "X-Session-Id"

	sessionCookieMaxAge = 30 * 24 * time.Hour
)

type ctxKey string

const sessionIDKey ctxKey = "session_id"

// SessionMiddleware resolves or mints the guest session id for the request.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
			sessionID = cookie.Value
		} else if header := r.Header.Get(sessionHeaderName); header != "" {
			sessionID = header
		} else {
			sessionID = uuid.NewString()
		}

		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    sessionID,
			Path:     "/",
			MaxAge:   int(sessionCookieMaxAge.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		w.Header().Set(sessionHeaderName, sessionID)

		ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getSessionID(ctx context.Context) string {
	if sessionID, ok := ctx.Value(sessionIDKey).(string); ok {
		return sessionID
	}
	return ""
}
