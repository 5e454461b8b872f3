package middleware

import (
	"context"
	"net/http"

	"app/internal/repository"

	"github.com/google/uuid"
)

// Injected key type to avoid context collisions
type contextKey string

const SessionContextKey = contextKey("session")

// SessionCookieName identifies the dashboard session. The cookie carries no
// credentials; it only keys the caller's isolated in-memory state.
const SessionCookieName = "session_id"

// SessionMiddleware ensures every request runs under a session: it reads the
// session cookie, minting a fresh ID when absent, touches the session in the
// repository and injects the ID into the request context.
func SessionMiddleware(sessions repository.SessionRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
				id = c.Value
			} else {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			sessions.Touch(id)
			ctx := context.WithValue(r.Context(), SessionContextKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionID extracts the session ID placed by SessionMiddleware.
func SessionID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(SessionContextKey).(string)
	return id, ok && id != ""
}
