package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/enbat/horizon-server-go/internal/session"
)

const (
	SessionStateContextKey contextKey = "sessionState"
	SessionTokenContextKey contextKey = "sessionToken"
)

// GetSessionState returns the session state derived for this request, or the
// Anonymous state when the middleware did not run.
func GetSessionState(ctx context.Context) session.State {
	if state, ok := ctx.Value(SessionStateContextKey).(session.State); ok {
		return state
	}
	return session.State{}
}

func GetSessionToken(ctx context.Context) string {
	if token, ok := ctx.Value(SessionTokenContextKey).(string); ok {
		return token
	}
	return ""
}

// SessionMiddleware derives the visitor's session state from the bearer
// token on every request. It never rejects: anonymous visitors pass through
// with the Anonymous state, and the gates below decide what that may reach.
type SessionMiddleware struct {
	sessions *session.Manager
}

func NewSessionMiddleware(sessions *session.Manager) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

func (m *SessionMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		state := m.sessions.Load(r.Context(), token)

		ctx := r.Context()
		ctx = context.WithValue(ctx, SessionStateContextKey, state)
		ctx = context.WithValue(ctx, SessionTokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireConfirmed gates the admin CRUD surface: logged-out callers get 401,
// logged-in-but-pending callers get the pending-confirmation view as a 403.
func RequireConfirmed(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := GetSessionState(r.Context())

		if !state.IsLoggedIn {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Unauthorized",
			})
			return
		}

		if !state.IsConfirmed {
			writeJSON(w, http.StatusForbidden, map[string]string{
				"error":  "Your account is pending confirmation by an administrator",
				"status": "pending",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
