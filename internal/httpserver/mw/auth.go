package mw

import (
	"context"
	"net/http"
	"strings"

	"github.com/scholarpath/scholarpath/internal/domain"
	"github.com/scholarpath/scholarpath/internal/logger"
)

// SessionCookie is the cookie slot the session token is handed to.
const SessionCookie = "scholarpath_session"

type sessionKey struct{}

// TokenParser deserializes a session token back into its subject.
type TokenParser func(token string) (*domain.User, error)

// Session resolves the session subject from the Authorization header
// (Bearer token) or the session cookie and stores it in the request
// context. Requests without a valid token pass through anonymous;
// RequireAuth is the gate.
func Session(parse TokenParser, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				if c, err := r.Cookie(SessionCookie); err == nil {
					token = c.Value
				}
			}
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := parse(token)
			if err != nil {
				log.Debug("rejected session token", logger.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := SessionUser(r); !ok {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects authenticated requests whose subject lacks the role
// with 403, and anonymous requests with 401.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := SessionUser(r)
			if !ok {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			if user.Role != role {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionUser returns the authenticated subject stored by Session.
func SessionUser(r *http.Request) (*domain.User, bool) {
	user, ok := r.Context().Value(sessionKey{}).(*domain.User)
	return user, ok
}

// WithSessionUser injects a subject into the request context. Test helper.
func WithSessionUser(r *http.Request, user *domain.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), sessionKey{}, user))
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
