package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/heartmarshall/storetrack-backend/pkg/ctxutil"
)

type sessionValidator interface {
	ValidateToken(ctx context.Context, token string) (ctxutil.Identity, error)
}

// Session returns middleware that resolves the caller's identity from the
// session cookie or, failing that, an Authorization bearer header. A valid
// token attaches the identity to the request context. A stale or missing
// cookie leaves the request anonymous so page handlers can redirect to the
// login form; an explicit invalid bearer token is rejected outright.
func Session(validator sessionValidator, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := extractBearerToken(r); token != "" {
				identity, err := validator.ValidateToken(r.Context(), token)
				if err != nil {
					http.Error(w, "unauthorized", http.StatusUnauthorized)
					return
				}
				next.ServeHTTP(w, r.WithContext(ctxutil.WithIdentity(r.Context(), identity)))
				return
			}

			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			identity, err := validator.ValidateToken(r.Context(), cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r) // Stale cookie, treat as anonymous
				return
			}
			next.ServeHTTP(w, r.WithContext(ctxutil.WithIdentity(r.Context(), identity)))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
