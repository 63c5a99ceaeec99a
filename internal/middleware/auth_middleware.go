package middleware

import (
	"context"
	"net/http"

	"github.com/coursecms/coursesite/internal/auth"
	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/editor"
	"github.com/coursecms/coursesite/internal/utils"
)

type adminContextKey struct{}

// AdminLookup resolves an admin session token to its admin state
type AdminLookup interface {
	Lookup(token string) (*editor.Admin, bool)
}

// JWTAuth is a middleware that requires a valid JWT token
func JWTAuth(jwtService auth.JWTValidator) func(http.Handler) http.Handler {
	return auth.RequireAuth(auth.NewJWTAuthProvider(jwtService))
}

// OptionalJWTAuth attaches the identity of a valid token and lets anonymous requests through
func OptionalJWTAuth(jwtService auth.JWTValidator) func(http.Handler) http.Handler {
	return auth.OptionalAuth(auth.NewJWTAuthProvider(jwtService))
}

// AdminSession attaches the admin state named by the X-Admin-Session header.
// It never rejects a request: reads are public and every mutation checks
// admin mode itself.
func AdminSession(sessions AdminLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(constants.HeaderXAdminSession)
			if admin, ok := sessions.Lookup(token); ok {
				r = r.WithContext(WithAdmin(r.Context(), admin))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin refuses requests without an active admin session. It runs
// after AdminSession and answers with the bare {message} body of the
// publishing endpoints.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !AdminFromContext(r.Context()).IsAdmin() {
			utils.SendJSON(w, http.StatusForbidden, map[string]string{"message": constants.MsgAdminRequired})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithAdmin stores admin state in ctx
func WithAdmin(ctx context.Context, admin *editor.Admin) context.Context {
	return context.WithValue(ctx, adminContextKey{}, admin)
}

// AdminFromContext returns the admin state of the request. A request without
// an admin session gets a locked state.
func AdminFromContext(ctx context.Context) editor.AdminState {
	if admin, ok := ctx.Value(adminContextKey{}).(*editor.Admin); ok && admin != nil {
		return admin
	}
	return editor.NewAdmin("")
}
