package server

import (
	"context"
	"net/http"

	"github.com/quillbase/go-blog-server/authz"
	apperrors "github.com/quillbase/go-blog-server/internal/errors"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyAuth stores the resolved authz.Context for the request
const ContextKeyAuth ContextKey = "auth_context"

// WithAuthContext resolves the authentication context for the request and
// stores it. Resolution never fails the request: at worst the context is
// anonymous.
func (s *Server) WithAuthContext(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authCtx := s.ctxResolver.Resolve(r)
		ctx := context.WithValue(r.Context(), ContextKeyAuth, authCtx)
		next(w, r.WithContext(ctx))
	}
}

// AuthContext extracts the resolved context from the request, falling back
// to anonymous when the middleware did not run.
func AuthContext(r *http.Request) authz.Context {
	if authCtx, ok := r.Context().Value(ContextKeyAuth).(authz.Context); ok {
		return authCtx
	}
	return authz.Anonymous()
}

// Guarded applies a guard before the handler runs, mapping a rejection to
// 401 (must log in) or 403 (insufficient privilege).
func (s *Server) Guarded(guard authz.Guard) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if err := guard(AuthContext(r)); err != nil {
				switch {
				case apperrors.Is(err, apperrors.ErrUnauthorized):
					writeError(w, http.StatusUnauthorized, "unauthorized")
				case apperrors.Is(err, apperrors.ErrForbidden):
					writeError(w, http.StatusForbidden, "forbidden")
				default:
					writeError(w, http.StatusInternalServerError, "internal error")
				}
				return
			}
			next(w, r)
		}
	}
}
