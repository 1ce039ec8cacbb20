package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/omspos/oms-api/internal/authz"
	"github.com/omspos/oms-api/internal/pkg/jwt"
	"github.com/omspos/oms-api/internal/pkg/response"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityLoader resolves the full principal (role, permission set, operator
// and outlet affiliation) for an authenticated user ID. The token only
// proves who is calling; what they may do is always re-read.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, userID uuid.UUID) (*authz.Identity, error)
}

// Auth returns middleware that validates the bearer JWT and resolves the
// caller identity into the request context.
func Auth(jwtService *jwt.Service, loader IdentityLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := jwtService.ValidateAccessToken(parts[1])
			if err != nil {
				if err == jwt.ErrExpiredToken {
					response.Unauthorized(w, "Token expired")
				} else {
					response.Unauthorized(w, "Invalid token")
				}
				return
			}

			identity, err := loader.LoadIdentity(r.Context(), claims.UserID)
			if err != nil || identity == nil {
				response.Unauthorized(w, "Unknown principal")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity extracts the resolved caller identity from context
func GetIdentity(ctx context.Context) *authz.Identity {
	if id, ok := ctx.Value(identityKey).(*authz.Identity); ok {
		return id
	}
	return nil
}

// WithIdentity returns a context carrying the identity. Used by tests.
func WithIdentity(ctx context.Context, id *authz.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// RequirePermission returns middleware that checks a single permission code
// against the caller's resolved permission set.
func RequirePermission(perm authz.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if identity == nil {
				response.Unauthorized(w, "Missing identity")
				return
			}

			if !identity.Can(perm) {
				response.Forbidden(w, "Missing permission: "+string(perm))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
