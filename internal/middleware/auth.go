package middleware

import (
	"context"
	"net/http"
	"strings"

	"shipdash-backend/internal/auth"
	"shipdash-backend/internal/upstream"
)

type contextKey string

const EmailKey contextKey = "email"
const RoleKey contextKey = "role"
const TokenKey contextKey = "token"

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
}

func NewAuthMiddleware(jwtManager *auth.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager}
}

// Authenticate validates the bearer token minted by the upstream auth
// service and stashes the claims plus the raw token in the request
// context. The raw token becomes the upstream session for every call
// made on the user's behalf.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
			return
		}

		token := parts[1]
		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), EmailKey, claims.Subject)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)
		ctx = context.WithValue(ctx, TokenKey, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole restricts an endpoint to the given roles
func (m *AuthMiddleware) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				http.Error(w, "Role not found in context", http.StatusForbidden)
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "Insufficient permissions", http.StatusForbidden)
		})
	}
}

// GetEmailFromContext extracts the user email from request context
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}

// GetRoleFromContext extracts the user role from request context
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

// SessionFromContext builds the upstream session from the raw bearer
// token the middleware stored.
func SessionFromContext(ctx context.Context) upstream.Session {
	token, _ := ctx.Value(TokenKey).(string)
	return upstream.Session{Token: token}
}
