package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/swifttransit/booking-api/internal/auth"
	"github.com/swifttransit/booking-api/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	UserContextKey contextKey = "user"

	// TokenCookieName is the cookie the token is read from; it takes
	// precedence over the Authorization header.
	TokenCookieName = "jwt_token"
)

// AuthMiddleware provides the authentication and authorization guards
type AuthMiddleware struct {
	authService *auth.Service
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Authenticate locates a bearer token, verifies it and attaches the decoded
// identity to the request context. A missing Authorization header and a header
// without a usable token are reported separately.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if cookie, err := r.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
			token = cookie.Value
		} else {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				errorJSON(w, http.StatusUnauthorized, "authorization header required")
				return
			}
			extracted, err := m.authService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				errorJSON(w, http.StatusUnauthorized, "no bearer token found in request")
				return
			}
			token = extracted
		}

		claims, err := m.authService.ValidateToken(token)
		if err != nil {
			errorJSON(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects the request unless the authenticated identity's role is
// in the given allow-list. It must run after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetUserFromContext(r.Context())
			if !ok {
				errorJSON(w, http.StatusUnauthorized, "user context not found")
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			errorJSON(w, http.StatusForbidden, "insufficient permissions")
		})
	}
}

// GetUserFromContext extracts user claims from request context
func GetUserFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*models.Claims)
	return claims, ok
}

func errorJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
