package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/bedirhan/todo-backend/internal/models"
	"github.com/bedirhan/todo-backend/internal/token"
)

// we are doing this to avoid collision with libraries
type contextKey string

const claimsKey contextKey = "claims"

// ClaimsFromContext returns the verified claims the auth middleware stored.
func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*models.Claims)
	return claims, ok
}

// AuthMiddleware verifies the bearer token (or the session cookie set by the
// OAuth callback) and puts the claims on the request context.
func AuthMiddleware(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				writeError(w, http.StatusUnauthorized, "Missing token")
				return
			}

			claims, err := tokens.Parse(tokenString)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := r.Cookie("session_token"); err == nil {
		return cookie.Value
	}
	return ""
}
