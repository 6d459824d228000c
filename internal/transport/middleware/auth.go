package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/qiwenzhou/mytime-backend/pkg/ctxutil"
)

// TokenValidator validates a Bearer token and resolves the user it belongs to.
type TokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, error)
}

// Auth returns middleware that requires a valid Bearer token.
// On success the authenticated user ID is stored in the request context.
func Auth(validator TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			userID, err := validator.ValidateAccessToken(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
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
