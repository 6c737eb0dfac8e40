package auth

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/segyhp/kos-management/pkg/response"
)

// RequireAdmin rejects requests without a valid admin bearer token and puts
// the token's claims on the request context.
func RequireAdmin(tokens *TokenManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				response.Unauthorized(w, "Token not found")
				return
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				response.Unauthorized(w, "Authorization header must be a Bearer token")
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			if !claims.IsAdmin() {
				response.Forbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}
