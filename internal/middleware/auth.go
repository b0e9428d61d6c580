package middleware

import (
	"net/http"
	"strings"

	"github.com/pinkslip-racing/pinkslip/internal/auth"
	"github.com/pinkslip-racing/pinkslip/internal/logging"
)

// AuthMiddleware requires a bearer token signed with secret and stores
// its claims on the request context.
func AuthMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "Unauthorized. Missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := auth.ParseToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				logging.Warn("Rejected ops API token",
					"request_id", RequestIDFromContext(r.Context()),
					"error", err.Error(),
				)
				http.Error(w, "Unauthorized. Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
