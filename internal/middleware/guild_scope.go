package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pinkslip-racing/pinkslip/internal/auth"
)

// RequireGuildAccess rejects tokens scoped to a different guild than the
// {guildID} route parameter. Must run after AuthMiddleware.
func RequireGuildAccess() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.GetUserClaims(r.Context())
			if claims == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if !claims.CanRead(chi.URLParam(r, "guildID")) {
				http.Error(w, "Forbidden. Token is scoped to another guild", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
