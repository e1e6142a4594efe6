package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/auth"
	"github.com/moundir-nedjm/ponpro-backend/internal/handler/http/response"
)

// AuthRequired rejects requests that lack a verified editor access
// token. Single-purpose stream tokens are not accepted here; they only
// open the event stream endpoint.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.Unauthorized(w, "A valid access token is required")
				return
			}

			if tokenType, ok := claims["type"].(string); !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
