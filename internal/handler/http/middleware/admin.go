package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/auth"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/user"
	"github.com/moundir-nedjm/ponpro-backend/internal/handler/http/response"
)

// AdminOnly gates catalog management to administrator accounts. It runs
// behind AuthRequired, so a missing claim here means a malformed token
// rather than an unauthenticated request.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if isAdmin, ok := claims["is_admin"].(bool); !ok || !isAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
