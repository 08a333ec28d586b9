package middleware

import (
	"net/http"
	"strings"

	"github.com/boltfit/catalog-backend/api/responses"
	"github.com/boltfit/catalog-backend/internal/auth"
	pkgerrors "github.com/boltfit/catalog-backend/pkg/errors"
	"github.com/boltfit/catalog-backend/pkg/logger"
)

// RequireAdmin runs the admin gate on the bearer token and seeds the request
// context with the resulting identity. Nothing downstream runs on failure.
func RequireAdmin(gate auth.Authorizer, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			admin, err := gate.Authorize(r.Context(), token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithAdmin(r.Context(), admin)
			if logg != nil {
				ctx = logg.WithAdminEmail(ctx, admin.Email())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an Authorization header. A bare token
// without the scheme is accepted.
func BearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(raw) >= 7 && strings.EqualFold(raw[:7], "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
