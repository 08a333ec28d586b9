package auth

import (
	"fmt"
	"net/http"

	"github.com/boltfit/catalog-backend/api/middleware"
	"github.com/boltfit/catalog-backend/api/responses"
	"github.com/boltfit/catalog-backend/api/validators"
	"github.com/boltfit/catalog-backend/internal/auth"
	pkgerrors "github.com/boltfit/catalog-backend/pkg/errors"
	"github.com/boltfit/catalog-backend/pkg/logger"
)

// AdminPermissions is the fixed permission set granted to every allow-listed admin.
var AdminPermissions = []string{"read_products", "create_products", "update_products", "delete_products"}

type googleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type loginResponse struct {
	Message     string        `json:"message"`
	Admin       auth.Identity `json:"admin"`
	AccessToken string        `json:"access_token"`
}

type meResponse struct {
	Message     string        `json:"message"`
	Admin       auth.Identity `json:"admin"`
	Permissions []string      `json:"permissions"`
}

type logoutResponse struct {
	Message string `json:"message"`
	Action  string `json:"action"`
}

// GoogleLogin runs the admin gate on a Google ID token and echoes the token
// back as the access token. No server-side session is created.
func GoogleLogin(gate auth.Authorizer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gate == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth gate unavailable"))
			return
		}

		var body googleLoginRequest
		if err := validators.DecodeJSONBodyLenient(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		admin, err := gate.Authorize(r.Context(), body.IDToken)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, loginResponse{
			Message:     fmt.Sprintf("Welcome back, %s!", admin.Name()),
			Admin:       admin,
			AccessToken: body.IDToken,
		})
	}
}

// Me returns the admin resolved by RequireAdmin.
func Me(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, ok := middleware.AdminFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin context missing"))
			return
		}
		responses.WriteSuccess(w, meResponse{
			Message:     "Admin verified successfully",
			Admin:       admin,
			Permissions: AdminPermissions,
		})
	}
}

// Logout acknowledges a client-side sign out.
func Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, logoutResponse{
			Message: "Logout successful. Please remove token from client storage.",
			Action:  "clear_token",
		})
	}
}
