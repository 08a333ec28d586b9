package middleware

import (
	"context"

	"github.com/boltfit/catalog-backend/internal/auth"
)

type contextKey string

const ctxAdmin contextKey = "admin_identity"

// WithAdmin stores the authenticated admin on the context.
func WithAdmin(ctx context.Context, admin auth.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAdmin, admin)
}

// AdminFromContext returns the admin placed by RequireAdmin.
func AdminFromContext(ctx context.Context) (auth.Identity, bool) {
	if ctx == nil {
		return auth.Identity{}, false
	}
	admin, ok := ctx.Value(ctxAdmin).(auth.Identity)
	return admin, ok
}

// AdminEmailFromContext is a convenience for handlers and scoping keys.
func AdminEmailFromContext(ctx context.Context) string {
	admin, _ := AdminFromContext(ctx)
	return admin.Email()
}
