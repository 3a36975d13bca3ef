package testutil

import (
	"context"

	"github.com/bestsenki/storefront/internal/types"
)

const (
	DefaultAccountID = "00000000-0000-0000-0000-000000000001"
	DefaultEmail     = "anna@example.kg"
)

// SetupContext returns a context for a logged-in customer
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = types.SetUserID(ctx, DefaultAccountID)
	ctx = types.SetUserEmail(ctx, DefaultEmail)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}

// SetupGuestContext returns a context with no authenticated user
func SetupGuestContext() context.Context {
	return context.WithValue(context.Background(), types.CtxRequestID, types.GenerateUUID())
}

// SetupAdminContext returns a context for an account with the admin role
func SetupAdminContext() context.Context {
	return types.SetUserRole(SetupContext(), types.RoleAdmin)
}

// WithAccount switches the authenticated account on ctx
func WithAccount(ctx context.Context, accountID string) context.Context {
	return types.SetUserID(ctx, accountID)
}
